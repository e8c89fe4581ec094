// Package factorytest binds a modelfactory.Factory to a test.
//
// Builds through a Helper fail the test instead of returning errors, and
// their spans are parented to the test's context:
//
//	func TestSignup(t *testing.T) {
//	    fx := factorytest.New(t, factory)
//	    user := factorytest.Create[*User](fx, "User", modelfactory.Attributes{"email": "a@example.com"})
//	    ...
//	}
package factorytest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/modelfactory/pkg/modelfactory"
)

// Helper runs factory builds on behalf of a test.
type Helper struct {
	t testing.TB
	f *modelfactory.Factory
}

// New returns a Helper for t. A nil f uses an empty factory.
func New(t testing.TB, f *modelfactory.Factory) *Helper {
	t.Helper()
	if f == nil {
		f = modelfactory.New(nil, nil)
	}
	return &Helper{t: t, f: f}
}

// Factory returns the wrapped factory.
func (h *Helper) Factory() *modelfactory.Factory {
	return h.f
}

// Build calls Factory.Build and fails the test on error.
func (h *Helper) Build(name string, overrides modelfactory.Attributes, opts ...modelfactory.BuildOption) any {
	h.t.Helper()
	v, err := h.f.Build(name, overrides, h.options(opts)...)
	require.NoError(h.t, err, "build %s", name)
	return v
}

// Create calls Factory.Create and fails the test on error, including a
// failed Save.
func (h *Helper) Create(name string, overrides modelfactory.Attributes, opts ...modelfactory.BuildOption) any {
	h.t.Helper()
	v, err := h.f.Create(name, overrides, h.options(opts)...)
	require.NoError(h.t, err, "create %s", name)
	return v
}

// options parents spans to the test context unless the caller sets one.
func (h *Helper) options(opts []modelfactory.BuildOption) []modelfactory.BuildOption {
	return append([]modelfactory.BuildOption{modelfactory.WithContext(h.t.Context())}, opts...)
}

// Build builds a T or fails the test.
func Build[T any](h *Helper, name string, overrides modelfactory.Attributes, opts ...modelfactory.BuildOption) T {
	h.t.Helper()
	v, err := modelfactory.BuildAs[T](h.f, name, overrides, h.options(opts)...)
	require.NoError(h.t, err, "build %s", name)
	return v
}

// Create creates a T or fails the test.
func Create[T any](h *Helper, name string, overrides modelfactory.Attributes, opts ...modelfactory.BuildOption) T {
	h.t.Helper()
	v, err := modelfactory.CreateAs[T](h.f, name, overrides, h.options(opts)...)
	require.NoError(h.t, err, "create %s", name)
	return v
}
