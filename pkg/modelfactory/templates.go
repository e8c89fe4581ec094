package modelfactory

import (
	"maps"
	"slices"
)

// Registry maps template names to templates.
//
// Registry is not safe for concurrent mutation. Templates are expected to be
// registered during test setup and only read afterwards; callers that need
// concurrent registration must guard the registry themselves.
type Registry struct {
	templates map[string]Template
}

// NewRegistry creates an empty template registry.
func NewRegistry() *Registry {
	return &Registry{
		templates: make(map[string]Template),
	}
}

// Register stores a template for name built from attrs, replacing any
// template previously registered under that name. Values in attrs that are
// not an Attr are treated as Default values.
//
// Example:
//
//	reg.Register("User", map[string]any{
//	    "name":  "Alice",
//	    "tags":  []string{"admin"},
//	    "id":    modelfactory.Sequence(1),
//	    "email": modelfactory.Required,
//	    "bio":   modelfactory.Optional,
//	})
func (r *Registry) Register(name string, attrs map[string]any) {
	r.templates[name] = NewTemplate(attrs)
}

// Define is an alias for Register.
func (r *Registry) Define(name string, attrs map[string]any) {
	r.Register(name, attrs)
}

// RegisterTemplate stores an already built template under name.
func (r *Registry) RegisterTemplate(name string, t Template) {
	if t.attrs == nil {
		t = NewTemplate(nil)
	}
	r.templates[name] = t
}

// Catalog calls fn with the registry so several templates can be
// registered in one block.
//
//	reg.Catalog(func(c *modelfactory.Registry) {
//	    c.Register("User", map[string]any{"name": "Alice"})
//	    c.Register("Team", map[string]any{"size": 3})
//	})
func (r *Registry) Catalog(fn func(*Registry)) {
	fn(r)
}

// Lookup returns the template registered under name.
// Returns a *TemplateNotFoundError when there is none.
func (r *Registry) Lookup(name string) (Template, error) {
	t, ok := r.templates[name]
	if !ok {
		return Template{}, &TemplateNotFoundError{Name: name}
	}
	return t, nil
}

// Has reports whether a template is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// Names returns the registered template names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.templates))
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	return len(r.templates)
}

// Clear removes every template. Tests call it between independent scenarios.
func (r *Registry) Clear() {
	clear(r.templates)
}
