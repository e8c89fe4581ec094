package modelfactory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUnregisteredTemplate(t *testing.T) {
	f, _ := newTestFactory()

	v, err := f.Build("Gizmo", nil)
	assert.Nil(t, v)

	var notFound *TemplateNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Gizmo", notFound.Name)
}

func TestBuildUnresolvableType(t *testing.T) {
	f, reg := newTestFactory()
	reg.Register("Gizmo", map[string]any{"size": 1})

	_, err := f.Build("Gizmo", nil)

	var resErr *ClassResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "Gizmo", resErr.Name)
}

func TestBuildResolvesLazily(t *testing.T) {
	reg := NewRegistry()
	types := NewTypes()
	f := New(reg, types)

	reg.Register("Widget", map[string]any{"greeting": "hi"})
	_, err := f.Build("Widget", nil)
	require.ErrorIs(t, err, ErrClassNotFound)

	types.Define("Widget", newWidget)
	v, err := f.Build("Widget", nil)
	require.NoError(t, err)
	assert.Equal(t, "hi", v.(*Widget).Greeting)
}

func TestBuildScenario(t *testing.T) {
	f, reg := newTestFactory()
	reg.Register("Widget", map[string]any{
		"greeting": "hi",
		"tags":     []string{"a", "b"},
		"serial":   Sequence(1),
	})

	w1, err := BuildAs[*Widget](f, "Widget", Attributes{"greeting": "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", w1.Greeting)
	assert.Equal(t, []string{"a", "b"}, w1.Tags)
	assert.Equal(t, 1, w1.Serial)

	w2, err := BuildAs[*Widget](f, "Widget", nil)
	require.NoError(t, err)
	assert.Equal(t, "hi", w2.Greeting)
	assert.Equal(t, 2, w2.Serial)

	w1.Tags[0] = "mutated"
	w1.Tags = append(w1.Tags, "c")
	assert.Equal(t, []string{"a", "b"}, w2.Tags)

	w3, err := BuildAs[*Widget](f, "Widget", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, w3.Tags)
}

func TestBuildSharedOverride(t *testing.T) {
	f, reg := newTestFactory()
	reg.Register("Widget", map[string]any{"tags": []string{"a"}})
	shared := []string{"this", "is", "shared"}

	w1, err := BuildAs[*Widget](f, "Widget", Attributes{"tags": shared})
	require.NoError(t, err)
	w2, err := BuildAs[*Widget](f, "Widget", Attributes{"tags": shared})
	require.NoError(t, err)

	w1.Tags[2] = "modified"
	assert.Equal(t, "modified", w2.Tags[2])
}

func TestBuildOptionalAndExtraAttributes(t *testing.T) {
	f, reg := newTestFactory()
	reg.Register("Widget", map[string]any{"nickname": Optional, "greeting": "hi"})

	w, err := BuildAs[*Widget](f, "Widget", nil)
	require.NoError(t, err)
	assert.Empty(t, w.Extra)

	w, err = BuildAs[*Widget](f, "Widget", Attributes{"nickname": "Al", "color": "blue"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"nickname": "Al", "color": "blue"}, w.Extra)
}

func TestBuildRequiredFailsDownstream(t *testing.T) {
	f, reg := newTestFactory()
	reg.Register("Account", map[string]any{"owner": Required})

	_, err := f.Build("Account", nil)
	require.ErrorIs(t, err, ErrAttributeRequired)

	v, err := f.Build("Account", Attributes{"owner": "alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice", v.(*Account).Owner)
}

func TestBuildConstructorErrorUnmodified(t *testing.T) {
	constructErr := errors.New("rejected")
	reg := NewRegistry()
	types := NewTypes()
	types.Define("Widget", func(Attributes) (any, error) { return nil, constructErr })
	reg.Register("Widget", nil)

	_, err := New(reg, types).Build("Widget", nil)
	assert.True(t, err == constructErr, "constructor errors are not wrapped")
}

func TestBuildWithInit(t *testing.T) {
	reg := NewRegistry()
	types := NewTypes()
	reg.Register("Hooked", map[string]any{"greeting": "hi"})
	reg.Register("Plain", map[string]any{"greeting": "hi"})
	types.DefineWithInit("Hooked", func(attrs Attributes, init func(any)) (any, error) {
		v, err := newWidget(attrs)
		if err != nil {
			return nil, err
		}
		init(v)
		return v, nil
	})
	types.Define("Plain", newWidget)
	f := New(reg, types)

	ran := 0
	hook := WithInit(func(v any) {
		ran++
		v.(*Widget).Greeting = "block value"
	})

	hooked, err := BuildAs[*Widget](f, "Hooked", nil, hook)
	require.NoError(t, err)
	assert.Equal(t, "block value", hooked.Greeting)
	assert.Equal(t, 1, ran)

	plain, err := BuildAs[*Widget](f, "Plain", nil, hook)
	require.NoError(t, err)
	assert.Equal(t, "hi", plain.Greeting, "types without init support never run the hook")
	assert.Equal(t, 1, ran)
}

func TestCreateSaves(t *testing.T) {
	f, reg := newTestFactory()
	reg.Register("Account", map[string]any{"owner": "alice"})

	acct, err := CreateAs[*Account](f, "Account", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, acct.Saves)

	built, err := BuildAs[*Account](f, "Account", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, built.Saves, "Build never saves")
}

func TestCreateWithoutSaver(t *testing.T) {
	f, reg := newTestFactory()
	reg.Register("Widget", map[string]any{"greeting": "hi"})

	w, err := CreateAs[*Widget](f, "Widget", nil)
	require.NoError(t, err)
	assert.Equal(t, "hi", w.Greeting)
}

func TestCreateSaveError(t *testing.T) {
	saveErr := errors.New("constraint violated")
	f, reg := newTestFactory()
	reg.Register("Account", map[string]any{"owner": "alice"})

	acct, err := CreateAs[*Account](f, "Account", Attributes{"save_err": saveErr})
	assert.True(t, err == saveErr, "save errors are not wrapped")
	require.NotNil(t, acct)
	assert.Equal(t, 1, acct.Saves)
}

func TestCreateBuildError(t *testing.T) {
	f, _ := newTestFactory()

	acct, err := CreateAs[*Account](f, "Account", nil)
	assert.Nil(t, acct)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestBuildAsWrongType(t *testing.T) {
	f, reg := newTestFactory()
	reg.Register("Widget", nil)

	_, err := BuildAs[*Account](f, "Widget", nil)

	var typeErr *InstanceTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "*modelfactory.Account", typeErr.Want)
	assert.Equal(t, "*modelfactory.Widget", typeErr.Got)
}

func TestNewDefaults(t *testing.T) {
	f := New(nil, nil)
	require.NotNil(t, f.Templates())
	require.NotNil(t, f.Types())

	_, err := f.Build("Widget", nil)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestFactoryLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	reg := NewRegistry()
	types := NewTypes()
	types.Define("Widget", newWidget)
	reg.Register("Widget", map[string]any{"greeting": "hi"})
	f := New(reg, types, WithLogger(logger))

	_, err := f.Build("Widget", nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"build completed"`)
	assert.Contains(t, buf.String(), `"template":"Widget"`)

	buf.Reset()
	_, err = f.Build("Missing", nil)
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"msg":"build failed"`)
	assert.Contains(t, buf.String(), `"stage":"lookup"`)
	assert.Contains(t, buf.String(), `"template":"Missing"`)
}

func TestFactoryLoggingCreate(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, reg := newTestFactory()
	reg.Register("Account", map[string]any{"owner": "alice"})
	types := NewTypes()
	types.Define("Account", newAccount)
	f := New(reg, types, WithLogger(logger))

	_, err := f.Create("Account", nil)
	require.NoError(t, err)

	var saved map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(line, &rec))
		if rec["msg"] == "instance saved" {
			saved = rec
		}
	}
	require.NotNil(t, saved)
	assert.Equal(t, "Account", saved["template"])
}

// recordingMetrics captures metric calls.
type recordingMetrics struct {
	builds map[string]int
	errors map[string]int
	saves  map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		builds: map[string]int{},
		errors: map[string]int{},
		saves:  map[string]int{},
	}
}

func (m *recordingMetrics) RecordBuild(_ context.Context, template string, _ time.Duration, err error) {
	m.builds[template]++
	if err != nil {
		m.errors[template]++
	}
}

func (m *recordingMetrics) RecordSave(_ context.Context, template string, _ error) {
	m.saves[template]++
}

func TestFactoryMetrics(t *testing.T) {
	m := newRecordingMetrics()
	reg := NewRegistry()
	types := NewTypes()
	types.Define("Account", newAccount)
	types.Define("Widget", newWidget)
	reg.Register("Account", map[string]any{"owner": "alice"})
	reg.Register("Widget", nil)
	f := New(reg, types, WithMetrics(m))

	_, err := f.Create("Account", nil)
	require.NoError(t, err)
	_, err = f.Create("Widget", nil)
	require.NoError(t, err)
	_, err = f.Build("Missing", nil)
	require.Error(t, err)

	assert.Equal(t, map[string]int{"Account": 1, "Widget": 1, "Missing": 1}, m.builds)
	assert.Equal(t, map[string]int{"Missing": 1}, m.errors)
	assert.Equal(t, map[string]int{"Account": 1}, m.saves, "only Savers record saves")
}
