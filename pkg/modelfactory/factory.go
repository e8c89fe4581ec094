package modelfactory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/randalmurphal/modelfactory/pkg/modelfactory/observability"
)

// Saver is implemented by instances that can persist themselves.
// Create calls Save when the built instance implements it.
type Saver interface {
	Save() error
}

// Factory builds instances from registered templates.
//
// A template's name is also the type name its instances are constructed
// from, so "User" templates are built by the constructor defined as "User".
type Factory struct {
	templates *Registry
	types     *Types

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// New creates a Factory reading templates from templates and constructors
// from types. Nil arguments are replaced with empty tables.
func New(templates *Registry, types *Types, opts ...Option) *Factory {
	if templates == nil {
		templates = NewRegistry()
	}
	if types == nil {
		types = NewTypes()
	}
	f := &Factory{
		templates: templates,
		types:     types,
		metrics:   observability.NoopMetrics{},
		spans:     observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Templates returns the template registry.
func (f *Factory) Templates() *Registry {
	return f.templates
}

// Types returns the constructor table.
func (f *Factory) Types() *Types {
	return f.types
}

// Build constructs an instance of the template registered under name.
//
// The template's attributes are merged with overrides (see Merge), the type
// is resolved by name, and its constructor is called with the result.
// Errors from lookup (*TemplateNotFoundError) and resolution
// (*ClassResolutionError) are returned as-is; constructor errors are
// returned unmodified.
func (f *Factory) Build(name string, overrides Attributes, opts ...BuildOption) (any, error) {
	cfg := f.buildConfig(opts)
	return f.build(cfg.ctx, observability.EnrichLogger(f.logger, name), name, overrides, cfg.init)
}

// Create builds an instance like Build and then calls Save on it if it
// implements Saver. Instances without Save are returned as built.
// A Save error is returned together with the instance.
func (f *Factory) Create(name string, overrides Attributes, opts ...BuildOption) (any, error) {
	cfg := f.buildConfig(opts)

	ctx, span := f.spans.StartBuildSpan(cfg.ctx, name, "create")
	logger := observability.EnrichLogger(f.logger, name)
	instance, err := f.build(ctx, logger, name, overrides, cfg.init)
	if err != nil {
		f.spans.EndSpanWithError(span, err)
		return nil, err
	}

	err = trySave(instance)
	if _, ok := instance.(Saver); ok {
		f.metrics.RecordSave(ctx, name, err)
		observability.LogSave(logger, err)
	}
	f.spans.EndSpanWithError(span, err)
	return instance, err
}

func (f *Factory) buildConfig(opts []BuildOption) buildConfig {
	cfg := buildConfig{ctx: context.Background()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// build runs one build. logger is already scoped to the template.
func (f *Factory) build(ctx context.Context, logger *slog.Logger, name string, overrides Attributes, init func(any)) (instance any, err error) {
	ctx, span := f.spans.StartBuildSpan(ctx, name, "build")
	done := observability.TimedOperation()
	stage := "lookup"

	observability.LogBuildStart(logger, len(overrides))
	defer func() {
		f.metrics.RecordBuild(ctx, name, time.Duration(done()*float64(time.Millisecond)), err)
		f.spans.EndSpanWithError(span, err)
		if err != nil {
			observability.LogBuildError(logger, stage, err)
		}
	}()

	tmpl, err := f.templates.Lookup(name)
	if err != nil {
		return nil, err
	}
	attrs := Merge(tmpl, overrides)

	stage = "resolve"
	class, err := f.types.Resolve(name)
	if err != nil {
		return nil, err
	}

	stage = "construct"
	instance, err = class.New(attrs, init)
	if err != nil {
		return nil, err
	}

	observability.LogBuildComplete(logger, done(), len(attrs))
	return instance, nil
}

// trySave calls Save when instance implements Saver.
func trySave(instance any) error {
	if s, ok := instance.(Saver); ok {
		return s.Save()
	}
	return nil
}

// BuildAs builds an instance and asserts it to T.
func BuildAs[T any](f *Factory, name string, overrides Attributes, opts ...BuildOption) (T, error) {
	v, err := f.Build(name, overrides, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return assertInstance[T](name, v)
}

// CreateAs creates an instance and asserts it to T.
// On a Save error the instance is returned along with the error.
func CreateAs[T any](f *Factory, name string, overrides Attributes, opts ...BuildOption) (T, error) {
	v, err := f.Create(name, overrides, opts...)
	if err != nil && v == nil {
		var zero T
		return zero, err
	}
	out, typeErr := assertInstance[T](name, v)
	if typeErr != nil {
		return out, typeErr
	}
	return out, err
}

func assertInstance[T any](name string, v any) (T, error) {
	out, ok := v.(T)
	if !ok {
		return out, &InstanceTypeError{
			Name: name,
			Want: NameOf[T](),
			Got:  fmt.Sprintf("%T", v),
		}
	}
	return out, nil
}
