package modelfactory

import (
	"context"
	"log/slog"

	"github.com/randalmurphal/modelfactory/pkg/modelfactory/observability"
)

// Option configures a Factory.
type Option func(*Factory)

// WithLogger sets the logger for build events.
// Default: nil (no logging).
func WithLogger(logger *slog.Logger) Option {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
// Default: observability.NoopMetrics{}.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(f *Factory) {
		if m != nil {
			f.metrics = m
		}
	}
}

// WithSpanManager sets the span manager used for tracing builds.
// Default: observability.NoopSpanManager{}.
func WithSpanManager(sm observability.SpanManager) Option {
	return func(f *Factory) {
		if sm != nil {
			f.spans = sm
		}
	}
}

// WithObservability enables OpenTelemetry metrics and tracing using the
// global providers.
func WithObservability() Option {
	return func(f *Factory) {
		f.metrics = observability.NewMetricsRecorder()
		f.spans = observability.NewSpanManager()
	}
}

// buildConfig holds per-call settings.
type buildConfig struct {
	ctx  context.Context
	init func(any)
}

// BuildOption configures a single Build or Create call.
type BuildOption func(*buildConfig)

// WithInit passes a post-construction hook to the constructor.
//
// The hook only runs for types defined with Types.DefineWithInit, and only
// if their constructor chooses to call it.
//
// Example:
//
//	u, err := f.Build("User", nil, modelfactory.WithInit(func(v any) {
//	    v.(*User).Name = "From hook"
//	}))
func WithInit(fn func(any)) BuildOption {
	return func(c *buildConfig) {
		c.init = fn
	}
}

// WithContext sets the context that parents build spans.
// Default: context.Background().
func WithContext(ctx context.Context) BuildOption {
	return func(c *buildConfig) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}
