package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records modelfactory metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordBuild records a build of template with its duration and error status.
	RecordBuild(ctx context.Context, template string, duration time.Duration, err error)

	// RecordSave records a Save call made by Create.
	RecordSave(ctx context.Context, template string, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	builds       metric.Int64Counter
	buildErrors  metric.Int64Counter
	buildLatency metric.Float64Histogram
	saves        metric.Int64Counter
	saveErrors   metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("modelfactory")

	builds, err := meter.Int64Counter("modelfactory.build.count",
		metric.WithDescription("Number of instances built"),
	)
	if err != nil {
		return nil, err
	}

	buildErrors, err := meter.Int64Counter("modelfactory.build.errors",
		metric.WithDescription("Number of failed builds"),
	)
	if err != nil {
		return nil, err
	}

	buildLatency, err := meter.Float64Histogram("modelfactory.build.latency_ms",
		metric.WithDescription("Build latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	saves, err := meter.Int64Counter("modelfactory.create.saves",
		metric.WithDescription("Number of Save calls made by Create"),
	)
	if err != nil {
		return nil, err
	}

	saveErrors, err := meter.Int64Counter("modelfactory.create.save_errors",
		metric.WithDescription("Number of failed Save calls"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		builds:       builds,
		buildErrors:  buildErrors,
		buildLatency: buildLatency,
		saves:        saves,
		saveErrors:   saveErrors,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordBuild records a build.
func (m *otelMetrics) RecordBuild(ctx context.Context, template string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("template", template))

	m.builds.Add(ctx, 1, attrs)
	m.buildLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)

	if err != nil {
		m.buildErrors.Add(ctx, 1, attrs)
	}
}

// RecordSave records a Save call.
func (m *otelMetrics) RecordSave(ctx context.Context, template string, err error) {
	attrs := metric.WithAttributes(attribute.String("template", template))

	m.saves.Add(ctx, 1, attrs)
	if err != nil {
		m.saveErrors.Add(ctx, 1, attrs)
	}
}
