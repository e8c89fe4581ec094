// Package observability provides logging, metrics and tracing for
// modelfactory builds.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds the template name to a logger. The Log helpers expect
// a logger enriched this way.
//
// Example:
//
//	enriched := EnrichLogger(logger, "User")
//	LogBuildStart(enriched, 0) // includes template=User
func EnrichLogger(logger *slog.Logger, template string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("template", template))
}

// LogBuildStart logs the start of a build.
func LogBuildStart(logger *slog.Logger, overrides int) {
	if logger == nil {
		return
	}
	logger.Debug("build starting",
		slog.Int("overrides", overrides),
	)
}

// LogBuildComplete logs a successful build.
func LogBuildComplete(logger *slog.Logger, durationMs float64, attrCount int) {
	if logger == nil {
		return
	}
	logger.Debug("build completed",
		slog.Float64("duration_ms", durationMs),
		slog.Int("attributes", attrCount),
	)
}

// LogBuildError logs a failed build. stage is the pipeline step that
// failed: "lookup", "resolve" or "construct".
func LogBuildError(logger *slog.Logger, stage string, err error) {
	if logger == nil {
		return
	}
	logger.Error("build failed",
		slog.String("stage", stage),
		slog.String("error", err.Error()),
	)
}

// LogSave logs the outcome of a Save call made by Create.
// A nil err logs at debug level.
func LogSave(logger *slog.Logger, err error) {
	if logger == nil {
		return
	}
	if err != nil {
		logger.Error("save failed",
			slog.String("error", err.Error()),
		)
		return
	}
	logger.Debug("instance saved")
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
