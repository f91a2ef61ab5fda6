// Package observability provides structured logging, metrics, and tracing
// for statecraft controllers, dispatchers and stores.
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

// EnrichLogger adds controller context to a logger.
// Returns a new logger with controller and command fields. The command
// helpers below expect an enriched logger and do not repeat either field.
//
// Example:
//
//	enriched := EnrichLogger(logger, "FlightController", "taxi")
//	enriched.Info("cleared") // includes controller, command
func EnrichLogger(logger *slog.Logger, controller, command string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("controller", controller),
		slog.String("command", command),
	)
}

// LogCommandStart logs the start of a command invocation.
func LogCommandStart(logger *slog.Logger, argCount int, keywords []string) {
	if logger == nil {
		return
	}
	logger.Debug("command starting",
		slog.Int("arguments", argCount),
		slog.Any("keywords", keywords),
	)
}

// LogCommandComplete logs a finished invocation. Failing results log at WARN
// with the recorded error kinds.
func LogCommandComplete(logger *slog.Logger, durationMs float64, success bool, errorKinds []string) {
	if logger == nil {
		return
	}
	if success {
		logger.Info("command completed",
			slog.Float64("duration_ms", durationMs),
		)
		return
	}
	logger.Warn("command failed",
		slog.Float64("duration_ms", durationMs),
		slog.Any("errors", errorKinds),
	)
}

// LogCommandRejected logs a command turned away before any process code ran.
func LogCommandRejected(logger *slog.Logger, kind string) {
	if logger == nil {
		return
	}
	logger.Info("command rejected",
		slog.String("reason", kind),
	)
}

// LogHookError logs a hook that aborted an invocation.
func LogHookError(logger *slog.Logger, unit string, stage string, err error) {
	if logger == nil {
		return
	}
	logger.Error("hook failed",
		slog.String("unit", unit),
		slog.String("stage", stage),
		slog.String("error", err.Error()),
	)
}

// LogEventDispatch logs an event delivered to its listeners.
func LogEventDispatch(logger *slog.Logger, eventType string, deliveries int) {
	if logger == nil {
		return
	}
	logger.Debug("event dispatched",
		slog.String("event_type", eventType),
		slog.Int("deliveries", deliveries),
	)
}

// LogListenerError logs a listener whose failure aborted a dispatch.
func LogListenerError(logger *slog.Logger, eventType string, listenerID string, err error) {
	if logger == nil {
		return
	}
	logger.Error("listener failed",
		slog.String("event_type", eventType),
		slog.String("listener_id", listenerID),
		slog.String("error", err.Error()),
	)
}

// LogStateTransition logs a reducer producing a new state.
func LogStateTransition(logger *slog.Logger, eventType string, sequence int) {
	if logger == nil {
		return
	}
	logger.Debug("state updated",
		slog.String("event_type", eventType),
		slog.Int("sequence", sequence),
	)
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
