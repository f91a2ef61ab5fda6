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

// MetricsRecorder records statecraft metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordCommandExecution records a command that reached its process step.
	RecordCommandExecution(ctx context.Context, controller, command string, duration time.Duration, success bool)

	// RecordCommandRejection records a command refused before execution
	// (unknown, unavailable or invalid arguments).
	RecordCommandRejection(ctx context.Context, controller, command, kind string)

	// RecordEventDispatch records an event dispatch and how many listeners received it.
	RecordEventDispatch(ctx context.Context, eventType string, deliveries int, err error)

	// RecordStateTransition records a reducer application in a store.
	RecordStateTransition(ctx context.Context, eventType string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	commandExecutions metric.Int64Counter
	commandFailures   metric.Int64Counter
	commandLatency    metric.Float64Histogram
	commandRejections metric.Int64Counter
	eventDispatches   metric.Int64Counter
	eventDeliveries   metric.Int64Counter
	listenerErrors    metric.Int64Counter
	stateTransitions  metric.Int64Counter
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
	meter := otel.Meter(instrumentationName)
	m := &otelMetrics{}
	var err error

	if m.commandExecutions, err = meter.Int64Counter("statecraft.command.executions",
		metric.WithDescription("Number of command executions"),
	); err != nil {
		return nil, err
	}

	if m.commandFailures, err = meter.Int64Counter("statecraft.command.failures",
		metric.WithDescription("Number of executions that produced a failing result"),
	); err != nil {
		return nil, err
	}

	if m.commandLatency, err = meter.Float64Histogram("statecraft.command.latency_ms",
		metric.WithDescription("Command execution latency in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}

	if m.commandRejections, err = meter.Int64Counter("statecraft.command.rejections",
		metric.WithDescription("Number of commands rejected before execution"),
	); err != nil {
		return nil, err
	}

	if m.eventDispatches, err = meter.Int64Counter("statecraft.event.dispatches",
		metric.WithDescription("Number of dispatched events"),
	); err != nil {
		return nil, err
	}

	if m.eventDeliveries, err = meter.Int64Counter("statecraft.event.deliveries",
		metric.WithDescription("Number of event deliveries to listeners"),
	); err != nil {
		return nil, err
	}

	if m.listenerErrors, err = meter.Int64Counter("statecraft.event.listener_errors",
		metric.WithDescription("Number of dispatches aborted by a failing listener"),
	); err != nil {
		return nil, err
	}

	if m.stateTransitions, err = meter.Int64Counter("statecraft.store.transitions",
		metric.WithDescription("Number of state transitions applied by a store"),
	); err != nil {
		return nil, err
	}

	return m, nil
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

// RecordCommandExecution records a command execution.
func (m *otelMetrics) RecordCommandExecution(ctx context.Context, controller, command string, duration time.Duration, success bool) {
	attrs := metric.WithAttributes(
		attribute.String("controller", controller),
		attribute.String("command", command),
	)

	m.commandExecutions.Add(ctx, 1, attrs)
	m.commandLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	if !success {
		m.commandFailures.Add(ctx, 1, attrs)
	}
}

// RecordCommandRejection records a rejected command.
func (m *otelMetrics) RecordCommandRejection(ctx context.Context, controller, command, kind string) {
	m.commandRejections.Add(ctx, 1, metric.WithAttributes(
		attribute.String("controller", controller),
		attribute.String("command", command),
		attribute.String("reason", kind),
	))
}

// RecordEventDispatch records an event dispatch.
func (m *otelMetrics) RecordEventDispatch(ctx context.Context, eventType string, deliveries int, err error) {
	attrs := metric.WithAttributes(attribute.String("event_type", eventType))

	m.eventDispatches.Add(ctx, 1, attrs)
	m.eventDeliveries.Add(ctx, int64(deliveries), attrs)
	if err != nil {
		m.listenerErrors.Add(ctx, 1, attrs)
	}
}

// RecordStateTransition records a state transition.
func (m *otelMetrics) RecordStateTransition(ctx context.Context, eventType string) {
	m.stateTransitions.Add(ctx, 1, metric.WithAttributes(attribute.String("event_type", eventType)))
}
