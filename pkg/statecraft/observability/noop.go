package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics is a MetricsRecorder that does nothing.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordCommandExecution does nothing.
func (NoopMetrics) RecordCommandExecution(_ context.Context, _, _ string, _ time.Duration, _ bool) {}

// RecordCommandRejection does nothing.
func (NoopMetrics) RecordCommandRejection(_ context.Context, _, _, _ string) {}

// RecordEventDispatch does nothing.
func (NoopMetrics) RecordEventDispatch(_ context.Context, _ string, _ int, _ error) {}

// RecordStateTransition does nothing.
func (NoopMetrics) RecordStateTransition(_ context.Context, _ string) {}

// NoopSpanManager is a SpanManager that does nothing.
type NoopSpanManager struct{}

// Compile-time interface check.
var _ SpanManager = NoopSpanManager{}

var noopSpan = noop.Span{}

// StartCommandSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartCommandSpan(ctx context.Context, _, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// StartDispatchSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartDispatchSpan(ctx context.Context, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// EndSpanWithError does nothing.
func (NoopSpanManager) EndSpanWithError(_ trace.Span, _ error) {}

// AddSpanEvent does nothing.
func (NoopSpanManager) AddSpanEvent(_ context.Context, _ string, _ ...attribute.KeyValue) {}
