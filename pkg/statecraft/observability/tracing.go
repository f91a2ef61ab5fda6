package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName names the statecraft tracer and meter.
const instrumentationName = "statecraft"

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartCommandSpan starts a span covering one controller invocation.
	StartCommandSpan(ctx context.Context, controller, command string) (context.Context, trace.Span)

	// StartDispatchSpan starts a span covering one event dispatch.
	StartDispatchSpan(ctx context.Context, eventType string) (context.Context, trace.Span)

	// EndSpanWithError ends span with an error status when err is non-nil.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent records a named event on the span carried by ctx.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// SpanOption configures NewSpanManager.
type SpanOption func(*otelSpanManager)

// WithTracerProvider uses tp instead of the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) SpanOption {
	return func(m *otelSpanManager) {
		if tp != nil {
			m.tracer = tp.Tracer(instrumentationName)
		}
	}
}

type otelSpanManager struct {
	tracer trace.Tracer
}

// NewSpanManager returns a SpanManager backed by OpenTelemetry. Without
// WithTracerProvider it uses the provider registered with otel.SetTracerProvider.
func NewSpanManager(opts ...SpanOption) SpanManager {
	m := &otelSpanManager{tracer: otel.Tracer(instrumentationName)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *otelSpanManager) StartCommandSpan(ctx context.Context, controller, command string) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "statecraft.command."+command,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("controller", controller),
			attribute.String("command", command),
		),
	)
}

func (m *otelSpanManager) StartDispatchSpan(ctx context.Context, eventType string) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "statecraft.event.dispatch",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("event.type", eventType)),
	)
}

// EndSpanWithError sets the span status from err and ends it. A nil span
// is ignored.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	defer span.End()
	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// AddSpanEvent does nothing when the span carried by ctx is not recording.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.AddEvent(name, trace.WithAttributes(attrs...))
	}
}
