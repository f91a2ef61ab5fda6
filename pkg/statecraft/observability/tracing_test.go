package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func attributeKey(k string) attribute.Key { return attribute.Key(k) }

// setupTracingTest creates a test tracer provider with an in-memory span recorder.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}

	return exporter, cleanup
}

func spanAttr(s tracetest.SpanStub, key string) string {
	for _, attr := range s.Attributes {
		if string(attr.Key) == key {
			return attr.Value.AsString()
		}
	}
	return ""
}

func TestStartCommandSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	_, span := NewSpanManager().StartCommandSpan(context.Background(), "FlightController", "taxi")
	require.NotNil(t, span)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "statecraft.command.taxi", spans[0].Name)
	assert.Equal(t, "FlightController", spanAttr(spans[0], "controller"))
	assert.Equal(t, "taxi", spanAttr(spans[0], "command"))
}

func TestStartDispatchSpan_IsChildOfCommand(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()
	ctx, parent := m.StartCommandSpan(context.Background(), "c", "taxi")
	_, child := m.StartDispatchSpan(ctx, "event.taxied")
	child.End()
	parent.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "statecraft.event.dispatch", spans[0].Name)
	assert.Equal(t, "event.taxied", spanAttr(spans[0], "event.type"))
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
}

func TestEndSpanWithError(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()
	m := NewSpanManager()

	t.Run("records error status", func(t *testing.T) {
		exporter.Reset()
		_, span := m.StartCommandSpan(context.Background(), "c", "fail")
		m.EndSpanWithError(span, errors.New("hook failed"))

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status.Code)
		assert.Equal(t, "hook failed", spans[0].Status.Description)
	})

	t.Run("records ok status", func(t *testing.T) {
		exporter.Reset()
		_, span := m.StartCommandSpan(context.Background(), "c", "ok")
		m.EndSpanWithError(span, nil)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Ok, spans[0].Status.Code)
	})

	t.Run("nil span does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() { m.EndSpanWithError(nil, nil) })
	})
}

func TestAddSpanEvent(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()
	ctx, span := m.StartCommandSpan(context.Background(), "c", "taxi")
	m.AddSpanEvent(ctx, "signature.matched", attribute.Int("arguments", 1))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "signature.matched", spans[0].Events[0].Name)

	assert.NotPanics(t, func() {
		m.AddSpanEvent(context.Background(), "no span")
	})
}

func TestNewSpanManager_WithTracerProvider(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	m := NewSpanManager(WithTracerProvider(tp))
	ctx, span := m.StartCommandSpan(context.Background(), "c", "land")
	m.AddSpanEvent(ctx, "hook.before")
	m.EndSpanWithError(span, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "statecraft.command.land", spans[0].Name)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "hook.before", spans[0].Events[0].Name)
}
