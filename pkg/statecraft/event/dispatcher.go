package event

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	screrrors "github.com/randalmurphal/statecraft/pkg/statecraft/errors"
	"github.com/randalmurphal/statecraft/pkg/statecraft/observability"
)

// ListenerFunc receives dispatched events.
type ListenerFunc func(ctx context.Context, evt *Event) error

// Listener is a type-filtered subscription returned by AddListener.
type Listener struct {
	id     string
	typeID string
	fn     ListenerFunc
}

// ID returns the listener's unique id.
func (l *Listener) ID() string {
	return l.id
}

// Type returns the type the listener subscribed to.
func (l *Listener) Type() string {
	return l.typeID
}

// Accepts reports whether the listener receives evt.
func (l *Listener) Accepts(evt *Event) bool {
	return evt.Is(l.typeID)
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the logger used for delivery and failure logs.
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithMetrics sets the metrics recorder. Defaults to observability.NoopMetrics.
func WithMetrics(m observability.MetricsRecorder) DispatcherOption {
	return func(d *Dispatcher) {
		if m != nil {
			d.metrics = m
		}
	}
}

// WithTracing sets the span manager. Defaults to observability.NoopSpanManager.
func WithTracing(s observability.SpanManager) DispatcherOption {
	return func(d *Dispatcher) {
		if s != nil {
			d.spans = s
		}
	}
}

// Dispatcher delivers events synchronously to listeners in registration order.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners []*Listener

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// NewDispatcher creates a dispatcher with no listeners.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AddListener subscribes fn to typeID and every subtype of it.
// An empty typeID subscribes to Root. Panics if fn is nil.
func (d *Dispatcher) AddListener(typeID string, fn ListenerFunc) *Listener {
	if fn == nil {
		panic("statecraft: listener func cannot be nil")
	}
	if typeID == "" {
		typeID = Root
	}

	l := &Listener{
		id:     uuid.New().String(),
		typeID: typeID,
		fn:     fn,
	}

	d.mu.Lock()
	d.listeners = append(d.listeners, l)
	d.mu.Unlock()
	return l
}

// RemoveListener detaches l. Returns false if l was not registered.
func (d *Dispatcher) RemoveListener(l *Listener) bool {
	if l == nil {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	i := slices.Index(d.listeners, l)
	if i < 0 {
		return false
	}
	d.listeners = slices.Delete(d.listeners, i, i+1)
	return true
}

// RemoveAllListeners detaches every listener.
func (d *Dispatcher) RemoveAllListeners() {
	d.mu.Lock()
	d.listeners = nil
	d.mu.Unlock()
}

// Listeners returns the registered listeners in registration order.
func (d *Dispatcher) Listeners() []*Listener {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.listeners)
}

// Dispatch delivers evt to every listener whose type is in evt's chain.
// Listeners added or removed while a dispatch runs take effect on the next
// dispatch. A nil event fails with ErrInvalidArgument.
func (d *Dispatcher) Dispatch(ctx context.Context, evt *Event) error {
	if evt == nil {
		return screrrors.InvalidArgument("event.Dispatch", evt, "nil event")
	}

	ctx, span := d.spans.StartDispatchSpan(ctx, evt.Type())

	delivered := 0
	var err error
	for _, l := range d.Listeners() {
		if !l.Accepts(evt) {
			continue
		}
		if lerr := l.fn(ctx, evt); lerr != nil {
			err = &ListenerError{
				ListenerID:   l.id,
				ListenerType: l.typeID,
				EventType:    evt.Type(),
				Err:          lerr,
			}
			observability.LogListenerError(d.logger, evt.Type(), l.id, lerr)
			break
		}
		delivered++
	}

	observability.LogEventDispatch(d.logger, evt.Type(), delivered)
	d.metrics.RecordEventDispatch(ctx, evt.Type(), delivered, err)
	d.spans.EndSpanWithError(span, err)
	return err
}
