package statecraft

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/statecraft/pkg/statecraft/event"
	"github.com/randalmurphal/statecraft/pkg/statecraft/expr"
	"github.com/randalmurphal/statecraft/pkg/statecraft/store"
)

// Flight events shared by the tests.
var (
	flightEvents = event.NewNamespace("flight")
	taxiEvent    = flightEvents.Define("taxi", "destination")
	takeOffEvent = flightEvents.Define("take_off")
)

// recorder is a Channel that keeps every dispatched event.
type recorder struct {
	mu     sync.Mutex
	events []*event.Event
}

func (r *recorder) Dispatch(_ context.Context, evt *event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *recorder) Events() []*event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*event.Event(nil), r.events...)
}

// flightStore returns a store for a landed aircraft at the gate.
func flightStore() *store.Store {
	reducer := store.NewReducer().
		OnSchema(taxiEvent, func(s store.Snapshot, evt *event.Event) store.Snapshot {
			return s.With("position", evt.Get("destination"))
		}).
		OnSchema(takeOffEvent, func(s store.Snapshot, _ *event.Event) store.Snapshot {
			return s.With("landed", false)
		}).
		Build()
	return store.New(store.NewSnapshot(map[string]any{
		"landed":   true,
		"position": "gate",
	}), reducer)
}

// taxiClass dispatches a taxi event to its "to" keyword.
func taxiClass(opts ...ClassOption) *Class {
	base := []ClassOption{
		WithKeyword("to", Required(), Describe("where to taxi")),
		WithDescription("Taxi to a destination"),
		WithExample("$COMMAND to=runway", Describe("line up"), Header("Ground")),
	}
	return NewClassFunc("taxi", func(x *Execution) (any, error) {
		to, _ := x.Keyword("to")
		evt, err := taxiEvent.New(map[string]any{"destination": to})
		if err != nil {
			return nil, err
		}
		return to, x.Dispatch(evt)
	}, append(base, opts...)...)
}

// takeOffClass dispatches take_off.
func takeOffClass() *Class {
	return NewClassFunc("take_off", func(x *Execution) (any, error) {
		return nil, x.Dispatch(takeOffEvent.MustNew(nil))
	}, WithExample("$COMMAND"))
}

// noop is a processor that does nothing.
func noop(*Execution) (any, error) {
	return nil, nil
}

// record appends name to *log when called.
func record(log *[]string, name string) HookFunc {
	return func(*Execution) error {
		*log = append(*log, name)
		return nil
	}
}

func mustCompile(t *testing.T, src string) *expr.Condition {
	t.Helper()
	cond, err := expr.Compile(src)
	require.NoError(t, err)
	return cond
}
