package statecraft

import (
	"context"

	"github.com/randalmurphal/statecraft/pkg/statecraft/event"
	"github.com/randalmurphal/statecraft/pkg/statecraft/store"
)

// Channel receives the events a unit dispatches. *store.Store and
// *event.Dispatcher both implement it.
type Channel interface {
	Dispatch(ctx context.Context, evt *event.Event) error
}

// ChannelFunc adapts a function to Channel.
type ChannelFunc func(ctx context.Context, evt *event.Event) error

// Dispatch calls f.
func (f ChannelFunc) Dispatch(ctx context.Context, evt *event.Event) error {
	return f(ctx, evt)
}

// StateSource provides the current state. *store.Store and *store.Static
// both implement it.
type StateSource interface {
	State() store.Snapshot
}

// StateFunc adapts a function to StateSource.
type StateFunc func() store.Snapshot

// State calls f.
func (f StateFunc) State() store.Snapshot {
	return f()
}

var (
	_ Channel     = (*store.Store)(nil)
	_ Channel     = (*event.Dispatcher)(nil)
	_ StateSource = (*store.Store)(nil)
	_ StateSource = (*store.Static)(nil)
)
