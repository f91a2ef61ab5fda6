// Package store is the reference state store for statecraft controllers.
//
// State is an immutable Snapshot. Commands never change it directly; they
// dispatch events to a Store, whose Reducer computes the next Snapshot:
//
//	reducer := store.NewReducer().
//	    On("flight.taxied", func(s store.Snapshot, evt *event.Event) store.Snapshot {
//	        return s.With("position", evt.Get("destination"))
//	    }).
//	    On("flight.took_off", func(s store.Snapshot, _ *event.Event) store.Snapshot {
//	        return s.With("landed", false)
//	    }).
//	    Build()
//
//	s := store.New(store.NewSnapshot(map[string]any{"landed": true}), reducer)
//	err := s.Dispatch(ctx, evt)
//	s.State().Bool("landed")
//
// Handlers fire for every type in the event's chain, in registration order,
// so a handler registered for a parent type sees all of its subtypes.
//
// The store keeps an in-memory history of applied events. Nothing is
// persisted.
package store
