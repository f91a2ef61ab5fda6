// Package event provides the hierarchical event model used by statecraft.
//
// # Overview
//
// An Event carries an ordered type chain and a data map. The chain always
// starts with Root and ends with the event's primary type; every type in
// between is an ancestor. Matching is chain membership:
//
//	evt := event.New(map[string]any{"destination": "runway"}, "aircraft", "aircraft.taxied")
//	evt.Is("aircraft")                // true
//	evt.HasStrictAncestor("aircraft") // true
//	evt.HasStrictAncestor(evt.Type()) // false
//
// # Schemas
//
// A Namespace declares named event types once at program initialization.
// Each Schema knows its parent, its full chain and the sorted union of its
// own and inherited fields:
//
//	var (
//	    flight  = event.NewNamespace("flight")
//	    Moved   = flight.Define("Moved", "destination")
//	    Taxied  = flight.Extend(Moved, "Taxied", "runway")
//	    Runway  = event.NewField[string]("runway")
//	)
//
//	evt, err := Taxied.New(map[string]any{"runway": "27L"})
//	Runway.Get(evt) // "27L"
//
// Data keys a schema does not declare are rejected with ErrUnknownField.
//
// # Dispatcher
//
// Dispatcher is a synchronous publish/subscribe broker. Listeners register
// for a type and receive, in registration order, every event whose chain
// contains that type. The first listener error stops delivery and is
// returned to the caller wrapped in a *ListenerError.
//
//	d := event.NewDispatcher(event.WithLogger(logger))
//	l := d.AddListener(Moved.TypeID(), func(ctx context.Context, evt *event.Event) error {
//	    return nil
//	})
//	defer d.RemoveListener(l)
//
//	err := d.Dispatch(ctx, evt)
package event
