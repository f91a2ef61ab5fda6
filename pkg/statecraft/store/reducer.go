package store

import (
	"github.com/randalmurphal/statecraft/pkg/statecraft/event"
)

// Handler computes the next snapshot for an event.
type Handler func(snap Snapshot, evt *event.Event) Snapshot

type binding struct {
	typeID  string
	handler Handler
}

// Builder accumulates (type, handler) pairs.
type Builder struct {
	bindings []binding
}

// NewReducer starts a reducer declaration.
func NewReducer() *Builder {
	return &Builder{}
}

// On registers h for typeID and all of its subtypes.
// Panics if h is nil.
func (b *Builder) On(typeID string, h Handler) *Builder {
	if h == nil {
		panic("statecraft: reducer handler cannot be nil")
	}
	if typeID == "" {
		typeID = event.Root
	}
	b.bindings = append(b.bindings, binding{typeID: typeID, handler: h})
	return b
}

// OnSchema registers h for the schema's type.
func (b *Builder) OnSchema(s *event.Schema, h Handler) *Builder {
	return b.On(s.TypeID(), h)
}

// Include appends every binding of r after the ones already declared.
func (b *Builder) Include(r *Reducer) *Builder {
	if r != nil {
		b.bindings = append(b.bindings, r.bindings...)
	}
	return b
}

// Build freezes the declared bindings into a Reducer.
func (b *Builder) Build() *Reducer {
	bindings := make([]binding, len(b.bindings))
	copy(bindings, b.bindings)
	return &Reducer{bindings: bindings}
}

// Reducer maps (snapshot, event) to the next snapshot.
type Reducer struct {
	bindings []binding
}

// Apply runs, in registration order, every handler whose type is in evt's
// chain. A nil reducer or event leaves snap unchanged.
func (r *Reducer) Apply(snap Snapshot, evt *event.Event) Snapshot {
	if r == nil || evt == nil {
		return snap
	}
	for _, b := range r.bindings {
		if evt.Is(b.typeID) {
			snap = b.handler(snap, evt)
		}
	}
	return snap
}

// Handles reports whether any handler matches evt.
func (r *Reducer) Handles(evt *event.Event) bool {
	if r == nil || evt == nil {
		return false
	}
	for _, b := range r.bindings {
		if evt.Is(b.typeID) {
			return true
		}
	}
	return false
}

// Types returns the bound types in registration order.
func (r *Reducer) Types() []string {
	types := make([]string, len(r.bindings))
	for i, b := range r.bindings {
		types[i] = b.typeID
	}
	return types
}
