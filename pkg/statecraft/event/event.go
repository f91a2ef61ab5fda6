package event

import (
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	screrrors "github.com/randalmurphal/statecraft/pkg/statecraft/errors"
)

// Root is the universal root type present at the head of every chain.
const Root = "event"

// Map keys used by ToMap and FromMap.
const (
	keyTypes = "event_types"
	keyData  = "data"
)

// Typed is implemented by values that name an event type, such as *Schema.
type Typed interface {
	TypeID() string
}

// Event is an immutable value carrying a type chain and a data map.
// Construct events with New, Schema.New or FromMap; accessors return copies.
// Nested map[string]any, []any and []string values are copied too. Other
// reference values, such as pointers, are shared with the caller.
type Event struct {
	chain []string
	data  map[string]any
}

// New creates an event whose chain is Root followed by types, with duplicates
// removed keeping the first occurrence. Empty type names are ignored. The data
// map is deep copied.
func New(data map[string]any, types ...string) *Event {
	chain := make([]string, 0, len(types)+1)
	chain = append(chain, Root)
	for _, t := range types {
		if t == "" || slices.Contains(chain, t) {
			continue
		}
		chain = append(chain, t)
	}

	return &Event{chain: chain, data: cloneData(data, 0)}
}

// Type returns the primary (most specific) type.
func (e *Event) Type() string {
	if len(e.chain) == 0 {
		return Root
	}
	return e.chain[len(e.chain)-1]
}

// Chain returns a copy of the type chain, root first.
func (e *Event) Chain() []string {
	return slices.Clone(e.chain)
}

// Data returns a deep copy of the data map.
func (e *Event) Data() map[string]any {
	return cloneData(e.data, 0)
}

// Get returns a copy of the value stored under key, or nil when unset.
func (e *Event) Get(key string) any {
	return cloneValue(e.data[key])
}

// Value returns a copy of the value stored under key and whether it was set.
func (e *Event) Value(key string) (any, bool) {
	v, ok := e.data[key]
	return cloneValue(v), ok
}

// With returns a copy of the event with key set to a copy of value.
func (e *Event) With(key string, value any) *Event {
	d := cloneData(e.data, 1)
	d[key] = cloneValue(value)
	return &Event{chain: e.chain, data: d}
}

// cloneData deep copies data into a map with room for extra more keys.
func cloneData(data map[string]any, extra int) map[string]any {
	d := make(map[string]any, len(data)+extra)
	for k, v := range data {
		d[k] = cloneValue(v)
	}
	return d
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		if v == nil {
			return v
		}
		return cloneData(v, 0)
	case []any:
		if v == nil {
			return v
		}
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return slices.Clone(v)
	default:
		return v
	}
}

// Is reports whether t appears anywhere in the chain.
func (e *Event) Is(t string) bool {
	return slices.Contains(e.chain, t)
}

// HasStrictAncestor reports whether t appears in the chain before the
// primary type.
func (e *Event) HasStrictAncestor(t string) bool {
	if len(e.chain) == 0 {
		return false
	}
	return slices.Contains(e.chain[:len(e.chain)-1], t)
}

// Equal reports whether both events have the same chain and deeply equal data.
func (e *Event) Equal(other *Event) bool {
	if e == nil || other == nil {
		return e == other
	}
	return slices.Equal(e.chain, other.chain) && reflect.DeepEqual(e.data, other.data)
}

// Matches compares the event against a type name, a Typed value or another
// event. A type matches when it is in the chain; an event matches when it is
// Equal. Any other operand, nil included, fails with ErrInvalidArgument.
func (e *Event) Matches(operand any) (bool, error) {
	if other, ok := operand.(*Event); ok {
		if other == nil {
			return false, screrrors.InvalidArgument("event.Matches", operand, "nil event")
		}
		return e.Equal(other), nil
	}
	t, err := operandType("event.Matches", operand)
	if err != nil {
		return false, err
	}
	return e.Is(t), nil
}

// DescendsFrom reports whether the operand's type is in the chain ("≤").
// For an *Event operand its primary type is used.
func (e *Event) DescendsFrom(operand any) (bool, error) {
	t, err := operandType("event.DescendsFrom", operand)
	if err != nil {
		return false, err
	}
	return e.Is(t), nil
}

// StrictlyDescendsFrom reports whether the operand's type is a strict
// ancestor of the event's primary type ("<").
func (e *Event) StrictlyDescendsFrom(operand any) (bool, error) {
	t, err := operandType("event.StrictlyDescendsFrom", operand)
	if err != nil {
		return false, err
	}
	return e.HasStrictAncestor(t), nil
}

func operandType(op string, operand any) (string, error) {
	switch v := operand.(type) {
	case string:
		return v, nil
	case *Event:
		if v == nil {
			return "", screrrors.InvalidArgument(op, operand, "nil event")
		}
		return v.Type(), nil
	case Typed:
		t := v.TypeID()
		if t == "" {
			return "", screrrors.InvalidArgument(op, operand, "empty type")
		}
		return t, nil
	case nil:
		return "", screrrors.InvalidArgument(op, operand, "nil operand")
	default:
		return "", screrrors.InvalidArgument(op, operand, "expected type name, schema or event")
	}
}

// String returns a compact representation for logs.
func (e *Event) String() string {
	keys := slices.Sorted(maps.Keys(e.data))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, e.data[k])
	}
	return fmt.Sprintf("%s{%s}", e.Type(), strings.Join(parts, " "))
}

// ToMap returns the event as {"event_types": [...], "data": {...}}.
func (e *Event) ToMap() map[string]any {
	return map[string]any{
		keyTypes: e.Chain(),
		keyData:  e.Data(),
	}
}

// FromMap reconstructs an event produced by ToMap. A missing event_types key
// yields a Root event; an event_types value that is not a sequence of
// strings fails with ErrInvalidArgument, as does a data value that is not a map.
func FromMap(m map[string]any) (*Event, error) {
	var types []string
	if raw, ok := m[keyTypes]; ok {
		switch v := raw.(type) {
		case []string:
			types = v
		case []any:
			types = make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, screrrors.InvalidArgument("event.FromMap", item, "event type must be a string")
				}
				types = append(types, s)
			}
		default:
			return nil, screrrors.InvalidArgument("event.FromMap", raw, "event_types must be a sequence")
		}
	}

	var data map[string]any
	if raw, ok := m[keyData]; ok && raw != nil {
		d, ok := raw.(map[string]any)
		if !ok {
			return nil, screrrors.InvalidArgument("event.FromMap", raw, "data must be a map")
		}
		data = d
	}

	return New(data, types...), nil
}

// MarshalJSON encodes the event in the ToMap shape.
func (e *Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.ToMap())
}

// UnmarshalJSON decodes the ToMap shape.
func (e *Event) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	decoded, err := FromMap(m)
	if err != nil {
		return err
	}
	*e = *decoded
	return nil
}
