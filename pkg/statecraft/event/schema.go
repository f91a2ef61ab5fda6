package event

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	screrrors "github.com/randalmurphal/statecraft/pkg/statecraft/errors"
	"github.com/randalmurphal/statecraft/pkg/statecraft/registry"
)

// Schema is a declared event type: its id, parent and field set.
// Schemas are created through a Namespace and are read-only afterwards.
type Schema struct {
	typeID string
	name   string
	parent *Schema
	chain  []string
	fields []string
}

// TypeID returns the fully qualified type id, or "" for a nil schema.
func (s *Schema) TypeID() string {
	if s == nil {
		return ""
	}
	return s.typeID
}

// Name returns the name the schema was declared with.
func (s *Schema) Name() string {
	return s.name
}

// Parent returns the schema this one extends, or nil.
func (s *Schema) Parent() *Schema {
	return s.parent
}

// Chain returns a copy of the schema's type chain, root first.
func (s *Schema) Chain() []string {
	return slices.Clone(s.chain)
}

// Fields returns the sorted union of inherited and own field names.
func (s *Schema) Fields() []string {
	return slices.Clone(s.fields)
}

// HasField reports whether name is a declared field.
func (s *Schema) HasField(name string) bool {
	_, found := slices.BinarySearch(s.fields, name)
	return found
}

// New creates an event of this schema. Keys not declared as fields fail with
// ErrUnknownField; declared fields left out read as nil.
func (s *Schema) New(data map[string]any) (*Event, error) {
	for k := range data {
		if !s.HasField(k) {
			return nil, &screrrors.UnknownFieldError{TypeID: s.typeID, Field: k}
		}
	}
	return New(data, s.chain...), nil
}

// MustNew is like New but panics on unknown fields.
func (s *Schema) MustNew(data map[string]any) *Event {
	evt, err := s.New(data)
	if err != nil {
		panic(err)
	}
	return evt
}

// Is reports whether evt is of this schema's type or one of its subtypes.
func (s *Schema) Is(evt *Event) bool {
	return evt != nil && evt.Is(s.typeID)
}

// Namespace declares schemas under a dotted path prefix.
type Namespace struct {
	prefix  string
	schemas *registry.Registry[string, *Schema]
}

// NewNamespace creates a namespace. Path segments are underscored and joined
// with "." to prefix every type id declared in it.
func NewNamespace(path ...string) *Namespace {
	segments := make([]string, 0, len(path))
	for _, p := range path {
		if p == "" {
			continue
		}
		segments = append(segments, Underscore(p))
	}
	return &Namespace{
		prefix:  strings.Join(segments, "."),
		schemas: registry.New[string, *Schema](),
	}
}

// Path returns the namespace prefix.
func (n *Namespace) Path() string {
	return n.prefix
}

// Define declares a schema directly under Root.
// Panics if name is empty or the type id is already declared.
func (n *Namespace) Define(name string, fields ...string) *Schema {
	return n.declare(nil, name, fields)
}

// Extend declares a schema whose chain and fields extend parent.
// Panics if parent is nil, name is empty or the type id is already declared.
func (n *Namespace) Extend(parent *Schema, name string, fields ...string) *Schema {
	if parent == nil {
		panic("statecraft: parent schema cannot be nil")
	}
	return n.declare(parent, name, fields)
}

func (n *Namespace) declare(parent *Schema, name string, fields []string) *Schema {
	if name == "" {
		panic("statecraft: event name cannot be empty")
	}

	id := Underscore(name)
	if n.prefix != "" {
		id = n.prefix + "." + id
	}
	if n.schemas.Has(id) {
		panic(fmt.Sprintf("statecraft: event type %q already defined", id))
	}

	chain := []string{Root}
	var all []string
	if parent != nil {
		chain = slices.Clone(parent.chain)
		all = slices.Clone(parent.fields)
	}
	chain = append(chain, id)
	for _, f := range fields {
		if f != "" {
			all = append(all, f)
		}
	}
	slices.Sort(all)
	all = slices.Compact(all)

	s := &Schema{
		typeID: id,
		name:   name,
		parent: parent,
		chain:  chain,
		fields: all,
	}
	n.schemas.Register(id, s)
	return s
}

// Get returns the schema declared under the given type id.
func (n *Namespace) Get(typeID string) (*Schema, bool) {
	return n.schemas.Get(typeID)
}

// MustGet returns the schema declared under typeID or panics.
func (n *Namespace) MustGet(typeID string) *Schema {
	s, ok := n.schemas.Get(typeID)
	if !ok {
		panic(fmt.Sprintf("statecraft: event type %q not defined", typeID))
	}
	return s
}

// Schemas returns the declared schemas in definition order.
func (n *Namespace) Schemas() []*Schema {
	return n.schemas.Values()
}

// Underscore converts a CamelCase or spaced name to snake_case.
//
//	Underscore("TakeOff")    // "take_off"
//	Underscore("HTTPServer") // "http_server"
//	Underscore("take off")   // "take_off"
func Underscore(name string) string {
	runes := []rune(strings.TrimSpace(name))
	var b strings.Builder
	for i, r := range runes {
		switch {
		case r == ' ' || r == '-':
			b.WriteByte('_')
		case unicode.IsUpper(r):
			if i > 0 && needsBreak(runes, i) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// needsBreak reports whether an upper-case rune at i starts a new word.
func needsBreak(runes []rune, i int) bool {
	prev := runes[i-1]
	if prev == '_' || prev == ' ' || prev == '-' {
		return false
	}
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
