package statecraft

import (
	"slices"

	screrrors "github.com/randalmurphal/statecraft/pkg/statecraft/errors"
)

// Kind distinguishes player commands from internal actions. It selects the
// error kinds and metadata prefix a Controller reports.
type Kind int

const (
	// KindCommand units are invoked by a player.
	KindCommand Kind = iota
	// KindAction units are invoked by the application.
	KindAction
)

// String returns "command" or "action".
func (k Kind) String() string {
	if k == KindAction {
		return "action"
	}
	return "command"
}

// InvalidError is the error kind for an unknown unit name.
func (k Kind) InvalidError() string {
	if k == KindAction {
		return screrrors.KindInvalidAction
	}
	return screrrors.KindInvalidCommand
}

// UnavailableError is the error kind for a unit hidden by its predicate.
func (k Kind) UnavailableError() string {
	if k == KindAction {
		return screrrors.KindUnavailableAction
	}
	return screrrors.KindUnavailableCommand
}

// MetaKey returns the metadata key for suffix, e.g. "command_name".
func (k Kind) MetaKey(suffix string) string {
	return k.String() + "_" + suffix
}

// Processor is the core behavior of a unit. A processor may also implement
// PredicateMethods to serve Method predicates.
type Processor interface {
	Process(x *Execution) (any, error)
}

// ProcessFunc adapts a function to Processor. It is also the type of a
// chained processing step.
type ProcessFunc func(x *Execution) (any, error)

// Process calls f.
func (f ProcessFunc) Process(x *Execution) (any, error) {
	return f(x)
}

// Factory creates the Processor for one unit instance.
type Factory func() Processor

// Stateless returns a factory that shares p between all instances.
func Stateless(p Processor) Factory {
	return func() Processor { return p }
}

// ClassOption configures a Class.
type ClassOption func(*Class)

// AsAction marks the class as an action.
func AsAction() ClassOption {
	return func(c *Class) {
		c.kind = KindAction
	}
}

// Chain appends a processing step that runs after Process while the
// Result is still successful. Panics if step is nil.
func Chain(step ProcessFunc) ClassOption {
	if step == nil {
		panic("statecraft: chain step cannot be nil")
	}
	return func(c *Class) {
		c.chain = append(c.chain, step)
	}
}

// WithProcessor replaces the processor factory. It is mostly useful with
// Extend. Panics if factory is nil.
func WithProcessor(factory Factory) ClassOption {
	if factory == nil {
		panic("statecraft: processor factory cannot be nil")
	}
	return func(c *Class) {
		c.factory = factory
	}
}

// Class is the immutable definition of a command or action: its declared
// properties, the derived Signature, hooks and processing chain.
//
// Classes are built once with NewClass or Extend and are safe to share.
//
// Example:
//
//	taxi := statecraft.NewClassFunc("taxi", taxiProcess,
//	    statecraft.WithKeyword("to", statecraft.Required()),
//	    statecraft.WithDescription("Taxi to a destination"),
//	    statecraft.Before(checkFuel),
//	    statecraft.After(announce, statecraft.OnSuccess()),
//	)
type Class struct {
	name       string
	kind       Kind
	factory    Factory
	properties Properties
	signature  Signature
	before     []Hook
	after      []Hook
	chain      []ProcessFunc
	parent     *Class
}

// NewClass creates a class.
//
// Panics if:
//   - name is empty
//   - factory is nil
func NewClass(name string, factory Factory, opts ...ClassOption) *Class {
	if name == "" {
		panic("statecraft: class name cannot be empty")
	}
	if factory == nil {
		panic("statecraft: processor factory cannot be nil")
	}
	c := &Class{name: name, factory: factory}
	c.apply(opts)
	return c
}

// NewClassFunc creates a class whose processor is fn.
// Panics if fn is nil.
func NewClassFunc(name string, fn ProcessFunc, opts ...ClassOption) *Class {
	if fn == nil {
		panic("statecraft: process function cannot be nil")
	}
	return NewClass(name, Stateless(fn), opts...)
}

// Extend derives a subclass. It inherits the parent's kind, processor,
// properties, hooks and chain; hooks added by opts run after the parent's.
// Panics if name is empty.
func (c *Class) Extend(name string, opts ...ClassOption) *Class {
	if name == "" {
		panic("statecraft: class name cannot be empty")
	}
	sub := &Class{
		name:       name,
		kind:       c.kind,
		factory:    c.factory,
		properties: c.properties.Clone(),
		before:     slices.Clone(c.before),
		after:      slices.Clone(c.after),
		chain:      slices.Clone(c.chain),
		parent:     c,
	}
	sub.apply(opts)
	return sub
}

func (c *Class) apply(opts []ClassOption) {
	for _, opt := range opts {
		opt(c)
	}
	c.signature = NewSignature(c.properties)
}

// Name returns the class name.
func (c *Class) Name() string {
	return c.name
}

// Kind returns whether the class is a command or an action.
func (c *Class) Kind() Kind {
	return c.kind
}

// Parent returns the class this one extends, or nil.
func (c *Class) Parent() *Class {
	return c.parent
}

// Properties returns a copy of the declared properties.
func (c *Class) Properties() Properties {
	return c.properties.Clone()
}

// Signature returns the argument contract.
func (c *Class) Signature() Signature {
	return c.signature
}

// Hooks returns the hooks registered for stage, in run order.
func (c *Class) Hooks(stage Stage) []Hook {
	if stage == StageAfter {
		return slices.Clone(c.after)
	}
	return slices.Clone(c.before)
}
