package statecraft

import (
	screrrors "github.com/randalmurphal/statecraft/pkg/statecraft/errors"
	"github.com/randalmurphal/statecraft/pkg/statecraft/expr"
	"github.com/randalmurphal/statecraft/pkg/statecraft/store"
)

// Scope is what a Predicate is evaluated against. Result is nil when a
// controller checks command visibility.
type Scope struct {
	State   store.Snapshot
	Result  *Result
	Methods PredicateMethods
	Owner   string // Name reported when a method is missing
}

// PredicateMethods resolves named predicates. Processors implement it to
// serve Method predicates on their hooks; controllers take one through
// WithPredicateMethods.
type PredicateMethods interface {
	PredicateMethod(name string) (func(Scope) bool, bool)
}

// Methods is a map-backed PredicateMethods.
type Methods map[string]func(Scope) bool

// PredicateMethod returns the named method.
func (m Methods) PredicateMethod(name string) (func(Scope) bool, bool) {
	fn, ok := m[name]
	return fn, ok
}

// Predicate is a condition evaluated at call time. The zero Predicate is
// unset and never consulted.
type Predicate struct {
	desc string
	eval func(Scope) (bool, error)
}

// IsSet reports whether p holds a condition.
func (p Predicate) IsSet() bool {
	return p.eval != nil
}

// Eval evaluates p against s.
func (p Predicate) Eval(s Scope) (bool, error) {
	if p.eval == nil {
		return true, nil
	}
	return p.eval(s)
}

// String describes the predicate.
func (p Predicate) String() string {
	return p.desc
}

// Func is a predicate taking no arguments.
func Func(fn func() bool) Predicate {
	return Predicate{desc: "func", eval: func(Scope) (bool, error) {
		return fn(), nil
	}}
}

// ResultFunc is a predicate over the in-flight Result. It is false when
// there is no Result.
func ResultFunc(fn func(*Result) bool) Predicate {
	return Predicate{desc: "result func", eval: func(s Scope) (bool, error) {
		if s.Result == nil {
			return false, nil
		}
		return fn(s.Result), nil
	}}
}

// OnState is a predicate over the current state.
func OnState(fn func(store.Snapshot) bool) Predicate {
	return Predicate{desc: "state func", eval: func(s Scope) (bool, error) {
		return fn(s.State), nil
	}}
}

// Method is a predicate resolved by name when evaluated. An unknown name
// fails with *errors.MissingMethodError.
func Method(name string) Predicate {
	return Predicate{desc: "method " + name, eval: func(s Scope) (bool, error) {
		if s.Methods != nil {
			if fn, ok := s.Methods.PredicateMethod(name); ok {
				return fn(s), nil
			}
		}
		return false, &screrrors.MissingMethodError{Unit: s.Owner, Method: name}
	}}
}

// Expr is a predicate over a compiled condition. The condition sees the
// state's keys, plus "result" when a Result is in flight.
func Expr(cond *expr.Condition) Predicate {
	return Predicate{desc: cond.Source(), eval: func(s Scope) (bool, error) {
		vars := s.State.Map()
		if s.Result != nil {
			vars["result"] = map[string]any{
				"success": s.Result.Success(),
				"value":   s.Result.Value,
				"errors":  s.Result.Errors.Kinds(),
			}
		}
		return cond.Eval(vars), nil
	}}
}

// Guard is an If or Unless condition. It applies to hooks and to command
// definitions. Several guards on one hook or definition must all allow it.
type Guard struct {
	negate bool
	p      Predicate
}

// If fires a hook, or shows a command, only when p holds.
func If(p Predicate) Guard {
	return Guard{p: p}
}

// Unless fires a hook, or shows a command, only when p does not hold.
func Unless(p Predicate) Guard {
	return Guard{negate: true, p: p}
}

// guards holds every If and Unless given to one hook or definition. All of
// them must allow it.
type guards []Guard

func (g *guards) add(guard Guard) {
	if guard.p.IsSet() {
		*g = append(*g, guard)
	}
}

// allow evaluates the guards in the order they were given and stops at the
// first that blocks or fails.
func (g guards) allow(s Scope) (bool, error) {
	for _, guard := range g {
		ok, err := guard.p.Eval(s)
		if err != nil {
			return false, err
		}
		if ok == guard.negate {
			return false, nil
		}
	}
	return true, nil
}
