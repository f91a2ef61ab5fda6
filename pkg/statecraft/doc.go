/*
Package statecraft is an in-process framework for turn-based, state-driven
programs such as text adventures. Players issue commands; commands are
validated against a declared signature, run through a before/after hook
pipeline against an immutable state, and report their outcome as a Result.
State changes are requested by dispatching events.

# Basic Usage

Declare a class, register it on a controller type, and execute it:

	taxi := statecraft.NewClassFunc("taxi",
	    func(x *statecraft.Execution) (any, error) {
	        to, _ := x.Keyword("to")
	        return nil, x.Dispatch(Taxi.MustNew(map[string]any{"destination": to}))
	    },
	    statecraft.WithKeyword("to", statecraft.Required()),
	    statecraft.WithExample("$COMMAND to=runway"),
	)

	flight := statecraft.NewControllerType("FlightController").
	    Command("taxi", taxi, statecraft.If(statecraft.OnState(onGround)))

	st := store.New(initial, reducer)
	ctrl := flight.New(st, st)

	result, err := ctrl.Execute(ctx, "taxi", nil, map[string]any{"to": "runway"})

# Results

Resolution failures (invalid_command, unavailable_command), signature
violations (not_enough_arguments, too_many_arguments, invalid_keywords,
missing_keywords, invalid_arguments) and domain failures are recorded in
Result.Errors, never returned as Go errors. Execute returns an error only
when a predicate cannot be evaluated, a hook fails, a unit panics, or a
lifecycle listener fails.

# Hooks

Before hooks run in registration order, then the unit's Processor and any
Chain steps, then after hooks. Hooks filter on the Result's status with
OnSuccess and OnFailure and on guards built with If and Unless. A subclass
created with Class.Extend runs its parent's hooks first.

# Predicates

Predicates guard hooks and command definitions:
  - Func: a plain func() bool
  - ResultFunc: a function of the in-flight Result
  - OnState: a function of the state snapshot
  - Method: a name resolved through PredicateMethods when evaluated
  - Expr: a compiled expr.Condition over the state's keys

# Lifecycle Events

A controller created with WithEvents publishes CommandExecuted or
CommandRejected after every Execute. Both extend CommandLifecycle, so one
listener on CommandLifecycle sees every outcome.

# Thread Safety

Classes and ControllerTypes are immutable once built and safe to share.
Controllers and Units run synchronously on the caller's goroutine; serialize
Execute calls that share a store.
*/
package statecraft
