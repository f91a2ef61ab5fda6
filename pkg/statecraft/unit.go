package statecraft

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/randalmurphal/statecraft/pkg/statecraft/config"
	screrrors "github.com/randalmurphal/statecraft/pkg/statecraft/errors"
	"github.com/randalmurphal/statecraft/pkg/statecraft/event"
	"github.com/randalmurphal/statecraft/pkg/statecraft/observability"
	"github.com/randalmurphal/statecraft/pkg/statecraft/store"
	"go.opentelemetry.io/otel/attribute"
)

// Unit is one instance of a Class bound to a state source, an outbound
// channel and caller-supplied options.
type Unit struct {
	class     *Class
	processor Processor
	state     StateSource
	channel   Channel
	options   config.Values
	logger    *slog.Logger
	spans     observability.SpanManager
}

// New instantiates the class. state and channel may be nil; a unit without
// a channel fails Dispatch with ErrNoChannel.
func (c *Class) New(state StateSource, channel Channel, options map[string]any) *Unit {
	return &Unit{
		class:     c,
		processor: c.factory(),
		state:     state,
		channel:   channel,
		options:   config.NewValues(options),
		logger:    slog.Default(),
		spans:     observability.NoopSpanManager{},
	}
}

// WithLogger sets the logger hooks and processors see. A nil logger is
// ignored.
func (u *Unit) WithLogger(logger *slog.Logger) *Unit {
	if logger != nil {
		u.logger = logger
	}
	return u
}

// WithTracing records a span event for every hook that fires on the span
// carried by the Call context. A nil manager is ignored.
func (u *Unit) WithTracing(spans observability.SpanManager) *Unit {
	if spans != nil {
		u.spans = spans
	}
	return u
}

// Class returns the unit's class.
func (u *Unit) Class() *Class {
	return u.class
}

// Call runs the hook pipeline around the processing chain:
//
//  1. before hooks, in order
//  2. Process, then each chained step while the Result is successful
//  3. after hooks, in order
//
// Hooks fire only when their status filter and guards allow it. A hook
// error stops the pipeline and is returned as *errors.HookError alongside
// the in-flight Result. A panic is returned as *errors.PanicError.
//
// Errors returned by processing steps are recorded on the Result as
// process_error and do not stop after hooks.
func (u *Unit) Call(ctx context.Context, args []any, kwargs map[string]any) (result *Result, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	x := &Execution{
		Args:   args,
		Kwargs: kwargs,
		Result: NewResult(),
		ctx:    ctx,
		unit:   u,
	}

	defer func() {
		if r := recover(); r != nil {
			x.release()
			result = x.Result
			err = &screrrors.PanicError{
				Unit:  u.class.name,
				Value: r,
				Stack: string(debug.Stack()),
			}
		}
	}()

	if err := u.runHooks(x, StageBefore, u.class.before); err != nil {
		return x.Result, err
	}

	u.runStep(x, u.processor.Process)
	for _, step := range u.class.chain {
		if x.Result.Failure() {
			break
		}
		u.runStep(x, step)
	}

	if err := u.runHooks(x, StageAfter, u.class.after); err != nil {
		return x.Result, err
	}
	return x.Result, nil
}

func (u *Unit) runStep(x *Execution, step ProcessFunc) {
	x.hold()
	value, err := step(x)
	x.release()
	if err != nil {
		x.Result.AddError(screrrors.KindProcessError, map[string]any{"message": err.Error()})
		return
	}
	switch v := value.(type) {
	case nil:
	case *Result:
		if v != nil {
			x.Result = v
		}
	default:
		x.Result.Value = v
	}
}

func (u *Unit) runHooks(x *Execution, stage Stage, hooks []Hook) error {
	for i, h := range hooks {
		fire, err := h.fires(x)
		if err == nil && fire {
			u.spans.AddSpanEvent(x.ctx, "statecraft.hook",
				attribute.String("unit", u.class.name),
				attribute.String("stage", stage.String()),
				attribute.Int("index", i),
			)
			x.hold()
			err = h.Body(x)
			x.release()
		}
		if err != nil {
			observability.LogHookError(u.logger, u.class.name, stage.String(), err)
			return &screrrors.HookError{
				Unit:  u.class.name,
				Stage: stage.String(),
				Index: i,
				Err:   err,
			}
		}
	}
	return nil
}

// Execution is the context hooks and processing steps receive for one Call.
// Result is the in-flight Result; steps may record errors on it or replace
// it by returning a *Result. Setting Result to nil is undone once the
// hook or step returns.
type Execution struct {
	Args   []any
	Kwargs map[string]any
	Result *Result

	ctx  context.Context
	unit *Unit
	held *Result
}

func (x *Execution) hold() {
	x.held = x.Result
}

func (x *Execution) release() {
	if x.Result == nil {
		x.Result = x.held
	}
	if x.Result == nil {
		x.Result = NewResult()
	}
}

// Context returns the call's context.
func (x *Execution) Context() context.Context {
	return x.ctx
}

// State returns the current state. It is read anew on every call so hooks
// observe changes dispatched earlier in the pipeline.
func (x *Execution) State() store.Snapshot {
	if x.unit.state == nil {
		return store.Snapshot{}
	}
	return x.unit.state.State()
}

// Dispatch sends evt through the unit's channel.
func (x *Execution) Dispatch(evt *event.Event) error {
	if x.unit.channel == nil {
		return fmt.Errorf("%s: %w", x.unit.class.name, ErrNoChannel)
	}
	return x.unit.channel.Dispatch(x.ctx, evt)
}

// Options returns the options the unit was instantiated with.
func (x *Execution) Options() config.Values {
	return x.unit.options
}

// Logger returns the unit's logger.
func (x *Execution) Logger() *slog.Logger {
	return x.unit.logger
}

// Processor returns the unit's processor instance.
func (x *Execution) Processor() Processor {
	return x.unit.processor
}

// Class returns the executing class.
func (x *Execution) Class() *Class {
	return x.unit.class
}

// Arg returns the i-th positional argument, or nil.
func (x *Execution) Arg(i int) any {
	if i < 0 || i >= len(x.Args) {
		return nil
	}
	return x.Args[i]
}

// Keyword returns a keyword argument.
func (x *Execution) Keyword(name string) (any, bool) {
	v, ok := x.Kwargs[name]
	return v, ok
}

// Fail records an error on the in-flight Result.
func (x *Execution) Fail(kind string, params map[string]any) {
	x.Result.AddError(kind, params)
}

func (x *Execution) scope() Scope {
	s := Scope{
		State:  x.State(),
		Result: x.Result,
		Owner:  x.unit.class.name,
	}
	if m, ok := x.unit.processor.(PredicateMethods); ok {
		s.Methods = m
	}
	return s
}
