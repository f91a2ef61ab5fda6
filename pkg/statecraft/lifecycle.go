package statecraft

import (
	"context"

	"github.com/randalmurphal/statecraft/pkg/statecraft/event"
)

// Lifecycle holds the events controllers publish through WithEvents.
var Lifecycle = event.NewNamespace("statecraft", "controller")

// Lifecycle event schemas. CommandExecuted follows every call that reached
// a unit; CommandRejected follows every resolution or signature failure.
var (
	CommandLifecycle = Lifecycle.Define("command_lifecycle", "controller", "command", "errors")
	CommandExecuted  = Lifecycle.Extend(CommandLifecycle, "command_executed", "class", "success", "result_id")
	CommandRejected  = Lifecycle.Extend(CommandLifecycle, "command_rejected", "reason")
)

// Typed accessors for lifecycle event data.
var (
	FieldController = event.NewField[string]("controller")
	FieldCommand    = event.NewField[string]("command")
	FieldClass      = event.NewField[string]("class")
	FieldSuccess    = event.NewField[bool]("success")
	FieldErrors     = event.NewField[[]string]("errors")
	FieldResultID   = event.NewField[string]("result_id")
	FieldReason     = event.NewField[string]("reason")
)

func (c *Controller) publishExecuted(ctx context.Context, d *Definition, res *Result) error {
	if c.events == nil {
		return nil
	}
	evt := CommandExecuted.MustNew(map[string]any{
		"controller": c.typ.name,
		"command":    d.Name,
		"class":      d.Class.Name(),
		"success":    res.Success(),
		"errors":     res.Errors.Kinds(),
		"result_id":  res.ID.String(),
	})
	return c.events.Dispatch(ctx, evt)
}

func (c *Controller) publishRejected(ctx context.Context, name, reason string, res *Result) error {
	if c.events == nil {
		return nil
	}
	evt := CommandRejected.MustNew(map[string]any{
		"controller": c.typ.name,
		"command":    name,
		"reason":     reason,
		"errors":     res.Errors.Kinds(),
	})
	return c.events.Dispatch(ctx, evt)
}
