package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for misuse of the framework API surface.
var (
	// ErrInvalidArgument indicates a framework call received an operand it
	// cannot work with (a nil event, a comparison against nil, ...).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownField indicates event data named a field its schema does not declare.
	ErrUnknownField = errors.New("unknown event field")

	// ErrMissingMethod indicates a named predicate could not be resolved.
	ErrMissingMethod = errors.New("missing method")
)

// InvalidArgumentError describes which operation rejected which operand.
type InvalidArgumentError struct {
	// Op is the operation that was called (e.g., "dispatch", "compare").
	Op string
	// Got is the rejected operand.
	Got any
	// Reason is an optional explanation.
	Reason string
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: invalid argument %T: %s", e.Op, e.Got, e.Reason)
	}
	return fmt.Sprintf("%s: invalid argument %T", e.Op, e.Got)
}

// Unwrap returns ErrInvalidArgument for errors.Is support.
func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// InvalidArgument creates an InvalidArgumentError.
func InvalidArgument(op string, got any, reason string) *InvalidArgumentError {
	return &InvalidArgumentError{Op: op, Got: got, Reason: reason}
}

// UnknownFieldError names the undeclared field and the schema that rejected it.
type UnknownFieldError struct {
	TypeID string
	Field  string
}

// Error implements the error interface.
func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("event %s: unknown field %q", e.TypeID, e.Field)
}

// Unwrap returns ErrUnknownField for errors.Is support.
func (e *UnknownFieldError) Unwrap() error {
	return ErrUnknownField
}

// MissingMethodError is returned when a hook predicate names a method the
// executing unit does not provide.
type MissingMethodError struct {
	// Unit is the class name of the executing unit.
	Unit string
	// Method is the predicate name that could not be resolved.
	Method string
}

// Error implements the error interface.
func (e *MissingMethodError) Error() string {
	return fmt.Sprintf("undefined method %q for %s", e.Method, e.Unit)
}

// Unwrap returns ErrMissingMethod for errors.Is support.
func (e *MissingMethodError) Unwrap() error {
	return ErrMissingMethod
}

// HookError wraps an error raised by a before or after hook.
type HookError struct {
	// Unit is the class name of the executing unit.
	Unit string
	// Stage is "before" or "after".
	Stage string
	// Index is the hook's position within its stage.
	Index int
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *HookError) Error() string {
	return fmt.Sprintf("%s: %s hook %d: %v", e.Unit, e.Stage, e.Index, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *HookError) Unwrap() error {
	return e.Err
}

// PanicError captures a panic raised by a unit's hooks or processing chain.
type PanicError struct {
	// Unit is the class name of the executing unit.
	Unit string
	// Value is the value passed to panic().
	Value any
	// Stack is the stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("%s panicked: %v", e.Unit, e.Value)
}
