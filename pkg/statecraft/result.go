package statecraft

import (
	"fmt"
	"maps"
	"strings"

	"github.com/google/uuid"

	screrrors "github.com/randalmurphal/statecraft/pkg/statecraft/errors"
)

// Metadata keys set on Results returned by a Controller. Action controllers
// use the action_ prefix instead of command_.
const (
	MetaController = "controller"
	MetaArguments  = "arguments"
	MetaKeywords   = "keywords"
)

// Result is the outcome of one invocation: a value, the errors recorded
// while producing it and free-form metadata.
//
// A Result is built once per invocation. Hooks and processors may record
// errors on the in-flight Result; it is not modified after being returned.
type Result struct {
	ID       uuid.UUID
	Value    any
	Errors   *screrrors.Collection
	Metadata map[string]any
}

// NewResult creates an empty, successful Result.
func NewResult() *Result {
	return &Result{
		ID:       uuid.New(),
		Errors:   screrrors.NewCollection(),
		Metadata: make(map[string]any),
	}
}

// Succeed creates a successful Result holding value.
func Succeed(value any) *Result {
	r := NewResult()
	r.Value = value
	return r
}

// Fail creates a Result with a single error of the given kind.
func Fail(kind string, params map[string]any) *Result {
	return NewResult().AddError(kind, params)
}

// Success reports whether no errors were recorded.
func (r *Result) Success() bool {
	return r.Errors.Empty()
}

// Failure reports whether any error was recorded.
func (r *Result) Failure() bool {
	return !r.Success()
}

// AddError records an error and returns r.
func (r *Result) AddError(kind string, params map[string]any) *Result {
	if r.Errors == nil {
		r.Errors = screrrors.NewCollection()
	}
	r.Errors.Add(kind, params)
	return r
}

// HasError reports whether an error of kind was recorded.
func (r *Result) HasError(kind string) bool {
	return r.Errors.Has(kind)
}

// Tag sets a metadata value and returns r.
func (r *Result) Tag(key string, value any) *Result {
	if r.Metadata == nil {
		r.Metadata = make(map[string]any)
	}
	r.Metadata[key] = value
	return r
}

// TagAll copies every entry of m into the metadata and returns r.
func (r *Result) TagAll(m map[string]any) *Result {
	if len(m) == 0 {
		return r
	}
	if r.Metadata == nil {
		r.Metadata = make(map[string]any, len(m))
	}
	maps.Copy(r.Metadata, m)
	return r
}

// Meta returns the metadata value under key, or nil.
func (r *Result) Meta(key string) any {
	return r.Metadata[key]
}

// Err returns the recorded errors as an error, or nil on success.
func (r *Result) Err() error {
	return r.Errors.Err()
}

// String returns a compact representation for logs.
func (r *Result) String() string {
	if r.Success() {
		return fmt.Sprintf("success(%v)", r.Value)
	}
	return fmt.Sprintf("failure(%s)", strings.Join(r.Errors.Kinds(), ", "))
}
