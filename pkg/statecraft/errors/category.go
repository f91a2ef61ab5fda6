// Package errors provides the error collection carried by every statecraft
// Result, the well-known error kinds, and the framework's typed errors.
//
// The package implements a layered approach:
//   - Collection: expected failures (bad arguments, unknown commands, domain
//     rule violations) recorded as data and returned inside a Result
//   - Categorization: classify a recorded kind for appropriate handling
//   - Typed errors: misuse of the framework API surface, returned as Go errors
package errors

// Category represents how a recorded error kind should be treated.
type Category int

const (
	// CategoryDomain indicates an error recorded by a command's own process
	// step. The framework does not interpret its meaning.
	CategoryDomain Category = iota

	// CategoryValidation indicates the call did not satisfy the command's
	// signature. Examples: not_enough_arguments, missing_keywords.
	CategoryValidation

	// CategoryResolution indicates the command could not be resolved or is
	// not available in the current state. No process code ran.
	CategoryResolution
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryDomain:
		return "domain"
	case CategoryValidation:
		return "validation"
	case CategoryResolution:
		return "resolution"
	default:
		return "unknown"
	}
}

// Well-known error kinds recorded by the framework.
const (
	KindNotEnoughArguments = "not_enough_arguments"
	KindTooManyArguments   = "too_many_arguments"
	KindInvalidKeywords    = "invalid_keywords"
	KindMissingKeywords    = "missing_keywords"
	KindInvalidArguments   = "invalid_arguments"

	KindInvalidCommand     = "invalid_command"
	KindUnavailableCommand = "unavailable_command"
	KindInvalidAction      = "invalid_action"
	KindUnavailableAction  = "unavailable_action"

	// KindProcessError records a Go error returned from a process step.
	KindProcessError = "process_error"
)

var categories = map[string]Category{
	KindNotEnoughArguments: CategoryValidation,
	KindTooManyArguments:   CategoryValidation,
	KindInvalidKeywords:    CategoryValidation,
	KindMissingKeywords:    CategoryValidation,
	KindInvalidArguments:   CategoryValidation,
	KindInvalidCommand:     CategoryResolution,
	KindUnavailableCommand: CategoryResolution,
	KindInvalidAction:      CategoryResolution,
	KindUnavailableAction:  CategoryResolution,
}

// Categorize determines the category of a recorded error kind.
// Kinds the framework does not know are domain errors.
func Categorize(kind string) Category {
	if c, ok := categories[kind]; ok {
		return c
	}
	return CategoryDomain
}

// IsValidation reports whether the kind is a signature violation.
func IsValidation(kind string) bool {
	return Categorize(kind) == CategoryValidation
}

// IsResolution reports whether the kind means the command never ran.
func IsResolution(kind string) bool {
	return Categorize(kind) == CategoryResolution
}
