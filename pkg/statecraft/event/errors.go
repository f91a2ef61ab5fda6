package event

import "fmt"

// ListenerError wraps the error returned by the listener that stopped a dispatch.
type ListenerError struct {
	ListenerID   string // ID of the failing listener
	ListenerType string // Type the listener subscribed to
	EventType    string // Primary type of the dispatched event
	Err          error  // Error returned by the listener
}

// Error implements error interface.
func (e *ListenerError) Error() string {
	return fmt.Sprintf("listener %s (%s) failed on %s: %v", e.ListenerID, e.ListenerType, e.EventType, e.Err)
}

// Unwrap returns the underlying error.
func (e *ListenerError) Unwrap() error {
	return e.Err
}
