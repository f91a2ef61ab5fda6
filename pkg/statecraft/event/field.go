package event

// Field is a typed accessor for one data key.
type Field[T any] struct {
	name string
}

// NewField creates an accessor for the named field.
func NewField[T any](name string) Field[T] {
	return Field[T]{name: name}
}

// Name returns the data key.
func (f Field[T]) Name() string {
	return f.name
}

// Get returns the field value, or the zero value when unset or of another type.
func (f Field[T]) Get(evt *Event) T {
	v, _ := f.Lookup(evt)
	return v
}

// Lookup returns the field value and whether it was set with type T.
func (f Field[T]) Lookup(evt *Event) (T, bool) {
	var zero T
	if evt == nil {
		return zero, false
	}
	raw, ok := evt.Value(f.name)
	if !ok {
		return zero, false
	}
	v, ok := raw.(T)
	return v, ok
}

// Set returns a copy of evt with the field set to v.
func (f Field[T]) Set(evt *Event, v T) *Event {
	return evt.With(f.name, v)
}
