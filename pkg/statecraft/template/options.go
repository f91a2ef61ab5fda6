package template

// Missing specifies how unknown placeholders are rendered.
type Missing int

const (
	// MissingKeep leaves the placeholder text unchanged. This is the default.
	MissingKeep Missing = iota

	// MissingEmpty renders unknown placeholders as the empty string.
	MissingEmpty

	// MissingError renders like MissingKeep and reports an UndefinedError.
	MissingError
)

// Option configures an Interpolator.
type Option func(*Interpolator)

// WithMissing sets how unknown placeholders are handled.
//
// Default: MissingKeep
func WithMissing(m Missing) Option {
	return func(in *Interpolator) {
		in.missing = m
	}
}

// WithDefaults sets values used when a placeholder is absent from the Vars
// passed to Render.
//
// Example:
//
//	in := template.New(template.WithDefaults(template.Vars{"TARGET": "north"}))
//	in.Render("$COMMAND $TARGET", template.Vars{"COMMAND": "go"}) // "go north"
func WithDefaults(v Vars) Option {
	return func(in *Interpolator) {
		for k, val := range v {
			in.defaults[k] = val
		}
	}
}
