package template

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// placeholderPattern matches "$$", "${NAME}" and "$NAME". The bare form is
// greedy, so $COMMAND never matches inside $COMMANDS.
var placeholderPattern = regexp.MustCompile(`\$\$|\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// Vars maps placeholder names to their rendered values.
type Vars map[string]string

// Interpolator renders placeholders. It is safe for concurrent use after
// construction.
type Interpolator struct {
	missing  Missing
	defaults Vars
}

// New creates an Interpolator.
func New(opts ...Option) *Interpolator {
	in := &Interpolator{
		missing:  MissingKeep,
		defaults: Vars{},
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Render replaces placeholders in s. An error is returned only with
// MissingError, alongside the partially rendered text.
func (in *Interpolator) Render(s string, vars Vars) (string, error) {
	if !strings.Contains(s, "$") {
		return s, nil
	}

	var undefined []string
	var b strings.Builder
	last := 0
	for _, m := range placeholderPattern.FindAllStringSubmatchIndex(s, -1) {
		b.WriteString(s[last:m[0]])
		last = m[1]

		name := submatch(s, m)
		if name == "" {
			b.WriteByte('$')
			continue
		}

		if v, ok := in.lookup(name, vars); ok {
			b.WriteString(v)
			continue
		}
		switch in.missing {
		case MissingEmpty:
		case MissingError:
			if !slices.Contains(undefined, name) {
				undefined = append(undefined, name)
			}
			b.WriteString(s[m[0]:m[1]])
		default:
			b.WriteString(s[m[0]:m[1]])
		}
	}
	b.WriteString(s[last:])

	if len(undefined) > 0 {
		return b.String(), &UndefinedError{Names: undefined}
	}
	return b.String(), nil
}

// RenderAll renders every string in ss, stopping at the first error.
func (in *Interpolator) RenderAll(ss []string, vars Vars) ([]string, error) {
	if ss == nil {
		return nil, nil
	}
	out := make([]string, len(ss))
	for i, s := range ss {
		r, err := in.Render(s, vars)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func (in *Interpolator) lookup(name string, vars Vars) (string, bool) {
	if v, ok := vars[name]; ok {
		return v, true
	}
	v, ok := in.defaults[name]
	return v, ok
}

// submatch returns the placeholder name of match m, or "" for "$$".
func submatch(s string, m []int) string {
	for g := 1; g < len(m)/2; g++ {
		if m[2*g] >= 0 {
			return s[m[2*g]:m[2*g+1]]
		}
	}
	return ""
}

// UndefinedError lists placeholders that had no value under MissingError.
type UndefinedError struct {
	Names []string
}

// Error implements the error interface.
func (e *UndefinedError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("undefined placeholder: %s", e.Names[0])
	}
	return fmt.Sprintf("undefined placeholders: %s", strings.Join(e.Names, ", "))
}
