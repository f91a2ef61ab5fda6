package statecraft

import (
	"maps"
	"slices"

	screrrors "github.com/randalmurphal/statecraft/pkg/statecraft/errors"
)

// Signature is the argument contract derived from a Class's Properties.
type Signature struct {
	MinArguments     int
	MaxArguments     int
	RequiredKeywords []string
	OptionalKeywords []string
}

// NewSignature derives a Signature from p.
func NewSignature(p Properties) Signature {
	s := Signature{MaxArguments: len(p.Arguments)}
	for _, a := range p.Arguments {
		if a.Required {
			s.MinArguments++
		}
	}
	for _, name := range p.KeywordNames() {
		if p.Keywords[name].Required {
			s.RequiredKeywords = append(s.RequiredKeywords, name)
		} else {
			s.OptionalKeywords = append(s.OptionalKeywords, name)
		}
	}
	return s
}

// AllowedKeywords returns required and optional keywords, sorted.
func (s Signature) AllowedKeywords() []string {
	allowed := slices.Concat(s.RequiredKeywords, s.OptionalKeywords)
	slices.Sort(allowed)
	return allowed
}

// Match checks args and kwargs against the signature. Every violation is
// recorded in one failing Result; ok is true and the Result nil when none
// fired.
func (s Signature) Match(args []any, kwargs map[string]any) (bool, *Result) {
	r := NewResult()
	n := len(args)

	if n < s.MinArguments {
		r.AddError(screrrors.KindNotEnoughArguments, map[string]any{
			"expected": s.MinArguments,
			"actual":   n,
		})
	}
	if n > s.MaxArguments {
		r.AddError(screrrors.KindTooManyArguments, map[string]any{
			"expected": s.MaxArguments,
			"actual":   n,
		})
	}

	keys := slices.Sorted(maps.Keys(kwargs))
	allowed := s.AllowedKeywords()

	if invalid := difference(keys, allowed); len(invalid) > 0 {
		r.AddError(screrrors.KindInvalidKeywords, map[string]any{
			"expected": allowed,
			"actual":   keys,
			"invalid":  invalid,
		})
	}
	if missing := difference(s.RequiredKeywords, keys); len(missing) > 0 {
		r.AddError(screrrors.KindMissingKeywords, map[string]any{
			"expected": slices.Clone(s.RequiredKeywords),
			"actual":   keys,
			"missing":  missing,
		})
	}

	if r.Success() {
		return true, nil
	}
	return false, r
}

// difference returns the elements of a not in b, keeping a's order.
func difference(a, b []string) []string {
	var out []string
	for _, x := range a {
		if !slices.Contains(b, x) {
			out = append(out, x)
		}
	}
	return out
}
