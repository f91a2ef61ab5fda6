package statecraft

import (
	"maps"
	"slices"
)

// Definition binds a Class to a name within a ControllerType.
type Definition struct {
	// Name is the normalized command name.
	Name  string
	Class *Class
	// Aliases holds every normalized name that resolves to this definition,
	// Name included, sorted.
	Aliases []string
	// Secret definitions are never listed, and report invalid rather than
	// unavailable when their guard fails.
	Secret   bool
	Metadata map[string]any

	guards guards
}

// Properties returns the class properties.
func (d *Definition) Properties() Properties {
	return d.Class.Properties()
}

// Signature returns the class signature.
func (d *Definition) Signature() Signature {
	return d.Class.Signature()
}

// Available reports whether the definition's guards allow it in s.
func (d *Definition) Available(s Scope) (bool, error) {
	return d.guards.allow(s)
}

// DefinitionOption configures a Definition.
type DefinitionOption interface {
	applyDefinition(*Definition)
}

type definitionFunc func(*Definition)

func (f definitionFunc) applyDefinition(d *Definition) { f(d) }

func (g Guard) applyDefinition(d *Definition) { d.guards.add(g) }

// Aliases adds alternative names.
func Aliases(names ...string) DefinitionOption {
	return definitionFunc(func(d *Definition) {
		for _, n := range names {
			if n = Normalize(n); n != "" {
				d.Aliases = append(d.Aliases, n)
			}
		}
	})
}

// Secret hides the definition from listings.
func Secret() DefinitionOption {
	return definitionFunc(func(d *Definition) { d.Secret = true })
}

// Metadata attaches a value to the definition.
func Metadata(key string, value any) DefinitionOption {
	return definitionFunc(func(d *Definition) {
		if d.Metadata == nil {
			d.Metadata = make(map[string]any)
		}
		d.Metadata[key] = value
	})
}

func newDefinition(name string, class *Class, opts []DefinitionOption) *Definition {
	d := &Definition{Name: name, Class: class, Aliases: []string{name}}
	for _, opt := range opts {
		opt.applyDefinition(d)
	}
	slices.Sort(d.Aliases)
	d.Aliases = slices.Compact(d.Aliases)
	d.Metadata = maps.Clone(d.Metadata)
	return d
}
