package statecraft

import (
	"fmt"

	"github.com/randalmurphal/statecraft/pkg/statecraft/config"
)

// LoadManifest builds a ControllerType from a manifest, resolving each
// command's class by name in classes. If and unless conditions compile
// with the WithConditions compiler and are evaluated against the state
// snapshot.
//
// Example manifest:
//
//	controller: FlightController
//	commands:
//	  - name: take off
//	    class: take_off
//	    aliases: [launch]
//	    if: landed == true
func LoadManifest(m *config.Manifest, classes map[string]*Class, opts ...ControllerTypeOption) (*ControllerType, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil manifest", config.ErrInvalidManifest)
	}
	t := NewControllerType(m.Controller, opts...)
	for i, spec := range m.Commands {
		class, ok := classes[spec.Class]
		if !ok {
			return nil, &config.ManifestError{Index: i, Field: "class", Reason: fmt.Sprintf("unknown class %q", spec.Class)}
		}

		defOpts := []DefinitionOption{Aliases(spec.Aliases...)}
		if spec.Secret {
			defOpts = append(defOpts, Secret())
		}
		for k, v := range spec.Metadata {
			defOpts = append(defOpts, Metadata(k, v))
		}
		if spec.If != "" {
			cond, err := t.conditions.Compile(spec.If)
			if err != nil {
				return nil, &config.ManifestError{Index: i, Field: "if", Reason: err.Error()}
			}
			defOpts = append(defOpts, If(Expr(cond)))
		}
		if spec.Unless != "" {
			cond, err := t.conditions.Compile(spec.Unless)
			if err != nil {
				return nil, &config.ManifestError{Index: i, Field: "unless", Reason: err.Error()}
			}
			defOpts = append(defOpts, Unless(Expr(cond)))
		}

		if _, err := t.Define(spec.Name, class, defOpts...); err != nil {
			return nil, fmt.Errorf("manifest command %d: %w", i, err)
		}
	}
	return t, nil
}

// LoadManifestFile reads a YAML or JSON manifest and builds a ControllerType.
func LoadManifestFile(path string, classes map[string]*Class, opts ...ControllerTypeOption) (*ControllerType, error) {
	m, err := config.LoadManifest(path)
	if err != nil {
		return nil, err
	}
	return LoadManifest(m, classes, opts...)
}
