package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidManifest is returned for structurally invalid manifests.
var ErrInvalidManifest = errors.New("invalid manifest")

// Manifest declares the commands of one controller type.
type Manifest struct {
	Controller string
	Commands   []CommandSpec
}

// CommandSpec declares one command. If and Unless are condition source text.
type CommandSpec struct {
	Name     string
	Class    string
	Aliases  []string
	If       string
	Unless   string
	Secret   bool
	Metadata map[string]any
}

// ManifestError names the manifest entry that failed validation.
type ManifestError struct {
	Index  int    // Command index, -1 for top-level fields
	Field  string // Offending field
	Reason string
}

// Error implements the error interface.
func (e *ManifestError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("manifest: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("manifest: commands[%d].%s: %s", e.Index, e.Field, e.Reason)
}

// Unwrap returns ErrInvalidManifest for errors.Is support.
func (e *ManifestError) Unwrap() error {
	return ErrInvalidManifest
}

// LoadManifest reads a manifest file, choosing the format by extension.
// Supported extensions: .yaml, .yml, .json
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return ParseManifest(data, "yaml")
	case ".json":
		return ParseManifest(data, "json")
	default:
		return nil, fmt.Errorf("unsupported manifest extension: %s", ext)
	}
}

// ParseManifest decodes manifest data in the given format ("yaml" or "json").
func ParseManifest(data []byte, format string) (*Manifest, error) {
	var raw map[string]any
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format: %s", format)
	}
	return manifestFromValues(NewValues(raw))
}

func manifestFromValues(v Values) (*Manifest, error) {
	m := &Manifest{Controller: v.String("controller", "")}
	if m.Controller == "" {
		return nil, &ManifestError{Index: -1, Field: "controller", Reason: "required"}
	}
	if v.Has("commands") && v.List("commands") == nil {
		return nil, &ManifestError{Index: -1, Field: "commands", Reason: "must be a list"}
	}

	for i, c := range v.List("commands") {
		spec := CommandSpec{
			Name:     c.String("name", ""),
			Class:    c.String("class", ""),
			Aliases:  c.StringSlice("aliases", nil),
			If:       condition(c, "if"),
			Unless:   condition(c, "unless"),
			Secret:   c.Bool("secret", false),
			Metadata: c.Map("metadata"),
		}
		if spec.Name == "" {
			return nil, &ManifestError{Index: i, Field: "name", Reason: "required"}
		}
		if spec.Class == "" {
			return nil, &ManifestError{Index: i, Field: "class", Reason: "required"}
		}
		if c.Has("aliases") && spec.Aliases == nil {
			return nil, &ManifestError{Index: i, Field: "aliases", Reason: "must be a list of strings"}
		}
		m.Commands = append(m.Commands, spec)
	}
	return m, nil
}

// condition reads a condition that YAML may have decoded as a bare bool.
func condition(v Values, key string) string {
	switch val := v.Any(key, "").(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}
