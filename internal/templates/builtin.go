package templates

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type templateFile struct {
	Examples []Template `yaml:"examples"`
}

//go:embed builtin.yaml
var builtinYAML []byte

// Builtin returns the example workflows shipped with the binary.
func Builtin() []Template {
	ts, err := Parse(builtinYAML)
	if err != nil {
		panic(fmt.Sprintf("templates: invalid built-in examples: %v", err))
	}
	return ts
}

// LoadFile reads a YAML examples file ({examples: [...]}).
func LoadFile(path string) ([]Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read examples: %w", err)
	}
	ts, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ts, nil
}

// Parse decodes and validates a YAML examples document.
func Parse(data []byte) ([]Template, error) {
	var f templateFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse examples: %w", err)
	}
	if err := Validate(f.Examples); err != nil {
		return nil, err
	}
	return f.Examples, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks required fields, unique template ids, unique agent ids
// within a template and that every edge endpoint names one of its agents.
func Validate(ts []Template) error {
	seen := make(map[string]bool, len(ts))
	for _, t := range ts {
		if err := validate.Struct(t); err != nil {
			return fmt.Errorf("example %q: %w", t.ID, err)
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate example id: %s", t.ID)
		}
		seen[t.ID] = true

		agents := make(map[string]bool, len(t.Agents))
		for _, a := range t.Agents {
			if agents[a.ID] {
				return fmt.Errorf("example %s: duplicate agent id %s", t.ID, a.ID)
			}
			agents[a.ID] = true
		}
		for i, e := range t.Edges {
			if !agents[e.Source] || !agents[e.Target] {
				return fmt.Errorf("example %s: edge %d references unknown agent", t.ID, i)
			}
		}
	}
	return nil
}
