package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Provider supplies the ordered collection of agent types.
type Provider interface {
	AgentTypes(ctx context.Context) ([]Descriptor, error)
}

// Static is a fixed, in-memory catalog.
type Static []Descriptor

// AgentTypes returns a copy of the catalog.
func (s Static) AgentTypes(_ context.Context) ([]Descriptor, error) {
	out := make([]Descriptor, len(s))
	copy(out, s)
	return out, nil
}

// Chain tries each provider in order and returns the first catalog that
// loads. The errors of skipped providers are joined into the final error
// when every provider fails.
type Chain []Provider

// AgentTypes implements Provider.
func (c Chain) AgentTypes(ctx context.Context) ([]Descriptor, error) {
	var errs []error
	for _, p := range c {
		if p == nil {
			continue
		}
		ds, err := p.AgentTypes(ctx)
		if err == nil {
			return ds, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, errors.New("no catalog provider configured")
	}
	return nil, fmt.Errorf("all catalog providers failed: %w", errors.Join(errs...))
}

// File loads a YAML catalog from disk on every call.
type File string

// AgentTypes implements Provider.
func (f File) AgentTypes(_ context.Context) ([]Descriptor, error) {
	return LoadFile(string(f))
}

type catalogFile struct {
	AgentTypes []Descriptor `yaml:"agent_types"`
}

//go:embed builtin.yaml
var builtinYAML []byte

// Builtin returns the catalog shipped with the binary.
func Builtin() Static {
	s, err := Parse(builtinYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid built-in catalog: %v", err))
	}
	return s
}

// LoadFile reads a YAML catalog ({agent_types: [...]}) from path.
func LoadFile(path string) (Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (Static, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := Validate(f.AgentTypes); err != nil {
		return nil, err
	}
	return Static(f.AgentTypes), nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks required descriptor fields and id uniqueness.
func Validate(descriptors []Descriptor) error {
	seen := make(map[string]bool, len(descriptors))
	for i, d := range descriptors {
		if err := validate.Struct(d); err != nil {
			return fmt.Errorf("agent type %d (%q): %w", i, d.ID, err)
		}
		if seen[d.ID] {
			return fmt.Errorf("duplicate agent type id: %s", d.ID)
		}
		seen[d.ID] = true
	}
	return nil
}
