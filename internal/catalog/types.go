// Package catalog describes the agent types that can be placed on a canvas
// and the configuration schema each one exposes.
package catalog

// Category groups agent types in the palette.
type Category string

// Agent categories. Analysis agents exist in the catalog but are only
// reachable through the "all" palette filter.
const (
	CategoryDataRetrieval Category = "data_retrieval"
	CategoryCommunication Category = "communication"
	CategoryAction        Category = "action"
	CategoryAnalysis      Category = "analysis"
)

// Descriptor is one catalog entry: a kind of pipeline building block.
// Descriptors are immutable once loaded.
type Descriptor struct {
	ID                  string   `json:"id" yaml:"id" validate:"required"`
	Name                string   `json:"name" yaml:"name" validate:"required"`
	Description         string   `json:"description" yaml:"description"`
	Category            Category `json:"category" yaml:"category" validate:"required"`
	Icon                string   `json:"icon" yaml:"icon"`
	SupportedConnectors []string `json:"supported_connectors,omitempty" yaml:"supported_connectors,omitempty"`
	ConfigSchema        Schema   `json:"config_schema" yaml:"config_schema"`
}

// FieldSchema describes one configurable field.
type FieldSchema struct {
	Type        string   `json:"type,omitempty" yaml:"type,omitempty"`
	Enum        []string `json:"enum,omitempty" yaml:"enum,omitempty"`
	Default     any      `json:"default,omitempty" yaml:"default,omitempty"`
	Title       string   `json:"title,omitempty" yaml:"title,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Placeholder string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Minimum     *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum     *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
}

// Property is a named field in declaration order.
type Property struct {
	Name  string
	Field FieldSchema
}

// Schema is the JSON-Schema-like configuration description of an agent type.
// Properties keep the order in which they were declared.
type Schema struct {
	Properties []Property
	Required   []string
}

// Len returns the number of declared properties.
func (s Schema) Len() int {
	return len(s.Properties)
}

// Field returns the schema of the named property.
func (s Schema) Field(name string) (FieldSchema, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Field, true
		}
	}
	return FieldSchema{}, false
}

// Names returns the property names in declaration order.
func (s Schema) Names() []string {
	names := make([]string, 0, len(s.Properties))
	for _, p := range s.Properties {
		names = append(names, p.Name)
	}
	return names
}

// IsRequired reports whether name is listed as required.
func (s Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Lookup finds a descriptor by id.
func Lookup(descriptors []Descriptor, id string) (Descriptor, bool) {
	for _, d := range descriptors {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}
