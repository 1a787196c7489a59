package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalJSON always emits a properties object, so an empty schema encodes
// as {"properties":{}}.
func (s Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"properties":{`)
	for i, p := range s.Properties {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		field, err := json.Marshal(p.Field)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", p.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(field)
	}
	buf.WriteByte('}')
	if len(s.Required) > 0 {
		req, err := json.Marshal(s.Required)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`,"required":`)
		buf.Write(req)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes properties in document order.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var raw struct {
		Properties json.RawMessage `json:"properties"`
		Required   []string        `json:"required"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Properties = nil
	s.Required = raw.Required

	trimmed := bytes.TrimSpace(raw.Properties)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("properties: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("properties: unexpected key %v", tok)
		}
		var field FieldSchema
		if err := dec.Decode(&field); err != nil {
			return fmt.Errorf("property %s: %w", name, err)
		}
		s.Properties = append(s.Properties, Property{Name: name, Field: field})
	}

	_, err = dec.Token()
	return err
}

// MarshalYAML mirrors MarshalJSON.
func (s Schema) MarshalYAML() (interface{}, error) {
	props := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range s.Properties {
		var value yaml.Node
		if err := value.Encode(p.Field); err != nil {
			return nil, fmt.Errorf("property %s: %w", p.Name, err)
		}
		props.Content = append(props.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Name},
			&value,
		)
	}

	out := &yaml.Node{Kind: yaml.MappingNode}
	out.Content = append(out.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "properties"},
		props,
	)

	if len(s.Required) > 0 {
		var req yaml.Node
		if err := req.Encode(s.Required); err != nil {
			return nil, err
		}
		out.Content = append(out.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "required"},
			&req,
		)
	}
	return out, nil
}

// UnmarshalYAML decodes properties in document order.
func (s *Schema) UnmarshalYAML(value *yaml.Node) error {
	s.Properties = nil
	s.Required = nil

	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: config_schema must be a mapping", value.Line)
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		switch key.Value {
		case "properties":
			if val.Kind == yaml.ScalarNode && val.Tag == "!!null" {
				continue
			}
			if val.Kind != yaml.MappingNode {
				return fmt.Errorf("line %d: properties must be a mapping", val.Line)
			}
			for j := 0; j+1 < len(val.Content); j += 2 {
				var field FieldSchema
				if err := val.Content[j+1].Decode(&field); err != nil {
					return fmt.Errorf("property %s: %w", val.Content[j].Value, err)
				}
				s.Properties = append(s.Properties, Property{Name: val.Content[j].Value, Field: field})
			}
		case "required":
			if err := val.Decode(&s.Required); err != nil {
				return err
			}
		}
	}
	return nil
}
