package configform

import (
	"fmt"
	"strconv"

	"github.com/tuannvm/canvasflow/internal/catalog"
)

// Kind is the input variant used for a field.
type Kind int

const (
	// Text is a free-text input.
	Text Kind = iota
	// Enum is a single choice over the schema's enum values.
	Enum
	// Boolean is a two-state toggle.
	Boolean
	// Number is a numeric input.
	Number
)

func (k Kind) String() string {
	switch k {
	case Enum:
		return "enum"
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	}
	return "text"
}

// KindOf picks the input variant for a field. An enum always wins over the
// declared type.
func KindOf(f catalog.FieldSchema) Kind {
	switch {
	case len(f.Enum) > 0:
		return Enum
	case f.Type == "boolean":
		return Boolean
	case f.Type == "integer" || f.Type == "number":
		return Number
	}
	return Text
}

// Field is one rendered form field with its effective value.
type Field struct {
	Name        string
	Title       string
	Description string
	Placeholder string
	Kind        Kind
	Options     []string
	Required    bool
	Minimum     *float64
	Maximum     *float64
	// Set is true when the node's config holds a value for this field.
	Set bool
	// Value is the config value, else the schema default, else the zero
	// value for the kind.
	Value any
}

// Text returns the effective value as input text.
func (f Field) Text() string {
	switch f.Kind {
	case Number:
		return FormatNumber(f.Value)
	case Boolean:
		return strconv.FormatBool(f.Bool())
	}
	if f.Value == nil {
		return ""
	}
	if s, ok := f.Value.(string); ok {
		return s
	}
	return fmt.Sprint(f.Value)
}

// Bool returns the effective value of a boolean field.
func (f Field) Bool() bool {
	b, _ := f.Value.(bool)
	return b
}

// Invalid reports whether the field holds a NaN number.
func (f Field) Invalid() bool {
	return f.Kind == Number && IsInvalidNumber(f.Value)
}

// Hint describes the accepted range of a number field.
func (f Field) Hint() string {
	switch {
	case f.Minimum != nil && f.Maximum != nil:
		return fmt.Sprintf("%s to %s", FormatNumber(*f.Minimum), FormatNumber(*f.Maximum))
	case f.Minimum != nil:
		return "at least " + FormatNumber(*f.Minimum)
	case f.Maximum != nil:
		return "at most " + FormatNumber(*f.Maximum)
	}
	return ""
}

// Fields returns the selected node's fields in schema order. Keys in the
// config that the schema does not declare are not returned.
func (e *Engine) Fields() []Field {
	if e.state == Empty {
		return nil
	}

	fields := make([]Field, 0, e.schema.Len())
	for _, p := range e.schema.Properties {
		fs := p.Field
		f := Field{
			Name:        p.Name,
			Title:       fs.Title,
			Description: fs.Description,
			Placeholder: fs.Placeholder,
			Kind:        KindOf(fs),
			Options:     fs.Enum,
			Required:    e.schema.IsRequired(p.Name),
			Minimum:     fs.Minimum,
			Maximum:     fs.Maximum,
		}
		if f.Title == "" {
			f.Title = p.Name
		}

		value, ok := e.config[p.Name]
		f.Set = ok
		if !ok {
			value = fs.Default
		}
		f.Value = effective(f, value)
		fields = append(fields, f)
	}
	return fields
}

func effective(f Field, value any) any {
	switch f.Kind {
	case Enum:
		if s, ok := value.(string); ok {
			for _, opt := range f.Options {
				if opt == s {
					return s
				}
			}
		}
		return f.Options[0]
	case Boolean:
		b, _ := value.(bool)
		return b
	}
	return value
}
