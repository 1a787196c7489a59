package configform

import (
	"math"
	"testing"

	"github.com/tuannvm/canvasflow/internal/catalog"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name  string
		field catalog.FieldSchema
		want  Kind
	}{
		{"enum only", catalog.FieldSchema{Enum: []string{"a"}}, Enum},
		{"enum wins over string", catalog.FieldSchema{Type: "string", Enum: []string{"a"}}, Enum},
		{"enum wins over boolean", catalog.FieldSchema{Type: "boolean", Enum: []string{"a"}}, Enum},
		{"enum wins over integer", catalog.FieldSchema{Type: "integer", Enum: []string{"1"}}, Enum},
		{"boolean", catalog.FieldSchema{Type: "boolean"}, Boolean},
		{"integer", catalog.FieldSchema{Type: "integer"}, Number},
		{"number", catalog.FieldSchema{Type: "number"}, Number},
		{"string", catalog.FieldSchema{Type: "string"}, Text},
		{"untyped", catalog.FieldSchema{}, Text},
		{"unknown type", catalog.FieldSchema{Type: "object"}, Text},
		{"empty enum", catalog.FieldSchema{Type: "boolean", Enum: []string{}}, Boolean},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.field); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFieldsEffectiveValues(t *testing.T) {
	e := NewEngine(&recorder{})
	e.Select(testNode("a", map[string]any{"x": 2.5, "unknown": "kept but hidden"}))

	fields := e.Fields()
	if len(fields) != 5 {
		t.Fatalf("fields = %d, want 5 (undeclared keys hidden)", len(fields))
	}

	byName := map[string]Field{}
	for _, f := range fields {
		byName[f.Name] = f
	}

	if f := byName["mode"]; f.Kind != Enum || f.Value != "slow" || f.Set {
		t.Errorf("mode = %+v, want default preselected", f)
	}
	if f := byName["notify"]; f.Kind != Boolean || f.Bool() || f.Text() != "false" {
		t.Errorf("notify = %+v, want false when unset", f)
	}
	if f := byName["retries"]; f.Text() != "" || f.Hint() != "0 to 5" {
		t.Errorf("retries text %q hint %q", f.Text(), f.Hint())
	}
	if f := byName["x"]; !f.Set || f.Text() != "2.5" {
		t.Errorf("x = %+v", f)
	}
	if f := byName["channel"]; !f.Required || f.Title != "channel" {
		t.Errorf("channel = %+v", f)
	}
	if fields[0].Name != "mode" || fields[4].Name != "channel" {
		t.Error("fields not in schema order")
	}
	if _, ok := e.Config()["unknown"]; !ok {
		t.Error("undeclared key dropped from config")
	}
}

func TestEnumWithoutDefaultSelectsFirstOption(t *testing.T) {
	node := testNode("a", map[string]any{"mode": "warp"})
	node.Data.AgentMeta.ConfigSchema.Properties[0].Field.Default = nil
	e := NewEngine(&recorder{})
	e.Select(node)

	if f := e.Fields()[0]; f.Value != "fast" {
		t.Errorf("mode = %v, want first option", f.Value)
	}
}

func TestNoFields(t *testing.T) {
	node := testNode("a", nil)
	node.Data.AgentMeta.ConfigSchema = catalog.Schema{}
	e := NewEngine(&recorder{})
	e.Select(node)

	if e.HasFields() || len(e.Fields()) != 0 {
		t.Error("schema without properties produced fields")
	}
}

func TestParseInteger(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		nan  bool
	}{
		{in: "42", want: 42},
		{in: "  7", want: 7},
		{in: "-3", want: -3},
		{in: "+8", want: 8},
		{in: "12abc", want: 12},
		{in: "3.9", want: 3},
		{in: "007", want: 7},
		{in: "", nan: true},
		{in: "abc", nan: true},
		{in: "-", nan: true},
		{in: " - 1", nan: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseInteger(tt.in)
			if tt.nan {
				if !math.IsNaN(got) {
					t.Errorf("ParseInteger(%q) = %v, want NaN", tt.in, got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseInteger(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{float64(3), "3"},
		{2.5, "2.5"},
		{math.NaN(), "NaN"},
		{10, "10"},
		{int64(-4), "-4"},
		{"5", "5"},
		{true, ""},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWithCatalogSchema(t *testing.T) {
	descs := []catalog.Descriptor{{ID: "test", Name: "Test", Icon: "mail", ConfigSchema: testSchema()}}

	stub := testNode("a", map[string]any{"x": 1})
	stub.Data.AgentMeta = catalog.Descriptor{ID: "test", Name: "Loaded"}
	joined := WithCatalogSchema(*stub, descs)
	if joined.Data.AgentMeta.ConfigSchema.Len() != 5 || joined.Data.AgentMeta.Icon != "mail" {
		t.Errorf("joined meta = %+v", joined.Data.AgentMeta)
	}
	if joined.Data.Config["x"] != 1 || joined.Data.Label != stub.Data.Label {
		t.Error("join changed node data other than the descriptor")
	}
	if stub.Data.AgentMeta.ConfigSchema.Len() != 0 {
		t.Error("join mutated its input")
	}

	own := testNode("b", nil)
	own.Data.AgentMeta.ConfigSchema.Properties = own.Data.AgentMeta.ConfigSchema.Properties[:1]
	if got := WithCatalogSchema(*own, descs); got.Data.AgentMeta.ConfigSchema.Len() != 1 {
		t.Error("node with its own schema was overwritten")
	}

	unknown := testNode("c", nil)
	unknown.Data.AgentType = "ghost"
	unknown.Data.AgentMeta = catalog.Descriptor{}
	if got := WithCatalogSchema(*unknown, descs); got.Data.AgentMeta.ID != "" {
		t.Error("unknown agent type was joined")
	}
}
