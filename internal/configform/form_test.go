package configform

import (
	"strings"
	"testing"

	"github.com/tuannvm/canvasflow/internal/catalog"
)

func TestFormEmptyState(t *testing.T) {
	f := NewForm(NewEngine(&recorder{}), true)
	if f.Huh() != nil {
		t.Error("empty engine built a huh form")
	}
	if !strings.Contains(f.View(), EmptyMessage) {
		t.Errorf("View() = %q", f.View())
	}
	if err := f.Run(); err == nil {
		t.Error("Run() without selection should fail")
	}
}

func TestFormNoFieldsShowsNote(t *testing.T) {
	node := testNode("a", nil)
	node.Data.AgentMeta.ConfigSchema = catalog.Schema{}
	e := NewEngine(&recorder{})
	e.Select(node)

	f := NewForm(e, true)
	if f.Huh() == nil {
		t.Fatal("expected a form holding the note")
	}
	if len(f.bindings) != 0 {
		t.Errorf("bindings = %d, want 0", len(f.bindings))
	}
}

func TestFormSyncPushesChangedValues(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(rec)
	e.Select(testNode("a", nil))
	f := NewForm(e, true)

	if err := f.Sync(); err != nil {
		t.Fatal(err)
	}
	if len(rec.updates) != 0 {
		t.Fatalf("unchanged form dispatched %d updates", len(rec.updates))
	}

	byName := map[string]*binding{}
	for _, b := range f.bindings {
		byName[b.field.Name] = b
	}

	*byName["channel"].text = "#o"
	if err := f.Sync(); err != nil {
		t.Fatal(err)
	}
	*byName["channel"].text = "#ops"
	*byName["notify"].flag = true
	*byName["retries"].text = "4x"
	if err := f.Sync(); err != nil {
		t.Fatal(err)
	}

	if len(rec.updates) != 4 {
		t.Fatalf("updates = %d, want 4", len(rec.updates))
	}
	cfg := e.Config()
	if cfg["channel"] != "#ops" || cfg["notify"] != true || cfg["retries"] != float64(4) {
		t.Errorf("config = %v", cfg)
	}
}

func TestFormResetRebuilds(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(rec)
	e.Select(testNode("a", map[string]any{"channel": "#ops"}))
	f := NewForm(e, true)

	if err := f.Reset(); err != nil {
		t.Fatal(err)
	}
	if len(e.Config()) != 0 {
		t.Errorf("config = %v, want empty", e.Config())
	}
	for _, b := range f.bindings {
		if b.field.Name == "channel" && *b.text != "" {
			t.Errorf("channel binding = %q after reset", *b.text)
		}
	}
}
