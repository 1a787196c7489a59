package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tuannvm/canvasflow/internal/catalog"
	"github.com/tuannvm/canvasflow/internal/graph"
	"github.com/tuannvm/canvasflow/internal/palette"
	"github.com/tuannvm/canvasflow/internal/templates"
)

type staticRemote struct {
	examples []templates.Template
}

func (r staticRemote) ListExamples(context.Context) ([]templates.Template, error) {
	return r.examples, nil
}

func (r staticRemote) Instantiate(_ context.Context, id string) (templates.Instantiation, error) {
	return templates.Instantiation{WorkflowID: "wf_" + id}, nil
}

func newTestEditor(t *testing.T) (*Editor, *graph.Owner) {
	t.Helper()
	descs, err := catalog.Builtin().AgentTypes(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	owner := graph.NewOwner()
	e := NewEditor(EditorOptions{
		Owner:        owner,
		Catalog:      descs,
		Icons:        catalog.DefaultIcons,
		Remote:       staticRemote{examples: templates.Builtin()},
		DocumentPath: filepath.Join(t.TempDir(), "flow.json"),
		Accessible:   true,
	})
	return e, owner
}

// drive runs msg through the editor and feeds back every message produced
// by the returned commands, skipping timers.
func drive(e *Editor, msg tea.Msg) {
	_, cmd := e.Update(msg)
	for _, m := range collect(cmd) {
		drive(e, m)
	}
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch m := msg.(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range m {
			out = append(out, collect(c)...)
		}
		return out
	case palette.DragMsg:
		return []tea.Msg{m}
	}
	if strings.HasPrefix(fmt.Sprintf("%T", msg), "templates.") {
		return []tea.Msg{msg}
	}
	return nil
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEditorDropFromPalette(t *testing.T) {
	e, owner := newTestEditor(t)

	drive(e, key("a"))
	drive(e, key("enter"))

	doc := owner.Document()
	if len(doc.Nodes) != 1 || doc.Nodes[0].Data.AgentType != "sales_intelligence" {
		t.Fatalf("nodes = %+v", doc.Nodes)
	}
	if e.Selected() != doc.Nodes[0].ID {
		t.Errorf("Selected() = %q, want the dropped node", e.Selected())
	}
	if doc.Nodes[0].Position != dropPosition(0) {
		t.Errorf("position = %+v", doc.Nodes[0].Position)
	}
	if e.focus != paneCanvas {
		t.Errorf("focus = %v, want canvas", e.focus)
	}
	if !strings.Contains(e.View(), "Sales Intelligence Agent") {
		t.Error("canvas does not show the dropped node")
	}
}

func TestEditorLoadsExampleAndConnects(t *testing.T) {
	e, owner := newTestEditor(t)

	drive(e, key("t"))
	if !e.templates.IsOpen() || len(e.templates.Examples()) != 5 {
		t.Fatalf("open=%v examples=%d", e.templates.IsOpen(), len(e.templates.Examples()))
	}
	drive(e, key("enter"))

	if e.templates.IsOpen() {
		t.Error("instantiator still open after load")
	}
	if owner.Meta().WorkflowID != "wf_example_sales_outreach" {
		t.Errorf("meta = %+v", owner.Meta())
	}
	if len(owner.Document().Nodes) != 2 {
		t.Fatalf("nodes = %d", len(owner.Document().Nodes))
	}

	// Select both nodes and add the reverse edge.
	drive(e, key("right"))
	first := e.Selected()
	drive(e, key("right"))
	second := e.Selected()
	if first == "" || second == "" || first == second {
		t.Fatalf("selection %q -> %q", first, second)
	}
	drive(e, key("c"))
	drive(e, key("right"))
	drive(e, key("c"))
	if !owner.Document().HasEdge(second, first) {
		t.Errorf("edges = %+v", owner.Document().Edges)
	}
}

func TestEditorSelectionJoinsCatalogSchema(t *testing.T) {
	e, _ := newTestEditor(t)
	drive(e, key("t"))
	drive(e, key("enter"))
	drive(e, key("right"))

	if !e.engine.HasFields() {
		t.Error("template node has no fields after catalog join")
	}
	if e.engine.Config()["connector"] == nil {
		t.Errorf("config = %v, want template config", e.engine.Config())
	}
}

func TestEditorRemoveAndSave(t *testing.T) {
	e, owner := newTestEditor(t)
	drive(e, key("t"))
	drive(e, key("enter"))
	drive(e, key("right"))
	drive(e, key("x"))

	doc := owner.Document()
	if len(doc.Nodes) != 1 || len(doc.Edges) != 0 {
		t.Errorf("after remove: %+v", doc)
	}
	if e.Selected() != "" {
		t.Errorf("Selected() = %q after removing it", e.Selected())
	}

	drive(e, key("s"))
	if e.failed {
		t.Fatalf("save failed: %s", e.Status())
	}
	if _, err := os.Stat(e.path); err != nil {
		t.Fatal(err)
	}
	snap, err := graph.Load(e.path)
	if err != nil {
		t.Fatal(err)
	}
	if snap.WorkflowID != "wf_example_sales_outreach" || len(snap.Nodes) != 1 {
		t.Errorf("saved snapshot = %+v", snap)
	}
}

func TestEditorSaveRefusesNaN(t *testing.T) {
	e, _ := newTestEditor(t)
	drive(e, key("t"))
	drive(e, key("enter"))
	drive(e, key("right"))

	var numeric string
	for _, f := range e.engine.Fields() {
		if f.Kind.String() == "number" {
			numeric = f.Name
			break
		}
	}
	if numeric == "" {
		t.Skip("selected agent type has no numeric field")
	}
	if err := e.engine.SetNumber(numeric, "lots"); err != nil {
		t.Fatal(err)
	}
	drive(e, key("s"))
	if !e.failed || !strings.Contains(e.Status(), numeric) {
		t.Errorf("status = %q, want NaN field reported", e.Status())
	}
}

func TestEditorEmptyCanvas(t *testing.T) {
	e, _ := newTestEditor(t)
	if !strings.Contains(e.View(), "Empty canvas") {
		t.Error("empty canvas hint missing")
	}
	drive(e, key("right"))
	if e.Selected() != "" {
		t.Error("selection moved on an empty canvas")
	}
}

func TestDropPosition(t *testing.T) {
	if got := dropPosition(0); got != (graph.Position{X: 100, Y: 150}) {
		t.Errorf("dropPosition(0) = %+v", got)
	}
	if got := dropPosition(4); got != (graph.Position{X: 450, Y: 300}) {
		t.Errorf("dropPosition(4) = %+v", got)
	}
}
