package configform

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/tuannvm/canvasflow/internal/catalog"
	"github.com/tuannvm/canvasflow/internal/graph"
	"github.com/tuannvm/canvasflow/internal/nodeview"
)

type recorder struct {
	updates []graph.UpdateConfig
}

func (r *recorder) Dispatch(cmd graph.Command) error {
	if u, ok := cmd.(graph.UpdateConfig); ok {
		r.updates = append(r.updates, u)
	}
	return nil
}

func ptr(v float64) *float64 { return &v }

func testSchema() catalog.Schema {
	return catalog.Schema{
		Properties: []catalog.Property{
			{Name: "mode", Field: catalog.FieldSchema{Type: "string", Enum: []string{"fast", "slow"}, Default: "slow"}},
			{Name: "notify", Field: catalog.FieldSchema{Type: "boolean"}},
			{Name: "retries", Field: catalog.FieldSchema{Type: "integer", Minimum: ptr(0), Maximum: ptr(5)}},
			{Name: "x", Field: catalog.FieldSchema{Type: "number"}},
			{Name: "channel", Field: catalog.FieldSchema{}},
		},
		Required: []string{"channel"},
	}
}

func testNode(id string, config map[string]any) *graph.Node {
	return &graph.Node{
		ID:   id,
		Type: graph.NodeTypeAgent,
		Data: graph.NodeData{
			Label:     "Node " + id,
			AgentType: "test",
			Config:    config,
			AgentMeta: catalog.Descriptor{ID: "test", Name: "Test", ConfigSchema: testSchema()},
		},
	}
}

func TestEngineStartsEmpty(t *testing.T) {
	e := NewEngine(&recorder{})
	if e.State() != Empty {
		t.Errorf("State() = %v, want empty", e.State())
	}
	if e.Fields() != nil || e.Config() != nil {
		t.Error("empty engine exposes fields or config")
	}
	if err := e.Set("x", 1); !errors.Is(err, ErrNoSelection) {
		t.Errorf("Set() error = %v, want ErrNoSelection", err)
	}
	if err := e.Reset(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("Reset() error = %v, want ErrNoSelection", err)
	}
}

func TestSelectSwitchingNodesDoesNotMixConfigs(t *testing.T) {
	a := testNode("a", map[string]any{"x": 1})
	b := testNode("b", map[string]any{})
	e := NewEngine(&recorder{})

	e.Select(a)
	e.Select(b)
	if got := e.Config(); len(got) != 0 {
		t.Errorf("config of b = %v, want empty", got)
	}
	e.Select(a)
	if got := e.Config(); !reflect.DeepEqual(got, map[string]any{"x": 1}) {
		t.Errorf("config of a = %v, want {x:1}", got)
	}
}

func TestSelectSameNodeKeepsEdits(t *testing.T) {
	a := testNode("a", map[string]any{})
	e := NewEngine(&recorder{})
	e.Select(a)

	if err := e.Set("channel", "#ops"); err != nil {
		t.Fatal(err)
	}
	// The caller re-renders with a stale copy of the same node.
	e.Select(a)
	if got := e.Config()["channel"]; got != "#ops" {
		t.Errorf("channel = %v, want in-progress edit kept", got)
	}
}

func TestSelectNilClears(t *testing.T) {
	e := NewEngine(&recorder{})
	e.Select(testNode("a", nil))
	if e.State() != Editing {
		t.Fatalf("State() = %v, want editing", e.State())
	}
	if e.Config() == nil {
		t.Error("nil node config should become an empty map")
	}
	e.Select(nil)
	if e.State() != Empty || e.NodeID() != "" {
		t.Errorf("after clearing: state %v id %q", e.State(), e.NodeID())
	}
}

func TestSetDispatchesEveryEdit(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(rec)
	e.Select(testNode("a", map[string]any{"x": 1}))

	for _, text := range []string{"#", "#o", "#op"} {
		if err := e.Set("channel", text); err != nil {
			t.Fatal(err)
		}
	}

	if len(rec.updates) != 3 {
		t.Fatalf("updates = %d, want one per edit", len(rec.updates))
	}
	last := rec.updates[2]
	if last.NodeID != "a" {
		t.Errorf("NodeID = %q", last.NodeID)
	}
	want := map[string]any{"x": 1, "channel": "#op"}
	if !reflect.DeepEqual(last.Config, want) {
		t.Errorf("Config = %v, want %v", last.Config, want)
	}

	// Earlier commands hold their own snapshot.
	if rec.updates[0].Config["channel"] != "#" {
		t.Errorf("first update mutated: %v", rec.updates[0].Config)
	}
}

func TestSetRejectsUndeclaredField(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(rec)
	e.Select(testNode("a", nil))
	if err := e.Set("bogus", 1); !errors.Is(err, ErrUnknownField) {
		t.Errorf("error = %v, want ErrUnknownField", err)
	}
	if len(rec.updates) != 0 {
		t.Error("rejected edit was dispatched")
	}
}

func TestSetPropagatesDispatchError(t *testing.T) {
	boom := errors.New("boom")
	e := NewEngine(graph.DispatchFunc(func(graph.Command) error { return boom }))
	e.Select(testNode("a", nil))
	if err := e.Set("channel", "x"); !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped boom", err)
	}
}

func TestResetAndConfiguredBadge(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(rec)
	e.Select(testNode("a", map[string]any{}))

	if nodeview.Configured(e.Config()) {
		t.Error("empty config reported as configured")
	}
	if err := e.Set("mode", "slow"); err != nil {
		t.Fatal(err)
	}
	if !nodeview.Configured(e.Config()) {
		t.Error("one key should mark the node configured")
	}
	if err := e.Reset(); err != nil {
		t.Fatal(err)
	}
	if nodeview.Configured(e.Config()) {
		t.Error("reset config reported as configured")
	}

	last := rec.updates[len(rec.updates)-1]
	if last.NodeID != "a" || len(last.Config) != 0 || last.Config == nil {
		t.Errorf("reset update = %+v, want empty non-nil config", last)
	}
}

func TestOwnerFoldsEngineEdits(t *testing.T) {
	owner := graph.NewOwner()
	doc := graph.Document{Nodes: []graph.Node{*testNode("a", map[string]any{})}}
	if err := owner.Dispatch(graph.ReplaceDocument{Document: doc}); err != nil {
		t.Fatal(err)
	}

	e := NewEngine(owner)
	n, _ := owner.Document().Node("a")
	e.Select(&n)
	if err := e.SetNumber("retries", "3"); err != nil {
		t.Fatal(err)
	}

	n, _ = owner.Document().Node("a")
	if n.Data.Config["retries"] != float64(3) {
		t.Errorf("owner config = %v", n.Data.Config)
	}
}

// Text without a leading integer is stored as NaN and is not rejected.
// It is only reported through Invalid and Field.Invalid; saving is where
// it gets refused.
func TestSetNumberStoresNaNForInvalidText(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(rec)
	e.Select(testNode("a", nil))

	if err := e.SetNumber("retries", "abc"); err != nil {
		t.Fatalf("SetNumber() error = %v, want none", err)
	}
	v, ok := e.Config()["retries"].(float64)
	if !ok || !math.IsNaN(v) {
		t.Errorf("retries = %v, want NaN", e.Config()["retries"])
	}
	if len(rec.updates) != 1 {
		t.Errorf("invalid number was not dispatched")
	}
	if got := e.Invalid(); !reflect.DeepEqual(got, []string{"retries"}) {
		t.Errorf("Invalid() = %v", got)
	}
}

func TestSetNumberIgnoresRange(t *testing.T) {
	e := NewEngine(&recorder{})
	e.Select(testNode("a", nil))
	if err := e.SetNumber("retries", "99"); err != nil {
		t.Fatal(err)
	}
	if e.Config()["retries"] != float64(99) {
		t.Errorf("retries = %v, want 99 stored as is", e.Config()["retries"])
	}
}
