// Package configform edits the configuration map of the selected canvas
// node. Fields are generated from the agent type's schema; every edit is
// sent to the document owner as a graph.UpdateConfig command.
package configform

import (
	"errors"
	"fmt"

	"github.com/tuannvm/canvasflow/internal/catalog"
	"github.com/tuannvm/canvasflow/internal/graph"
)

var (
	// ErrNoSelection is returned by edits made while no node is selected.
	ErrNoSelection = errors.New("no node selected")
	// ErrUnknownField is returned for fields the schema does not declare.
	ErrUnknownField = errors.New("unknown field")
)

// State is the engine's selection state.
type State int

const (
	// Empty means no node is selected.
	Empty State = iota
	// Editing means a node is selected and its config can be changed.
	Editing
)

func (s State) String() string {
	if s == Editing {
		return "editing"
	}
	return "empty"
}

// Engine holds the local editable copy of one node's config.
type Engine struct {
	dispatcher graph.Dispatcher
	state      State
	nodeID     string
	label      string
	schema     catalog.Schema
	config     map[string]any
}

// NewEngine creates an engine in the Empty state.
func NewEngine(dispatcher graph.Dispatcher) *Engine {
	return &Engine{dispatcher: dispatcher}
}

// Select changes the selected node. A nil node clears the selection.
// Selecting the node that is already selected keeps in-progress edits;
// any other node replaces the local copy with that node's config.
func (e *Engine) Select(node *graph.Node) {
	if node == nil {
		e.state = Empty
		e.nodeID = ""
		e.label = ""
		e.schema = catalog.Schema{}
		e.config = nil
		return
	}

	e.label = node.Data.Label
	e.schema = node.Data.AgentMeta.ConfigSchema
	if e.state == Editing && e.nodeID == node.ID {
		return
	}
	e.state = Editing
	e.nodeID = node.ID
	e.config = graph.CloneConfig(node.Data.Config)
}

// State returns the current selection state.
func (e *Engine) State() State {
	return e.state
}

// NodeID returns the id of the selected node, or "".
func (e *Engine) NodeID() string {
	return e.nodeID
}

// Label returns the selected node's label.
func (e *Engine) Label() string {
	return e.label
}

// Schema returns the schema of the selected node's agent type.
func (e *Engine) Schema() catalog.Schema {
	return e.schema
}

// HasFields reports whether the selected agent type declares any field.
func (e *Engine) HasFields() bool {
	return e.schema.Len() > 0
}

// Config returns a copy of the local config.
func (e *Engine) Config() map[string]any {
	if e.state == Empty {
		return nil
	}
	return graph.CloneConfig(e.config)
}

// Set stores value under field and sends the new config to the owner.
func (e *Engine) Set(field string, value any) error {
	if e.state == Empty {
		return ErrNoSelection
	}
	if _, ok := e.schema.Field(field); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	next := graph.CloneConfig(e.config)
	next[field] = value
	e.config = next
	return e.emit()
}

// SetNumber parses text as an integer and stores the result. Text without
// a leading integer is stored as NaN.
func (e *Engine) SetNumber(field, text string) error {
	return e.Set(field, ParseInteger(text))
}

// Reset clears every field, including ones equal to a schema default.
func (e *Engine) Reset() error {
	if e.state == Empty {
		return ErrNoSelection
	}
	e.config = map[string]any{}
	return e.emit()
}

// Invalid returns the fields currently holding a NaN number.
func (e *Engine) Invalid() []string {
	var names []string
	for _, name := range e.schema.Names() {
		if IsInvalidNumber(e.config[name]) {
			names = append(names, name)
		}
	}
	return names
}

func (e *Engine) emit() error {
	if e.dispatcher == nil {
		return nil
	}
	cmd := graph.UpdateConfig{NodeID: e.nodeID, Config: graph.CloneConfig(e.config)}
	if err := e.dispatcher.Dispatch(cmd); err != nil {
		return fmt.Errorf("config change for %s: %w", e.nodeID, err)
	}
	return nil
}
