package graph

import (
	"github.com/tuannvm/canvasflow/internal/palette"
)

// Command is an intent sent by a component to the document owner.
type Command interface {
	command()
}

// Dispatcher accepts commands. The owner is the only implementation that
// mutates a document; components hold a Dispatcher, never the document.
type Dispatcher interface {
	Dispatch(cmd Command) error
}

// DispatchFunc adapts a function to Dispatcher.
type DispatchFunc func(cmd Command) error

// Dispatch implements Dispatcher.
func (f DispatchFunc) Dispatch(cmd Command) error {
	return f(cmd)
}

// DropAgent places a new node built from a palette drag payload.
type DropAgent struct {
	Payload  palette.Payload
	Position Position
}

// UpdateConfig replaces the config map of one node.
type UpdateConfig struct {
	NodeID string
	Config map[string]any
}

// Connect adds an edge between two existing nodes.
type Connect struct {
	Source string
	Target string
}

// RemoveNode deletes a node and every edge touching it.
type RemoveNode struct {
	NodeID string
}

// ReplaceDocument swaps the whole document, as done after a template load.
type ReplaceDocument struct {
	Name        string
	Document    Document
	WorkflowID  string
	SampleInput string
}

func (DropAgent) command()       {}
func (UpdateConfig) command()    {}
func (Connect) command()         {}
func (RemoveNode) command()      {}
func (ReplaceDocument) command() {}
