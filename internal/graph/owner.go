package graph

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/tuannvm/canvasflow/internal/palette"
)

// ErrUnknownNode is returned when a command references a node id that is
// not in the document.
var ErrUnknownNode = errors.New("unknown node")

// Meta describes where the current document came from.
type Meta struct {
	Name        string
	WorkflowID  string
	SampleInput string
}

// Event is delivered to subscribers after a command has been applied.
type Event struct {
	Command  Command
	NodeID   string
	Document Document
}

// Owner is the single writer of a graph document.
type Owner struct {
	mu          sync.RWMutex
	doc         Document
	meta        Meta
	subscribers []func(Event)
	newID       func() string
}

// NewOwner creates an owner holding an empty document.
func NewOwner() *Owner {
	return &Owner{
		doc:   Document{Nodes: []Node{}, Edges: []Edge{}},
		newID: newNodeID,
	}
}

func newNodeID() string {
	return "agent_" + uuid.NewString()[:8]
}

// Subscribe registers fn to run after every applied command.
func (o *Owner) Subscribe(fn func(Event)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.subscribers = append(o.subscribers, fn)
}

// Document returns a copy of the current document.
func (o *Owner) Document() Document {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.doc.Clone()
}

// Meta returns the origin of the current document.
func (o *Owner) Meta() Meta {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.meta
}

// Dispatch applies cmd and notifies subscribers synchronously.
func (o *Owner) Dispatch(cmd Command) error {
	o.mu.Lock()
	nodeID, err := o.apply(cmd)
	if err != nil {
		o.mu.Unlock()
		return err
	}
	event := Event{Command: cmd, NodeID: nodeID, Document: o.doc.Clone()}
	subscribers := append([]func(Event){}, o.subscribers...)
	o.mu.Unlock()

	for _, fn := range subscribers {
		fn(event)
	}
	return nil
}

func (o *Owner) apply(cmd Command) (string, error) {
	switch c := cmd.(type) {
	case DropAgent:
		desc, err := palette.Decode(c.Payload)
		if err != nil {
			return "", fmt.Errorf("drop rejected: %w", err)
		}
		node := Node{
			ID:       o.newID(),
			Type:     NodeTypeAgent,
			Position: c.Position,
			Data: NodeData{
				Label:     desc.Name,
				AgentType: desc.ID,
				Config:    map[string]any{},
				AgentMeta: desc,
			},
		}
		o.doc.Nodes = append(o.doc.Nodes, node)
		return node.ID, nil

	case UpdateConfig:
		i := o.doc.indexOf(c.NodeID)
		if i < 0 {
			return "", fmt.Errorf("%w: %s", ErrUnknownNode, c.NodeID)
		}
		o.doc.Nodes[i].Data.Config = CloneConfig(c.Config)
		return c.NodeID, nil

	case Connect:
		if o.doc.indexOf(c.Source) < 0 {
			return "", fmt.Errorf("%w: %s", ErrUnknownNode, c.Source)
		}
		if o.doc.indexOf(c.Target) < 0 {
			return "", fmt.Errorf("%w: %s", ErrUnknownNode, c.Target)
		}
		if !o.doc.HasEdge(c.Source, c.Target) {
			o.doc.Edges = append(o.doc.Edges, Edge{
				ID:     fmt.Sprintf("e_%s_%s", c.Source, c.Target),
				Source: c.Source,
				Target: c.Target,
			})
		}
		return c.Source, nil

	case RemoveNode:
		i := o.doc.indexOf(c.NodeID)
		if i < 0 {
			return "", fmt.Errorf("%w: %s", ErrUnknownNode, c.NodeID)
		}
		o.doc.Nodes = append(o.doc.Nodes[:i], o.doc.Nodes[i+1:]...)
		edges := o.doc.Edges[:0]
		for _, e := range o.doc.Edges {
			if e.Source != c.NodeID && e.Target != c.NodeID {
				edges = append(edges, e)
			}
		}
		o.doc.Edges = edges
		return c.NodeID, nil

	case ReplaceDocument:
		o.doc = c.Document.Clone()
		o.meta = Meta{Name: c.Name, WorkflowID: c.WorkflowID, SampleInput: c.SampleInput}
		return "", nil
	}

	return "", fmt.Errorf("unsupported command %T", cmd)
}
