// Package graph holds the canvas graph document and its single owner.
// Components never mutate the document directly; they send commands to
// the owner through a Dispatcher.
package graph

import (
	"github.com/tuannvm/canvasflow/internal/catalog"
)

// NodeTypeAgent is the only node type placed on the canvas.
const NodeTypeAgent = "agent"

// Position is a canvas coordinate.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// NodeData is the payload rendered by the node view and edited by the
// configuration form.
type NodeData struct {
	Label     string             `json:"label"`
	AgentType string             `json:"agentType"`
	Config    map[string]any     `json:"config"`
	AgentMeta catalog.Descriptor `json:"agentMeta"`
}

// Node is one agent placed on the canvas.
type Node struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

// Edge is a directed connection between two nodes.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Document is the node/edge pair making up a composition.
type Document struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node returns the node with the given id.
func (d Document) Node(id string) (Node, bool) {
	if i := d.indexOf(id); i >= 0 {
		return d.Nodes[i], true
	}
	return Node{}, false
}

// HasEdge reports whether an edge source->target exists.
func (d Document) HasEdge(source, target string) bool {
	for _, e := range d.Edges {
		if e.Source == source && e.Target == target {
			return true
		}
	}
	return false
}

func (d Document) indexOf(id string) int {
	for i, n := range d.Nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy; config maps are copied one level deep.
func (d Document) Clone() Document {
	out := Document{
		Nodes: make([]Node, len(d.Nodes)),
		Edges: make([]Edge, len(d.Edges)),
	}
	for i, n := range d.Nodes {
		n.Data.Config = CloneConfig(n.Data.Config)
		out.Nodes[i] = n
	}
	copy(out.Edges, d.Edges)
	return out
}

// CloneConfig copies a config map. A nil map becomes an empty one.
func CloneConfig(config map[string]any) map[string]any {
	out := make(map[string]any, len(config))
	for k, v := range config {
		out[k] = v
	}
	return out
}
