// Package templates turns server-defined example workflows into canvas
// documents.
package templates

import (
	"github.com/tuannvm/canvasflow/internal/graph"
)

// Agent is one agent slot of a template.
type Agent struct {
	ID       string         `json:"id" yaml:"id" validate:"required"`
	Name     string         `json:"name" yaml:"name" validate:"required"`
	Type     string         `json:"type" yaml:"type" validate:"required"`
	Position graph.Position `json:"position" yaml:"position"`
	Config   map[string]any `json:"config" yaml:"config"`
}

// EdgeRef connects two template agents by id.
type EdgeRef struct {
	Source string `json:"source" yaml:"source" validate:"required"`
	Target string `json:"target" yaml:"target" validate:"required"`
}

// Template is an example workflow as served by the examples endpoint.
type Template struct {
	ID          string    `json:"id" yaml:"id" validate:"required"`
	Name        string    `json:"name" yaml:"name" validate:"required"`
	Description string    `json:"description" yaml:"description"`
	Icon        string    `json:"icon" yaml:"icon"`
	Category    string    `json:"category" yaml:"category"`
	Agents      []Agent   `json:"agents" yaml:"agents" validate:"dive"`
	Edges       []EdgeRef `json:"edges" yaml:"edges" validate:"dive"`
	SampleInput string    `json:"sample_input" yaml:"sample_input"`
}

// AgentNames lists the agent names in template order.
func (t Template) AgentNames() []string {
	names := make([]string, 0, len(t.Agents))
	for _, a := range t.Agents {
		names = append(names, a.Name)
	}
	return names
}

// Instantiation is the server's answer to an instantiate request.
type Instantiation struct {
	WorkflowID  string `json:"workflow_id"`
	SampleInput string `json:"sample_input"`
	Message     string `json:"message,omitempty"`
}

// LoadResult is what a successful instantiation hands to the canvas owner.
type LoadResult struct {
	Name        string
	Document    graph.Document
	WorkflowID  string
	SampleInput string
}

// Command returns the command that installs the result, replacing the
// owner's current document.
func (r LoadResult) Command() graph.ReplaceDocument {
	return graph.ReplaceDocument{
		Name:        r.Name,
		Document:    r.Document,
		WorkflowID:  r.WorkflowID,
		SampleInput: r.SampleInput,
	}
}
