package graph

import (
	"encoding/json"
	"fmt"
	"os"
)

// Snapshot is the on-disk form of a document together with its origin.
type Snapshot struct {
	Name        string `json:"name,omitempty"`
	WorkflowID  string `json:"workflow_id,omitempty"`
	SampleInput string `json:"sample_input,omitempty"`
	Nodes       []Node `json:"nodes"`
	Edges       []Edge `json:"edges"`
}

// Snapshot captures the current document and metadata.
func (o *Owner) Snapshot() Snapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()
	doc := o.doc.Clone()
	return Snapshot{
		Name:        o.meta.Name,
		WorkflowID:  o.meta.WorkflowID,
		SampleInput: o.meta.SampleInput,
		Nodes:       doc.Nodes,
		Edges:       doc.Edges,
	}
}

// Replace converts a snapshot into the command that installs it.
func (s Snapshot) Replace() ReplaceDocument {
	return ReplaceDocument{
		Name:        s.Name,
		Document:    Document{Nodes: s.Nodes, Edges: s.Edges},
		WorkflowID:  s.WorkflowID,
		SampleInput: s.SampleInput,
	}
}

// Save writes a snapshot as indented JSON.
func Save(path string, s Snapshot) error {
	if s.Nodes == nil {
		s.Nodes = []Node{}
	}
	if s.Edges == nil {
		s.Edges = []Edge{}
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// Load reads a snapshot written by Save.
func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read document: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse document %s: %w", path, err)
	}
	for i := range s.Nodes {
		if s.Nodes[i].Data.Config == nil {
			s.Nodes[i].Data.Config = map[string]any{}
		}
	}
	return s, nil
}
