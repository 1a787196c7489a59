package templates

import (
	"fmt"

	"github.com/tuannvm/canvasflow/internal/catalog"
	"github.com/tuannvm/canvasflow/internal/graph"
)

// Transform converts a template into a canvas document. Agent ids and
// positions are used as authored. Edge ids are regenerated as edge_<i>.
//
// Each node gets a stub descriptor whose schema declares no properties, so
// loaded nodes show no configurable fields until the caller joins them
// against a real catalog.
func Transform(t Template) graph.Document {
	doc := graph.Document{
		Nodes: make([]graph.Node, 0, len(t.Agents)),
		Edges: make([]graph.Edge, 0, len(t.Edges)),
	}

	for _, a := range t.Agents {
		doc.Nodes = append(doc.Nodes, graph.Node{
			ID:       a.ID,
			Type:     graph.NodeTypeAgent,
			Position: a.Position,
			Data: graph.NodeData{
				Label:     a.Name,
				AgentType: a.Type,
				Config:    graph.CloneConfig(a.Config),
				AgentMeta: catalog.Descriptor{
					ID:           a.Type,
					Name:         a.Name,
					ConfigSchema: catalog.Schema{},
				},
			},
		})
	}

	for i, e := range t.Edges {
		doc.Edges = append(doc.Edges, graph.Edge{
			ID:     fmt.Sprintf("edge_%d", i),
			Source: e.Source,
			Target: e.Target,
		})
	}

	return doc
}

// Result pairs a transformed template with the server-issued identity.
func Result(t Template, inst Instantiation) LoadResult {
	sample := inst.SampleInput
	if sample == "" {
		sample = t.SampleInput
	}
	return LoadResult{
		Name:        t.Name,
		Document:    Transform(t),
		WorkflowID:  inst.WorkflowID,
		SampleInput: sample,
	}
}
