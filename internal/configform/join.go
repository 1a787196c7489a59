package configform

import (
	"github.com/tuannvm/canvasflow/internal/catalog"
	"github.com/tuannvm/canvasflow/internal/graph"
)

// WithCatalogSchema returns n with its descriptor replaced by the catalog
// entry for its agent type when n carries no schema of its own, as nodes
// loaded from a template do. The node's config is left alone.
func WithCatalogSchema(n graph.Node, descriptors []catalog.Descriptor) graph.Node {
	if n.Data.AgentMeta.ConfigSchema.Len() > 0 {
		return n
	}
	d, ok := catalog.Lookup(descriptors, n.Data.AgentType)
	if !ok {
		return n
	}
	n.Data.AgentMeta = d
	return n
}
