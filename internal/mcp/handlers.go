package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/tuannvm/canvasflow/internal/catalog"
	"github.com/tuannvm/canvasflow/internal/config"
	"github.com/tuannvm/canvasflow/internal/configform"
	"github.com/tuannvm/canvasflow/internal/graph"
	"github.com/tuannvm/canvasflow/internal/nodeview"
	"github.com/tuannvm/canvasflow/internal/palette"
	"github.com/tuannvm/canvasflow/internal/templates"
)

// Handlers provides the business logic for MCP tool handlers.
// It can be used standalone or injected into the MCP server.
type Handlers struct {
	configPath string // Optional config file path
	verbose    bool
	remote     templates.Remote
	catalog    catalog.Provider
	logger     *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers() *Handlers {
	return &Handlers{logger: slog.Default()}
}

// WithConfigPath sets the config file path.
func (h *Handlers) WithConfigPath(path string) *Handlers {
	h.configPath = path
	return h
}

// WithVerbose enables verbose logging.
func (h *Handlers) WithVerbose(verbose bool) *Handlers {
	h.verbose = verbose
	return h
}

// WithRemote replaces the configured backend client.
func (h *Handlers) WithRemote(remote templates.Remote) *Handlers {
	h.remote = remote
	return h
}

// WithCatalog replaces the configured catalog chain.
func (h *Handlers) WithCatalog(p catalog.Provider) *Handlers {
	h.catalog = p
	return h
}

// loadConfig loads the config file or returns defaults.
func (h *Handlers) loadConfig() *config.Config {
	cfg, err := config.LoadOrDefault(h.configPath)
	if err != nil {
		h.logger.Warn("config not loaded, using defaults", "path", h.configPath, "error", err)
		return config.Default()
	}
	return cfg
}

func (h *Handlers) backend() templates.Remote {
	if h.remote != nil {
		return h.remote
	}
	return h.loadConfig().Client()
}

func (h *Handlers) agentTypes(ctx context.Context) ([]catalog.Descriptor, error) {
	p := h.catalog
	if p == nil {
		cfg := h.loadConfig()
		p = cfg.CatalogProvider(cfg.Client())
	}
	return p.AgentTypes(ctx)
}

// ListAgentTypes returns the palette entries matching the filters.
func (h *Handlers) ListAgentTypes(ctx context.Context, input ListAgentTypesInput) (ListAgentTypesOutput, error) {
	category := palette.All
	if input.Category != "" {
		c, ok := palette.ParseCategory(input.Category)
		if !ok {
			return ListAgentTypesOutput{}, fmt.Errorf("unknown category: %s", input.Category)
		}
		category = c
	}

	descs, err := h.agentTypes(ctx)
	if err != nil {
		return ListAgentTypesOutput{}, err
	}

	visible := palette.Filter(descs, input.Search, category)
	out := ListAgentTypesOutput{AgentTypes: make([]AgentTypeInfo, 0, len(visible))}
	for _, d := range visible {
		out.AgentTypes = append(out.AgentTypes, AgentTypeInfo{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Category:    string(d.Category),
			Icon:        d.Icon,
			Fields:      d.ConfigSchema.Names(),
		})
	}
	out.Count = len(out.AgentTypes)
	return out, nil
}

// GetAgentSchema describes the fields of one agent type.
func (h *Handlers) GetAgentSchema(ctx context.Context, input GetAgentSchemaInput) (GetAgentSchemaOutput, error) {
	if input.AgentType == "" {
		return GetAgentSchemaOutput{}, fmt.Errorf("agent_type is required")
	}
	descs, err := h.agentTypes(ctx)
	if err != nil {
		return GetAgentSchemaOutput{}, err
	}
	d, ok := catalog.Lookup(descs, input.AgentType)
	if !ok {
		return GetAgentSchemaOutput{}, fmt.Errorf("unknown agent type: %s", input.AgentType)
	}

	// A throwaway engine gives the same field view the form renders.
	preview := graph.Node{ID: "preview", Data: graph.NodeData{AgentType: d.ID, AgentMeta: d}}
	engine := configform.NewEngine(graph.DispatchFunc(func(graph.Command) error { return nil }))
	engine.Select(&preview)

	out := GetAgentSchemaOutput{AgentType: d.ID, Fields: []FieldInfo{}}
	for _, f := range engine.Fields() {
		fs, _ := d.ConfigSchema.Field(f.Name)
		out.Fields = append(out.Fields, FieldInfo{
			Name:        f.Name,
			Kind:        f.Kind.String(),
			Title:       f.Title,
			Description: f.Description,
			Default:     fs.Default,
			Options:     f.Options,
			Required:    f.Required,
			Hint:        f.Hint(),
		})
	}
	return out, nil
}

// ListExamples returns the templates offered by the backend.
func (h *Handlers) ListExamples(ctx context.Context, _ ListExamplesInput) (ListExamplesOutput, error) {
	ts, err := h.backend().ListExamples(ctx)
	if err != nil {
		return ListExamplesOutput{}, fmt.Errorf("failed to list examples: %w", err)
	}

	out := ListExamplesOutput{Examples: make([]ExampleInfo, 0, len(ts))}
	for _, t := range ts {
		out.Examples = append(out.Examples, ExampleInfo{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Agents:      t.AgentNames(),
			Edges:       len(t.Edges),
			SampleInput: t.SampleInput,
		})
	}
	out.Count = len(out.Examples)
	return out, nil
}

// InstantiateExample creates a workflow from a template and optionally
// writes the resulting document.
func (h *Handlers) InstantiateExample(ctx context.Context, input InstantiateExampleInput) (InstantiateExampleOutput, error) {
	if input.ExampleID == "" {
		return InstantiateExampleOutput{}, fmt.Errorf("example_id is required")
	}

	remote := h.backend()
	ts, err := remote.ListExamples(ctx)
	if err != nil {
		return InstantiateExampleOutput{}, fmt.Errorf("failed to list examples: %w", err)
	}
	var tmpl *templates.Template
	for i := range ts {
		if ts[i].ID == input.ExampleID {
			tmpl = &ts[i]
			break
		}
	}
	if tmpl == nil {
		return InstantiateExampleOutput{}, fmt.Errorf("example not found: %s", input.ExampleID)
	}

	inst, err := remote.Instantiate(ctx, tmpl.ID)
	if err != nil {
		return InstantiateExampleOutput{}, fmt.Errorf("failed to instantiate %s: %w", tmpl.ID, err)
	}
	result := templates.Result(*tmpl, inst)

	owner := graph.NewOwner()
	if err := owner.Dispatch(result.Command()); err != nil {
		return InstantiateExampleOutput{}, err
	}
	doc := owner.Document()

	out := InstantiateExampleOutput{
		WorkflowID:  result.WorkflowID,
		Name:        result.Name,
		Nodes:       len(doc.Nodes),
		Edges:       len(doc.Edges),
		SampleInput: result.SampleInput,
		Message:     inst.Message,
	}
	if input.OutputPath != "" {
		if err := graph.Save(input.OutputPath, owner.Snapshot()); err != nil {
			return InstantiateExampleOutput{}, err
		}
		out.OutputPath = input.OutputPath
	}
	if h.verbose {
		h.logger.Info("instantiated example", "example", tmpl.ID, "workflow_id", out.WorkflowID)
	}
	return out, nil
}

// ConfigureNode applies field values to one node of a saved document. The
// document is only written back when every number field holds a number.
func (h *Handlers) ConfigureNode(ctx context.Context, input ConfigureNodeInput) (ConfigureNodeOutput, error) {
	if input.DocumentPath == "" {
		return ConfigureNodeOutput{}, fmt.Errorf("document_path is required")
	}
	if input.NodeID == "" {
		return ConfigureNodeOutput{}, fmt.Errorf("node_id is required")
	}

	snap, err := graph.Load(input.DocumentPath)
	if err != nil {
		return ConfigureNodeOutput{}, err
	}
	owner := graph.NewOwner()
	if err := owner.Dispatch(snap.Replace()); err != nil {
		return ConfigureNodeOutput{}, err
	}
	node, ok := owner.Document().Node(input.NodeID)
	if !ok {
		return ConfigureNodeOutput{}, fmt.Errorf("%w: %s", graph.ErrUnknownNode, input.NodeID)
	}

	descs, err := h.agentTypes(ctx)
	if err != nil {
		h.logger.Warn("catalog unavailable, using the document's schema", "error", err)
	}
	node = configform.WithCatalogSchema(node, descs)

	engine := configform.NewEngine(owner)
	engine.Select(&node)
	if input.Reset {
		if err := engine.Reset(); err != nil {
			return ConfigureNodeOutput{}, err
		}
	}

	kinds := make(map[string]configform.Kind)
	for _, f := range engine.Fields() {
		kinds[f.Name] = f.Kind
	}
	names := make([]string, 0, len(input.Config))
	for name := range input.Config {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := input.Config[name]
		var err error
		if text, ok := value.(string); ok && kinds[name] == configform.Number {
			err = engine.SetNumber(name, text)
		} else {
			err = engine.Set(name, value)
		}
		if err != nil {
			if errors.Is(err, configform.ErrUnknownField) {
				return ConfigureNodeOutput{}, fmt.Errorf("%s has no field %q", node.Data.AgentType, name)
			}
			return ConfigureNodeOutput{}, err
		}
	}

	cfg := engine.Config()
	out := ConfigureNodeOutput{
		NodeID:     node.ID,
		Config:     printable(cfg),
		Configured: nodeview.Configured(cfg),
		Invalid:    engine.Invalid(),
	}
	if len(out.Invalid) > 0 {
		return out, nil
	}
	if err := graph.Save(input.DocumentPath, owner.Snapshot()); err != nil {
		return ConfigureNodeOutput{}, err
	}
	out.Saved = true
	return out, nil
}

// printable replaces values JSON cannot encode.
func printable(config map[string]any) map[string]any {
	out := graph.CloneConfig(config)
	for k, v := range out {
		if configform.IsInvalidNumber(v) {
			out[k] = configform.FormatNumber(v)
		}
	}
	return out
}
