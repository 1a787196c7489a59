// Package mcp provides MCP (Model Context Protocol) server functionality for canvasflow.
// It exposes the agent catalog, the example templates and node configuration as MCP tools.
package mcp

// ListAgentTypesInput defines parameters for listing agent types.
type ListAgentTypesInput struct {
	Search   string `json:"search,omitempty" jsonschema:"Case-insensitive filter on name and description"`
	Category string `json:"category,omitempty" jsonschema:"Category filter: all/data_retrieval/communication/action (default: all)"`
}

// AgentTypeInfo describes one palette entry.
type AgentTypeInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Icon        string   `json:"icon"`
	Fields      []string `json:"fields"`
}

// ListAgentTypesOutput contains the visible agent types.
type ListAgentTypesOutput struct {
	AgentTypes []AgentTypeInfo `json:"agent_types"`
	Count      int             `json:"count"`
}

// GetAgentSchemaInput defines parameters for describing one agent type.
type GetAgentSchemaInput struct {
	AgentType string `json:"agent_type" jsonschema:"Agent type id, as returned by list_agent_types"`
}

// FieldInfo describes one configurable field and the widget it maps to.
type FieldInfo struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Default     any      `json:"default,omitempty"`
	Options     []string `json:"options,omitempty"`
	Required    bool     `json:"required,omitempty"`
	Hint        string   `json:"hint,omitempty"`
}

// GetAgentSchemaOutput contains the fields of an agent type in declaration order.
type GetAgentSchemaOutput struct {
	AgentType string      `json:"agent_type"`
	Fields    []FieldInfo `json:"fields"`
}

// ListExamplesInput defines parameters for listing example templates.
type ListExamplesInput struct{}

// ExampleInfo summarizes one example template.
type ExampleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Agents      []string `json:"agents"`
	Edges       int      `json:"edges"`
	SampleInput string   `json:"sample_input,omitempty"`
}

// ListExamplesOutput contains the available templates.
type ListExamplesOutput struct {
	Examples []ExampleInfo `json:"examples"`
	Count    int           `json:"count"`
}

// InstantiateExampleInput defines parameters for instantiating a template.
type InstantiateExampleInput struct {
	ExampleID  string `json:"example_id" jsonschema:"Template id, as returned by list_examples"`
	OutputPath string `json:"output_path,omitempty" jsonschema:"Write the resulting document to this .json file"`
}

// InstantiateExampleOutput contains the resulting workflow document.
type InstantiateExampleOutput struct {
	WorkflowID  string `json:"workflow_id"`
	Name        string `json:"name"`
	Nodes       int    `json:"nodes"`
	Edges       int    `json:"edges"`
	SampleInput string `json:"sample_input,omitempty"`
	OutputPath  string `json:"output_path,omitempty"`
	Message     string `json:"message,omitempty"`
}

// ConfigureNodeInput defines parameters for editing one node's config.
type ConfigureNodeInput struct {
	DocumentPath string         `json:"document_path" jsonschema:"Path to a saved workflow document (.json)"`
	NodeID       string         `json:"node_id" jsonschema:"Id of the node to configure"`
	Config       map[string]any `json:"config,omitempty" jsonschema:"Field values to set; numbers may be given as text"`
	Reset        bool           `json:"reset,omitempty" jsonschema:"Clear the node's config before applying values"`
}

// ConfigureNodeOutput contains the node's config after the edits.
type ConfigureNodeOutput struct {
	NodeID     string         `json:"node_id"`
	Config     map[string]any `json:"config"`
	Configured bool           `json:"configured"`
	Invalid    []string       `json:"invalid,omitempty"`
	Saved      bool           `json:"saved"`
}
