package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	oauth "github.com/tuannvm/oauth-mcp-proxy"
	mcpoauth "github.com/tuannvm/oauth-mcp-proxy/mcp"
)

const (
	// ServerName is the MCP server name.
	ServerName = "canvasflow"
	// ServerVersion is the MCP server version.
	ServerVersion = "1.0.0"
)

// ServerInstructions provides usage guidance for LLMs.
const ServerInstructions = `Canvasflow composes multi-agent pipelines from a catalog of agent types and a set of example workflows.

Available tools:
- list_agent_types: List the agent types that can be placed on a canvas
- get_agent_schema: Describe the configurable fields of one agent type
- list_examples: List example workflows offered by the backend
- instantiate_example: Create a workflow from an example and save it as a document
- configure_node: Set field values on one node of a saved document

Typical workflow:
1. Use list_examples to find a starting point
2. Use instantiate_example with output_path to write the workflow document
3. Use get_agent_schema to see the fields of a node's agent type
4. Use configure_node to fill in the fields`

// Transport names accepted by Run.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// ServerConfig holds configuration for creating an MCP server.
type ServerConfig struct {
	Name         string
	Version      string
	Instructions string
	Logger       *slog.Logger
	Handlers     *Handlers

	// Transport settings
	Port           int
	SessionTimeout time.Duration

	// OAuth settings (optional, http transport only)
	OAuth *OAuthConfig
}

// OAuthConfig holds OAuth-specific configuration.
type OAuthConfig struct {
	Provider  string // okta, google, azure, hmac
	Issuer    string
	Audience  string
	ServerURL string // Base URL for OAuth callbacks; defaults to http://localhost:<port>
}

// Validate checks the fields the OAuth proxy requires.
func (c *OAuthConfig) Validate() error {
	if c.Issuer == "" || c.Audience == "" {
		return errors.New("--issuer and --audience are required with --oauth")
	}
	return nil
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Name:           ServerName,
		Version:        ServerVersion,
		Instructions:   ServerInstructions,
		Logger:         slog.Default(),
		Handlers:       NewHandlers(),
		Port:           8080,
		SessionTimeout: 30 * time.Minute,
	}
}

// Server is the canvasflow MCP server and its transports.
type Server struct {
	mcpServer *mcp.Server
	config    *ServerConfig
	logger    *slog.Logger
}

// NewServer creates a server with every canvasflow tool registered.
// Zero fields of cfg take their DefaultServerConfig values.
func NewServer(cfg *ServerConfig) *Server {
	def := DefaultServerConfig()
	if cfg == nil {
		cfg = def
	}
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.Version == "" {
		cfg.Version = def.Version
	}
	if cfg.Instructions == "" {
		cfg.Instructions = def.Instructions
	}
	if cfg.Logger == nil {
		cfg.Logger = def.Logger
	}
	if cfg.Handlers == nil {
		cfg.Handlers = def.Handlers
	}
	if cfg.Port == 0 {
		cfg.Port = def.Port
	}
	if cfg.SessionTimeout == 0 {
		cfg.SessionTimeout = def.SessionTimeout
	}
	cfg.Handlers.logger = cfg.Logger

	mcpServer := mcp.NewServer(
		&mcp.Implementation{Name: cfg.Name, Version: cfg.Version},
		&mcp.ServerOptions{Instructions: cfg.Instructions, Logger: cfg.Logger},
	)
	registerTools(mcpServer, cfg.Handlers)

	return &Server{mcpServer: mcpServer, config: cfg, logger: cfg.Logger}
}

// Run serves on the named transport until ctx is cancelled or the
// transport fails.
func (s *Server) Run(ctx context.Context, transport string) error {
	switch transport {
	case TransportStdio:
		if s.config.OAuth != nil {
			return errors.New("OAuth requires the http transport")
		}
		s.logger.Info("serving MCP on stdio", "server", s.config.Name, "version", s.config.Version)
		err := s.mcpServer.Run(ctx, &mcp.StdioTransport{})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	case TransportHTTP:
		handler, err := s.HTTPHandler()
		if err != nil {
			return err
		}
		return s.serveHTTP(ctx, handler)
	}
	return fmt.Errorf("unknown transport: %s (use: %s, %s)", transport, TransportStdio, TransportHTTP)
}

// HTTPHandler returns the streamable HTTP endpoint at /mcp plus /health,
// behind OAuth when it is configured.
func (s *Server) HTTPHandler() (http.Handler, error) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	if s.config.OAuth == nil {
		// Streamable HTTP transport, protocol revision 2025-11-25
		mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return s.mcpServer
		}, &mcp.StreamableHTTPOptions{
			SessionTimeout: s.config.SessionTimeout,
			Logger:         s.logger,
		}))
		return mux, nil
	}

	oc := s.config.OAuth
	if err := oc.Validate(); err != nil {
		return nil, err
	}
	serverURL := oc.ServerURL
	if serverURL == "" {
		serverURL = fmt.Sprintf("http://localhost:%d", s.config.Port)
	}
	oauthServer, handler, err := mcpoauth.WithOAuth(mux, &oauth.Config{
		Provider:  oc.Provider,
		Issuer:    oc.Issuer,
		Audience:  oc.Audience,
		ServerURL: serverURL,
	}, s.mcpServer)
	if err != nil {
		return nil, fmt.Errorf("failed to create OAuth server: %w", err)
	}
	mux.Handle("/mcp", handler)
	s.logger.Info("OAuth enabled", "provider", oc.Provider, "issuer", oc.Issuer, "server_url", serverURL)
	oauthServer.LogStartup(false)
	return mux, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, `{"status":"ok","name":%q,"version":%q}`, s.config.Name, s.config.Version)
}

// serveHTTP runs handler until ctx is done, then shuts down gracefully.
func (s *Server) serveHTTP(ctx context.Context, handler http.Handler) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving MCP over HTTP", "endpoint", fmt.Sprintf("http://localhost%s/mcp", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down MCP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// boolPtr creates a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// registerTools registers all canvasflow tools with the MCP server.
func registerTools(server *mcp.Server, h *Handlers) {
	registerListAgentTypesTool(server, h)
	registerGetAgentSchemaTool(server, h)
	registerListExamplesTool(server, h)
	registerInstantiateExampleTool(server, h)
	registerConfigureNodeTool(server, h)
}

func registerListAgentTypesTool(server *mcp.Server, h *Handlers) {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "list_agent_types",
			Description: "List the agent types in the palette. Filter by a search term on name and description, and by category (all, data_retrieval, communication, action).",
			Annotations: &mcp.ToolAnnotations{
				Title:          "List Agent Types",
				ReadOnlyHint:   true,
				IdempotentHint: true,
				OpenWorldHint:  boolPtr(true),
			},
		},
		func(ctx context.Context, req *mcp.CallToolRequest, input ListAgentTypesInput) (*mcp.CallToolResult, ListAgentTypesOutput, error) {
			output, err := h.ListAgentTypes(ctx, input)
			return nil, output, err
		},
	)
}

func registerGetAgentSchemaTool(server *mcp.Server, h *Handlers) {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "get_agent_schema",
			Description: "Describe the configurable fields of an agent type: widget kind (enum, boolean, number, text), options, default and range hint.",
			Annotations: &mcp.ToolAnnotations{
				Title:          "Get Agent Schema",
				ReadOnlyHint:   true,
				IdempotentHint: true,
				OpenWorldHint:  boolPtr(true),
			},
		},
		func(ctx context.Context, req *mcp.CallToolRequest, input GetAgentSchemaInput) (*mcp.CallToolResult, GetAgentSchemaOutput, error) {
			output, err := h.GetAgentSchema(ctx, input)
			return nil, output, err
		},
	)
}

func registerListExamplesTool(server *mcp.Server, h *Handlers) {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "list_examples",
			Description: "List the example workflows offered by the backend, with their agents and sample input.",
			Annotations: &mcp.ToolAnnotations{
				Title:          "List Examples",
				ReadOnlyHint:   true,
				IdempotentHint: true,
				OpenWorldHint:  boolPtr(true),
			},
		},
		func(ctx context.Context, req *mcp.CallToolRequest, input ListExamplesInput) (*mcp.CallToolResult, ListExamplesOutput, error) {
			output, err := h.ListExamples(ctx, input)
			return nil, output, err
		},
	)
}

func registerInstantiateExampleTool(server *mcp.Server, h *Handlers) {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "instantiate_example",
			Description: "Create a workflow from an example. Each call creates a new workflow id. Set output_path to save the resulting document.",
			Annotations: &mcp.ToolAnnotations{
				Title:           "Instantiate Example",
				ReadOnlyHint:    false,
				DestructiveHint: boolPtr(false),
				IdempotentHint:  false,
				OpenWorldHint:   boolPtr(true),
			},
		},
		func(ctx context.Context, req *mcp.CallToolRequest, input InstantiateExampleInput) (*mcp.CallToolResult, InstantiateExampleOutput, error) {
			output, err := h.InstantiateExample(ctx, input)
			return nil, output, err
		},
	)
}

func registerConfigureNodeTool(server *mcp.Server, h *Handlers) {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "configure_node",
			Description: "Set field values on one node of a saved workflow document. The document is not saved while a number field holds text that is not a number.",
			Annotations: &mcp.ToolAnnotations{
				Title:           "Configure Node",
				ReadOnlyHint:    false,
				DestructiveHint: boolPtr(false),
				IdempotentHint:  true,
				OpenWorldHint:   boolPtr(false),
			},
		},
		func(ctx context.Context, req *mcp.CallToolRequest, input ConfigureNodeInput) (*mcp.CallToolResult, ConfigureNodeOutput, error) {
			output, err := h.ConfigureNode(ctx, input)
			return nil, output, err
		},
	)
}
