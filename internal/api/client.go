// Package api is the HTTP client for the workflow backend's examples and
// agent-type endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tuannvm/canvasflow/internal/catalog"
	"github.com/tuannvm/canvasflow/internal/templates"
)

// DefaultBaseURL is used when no API URL is configured.
const DefaultBaseURL = "http://localhost:8000"

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed (%d): %s", e.Code, e.Body)
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// Client is an HTTP client for the workflow backend.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken sends token as a bearer credential on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type examplesResponse struct {
	Examples []templates.Template `json:"examples"`
}

// ListExamples returns the example workflow templates.
func (c *Client) ListExamples(ctx context.Context) ([]templates.Template, error) {
	var resp examplesResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/examples/", &resp); err != nil {
		return nil, fmt.Errorf("failed to list examples: %w", err)
	}
	if resp.Examples == nil {
		resp.Examples = []templates.Template{}
	}
	return resp.Examples, nil
}

// GetExample returns one template.
func (c *Client) GetExample(ctx context.Context, id string) (templates.Template, error) {
	var t templates.Template
	if err := c.do(ctx, http.MethodGet, "/api/v1/examples/"+url.PathEscape(id), &t); err != nil {
		return templates.Template{}, fmt.Errorf("failed to get example %s: %w", id, err)
	}
	return t, nil
}

// Instantiate asks the backend to create a workflow from template id.
// Each call mints a new workflow id.
func (c *Client) Instantiate(ctx context.Context, id string) (templates.Instantiation, error) {
	var inst templates.Instantiation
	path := "/api/v1/examples/" + url.PathEscape(id) + "/instantiate"
	if err := c.do(ctx, http.MethodPost, path, &inst); err != nil {
		return templates.Instantiation{}, fmt.Errorf("failed to instantiate %s: %w", id, err)
	}
	if inst.WorkflowID == "" {
		return templates.Instantiation{}, fmt.Errorf("failed to instantiate %s: response has no workflow_id", id)
	}
	return inst, nil
}

type agentTypesResponse struct {
	AgentTypes []catalog.Descriptor `json:"agent_types"`
}

// AgentTypes implements catalog.Provider over the agent types endpoint.
func (c *Client) AgentTypes(ctx context.Context) ([]catalog.Descriptor, error) {
	var resp agentTypesResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/agents/types", &resp); err != nil {
		return nil, fmt.Errorf("failed to list agent types: %w", err)
	}
	if err := catalog.Validate(resp.AgentTypes); err != nil {
		return nil, err
	}
	return resp.AgentTypes, nil
}

type schemaResponse struct {
	AgentType    string         `json:"agent_type"`
	ConfigSchema catalog.Schema `json:"config_schema"`
}

// AgentSchema returns the configuration schema of one agent type.
func (c *Client) AgentSchema(ctx context.Context, agentType string) (catalog.Schema, error) {
	var resp schemaResponse
	path := "/api/v1/agents/types/" + url.PathEscape(agentType) + "/schema"
	if err := c.do(ctx, http.MethodGet, path, &resp); err != nil {
		return catalog.Schema{}, fmt.Errorf("failed to get schema for %s: %w", agentType, err)
	}
	return resp.ConfigSchema, nil
}

func (c *Client) do(ctx context.Context, method, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
