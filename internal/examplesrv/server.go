// Package examplesrv serves example workflow templates and the agent
// catalog over the same endpoints as the workflow backend. It backs local
// development and tests of the editor.
package examplesrv

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tuannvm/canvasflow/internal/catalog"
	"github.com/tuannvm/canvasflow/internal/logging"
	"github.com/tuannvm/canvasflow/internal/templates"
)

// DefaultAddr is the listen address when none is given.
const DefaultAddr = ":8000"

// Server serves templates and agent types.
type Server struct {
	examples   []templates.Template
	agentTypes []catalog.Descriptor
	logger     logging.Logger
	newID      func() string
	server     *http.Server
}

// New creates a server over the given templates and catalog.
func New(examples []templates.Template, agentTypes []catalog.Descriptor, logger logging.Logger, addr string) *Server {
	if logger == nil {
		logger = logging.Discard
	}
	if addr == "" {
		addr = DefaultAddr
	}
	s := &Server{
		examples:   examples,
		agentTypes: agentTypes,
		logger:     logger,
		newID:      newWorkflowID,
	}
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}
	return s
}

func newWorkflowID() string {
	return "wf_" + uuid.NewString()[:8]
}

// Handler returns the routed handler, wrapped with logging and recovery.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/v1/examples/{$}", s.route("examples", s.handleList))
	mux.HandleFunc("GET /api/v1/examples/{id}", s.route("example", s.handleGet))
	mux.HandleFunc("POST /api/v1/examples/{id}/instantiate", s.route("instantiate", s.handleInstantiate))
	mux.HandleFunc("GET /api/v1/agents/types", s.route("agent_types", s.handleAgentTypes))
	mux.HandleFunc("GET /api/v1/agents/types/{type}/schema", s.route("agent_schema", s.handleSchema))
	return s.withRecovery(mux)
}

// Start runs the HTTP server (blocking)
func (s *Server) Start() error {
	s.logger.Info("Example server listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Example server stopping")
	return s.server.Shutdown(ctx)
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) int {
	return writeJSON(w, http.StatusOK, map[string]any{"examples": s.examples})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) int {
	t, ok := s.find(r.PathValue("id"))
	if !ok {
		return writeError(w, http.StatusNotFound, "Example not found")
	}
	return writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleInstantiate(w http.ResponseWriter, r *http.Request) int {
	t, ok := s.find(r.PathValue("id"))
	if !ok {
		return writeError(w, http.StatusNotFound, "Example not found")
	}

	id := s.newID()
	InstantiationsTotal.WithLabelValues(t.ID).Inc()
	s.logger.Verbose("instantiated %s as %s", t.ID, id)
	return writeJSON(w, http.StatusOK, templates.Instantiation{
		WorkflowID:  id,
		SampleInput: t.SampleInput,
		Message:     fmt.Sprintf("Created workflow from example: %s", t.Name),
	})
}

func (s *Server) handleAgentTypes(w http.ResponseWriter, _ *http.Request) int {
	return writeJSON(w, http.StatusOK, map[string]any{"agent_types": s.agentTypes})
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) int {
	agentType := r.PathValue("type")
	d, ok := catalog.Lookup(s.agentTypes, agentType)
	if !ok {
		return writeError(w, http.StatusNotFound, fmt.Sprintf("Agent type '%s' not found", agentType))
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"agent_type":    d.ID,
		"config_schema": d.ConfigSchema,
	})
}

func (s *Server) find(id string) (templates.Template, bool) {
	for _, t := range s.examples {
		if t.ID == id {
			return t, true
		}
	}
	return templates.Template{}, false
}

// route counts the handler's responses under name.
func (s *Server) route(name string, h func(http.ResponseWriter, *http.Request) int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := h(w, r)
		RequestsTotal.WithLabelValues(name, strconv.Itoa(code)).Inc()
		s.logger.Verbose("%s %s -> %d", r.Method, r.URL.Path, code)
	}
}

func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error("panic serving %s: %v", r.URL.Path, err)
				http.Error(w, `{"detail":"internal server error"}`, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, code int, v any) int {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
	return code
}

func writeError(w http.ResponseWriter, code int, detail string) int {
	return writeJSON(w, code, map[string]string{"detail": detail})
}
