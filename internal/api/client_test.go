package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tuannvm/canvasflow/internal/catalog"
	"github.com/tuannvm/canvasflow/internal/examplesrv"
	"github.com/tuannvm/canvasflow/internal/templates"
)

func backend(t *testing.T) *Client {
	t.Helper()
	descs, _ := catalog.Builtin().AgentTypes(context.Background())
	srv := httptest.NewServer(examplesrv.New(templates.Builtin(), descs, nil, "").Handler())
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/")
}

func TestClientAgainstExampleServer(t *testing.T) {
	c := backend(t)
	ctx := context.Background()

	examples, err := c.ListExamples(ctx)
	if err != nil {
		t.Fatalf("ListExamples() error = %v", err)
	}
	if len(examples) != 5 {
		t.Fatalf("examples = %d, want 5", len(examples))
	}

	tmpl, err := c.GetExample(ctx, "example_hr_employee_search")
	if err != nil {
		t.Fatalf("GetExample() error = %v", err)
	}
	if tmpl.Agents[1].Config["channel"] != "#team-updates" {
		t.Errorf("agent config = %v", tmpl.Agents[1].Config)
	}

	inst, err := c.Instantiate(ctx, "example_hr_employee_search")
	if err != nil {
		t.Fatalf("Instantiate() error = %v", err)
	}
	if !strings.HasPrefix(inst.WorkflowID, "wf_") || inst.SampleInput != tmpl.SampleInput {
		t.Errorf("instantiation = %+v", inst)
	}

	types, err := c.AgentTypes(ctx)
	if err != nil {
		t.Fatalf("AgentTypes() error = %v", err)
	}
	d, ok := catalog.Lookup(types, "sales_intelligence")
	if !ok || d.ConfigSchema.Names()[0] != "connector" {
		t.Errorf("sales_intelligence = %+v", d)
	}

	schema, err := c.AgentSchema(ctx, "hubspot")
	if err != nil {
		t.Fatalf("AgentSchema() error = %v", err)
	}
	if f, ok := schema.Field("max_results"); !ok || f.Maximum == nil || *f.Maximum != 100 {
		t.Errorf("max_results = %+v", f)
	}
}

func TestClientNotFound(t *testing.T) {
	c := backend(t)
	_, err := c.Instantiate(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Errorf("error = %v, want 404", err)
	}
	var se *StatusError
	if !errors.As(err, &se) || !strings.Contains(se.Body, "Example not found") {
		t.Errorf("status error = %+v", se)
	}
}

func TestClientSendsBearerToken(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"examples":null}`))
	}))
	defer srv.Close()

	examples, err := NewClient(srv.URL, WithToken("secret")).ListExamples(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if auth != "Bearer secret" {
		t.Errorf("Authorization = %q", auth)
	}
	if examples == nil || len(examples) != 0 {
		t.Errorf("examples = %#v, want empty slice", examples)
	}
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"bad json", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{not json`))
		}},
		{"missing workflow id", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"sample_input":"x"}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			if _, err := NewClient(srv.URL).Instantiate(context.Background(), "x"); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithTimeout(20*time.Millisecond))
	if _, err := c.ListExamples(context.Background()); err == nil {
		t.Error("expected timeout error")
	}
}

func TestClientRejectsInvalidCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"agent_types":[{"id":"a","name":"A"}]}`))
	}))
	defer srv.Close()
	if _, err := NewClient(srv.URL).AgentTypes(context.Background()); err == nil {
		t.Error("descriptor without category should be rejected")
	}
}

var _ templates.Remote = (*Client)(nil)
var _ catalog.Provider = (*Client)(nil)
