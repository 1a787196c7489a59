package examplesrv

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/tuannvm/canvasflow/internal/catalog"
	"github.com/tuannvm/canvasflow/internal/templates"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	descs, err := catalog.Builtin().AgentTypes(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	s := New(templates.Builtin(), descs, nil, "")
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatal(err)
	}
	return m.GetCounter().GetValue()
}

func get(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestListExamples(t *testing.T) {
	ts := newTestServer(t)
	var body struct {
		Examples []templates.Template `json:"examples"`
	}
	if code := get(t, ts.URL+"/api/v1/examples/", &body); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(body.Examples) != 5 || body.Examples[0].ID != "example_sales_outreach" {
		t.Errorf("examples = %+v", body.Examples)
	}
}

func TestGetExample(t *testing.T) {
	ts := newTestServer(t)
	var tmpl templates.Template
	if code := get(t, ts.URL+"/api/v1/examples/example_marketing_campaign", &tmpl); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(tmpl.Agents) != 3 || len(tmpl.Edges) != 2 {
		t.Errorf("template = %+v", tmpl)
	}
	if code := get(t, ts.URL+"/api/v1/examples/nope", nil); code != http.StatusNotFound {
		t.Errorf("unknown example status = %d, want 404", code)
	}
}

func TestInstantiateMintsFreshIDs(t *testing.T) {
	ts := newTestServer(t)
	before := counterValue(t, InstantiationsTotal.WithLabelValues("example_sap_finance"))

	ids := map[string]bool{}
	for i := 0; i < 3; i++ {
		resp, err := http.Post(ts.URL+"/api/v1/examples/example_sap_finance/instantiate", "application/json", nil)
		if err != nil {
			t.Fatal(err)
		}
		var inst templates.Instantiation
		err = json.NewDecoder(resp.Body).Decode(&inst)
		_ = resp.Body.Close()
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusOK || !strings.HasPrefix(inst.WorkflowID, "wf_") || len(inst.WorkflowID) != 11 {
			t.Errorf("status %d instantiation %+v", resp.StatusCode, inst)
		}
		if inst.SampleInput == "" || inst.Message == "" {
			t.Errorf("instantiation = %+v", inst)
		}
		ids[inst.WorkflowID] = true
	}
	if len(ids) != 3 {
		t.Errorf("workflow ids not unique: %v", ids)
	}

	after := counterValue(t, InstantiationsTotal.WithLabelValues("example_sap_finance"))
	if after-before != 3 {
		t.Errorf("instantiations counter delta = %v, want 3", after-before)
	}
}

func TestInstantiateUnknown(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/api/v1/examples/nope/instantiate", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestAgentTypesAndSchema(t *testing.T) {
	ts := newTestServer(t)

	var types struct {
		AgentTypes []catalog.Descriptor `json:"agent_types"`
	}
	if code := get(t, ts.URL+"/api/v1/agents/types", &types); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if _, ok := catalog.Lookup(types.AgentTypes, "slack"); !ok {
		t.Error("slack missing from agent types")
	}

	var schema struct {
		AgentType    string         `json:"agent_type"`
		ConfigSchema catalog.Schema `json:"config_schema"`
	}
	if code := get(t, ts.URL+"/api/v1/agents/types/slack/schema", &schema); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if schema.AgentType != "slack" || !schema.ConfigSchema.IsRequired("channel") {
		t.Errorf("schema = %+v", schema)
	}

	if code := get(t, ts.URL+"/api/v1/agents/types/ghost/schema", nil); code != http.StatusNotFound {
		t.Errorf("unknown type status = %d", code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)
	if code := get(t, ts.URL+"/health", nil); code != http.StatusOK {
		t.Errorf("health status = %d", code)
	}
	get(t, ts.URL+"/api/v1/examples/", nil)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()
	buf := new(strings.Builder)
	if _, err := io.Copy(buf, resp.Body); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "canvasflow_examples_requests_total") {
		t.Error("metrics output missing request counter")
	}
}
