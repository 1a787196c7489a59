package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tuannvm/canvasflow/internal/catalog"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %q, want %q", cfg.APIURL, DefaultAPIURL)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %d, want %d", cfg.Timeout, DefaultTimeout)
	}
	if cfg.LogFile != DefaultLogFile {
		t.Errorf("LogFile = %q, want %q", cfg.LogFile, DefaultLogFile)
	}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Errorf("RequestTimeout() = %v", cfg.RequestTimeout())
	}
}

func TestLoadWithDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// Minimal config - should get defaults applied
	minimalConfig := `
token: abc
catalog_path: ./agents.yaml
`
	if err := os.WriteFile(configPath, []byte(minimalConfig), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("Default api_url not applied: got %q", cfg.APIURL)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Default timeout not applied: got %d", cfg.Timeout)
	}
	if cfg.Token != "abc" || cfg.CatalogPath != "./agents.yaml" {
		t.Errorf("file values lost: %+v", cfg)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("api_url: http://file\ntimeout: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CANVASFLOW_API_URL", "http://env")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIURL != "http://env" {
		t.Errorf("APIURL = %q, want env value", cfg.APIURL)
	}
	if cfg.Timeout != 5 {
		t.Errorf("Timeout = %d, want 5", cfg.Timeout)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := &Config{
		APIURL:  "http://default",
		Timeout: 30,
	}

	// Set env vars using t.Setenv (auto cleanup)
	t.Setenv("CANVASFLOW_API_URL", "http://from-env")
	t.Setenv("CANVASFLOW_TIMEOUT", "90")
	t.Setenv("CANVASFLOW_TOKEN", "tok")

	cfg.ApplyEnvOverrides()

	if cfg.APIURL != "http://from-env" {
		t.Errorf("APIURL = %q, want %q", cfg.APIURL, "http://from-env")
	}
	if cfg.Timeout != 90 {
		t.Errorf("Timeout = %d, want 90", cfg.Timeout)
	}
	if cfg.Token != "tok" {
		t.Errorf("Token = %q, want %q", cfg.Token, "tok")
	}
}

func TestApplyEnvOverridesInvalidTimeout(t *testing.T) {
	cfg := &Config{Timeout: 30}

	// Invalid timeout should be ignored
	t.Setenv("CANVASFLOW_TIMEOUT", "invalid")
	cfg.ApplyEnvOverrides()
	if cfg.Timeout != 30 {
		t.Errorf("Invalid timeout should be ignored, got %d", cfg.Timeout)
	}

	t.Setenv("CANVASFLOW_TIMEOUT", "-5")
	cfg.ApplyEnvOverrides()
	if cfg.Timeout != 30 {
		t.Errorf("Negative timeout should be ignored, got %d", cfg.Timeout)
	}
}

func TestLoadNonexistentFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
	if _, err := LoadOrDefault("/nonexistent/config.yaml"); err == nil {
		t.Error("LoadOrDefault() should fail for an explicit missing path")
	}
}

func TestLoadOrDefaultWithoutFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("CANVASFLOW_TOKEN", "env-token")

	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.APIURL != DefaultAPIURL || cfg.Token != "env-token" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadSearchesLocations(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	if err := os.MkdirAll(Dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(Dir, "config.yml"), []byte("accessible: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Accessible {
		t.Error("config.yml in project directory not loaded")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// Use truly invalid YAML with mismatched brackets/structure
	invalidYAML := `
api_url: http://x
icons:
  - name: [unclosed bracket
  broken: {no closing brace
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() should return error for invalid YAML")
	}
}

func TestIconRegistry(t *testing.T) {
	cfg := Default()
	if got := cfg.IconRegistry().Glyph("mail"); got != catalog.DefaultIcons.Glyph("mail") {
		t.Errorf("Glyph(mail) = %q", got)
	}

	cfg.Icons = map[string]string{"mail": "M", "rocket": "R"}
	icons := cfg.IconRegistry()
	if icons.Glyph("mail") != "M" || icons.Glyph("rocket") != "R" {
		t.Errorf("overrides not applied")
	}
	if catalog.DefaultIcons.Glyph("mail") == "M" {
		t.Error("overrides leaked into the shared registry")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Default().Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# canvasflow configuration") {
		t.Errorf("missing header: %q", data)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.APIURL != DefaultAPIURL || cfg.Timeout != DefaultTimeout {
		t.Errorf("round trip = %+v", cfg)
	}
}

type offlineProvider struct{}

func (offlineProvider) AgentTypes(context.Context) ([]catalog.Descriptor, error) {
	return nil, errors.New("connection refused")
}

func TestCatalogProvider(t *testing.T) {
	local := filepath.Join(t.TempDir(), "agents.yaml")
	data := "agent_types:\n  - id: local_only\n    name: Local\n    category: action\n"
	if err := os.WriteFile(local, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		catalogPath string
		wantFirst   string
	}{
		{"local file wins", local, "local_only"},
		{"missing file falls through to builtin", filepath.Join(t.TempDir(), "missing.yaml"), "sales_intelligence"},
		{"no file falls back to builtin", "", "sales_intelligence"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.CatalogPath = tt.catalogPath
			ds, err := cfg.CatalogProvider(offlineProvider{}).AgentTypes(context.Background())
			if err != nil {
				t.Fatalf("AgentTypes() error = %v", err)
			}
			if len(ds) == 0 || ds[0].ID != tt.wantFirst {
				t.Errorf("first agent type = %v, want %s", ds, tt.wantFirst)
			}
		})
	}
}

func TestClientUsesConfiguredURL(t *testing.T) {
	cfg := Default()
	cfg.APIURL = "http://backend.internal:9000/"
	if got := cfg.Client().BaseURL(); got != "http://backend.internal:9000" {
		t.Errorf("BaseURL() = %q", got)
	}
}
