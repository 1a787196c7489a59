// Package config loads canvasflow settings from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tuannvm/canvasflow/internal/api"
	"github.com/tuannvm/canvasflow/internal/catalog"
)

// Dir is the per-project configuration directory.
const Dir = ".canvasflow"

// Defaults applied when a field is left empty.
const (
	DefaultAPIURL  = "http://localhost:8000"
	DefaultTimeout = 30
	DefaultLogFile = ".canvasflow/canvasflow.log"
)

// Config represents the canvasflow configuration
type Config struct {
	APIURL       string            `yaml:"api_url"`
	Timeout      int               `yaml:"timeout"`
	Token        string            `yaml:"token,omitempty"`
	CatalogPath  string            `yaml:"catalog_path,omitempty"`
	ExamplesPath string            `yaml:"examples_path,omitempty"`
	LogFile      string            `yaml:"log_file"`
	Accessible   bool              `yaml:"accessible"`
	Icons        map[string]string `yaml:"icons,omitempty"`
}

// Locations returns the files Load checks when no path is given, in order.
func Locations() []string {
	return []string{
		filepath.Join(Dir, "config.yaml"),
		filepath.Join(Dir, "config.yml"),
		filepath.Join(os.Getenv("HOME"), Dir, "config.yaml"),
	}
}

// Load reads config from file, checking multiple locations
func Load(path string) (*Config, error) {
	var configPath string

	if path != "" {
		configPath = path
	} else {
		for _, loc := range Locations() {
			if _, err := os.Stat(loc); err == nil {
				configPath = loc
				break
			}
		}
	}

	if configPath == "" {
		return nil, os.ErrNotExist
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}

	cfg.applyDefaults()
	cfg.ApplyEnvOverrides()

	return &cfg, nil
}

// LoadOrDefault loads the config, falling back to defaults (with env
// overrides) when no file exists. Other errors are returned.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if path == "" && os.IsNotExist(err) {
		cfg = Default()
		cfg.ApplyEnvOverrides()
		return cfg, nil
	}
	return nil, err
}

func (c *Config) applyDefaults() {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.LogFile == "" {
		c.LogFile = DefaultLogFile
	}
}

// ApplyEnvOverrides applies environment variable overrides to config
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("CANVASFLOW_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("CANVASFLOW_TIMEOUT"); v != "" {
		var timeout int
		if _, err := fmt.Sscanf(v, "%d", &timeout); err == nil && timeout > 0 {
			c.Timeout = timeout
		}
	}
	if v := os.Getenv("CANVASFLOW_TOKEN"); v != "" {
		c.Token = v
	}
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		APIURL:  DefaultAPIURL,
		Timeout: DefaultTimeout,
		LogFile: DefaultLogFile,
	}
}

// RequestTimeout returns the per-request timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// IconRegistry returns the built-in icon registry with configured overrides.
func (c *Config) IconRegistry() catalog.Icons {
	if len(c.Icons) == 0 {
		return catalog.DefaultIcons
	}
	return catalog.DefaultIcons.With(c.Icons)
}

// Client returns an API client for the configured backend.
func (c *Config) Client() *api.Client {
	opts := []api.Option{api.WithTimeout(c.RequestTimeout())}
	if c.Token != "" {
		opts = append(opts, api.WithToken(c.Token))
	}
	return api.NewClient(c.APIURL, opts...)
}

// CatalogProvider returns where agent types come from: the local catalog
// file when one is configured, then remote, then the built-in catalog.
func (c *Config) CatalogProvider(remote catalog.Provider) catalog.Provider {
	var chain catalog.Chain
	if c.CatalogPath != "" {
		chain = append(chain, catalog.File(c.CatalogPath))
	}
	if remote != nil {
		chain = append(chain, remote)
	}
	return append(chain, catalog.Builtin())
}

// Marshal renders the config as commented YAML, as written by init.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	header := strings.Join([]string{
		"# canvasflow configuration",
		"# api_url points at the workflow backend serving /api/v1/examples",
		"# and /api/v1/agents/types. Run `canvasflow serve` for a local one.",
		"",
		"",
	}, "\n")
	return append([]byte(header), data...), nil
}
