// Package cmd provides the CLI implementation using stdlib flag.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tuannvm/canvasflow/internal/catalog"
	"github.com/tuannvm/canvasflow/internal/config"
)

var (
	verbose bool
	quiet   bool
	version = "dev"
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

// Execute runs the CLI
func Execute() error {
	if len(os.Args) < 2 {
		printUsage()
		return nil
	}

	cmd := os.Args[1]

	// For simplicity, we expect: canvasflow <command> [flags] [args]

	switch cmd {
	case "ui":
		return uiMain(os.Args[2:])
	case "init":
		return initMain(os.Args[2:])
	case "agents":
		return agentsMain(os.Args[2:])
	case "examples":
		return examplesMain(os.Args[2:])
	case "instantiate":
		return instantiateMain(os.Args[2:])
	case "configure":
		return configureMain(os.Args[2:])
	case "serve":
		return serveMain(os.Args[2:])
	case "mcp":
		return mcpMain(os.Args[2:])
	case "version", "-v", "--version":
		fmt.Printf("canvasflow version %s\n", version)
		return nil
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func printUsage() {
	fmt.Print(`Canvasflow - Compose multi-agent pipelines on a canvas

Usage:
  canvasflow <command> [flags] [args]

Commands:
  ui [document]              Open the canvas editor
  init                       Initialize canvasflow configuration
  agents [type]              List agent types, or the fields of one type
  examples                   List example workflows
  instantiate <id>           Create a workflow document from an example
  configure <doc> <node>     Edit one node's configuration
  serve                      Run a local example backend
  mcp                        Run as an MCP server
  version                    Print version information
  help                       Show this help

Examples:
  canvasflow ui
  canvasflow ui ./workflow.json
  canvasflow agents -category communication
  canvasflow instantiate example_sales_outreach -o sales.json
  canvasflow configure sales.json sales_agent_1
  canvasflow serve -addr :8000

Run 'canvasflow <command> -h' for command-specific help.
`)
}

// Helper functions for logging
func logInfo(format string, args ...interface{}) {
	if !quiet {
		_, _ = fmt.Fprintf(os.Stdout, format+"\n", args...)
	}
}

func logVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		_, _ = fmt.Fprintf(os.Stdout, "[DEBUG] "+format+"\n", args...)
	}
}

// parseGlobalFlags registers -v and -q on fs
func parseGlobalFlags(fs *flag.FlagSet) {
	fs.BoolVar(&verbose, "v", false, "verbose output")
	fs.BoolVar(&verbose, "verbose", false, "verbose output")
	fs.BoolVar(&quiet, "q", false, "quiet output (errors only)")
	fs.BoolVar(&quiet, "quiet", false, "quiet output (errors only)")
}

// configFlag registers -c/-config on fs
func configFlag(fs *flag.FlagSet, path *string) {
	fs.StringVar(path, "c", "", "config file path")
	fs.StringVar(path, "config", "", "config file path")
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logVerbose("Backend: %s (timeout %ds)", cfg.APIURL, cfg.Timeout)
	return cfg, nil
}

// loadCatalog resolves agent types through the configured provider chain.
func loadCatalog(ctx context.Context, cfg *config.Config) ([]catalog.Descriptor, error) {
	descs, err := cfg.CatalogProvider(cfg.Client()).AgentTypes(ctx)
	if err != nil {
		return nil, err
	}
	logVerbose("Loaded %d agent types", len(descs))
	return descs, nil
}
