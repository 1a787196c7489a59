package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tuannvm/canvasflow/internal/catalog"
	"github.com/tuannvm/canvasflow/internal/examplesrv"
	"github.com/tuannvm/canvasflow/internal/logging"
	"github.com/tuannvm/canvasflow/internal/templates"
)

func serveMain(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	parseGlobalFlags(fs)

	var (
		addr       string
		configPath string
	)
	fs.StringVar(&addr, "addr", examplesrv.DefaultAddr, "listen address")
	configFlag(fs, &configPath)

	fs.Usage = func() {
		fmt.Print(`Usage: canvasflow serve [flags]

Run a local backend serving the example workflows and the agent
catalog. Point api_url at it to use the editor without a remote backend.

Templates come from examples_path and agent types from catalog_path
when they are set in the config; otherwise the built-in ones are served.

Endpoints:
  GET  /api/v1/examples/
  GET  /api/v1/examples/{id}
  POST /api/v1/examples/{id}/instantiate
  GET  /api/v1/agents/types
  GET  /api/v1/agents/types/{type}/schema
  GET  /health
  GET  /metrics

Flags:
  --addr          Listen address (default: :8000)
  -c, --config    Config file path
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	examples := templates.Builtin()
	if cfg.ExamplesPath != "" {
		if examples, err = templates.LoadFile(cfg.ExamplesPath); err != nil {
			return err
		}
	}
	agentTypes := []catalog.Descriptor(catalog.Builtin())
	if cfg.CatalogPath != "" {
		if agentTypes, err = catalog.LoadFile(cfg.CatalogPath); err != nil {
			return err
		}
	}
	logVerbose("Serving %d examples and %d agent types", len(examples), len(agentTypes))

	logger := logging.NewStdLogger(verbose, quiet)
	srv := examplesrv.New(examples, agentTypes, logger, addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(ctx)
}
