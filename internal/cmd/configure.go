package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/tuannvm/canvasflow/internal/configform"
	"github.com/tuannvm/canvasflow/internal/graph"
)

func configureMain(args []string) error {
	fs := flag.NewFlagSet("configure", flag.ContinueOnError)
	parseGlobalFlags(fs)

	var (
		accessible bool
		reset      bool
		configPath string
	)
	fs.BoolVar(&accessible, "accessible", false, "enable accessible mode for screen readers")
	fs.BoolVar(&reset, "reset", false, "clear the node's configuration before editing")
	configFlag(fs, &configPath)

	fs.Usage = func() {
		fmt.Print(`Usage: canvasflow configure <document> <node-id> [flags]

Edit the configuration of one node in a saved workflow document.
The fields come from the node's agent type in the catalog.

Flags:
  --accessible    Enable accessible mode for screen readers
  --reset         Clear every field before editing
  -c, --config    Config file path

Examples:
  canvasflow configure sales.json sales_agent_1
  canvasflow configure sales.json email_agent_1 --reset
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("document and node id required")
	}
	path, nodeID := fs.Arg(0), fs.Arg(1)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	snap, err := graph.Load(path)
	if err != nil {
		return err
	}
	owner := graph.NewOwner()
	if err := owner.Dispatch(snap.Replace()); err != nil {
		return err
	}
	node, ok := owner.Document().Node(nodeID)
	if !ok {
		return fmt.Errorf("%w: %s", graph.ErrUnknownNode, nodeID)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
	defer cancel()
	descs, err := loadCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	node = configform.WithCatalogSchema(node, descs)

	engine := configform.NewEngine(owner)
	engine.Select(&node)
	if !engine.HasFields() {
		logInfo("%s", configform.NoFieldsMessage)
		return nil
	}
	if reset {
		if err := engine.Reset(); err != nil {
			return err
		}
	}

	form := configform.NewForm(engine, accessible || cfg.Accessible)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			logInfo("Cancelled, %s not changed", path)
			return nil
		}
		return err
	}

	if invalid := engine.Invalid(); len(invalid) > 0 {
		return fmt.Errorf("not a number: %s; %s not changed", strings.Join(invalid, ", "), path)
	}
	if err := graph.Save(path, owner.Snapshot()); err != nil {
		return err
	}
	logInfo("Saved %s (%s)", path, engine.Label())
	return nil
}
