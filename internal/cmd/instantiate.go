package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/tuannvm/canvasflow/internal/api"
	"github.com/tuannvm/canvasflow/internal/graph"
	"github.com/tuannvm/canvasflow/internal/templates"
	"github.com/tuannvm/canvasflow/internal/tui"
)

func instantiateMain(args []string) error {
	fs := flag.NewFlagSet("instantiate", flag.ContinueOnError)
	parseGlobalFlags(fs)

	var (
		output     string
		force      bool
		configPath string
	)
	fs.StringVar(&output, "o", "", "output document (default: <id>.json)")
	fs.StringVar(&output, "output", "", "output document (default: <id>.json)")
	fs.BoolVar(&force, "f", false, "overwrite an existing document")
	fs.BoolVar(&force, "force", false, "overwrite an existing document")
	configFlag(fs, &configPath)

	fs.Usage = func() {
		fmt.Print(`Usage: canvasflow instantiate <id> [flags]

Create a workflow from an example and write it as a document that
'canvasflow ui' and 'canvasflow configure' can open.

Flags:
  -o, --output    Output document (default: <id>.json)
  -f, --force     Overwrite an existing document
  -c, --config    Config file path

Examples:
  canvasflow instantiate example_sales_outreach
  canvasflow instantiate example_customer_support -o support.json
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("example id required")
	}
	id := fs.Arg(0)
	if output == "" {
		output = id + ".json"
	}
	if !tui.IsDocumentPath(output) {
		return fmt.Errorf("document must be a .json file: %s", output)
	}
	if tui.FileExists(output) && !force {
		return fmt.Errorf("document already exists: %s (use -f to overwrite)", output)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	client := cfg.Client()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
	defer cancel()

	t, err := client.GetExample(ctx, id)
	if api.IsNotFound(err) {
		return fmt.Errorf("example not found: %s", id)
	}
	if err != nil {
		return err
	}
	logVerbose("Instantiating %s (%d agents)", t.ID, len(t.Agents))

	inst, err := client.Instantiate(ctx, t.ID)
	if err != nil {
		return fmt.Errorf("failed to instantiate %s: %w", t.ID, err)
	}

	result := templates.Result(t, inst)
	owner := graph.NewOwner()
	if err := owner.Dispatch(result.Command()); err != nil {
		return err
	}
	if err := graph.Save(output, owner.Snapshot()); err != nil {
		return err
	}

	if inst.Message != "" {
		logInfo("%s", inst.Message)
	}
	logInfo("Workflow %s written to %s", result.WorkflowID, output)
	if result.SampleInput != "" {
		logInfo("Try: %s", result.SampleInput)
	}
	return nil
}
