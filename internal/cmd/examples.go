package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/tuannvm/canvasflow/internal/api"
	"github.com/tuannvm/canvasflow/internal/templates"
)

func examplesMain(args []string) error {
	fs := flag.NewFlagSet("examples", flag.ContinueOnError)
	parseGlobalFlags(fs)

	var (
		id         string
		configPath string
	)
	fs.StringVar(&id, "id", "", "show one example in detail")
	configFlag(fs, &configPath)

	fs.Usage = func() {
		fmt.Print(`Usage: canvasflow examples [flags]

List the example workflows offered by the backend.

Flags:
  --id <id>       Show the agents, edges and sample input of one example
  -c, --config    Config file path

Examples:
  canvasflow examples
  canvasflow examples --id example_sales_outreach
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	client := cfg.Client()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
	defer cancel()

	if id != "" {
		t, err := client.GetExample(ctx, id)
		if api.IsNotFound(err) {
			return fmt.Errorf("example not found: %s", id)
		}
		if err != nil {
			return err
		}
		printExample(t)
		return nil
	}

	ts, err := client.ListExamples(ctx)
	if err != nil {
		return fmt.Errorf("failed to list examples from %s: %w", client.BaseURL(), err)
	}
	if len(ts) == 0 {
		logInfo("No examples available")
		return nil
	}

	icons := cfg.IconRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "\tID\tNAME\tAGENTS\tEDGES")
	for _, t := range ts {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", icons.Glyph(t.Icon), t.ID, t.Name, len(t.Agents), len(t.Edges))
	}
	return w.Flush()
}

func printExample(t templates.Template) {
	fmt.Printf("%s (%s)\n", t.Name, t.ID)
	if t.Description != "" {
		fmt.Printf("  %s\n", t.Description)
	}
	fmt.Println()
	fmt.Printf("Agents: %s\n", strings.Join(t.AgentNames(), ", "))

	names := make(map[string]string, len(t.Agents))
	for _, a := range t.Agents {
		names[a.ID] = a.Name
	}
	for _, e := range t.Edges {
		fmt.Printf("  %s → %s\n", names[e.Source], names[e.Target])
	}
	if t.SampleInput != "" {
		fmt.Printf("\nSample input:\n  %s\n", t.SampleInput)
	}
}
