package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tuannvm/canvasflow/internal/config"
	"github.com/tuannvm/canvasflow/internal/graph"
	"github.com/tuannvm/canvasflow/internal/logging"
	"github.com/tuannvm/canvasflow/internal/tui"
)

func uiMain(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	parseGlobalFlags(fs)

	var (
		accessible bool
		configPath string
	)
	fs.BoolVar(&accessible, "accessible", false, "enable accessible mode for screen readers")
	configFlag(fs, &configPath)

	fs.Usage = func() {
		fmt.Print(`Usage: canvasflow ui [document] [flags]

Open the canvas editor. Drop agents from the palette, connect them,
configure each node and load example workflows.

Without a document you are asked to open a recent one or start a new one.
Smart defaults are read from your .canvasflow/config.yaml.

Arguments:
  [document]    Optional: workflow document (.json) to open or create

Flags:
  --accessible    Enable accessible mode for screen readers
  -c, --config    Config file path
  -v, --verbose   Log debug messages to the log file

Examples:
  canvasflow ui
  canvasflow ui ./workflow.json
  canvasflow ui --accessible
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	opts := config.DefaultEditorOptions(cfg)
	opts.ConfigPath = configPath
	opts.Accessible = opts.Accessible || accessible
	opts.Verbosity = config.Verbosity(verbose, quiet)

	if fs.NArg() > 0 {
		opts.DocumentPath = fs.Arg(0)
	} else {
		result, err := tui.RunLauncher(tui.LauncherOptions{
			Accessible:  opts.Accessible,
			DefaultPath: opts.DocumentPath,
		})
		if err != nil {
			return err
		}
		if result.Cancelled {
			logInfo("Cancelled")
			return nil
		}
		opts.DocumentPath = result.DocumentPath
	}
	path := opts.DocumentPath
	if !tui.IsDocumentPath(path) {
		return fmt.Errorf("document must be a .json file: %s", path)
	}

	owner := graph.NewOwner()
	if tui.FileExists(path) {
		snap, err := graph.Load(path)
		if err != nil {
			return err
		}
		if err := owner.Dispatch(snap.Replace()); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	logger, closer, err := logging.OpenFile(cfg.LogFile, opts.IsVerbose())
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
	defer cancel()
	client := cfg.Client()
	descs, err := cfg.CatalogProvider(client).AgentTypes(ctx)
	if err != nil {
		return err
	}
	logger.Info("Editing %s with %d agent types from %s", path, len(descs), cfg.APIURL)

	editor := tui.NewEditor(tui.EditorOptions{
		Owner:        owner,
		Catalog:      descs,
		Icons:        cfg.IconRegistry(),
		Remote:       client,
		Logger:       logger,
		DocumentPath: path,
		Accessible:   opts.Accessible,
		Timeout:      cfg.RequestTimeout(),
	})

	p := tea.NewProgram(editor, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("editor error: %w", err)
	}

	if status := editor.Status(); status != "" && !opts.IsQuiet() {
		logInfo("%s", status)
	}
	return nil
}
