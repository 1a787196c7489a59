package cmd

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/tuannvm/canvasflow/internal/config"
	"github.com/tuannvm/canvasflow/internal/theme"
)

func initMain(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	parseGlobalFlags(fs)

	var (
		interactive bool
		force       bool
	)
	fs.BoolVar(&interactive, "i", false, "prompt for settings instead of writing defaults")
	fs.BoolVar(&interactive, "interactive", false, "prompt for settings instead of writing defaults")
	fs.BoolVar(&force, "f", false, "overwrite an existing config file")
	fs.BoolVar(&force, "force", false, "overwrite an existing config file")

	fs.Usage = func() {
		fmt.Print(`Usage: canvasflow init [flags]

Create a .canvasflow/config.yaml file in the current directory
with the default backend, timeout and log settings.

Flags:
  -i, --interactive   Prompt for backend URL and accessibility
  -f, --force         Overwrite an existing config file
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	configFile := filepath.Join(config.Dir, "config.yaml")

	// Check if already exists
	if _, err := os.Stat(configFile); err == nil && !force {
		return fmt.Errorf("config file already exists: %s", configFile)
	}

	cfg := config.Default()
	if interactive {
		if err := promptConfig(cfg); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				logInfo("Cancelled")
				return nil
			}
			return err
		}
	}

	if err := os.MkdirAll(config.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	logInfo("Created %s", configFile)
	logInfo("")
	logInfo("Start a local backend and open the editor:")
	logInfo("  canvasflow serve &")
	logInfo("  canvasflow ui")

	return nil
}

func promptConfig(cfg *config.Config) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Backend URL").
				Description("Serves /api/v1/examples and /api/v1/agents/types").
				Validate(func(s string) error {
					u, err := url.Parse(s)
					if err != nil || u.Scheme == "" || u.Host == "" {
						return errors.New("enter an absolute URL, e.g. http://localhost:8000")
					}
					return nil
				}).
				Value(&cfg.APIURL),
			huh.NewConfirm().
				Title("Accessible mode").
				Description("Plain prompts for screen readers").
				Affirmative("Yes").
				Negative("No").
				Value(&cfg.Accessible),
		),
	).WithTheme(theme.FormTheme()).Run()
}
