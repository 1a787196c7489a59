package tui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/tuannvm/canvasflow/internal/theme"
)

const newDocument = "__new__"

// LauncherResult is the document the user chose to edit.
type LauncherResult struct {
	DocumentPath string
	New          bool
	Cancelled    bool
}

// LauncherOptions configures the launcher
type LauncherOptions struct {
	Accessible bool
	// DefaultPath pre-fills the "Save as" input.
	DefaultPath string
	// Documents overrides discovery when set.
	Documents []string
}

// RunLauncher asks which document to open when none was given on the
// command line.
func RunLauncher(opts LauncherOptions) (*LauncherResult, error) {
	accessible := opts.Accessible || !isTerminal()

	docs := opts.Documents
	if docs == nil {
		docs = DiscoverDocuments()
	}

	options := []huh.Option[string]{huh.NewOption("✚ New workflow", newDocument)}
	for _, d := range docs {
		options = append(options, huh.NewOption(d, d))
	}

	choice := newDocument
	path := opts.DefaultPath
	if path == "" {
		path = "workflow.json"
	}

	fmt.Println(theme.Banner())
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Workflow").
				Description("Open a saved document or start a new one").
				Options(options...).
				Height(8).
				Value(&choice),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Save as").
				Placeholder("workflow.json").
				Validate(func(s string) error {
					if !IsDocumentPath(s) {
						return errors.New("document must be a .json file")
					}
					return nil
				}).
				Value(&path),
		).WithHideFunc(func() bool { return choice != newDocument }),
	).WithTheme(theme.FormTheme()).WithAccessible(accessible)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return &LauncherResult{Cancelled: true}, nil
		}
		return nil, fmt.Errorf("form error: %w", err)
	}

	if choice == newDocument {
		return &LauncherResult{DocumentPath: path, New: true}, nil
	}
	return &LauncherResult{DocumentPath: choice}, nil
}

// isTerminal checks if stdout is a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
