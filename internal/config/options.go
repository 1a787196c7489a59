// options.go provides shared option definitions for CLI and TUI.
package config

import (
	"github.com/tuannvm/canvasflow/internal/palette"
)

// Option represents a selectable option with value and label
type Option struct {
	Value       string
	Label       string
	Description string
}

// CategoryOptions lists the palette category filters in cycle order.
var CategoryOptions = []Option{
	{Value: string(palette.All), Label: "All", Description: "Every agent type"},
	{Value: string(palette.DataRetrieval), Label: "Data", Description: "Fetch records from business systems"},
	{Value: string(palette.Communication), Label: "Communication", Description: "Email and chat"},
	{Value: string(palette.Action), Label: "Actions", Description: "Create or change records"},
}

// VerbosityNormal, VerbosityVerbose, VerbosityQuiet are verbosity constants
const (
	VerbosityNormal  = "normal"
	VerbosityVerbose = "verbose"
	VerbosityQuiet   = "quiet"
)

// EditorOptions contains the parameters shared by the editor entry points.
type EditorOptions struct {
	DocumentPath string
	ConfigPath   string
	Accessible   bool
	Verbosity    string
}

// DefaultEditorOptions returns EditorOptions with defaults from config
func DefaultEditorOptions(cfg *Config) EditorOptions {
	if cfg == nil {
		cfg = Default()
	}
	return EditorOptions{
		DocumentPath: "workflow.json",
		Accessible:   cfg.Accessible,
		Verbosity:    VerbosityNormal,
	}
}

// CategoryValues lists the accepted category filter values.
func CategoryValues() []string {
	values := make([]string, len(CategoryOptions))
	for i, o := range CategoryOptions {
		values[i] = o.Value
	}
	return values
}

// Verbosity maps the -v and -q flags to a verbosity level. Quiet wins.
func Verbosity(verbose, quiet bool) string {
	switch {
	case quiet:
		return VerbosityQuiet
	case verbose:
		return VerbosityVerbose
	}
	return VerbosityNormal
}

// IsVerbose returns true if verbosity is set to verbose
func (o EditorOptions) IsVerbose() bool {
	return o.Verbosity == VerbosityVerbose
}

// IsQuiet returns true if verbosity is set to quiet
func (o EditorOptions) IsQuiet() bool {
	return o.Verbosity == VerbosityQuiet
}
