// Package theme holds the colors and styles shared by every canvasflow view.
package theme

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Colors matching gum's aesthetic
var (
	ColorPrimary   = lipgloss.Color("6")   // Teal
	ColorSecondary = lipgloss.Color("14")  // Bright cyan
	ColorMuted     = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("196") // Red
	ColorAccent    = lipgloss.Color("99")  // Purple
)

// Banner returns the styled app banner
func Banner() string {
	logo := ` ┌─┐┌─┐┌┐┌┬  ┬┌─┐┌─┐┌─┐┬  ┌─┐┬ ┬
 │  ├─┤│││└┐┌┘├─┤└─┐├┤ │  │ ││││
 └─┘┴ ┴┘└┘ └┘ ┴ ┴└─┘└  ┴─┘└─┘└┴┘
`
	logoStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	tagline := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true).
		Render(" Drag, wire and configure agent pipelines.")

	return logoStyle.Render(logo) + "\n" + tagline + "\n"
}

// FormTheme returns a gum-inspired theme for forms
func FormTheme() *huh.Theme {
	t := huh.ThemeCharm()

	t.Focused.Title = t.Focused.Title.
		Foreground(ColorPrimary).
		Bold(true)

	t.Focused.SelectedOption = t.Focused.SelectedOption.
		Foreground(ColorSuccess)

	t.Focused.Description = t.Focused.Description.
		Foreground(ColorMuted)

	t.Blurred.Title = t.Blurred.Title.
		Foreground(ColorMuted)

	return t
}

// HeaderStyle returns styled header for panes
func HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(ColorMuted).
		Padding(0, 1).
		MarginBottom(1)
}

// TitleStyle returns style for section titles
func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)
}

// SuccessStyle returns style for success messages
func SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ColorSuccess)
}

// ErrorStyle returns style for failures
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ColorError)
}

// MutedStyle returns style for muted/secondary text
func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ColorMuted)
}

// TagStyle returns the style of small inline labels such as agent types
func TagStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ColorAccent)
}

// PaneStyle returns the bordered container used for the editor panes
func PaneStyle(focused bool) lipgloss.Style {
	border := ColorMuted
	if focused {
		border = ColorSecondary
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}
