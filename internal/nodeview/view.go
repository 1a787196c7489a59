// Package nodeview draws a single canvas node.
package nodeview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tuannvm/canvasflow/internal/catalog"
	"github.com/tuannvm/canvasflow/internal/graph"
	"github.com/tuannvm/canvasflow/internal/theme"
)

// Port glyphs drawn on the node's left (inbound) and right (outbound) edges.
const (
	InboundPort  = "○"
	OutboundPort = "●"
)

// Data is everything a node view needs. Icon is an icon key resolved
// through the shared registry.
type Data struct {
	Label     string
	AgentType string
	Config    map[string]any
	Icon      string
}

// FromNode extracts view data from a graph node.
func FromNode(n graph.Node) Data {
	return Data{
		Label:     n.Data.Label,
		AgentType: n.Data.AgentType,
		Config:    n.Data.Config,
		Icon:      n.Data.AgentMeta.Icon,
	}
}

// Configured reports whether config holds at least one key.
func Configured(config map[string]any) bool {
	return len(config) > 0
}

var (
	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.ColorMuted).
			Padding(0, 1)

	selectedBoxStyle = boxStyle.
				BorderStyle(lipgloss.ThickBorder()).
				BorderForeground(theme.ColorSecondary)

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(theme.ColorSuccess).
			Padding(0, 1)
)

// Render draws the node: a header with icon and label, a body with the
// agent type tag and the Configured badge, and the two connection ports.
func Render(d Data, icons catalog.Icons) string {
	return render(d, icons, boxStyle)
}

// RenderSelected draws the node with the selection highlight.
func RenderSelected(d Data, icons catalog.Icons) string {
	return render(d, icons, selectedBoxStyle)
}

func render(d Data, icons catalog.Icons, box lipgloss.Style) string {
	label := d.Label
	if label == "" {
		label = "Untitled"
	}

	header := lipgloss.NewStyle().Bold(true).Render(icons.Glyph(d.Icon) + " " + label)

	body := []string{theme.TagStyle().Render(d.AgentType)}
	if Configured(d.Config) {
		body = append(body, badgeStyle.Render("Configured"))
	}

	card := box.Render(header + "\n" + strings.Join(body, " "))
	mid := lipgloss.Height(card) / 2

	inbound := portColumn(lipgloss.Height(card), mid, InboundPort)
	outbound := portColumn(lipgloss.Height(card), mid, OutboundPort)
	return lipgloss.JoinHorizontal(lipgloss.Top, inbound, card, outbound)
}

func portColumn(height, at int, glyph string) string {
	lines := make([]string, height)
	for i := range lines {
		lines[i] = " "
	}
	if at >= 0 && at < height {
		lines[at] = glyph
	}
	return strings.Join(lines, "\n")
}
