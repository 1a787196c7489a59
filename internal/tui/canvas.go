package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tuannvm/canvasflow/internal/catalog"
	"github.com/tuannvm/canvasflow/internal/graph"
	"github.com/tuannvm/canvasflow/internal/nodeview"
	"github.com/tuannvm/canvasflow/internal/theme"
)

// Layout of dropped nodes, matching the spacing of the example workflows.
const (
	slotOriginX = 100
	slotOriginY = 150
	slotStepX   = 350
	slotStepY   = 150
	slotColumns = 3
)

// dropPosition returns the canvas slot for the n-th node.
func dropPosition(n int) graph.Position {
	return graph.Position{
		X: float64(slotOriginX + (n%slotColumns)*slotStepX),
		Y: float64(slotOriginY + (n/slotColumns)*slotStepY),
	}
}

// orderedNodes sorts nodes top to bottom, then left to right.
func orderedNodes(doc graph.Document) []graph.Node {
	nodes := append([]graph.Node(nil), doc.Nodes...)
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Position.Y != nodes[j].Position.Y {
			return nodes[i].Position.Y < nodes[j].Position.Y
		}
		return nodes[i].Position.X < nodes[j].Position.X
	})
	return nodes
}

// renderCanvas draws nodes in rows, grouped by their Y coordinate, and
// lists edges underneath.
func renderCanvas(doc graph.Document, selected, source string, descs []catalog.Descriptor, icons catalog.Icons) string {
	if len(doc.Nodes) == 0 {
		return theme.MutedStyle().Render("Empty canvas. Press a to add an agent or t to load an example.")
	}

	var rows []string
	var row []string
	rowY := -1.0
	for _, n := range orderedNodes(doc) {
		if n.Position.Y != rowY && len(row) > 0 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
		rowY = n.Position.Y

		data := nodeview.FromNode(n)
		if data.Icon == "" {
			if d, ok := catalog.Lookup(descs, n.Data.AgentType); ok {
				data.Icon = d.Icon
			}
		}
		var box string
		if n.ID == selected {
			box = nodeview.RenderSelected(data, icons)
		} else {
			box = nodeview.Render(data, icons)
		}
		if n.ID == source {
			box = lipgloss.JoinVertical(lipgloss.Left, box, theme.TagStyle().Render("source"))
		}
		row = append(row, box+" ")
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))

	var sb strings.Builder
	sb.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	if len(doc.Edges) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(theme.TitleStyle().Render("Edges"))
		for _, e := range doc.Edges {
			sb.WriteString(fmt.Sprintf("\n  %s %s %s", label(doc, e.Source), nodeview.OutboundPort+"→"+nodeview.InboundPort, label(doc, e.Target)))
		}
	}
	return sb.String()
}

func label(doc graph.Document, id string) string {
	if n, ok := doc.Node(id); ok && n.Data.Label != "" {
		return n.Data.Label
	}
	return id
}
