package templates

import (
	"fmt"
	"strings"

	"github.com/tuannvm/canvasflow/internal/theme"
)

// Messages shown in place of the list.
const (
	LoadingMessage    = "Loading examples..."
	NoExamplesMessage = "No examples available"
)

// View renders the template list with the expanded detail panel.
func (in *Instantiator) View() string {
	if !in.open {
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.TitleStyle().Render("Example workflows"))
	b.WriteString("\n\n")

	switch {
	case in.listing:
		b.WriteString(in.spinner.View() + " " + LoadingMessage)
		return theme.PaneStyle(true).Render(b.String())
	case len(in.examples) == 0:
		b.WriteString(theme.MutedStyle().Render(NoExamplesMessage))
		return theme.PaneStyle(true).Render(b.String())
	}

	for i, t := range in.examples {
		cursor := "  "
		if i == in.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s %s", cursor, in.icons.Glyph(t.Icon), t.Name)
		if t.Category != "" {
			line += " " + theme.TagStyle().Render(t.Category)
		}
		if in.pending == t.ID {
			line += " " + in.spinner.View()
		}
		b.WriteString(line + "\n")
		if t.Description != "" {
			b.WriteString("    " + theme.MutedStyle().Render(t.Description) + "\n")
		}
		if in.expanded == t.ID {
			b.WriteString(details(t))
		}
	}

	b.WriteString("\n" + theme.MutedStyle().Render("enter load • space details • esc close"))
	return theme.PaneStyle(true).Render(b.String())
}

func details(t Template) string {
	var b strings.Builder
	b.WriteString("    Agents:\n")
	for _, name := range t.AgentNames() {
		b.WriteString("      - " + name + "\n")
	}
	if t.SampleInput != "" {
		b.WriteString("    Sample input: " + t.SampleInput + "\n")
	}
	return b.String()
}
