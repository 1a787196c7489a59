package palette

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tuannvm/canvasflow/internal/catalog"
	"github.com/tuannvm/canvasflow/internal/theme"
)

// DragMsg is emitted when the user drags the highlighted entry out of the
// palette. The payload is the only thing the canvas receives.
type DragMsg struct {
	Payload Payload
}

// Model is the terminal widget around a Palette.
type Model struct {
	palette *Palette
	icons   catalog.Icons
	input   textinput.Model
	cursor  int
	focused bool
	width   int
}

// NewModel wraps p for display using the shared icon registry.
func NewModel(p *Palette, icons catalog.Icons) Model {
	ti := textinput.New()
	ti.Placeholder = "Search agents..."
	ti.Prompt = "/ "
	ti.CharLimit = 64
	return Model{palette: p, icons: icons, input: ti, width: 36}
}

// Palette returns the underlying palette.
func (m Model) Palette() *Palette {
	return m.palette
}

// Cursor returns the index of the highlighted visible entry.
func (m Model) Cursor() int {
	return m.cursor
}

// Focus gives the widget keyboard input.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.input.Focus()
}

// Blur releases keyboard input.
func (m *Model) Blur() {
	m.focused = false
	m.input.Blur()
}

// SetWidth sets the rendering width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles keys while focused: tab cycles the category, up/down move
// the highlight, enter drags the highlighted entry, anything else edits
// the search term.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab":
			m.palette.CycleCategory()
			m.clampCursor()
			return m, nil
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.palette.Visible())-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			return m, m.drag()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.palette.Search() {
		m.palette.SetSearch(m.input.Value())
		m.clampCursor()
	}
	return m, cmd
}

func (m *Model) clampCursor() {
	n := len(m.palette.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) drag() tea.Cmd {
	visible := m.palette.Visible()
	if m.cursor >= len(visible) {
		return nil
	}
	payload, err := m.palette.DragStart(visible[m.cursor])
	if err != nil {
		return nil
	}
	return func() tea.Msg {
		return DragMsg{Payload: payload}
	}
}

// View renders the search box, category selector and entries.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(theme.TitleStyle().Render("Agents"))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(m.categoryBar())
	sb.WriteString("\n\n")

	visible := m.palette.Visible()
	if len(visible) == 0 {
		sb.WriteString(theme.MutedStyle().Render("No agents found"))
		return sb.String()
	}

	desc := theme.MutedStyle().Width(m.width - 4)
	for i, d := range visible {
		marker := "  "
		name := d.Name
		if i == m.cursor && m.focused {
			marker = theme.SuccessStyle().Render("▸ ")
			name = lipgloss.NewStyle().Bold(true).Render(name)
		}
		sb.WriteString(fmt.Sprintf("%s%s %s\n", marker, m.icons.Glyph(d.Icon), name))
		if d.Description != "" {
			sb.WriteString("    " + desc.Render(d.Description) + "\n")
		}
	}
	return sb.String()
}

func (m Model) categoryBar() string {
	parts := make([]string, 0, len(CategoryFilters))
	for _, c := range CategoryFilters {
		label := CategoryLabel(c)
		if c == m.palette.Category() {
			parts = append(parts, theme.SuccessStyle().Render("["+label+"]"))
		} else {
			parts = append(parts, theme.MutedStyle().Render(label))
		}
	}
	return strings.Join(parts, " ")
}

// CategoryLabel is the human label of a category filter.
func CategoryLabel(c CategoryFilter) string {
	switch c {
	case All:
		return "All"
	case DataRetrieval:
		return "Data"
	case Communication:
		return "Comms"
	case Action:
		return "Action"
	}
	return string(c)
}
