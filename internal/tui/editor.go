// Package tui holds the terminal editor: palette, canvas, configuration
// form and example loader composed around one graph owner.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/tuannvm/canvasflow/internal/catalog"
	"github.com/tuannvm/canvasflow/internal/configform"
	"github.com/tuannvm/canvasflow/internal/graph"
	"github.com/tuannvm/canvasflow/internal/logging"
	"github.com/tuannvm/canvasflow/internal/palette"
	"github.com/tuannvm/canvasflow/internal/templates"
	"github.com/tuannvm/canvasflow/internal/theme"
)

type pane int

const (
	paneCanvas pane = iota
	panePalette
	paneForm
)

// EditorOptions configures the editor
type EditorOptions struct {
	Owner        *graph.Owner
	Catalog      []catalog.Descriptor
	Icons        catalog.Icons
	Remote       templates.Remote
	Logger       logging.Logger
	DocumentPath string
	Accessible   bool
	Timeout      time.Duration
}

// Editor is the root bubbletea model. Children never touch the document;
// they dispatch commands to the owner, and the editor re-reads the owner
// when it renders.
type Editor struct {
	owner  *graph.Owner
	descs  []catalog.Descriptor
	icons  catalog.Icons
	logger logging.Logger
	path   string

	palette   palette.Model
	engine    *configform.Engine
	form      *configform.Form
	templates *templates.Instantiator

	focus    pane
	selected string
	source   string
	status   string
	failed   bool
	width    int
}

// NewEditor wires the components to opts.Owner.
func NewEditor(opts EditorOptions) *Editor {
	if opts.Owner == nil {
		opts.Owner = graph.NewOwner()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard
	}

	e := &Editor{
		owner:  opts.Owner,
		descs:  opts.Catalog,
		icons:  opts.Icons,
		logger: opts.Logger,
		path:   opts.DocumentPath,
	}
	e.palette = palette.NewModel(palette.New(opts.Catalog), opts.Icons)
	e.engine = configform.NewEngine(opts.Owner)
	e.form = configform.NewForm(e.engine, opts.Accessible)
	e.templates = templates.NewInstantiator(templates.Options{
		Remote:     opts.Remote,
		Dispatcher: opts.Owner,
		OnClose:    e.onTemplatesClosed,
		Logger:     opts.Logger,
		Icons:      opts.Icons,
		Timeout:    opts.Timeout,
	})
	e.owner.Subscribe(e.onEvent)
	return e
}

// Selected returns the id of the selected node.
func (e *Editor) Selected() string {
	return e.selected
}

// Status returns the status line text.
func (e *Editor) Status() string {
	return e.status
}

func (e *Editor) onEvent(ev graph.Event) {
	switch c := ev.Command.(type) {
	case graph.DropAgent:
		e.selectNode(ev.NodeID)
		e.setStatus("Added %s", label(ev.Document, ev.NodeID))
	case graph.RemoveNode:
		if e.selected == c.NodeID {
			e.selectNode("")
		}
		if e.source == c.NodeID {
			e.source = ""
		}
	case graph.ReplaceDocument:
		e.source = ""
		e.selectNode("")
		e.setStatus("Loaded %s (workflow %s)", c.Name, c.WorkflowID)
	case graph.Connect:
		e.setStatus("Connected %s to %s", label(ev.Document, c.Source), label(ev.Document, c.Target))
	}
}

func (e *Editor) onTemplatesClosed() {
	e.focus = paneCanvas
}

func (e *Editor) setStatus(format string, args ...interface{}) {
	e.status = fmt.Sprintf(format, args...)
	e.failed = false
}

func (e *Editor) setError(err error) {
	e.status = err.Error()
	e.failed = true
	e.logger.Error("%v", err)
}

// selectNode points the configuration form at id, or clears it.
func (e *Editor) selectNode(id string) tea.Cmd {
	e.selected = id
	n, ok := e.owner.Document().Node(id)
	if !ok {
		e.selected = ""
		e.engine.Select(nil)
		e.form.Rebuild()
		return nil
	}
	joined := configform.WithCatalogSchema(n, e.descs)
	e.engine.Select(&joined)
	e.form.Rebuild()
	return e.form.Init()
}

// Init implements tea.Model.
func (e *Editor) Init() tea.Cmd {
	return e.palette.Init()
}

// Update implements tea.Model.
func (e *Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.width = msg.Width
		e.palette.SetWidth(msg.Width / 4)
		return e, nil

	case palette.DragMsg:
		pos := dropPosition(len(e.owner.Document().Nodes))
		if err := e.owner.Dispatch(graph.DropAgent{Payload: msg.Payload, Position: pos}); err != nil {
			e.setError(err)
		}
		e.palette.Blur()
		e.focus = paneCanvas
		return e, e.form.Init()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return e, tea.Quit
		}
		if e.templates.IsOpen() {
			return e, e.templates.Update(msg)
		}
		switch e.focus {
		case panePalette:
			return e, e.updatePalette(msg)
		case paneForm:
			return e, e.updateForm(msg)
		}
		return e.updateCanvas(msg)
	}

	// Request results and spinner ticks.
	cmd := e.templates.Update(msg)
	if e.focus == paneForm {
		formCmd, err := e.form.Update(msg)
		if err != nil {
			e.setError(err)
		}
		cmd = tea.Batch(cmd, formCmd)
	}
	var palCmd tea.Cmd
	e.palette, palCmd = e.palette.Update(msg)
	return e, tea.Batch(cmd, palCmd)
}

func (e *Editor) updatePalette(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "esc" {
		e.palette.Blur()
		e.focus = paneCanvas
		return nil
	}
	var cmd tea.Cmd
	e.palette, cmd = e.palette.Update(msg)
	return cmd
}

func (e *Editor) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		e.focus = paneCanvas
		return nil
	case "ctrl+r":
		if err := e.form.Reset(); err != nil {
			e.setError(err)
			return nil
		}
		e.setStatus("Reset configuration of %s", e.engine.Label())
		return e.form.Init()
	}

	cmd, err := e.form.Update(msg)
	if err != nil {
		e.setError(err)
	}
	if f := e.form.Huh(); f != nil && f.State != huh.StateNormal {
		e.form.Rebuild()
		e.focus = paneCanvas
		return e.form.Init()
	}
	return cmd
}

func (e *Editor) updateCanvas(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	nodes := orderedNodes(e.owner.Document())

	switch msg.String() {
	case "q":
		return e, tea.Quit
	case "a":
		e.focus = panePalette
		return e, e.palette.Focus()
	case "t":
		return e, e.templates.SetOpen(true)
	case "right", "l", "down", "j", "tab":
		return e, e.moveSelection(nodes, 1)
	case "left", "h", "up", "k", "shift+tab":
		return e, e.moveSelection(nodes, -1)
	case "enter", "e":
		if e.selected != "" {
			e.focus = paneForm
		}
	case "c":
		e.connect()
	case "x", "delete":
		if e.selected != "" {
			if err := e.owner.Dispatch(graph.RemoveNode{NodeID: e.selected}); err != nil {
				e.setError(err)
			}
		}
	case "r":
		if e.selected != "" {
			if err := e.form.Reset(); err != nil {
				e.setError(err)
			}
		}
	case "s":
		e.save()
	}
	return e, nil
}

func (e *Editor) moveSelection(nodes []graph.Node, delta int) tea.Cmd {
	if len(nodes) == 0 {
		return nil
	}
	idx := -1
	for i, n := range nodes {
		if n.ID == e.selected {
			idx = i
		}
	}
	idx = (idx + delta + len(nodes)) % len(nodes)
	return e.selectNode(nodes[idx].ID)
}

// connect marks the selected node as the edge source, or, when a source is
// already marked, connects it to the selected node.
func (e *Editor) connect() {
	if e.selected == "" {
		return
	}
	if e.source == "" {
		e.source = e.selected
		e.setStatus("Select the target and press c")
		return
	}
	source := e.source
	e.source = ""
	if err := e.owner.Dispatch(graph.Connect{Source: source, Target: e.selected}); err != nil {
		e.setError(err)
	}
}

func (e *Editor) save() {
	if e.path == "" {
		e.setError(errors.New("no document path"))
		return
	}
	if invalid := e.engine.Invalid(); len(invalid) > 0 {
		e.setError(fmt.Errorf("not a number: %s", strings.Join(invalid, ", ")))
		return
	}
	if err := graph.Save(e.path, e.owner.Snapshot()); err != nil {
		e.setError(err)
		return
	}
	e.setStatus("Saved %s", e.path)
}

// View implements tea.Model.
func (e *Editor) View() string {
	header := theme.HeaderStyle().Render("canvasflow")
	if meta := e.owner.Meta(); meta.Name != "" {
		header += " " + theme.MutedStyle().Render(meta.Name)
		if meta.WorkflowID != "" {
			header += " " + theme.TagStyle().Render(meta.WorkflowID)
		}
	}

	var center string
	if e.templates.IsOpen() {
		center = e.templates.View()
	} else {
		center = theme.PaneStyle(e.focus == paneCanvas).Render(
			renderCanvas(e.owner.Document(), e.selected, e.source, e.descs, e.icons))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.PaneStyle(e.focus == panePalette).Render(e.palette.View()),
		center,
		theme.PaneStyle(e.focus == paneForm).Render(e.formView()),
	)

	status := theme.MutedStyle().Render(e.status)
	if e.failed {
		status = theme.ErrorStyle().Render(e.status)
	}
	help := theme.MutedStyle().Render("a add • t examples • ←/→ select • enter configure • c connect • x remove • r reset • s save • q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status, help)
}

func (e *Editor) formView() string {
	var sb strings.Builder
	sb.WriteString(theme.TitleStyle().Render("Configuration"))
	sb.WriteString("\n")
	if e.engine.State() == configform.Editing {
		sb.WriteString(theme.MutedStyle().Render(e.engine.Label()))
		sb.WriteString("\n")
	}
	sb.WriteString(e.form.View())
	return sb.String()
}
