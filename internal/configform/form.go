package configform

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/tuannvm/canvasflow/internal/theme"
)

// Messages shown instead of a form.
const (
	EmptyMessage    = "Select a node to configure it."
	NoFieldsMessage = "This agent type has no configurable fields."
)

type binding struct {
	field Field
	text  *string
	flag  *bool
	last  string
}

func (b *binding) current() string {
	if b.flag != nil {
		return fmt.Sprint(*b.flag)
	}
	return *b.text
}

// Form binds an engine's fields to a huh form. After every update the
// bound values that changed are pushed through the engine, so each
// keystroke becomes one config change.
type Form struct {
	engine     *Engine
	accessible bool
	form       *huh.Form
	bindings   []*binding
}

// NewForm builds the form for the engine's current selection.
func NewForm(engine *Engine, accessible bool) *Form {
	f := &Form{engine: engine, accessible: accessible}
	f.Rebuild()
	return f
}

// Engine returns the engine the form edits.
func (f *Form) Engine() *Engine {
	return f.engine
}

// Huh returns the underlying huh form, or nil in the Empty state.
func (f *Form) Huh() *huh.Form {
	return f.form
}

// Rebuild regenerates fields from the engine. Call it after the selection
// changes or after Reset.
func (f *Form) Rebuild() {
	f.bindings = nil
	f.form = nil
	if f.engine.State() == Empty {
		return
	}

	var fields []huh.Field
	if !f.engine.HasFields() {
		fields = append(fields, huh.NewNote().
			Title(f.engine.Label()).
			Description(NoFieldsMessage))
	}
	for _, field := range f.engine.Fields() {
		fields = append(fields, f.bind(field))
	}

	f.form = huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(theme.FormTheme()).
		WithAccessible(f.accessible).
		WithShowHelp(false)
}

func (f *Form) bind(field Field) huh.Field {
	b := &binding{field: field}
	f.bindings = append(f.bindings, b)

	title := field.Title
	if field.Required {
		title += " *"
	}

	switch field.Kind {
	case Enum:
		value := field.Text()
		b.text = &value
		options := make([]huh.Option[string], 0, len(field.Options))
		for _, opt := range field.Options {
			options = append(options, huh.NewOption(opt, opt))
		}
		b.last = b.current()
		return huh.NewSelect[string]().
			Title(title).
			Description(field.Description).
			Options(options...).
			Value(b.text)

	case Boolean:
		value := field.Bool()
		b.flag = &value
		b.last = b.current()
		return huh.NewConfirm().
			Title(title).
			Description(field.Description).
			Affirmative("Yes").
			Negative("No").
			Value(b.flag)

	case Number:
		value := field.Text()
		b.text = &value
		b.last = b.current()
		desc := field.Description
		if hint := field.Hint(); hint != "" {
			if desc != "" {
				desc += " "
			}
			desc += "(" + hint + ")"
		}
		return huh.NewInput().
			Title(title).
			Description(desc).
			Placeholder(field.Placeholder).
			Value(b.text)
	}

	value := field.Text()
	b.text = &value
	b.last = b.current()
	return huh.NewInput().
		Title(title).
		Description(field.Description).
		Placeholder(field.Placeholder).
		Value(b.text)
}

// Sync pushes bound values that changed since the last sync.
func (f *Form) Sync() error {
	for _, b := range f.bindings {
		cur := b.current()
		if cur == b.last {
			continue
		}
		b.last = cur

		var err error
		switch b.field.Kind {
		case Boolean:
			err = f.engine.Set(b.field.Name, *b.flag)
		case Number:
			err = f.engine.SetNumber(b.field.Name, cur)
		default:
			err = f.engine.Set(b.field.Name, cur)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Reset clears the config and rebuilds the form.
func (f *Form) Reset() error {
	if err := f.engine.Reset(); err != nil {
		return err
	}
	f.Rebuild()
	return nil
}

// Init starts the embedded form.
func (f *Form) Init() tea.Cmd {
	if f.form == nil {
		return nil
	}
	return f.form.Init()
}

// Update forwards msg to the embedded form and syncs changed values.
func (f *Form) Update(msg tea.Msg) (tea.Cmd, error) {
	if f.form == nil {
		return nil, nil
	}
	m, cmd := f.form.Update(msg)
	if form, ok := m.(*huh.Form); ok {
		f.form = form
	}
	return cmd, f.Sync()
}

// View renders the form or a placeholder.
func (f *Form) View() string {
	if f.form == nil {
		return theme.MutedStyle().Render(EmptyMessage)
	}
	return f.form.View()
}

// Run shows the form standalone and syncs once it is submitted.
func (f *Form) Run() error {
	if f.form == nil {
		return ErrNoSelection
	}
	if err := f.form.Run(); err != nil {
		return err
	}
	return f.Sync()
}
