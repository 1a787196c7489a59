package templates

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tuannvm/canvasflow/internal/catalog"
	"github.com/tuannvm/canvasflow/internal/graph"
	"github.com/tuannvm/canvasflow/internal/logging"
)

// Remote is the examples service.
type Remote interface {
	ListExamples(ctx context.Context) ([]Template, error)
	Instantiate(ctx context.Context, id string) (Instantiation, error)
}

// DefaultTimeout bounds each remote call.
const DefaultTimeout = 30 * time.Second

// listedMsg carries the result of ListExamples.
type listedMsg struct {
	gen      uint64
	examples []Template
	err      error
}

// instantiatedMsg carries the result of Instantiate.
type instantiatedMsg struct {
	gen      uint64
	template Template
	result   Instantiation
	err      error
}

// Options configures an Instantiator.
type Options struct {
	Remote     Remote
	Dispatcher graph.Dispatcher
	// OnClose runs after a successful load and when the user dismisses
	// the list.
	OnClose func()
	Logger  logging.Logger
	Icons   catalog.Icons
	Timeout time.Duration
}

// Instantiator lists example templates and materializes one into the
// canvas. Each open, close and load starts a new generation; responses
// from an older generation are dropped.
type Instantiator struct {
	remote     Remote
	dispatcher graph.Dispatcher
	onClose    func()
	logger     logging.Logger
	icons      catalog.Icons
	timeout    time.Duration
	spinner    spinner.Model

	open       bool
	generation uint64
	listing    bool
	pending    string
	examples   []Template
	expanded   string
	cursor     int
}

// NewInstantiator creates a closed instantiator.
func NewInstantiator(opts Options) *Instantiator {
	if opts.Logger == nil {
		opts.Logger = logging.Discard
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	return &Instantiator{
		remote:     opts.Remote,
		dispatcher: opts.Dispatcher,
		onClose:    opts.OnClose,
		logger:     opts.Logger,
		icons:      opts.Icons,
		timeout:    opts.Timeout,
		spinner:    s,
		examples:   []Template{},
	}
}

// IsOpen reports whether the list is visible.
func (in *Instantiator) IsOpen() bool { return in.open }

// Examples returns the listed templates. It is empty until the list
// request succeeds and after it fails.
func (in *Instantiator) Examples() []Template { return in.examples }

// Expanded returns the id of the template whose details are shown.
func (in *Instantiator) Expanded() string { return in.expanded }

// Busy reports whether a request of the current generation is in flight.
func (in *Instantiator) Busy() bool { return in.listing || in.pending != "" }

// SetOpen shows or hides the list. Opening starts the list request.
func (in *Instantiator) SetOpen(open bool) tea.Cmd {
	if open == in.open {
		return nil
	}
	in.generation++
	in.open = open
	in.pending = ""
	in.expanded = ""
	in.cursor = 0
	if !open {
		in.listing = false
		return nil
	}

	in.listing = true
	in.examples = []Template{}
	return tea.Batch(in.list(in.generation), in.spinner.Tick)
}

// Close hides the list and notifies the owner.
func (in *Instantiator) Close() tea.Cmd {
	cmd := in.SetOpen(false)
	if in.onClose != nil {
		in.onClose()
	}
	return cmd
}

// Toggle expands the details of id, or collapses them when id is already
// expanded. No request is made.
func (in *Instantiator) Toggle(id string) {
	if in.expanded == id {
		in.expanded = ""
		return
	}
	in.expanded = id
}

// Load asks the server to instantiate template id.
func (in *Instantiator) Load(id string) tea.Cmd {
	if !in.open || in.pending != "" {
		return nil
	}
	t, ok := in.find(id)
	if !ok {
		return nil
	}
	in.generation++
	in.listing = false
	in.pending = id
	return tea.Batch(in.instantiate(in.generation, t), in.spinner.Tick)
}

func (in *Instantiator) find(id string) (Template, bool) {
	for _, t := range in.examples {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

func (in *Instantiator) list(gen uint64) tea.Cmd {
	remote, timeout := in.remote, in.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		examples, err := remote.ListExamples(ctx)
		return listedMsg{gen: gen, examples: examples, err: err}
	}
}

func (in *Instantiator) instantiate(gen uint64, t Template) tea.Cmd {
	remote, timeout := in.remote, in.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		result, err := remote.Instantiate(ctx, t.ID)
		return instantiatedMsg{gen: gen, template: t, result: result, err: err}
	}
}

// Update handles request results, spinner ticks and list keys.
func (in *Instantiator) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case listedMsg:
		if msg.gen != in.generation {
			in.logger.Verbose("dropping stale example list")
			return nil
		}
		in.listing = false
		if msg.err != nil {
			in.logger.Error("failed to list examples: %v", msg.err)
			in.examples = []Template{}
			return nil
		}
		in.examples = msg.examples
		if in.examples == nil {
			in.examples = []Template{}
		}
		return nil

	case instantiatedMsg:
		if msg.gen != in.generation {
			in.logger.Verbose("dropping stale instantiation of %s", msg.template.ID)
			return nil
		}
		in.pending = ""
		if msg.err != nil {
			in.logger.Error("failed to instantiate %s: %v", msg.template.ID, msg.err)
			return nil
		}
		return in.finish(Result(msg.template, msg.result))

	case spinner.TickMsg:
		if !in.Busy() {
			return nil
		}
		var cmd tea.Cmd
		in.spinner, cmd = in.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if !in.open {
			return nil
		}
		return in.handleKey(msg)
	}
	return nil
}

func (in *Instantiator) finish(result LoadResult) tea.Cmd {
	if in.dispatcher != nil {
		if err := in.dispatcher.Dispatch(result.Command()); err != nil {
			in.logger.Error("failed to load %s: %v", result.Name, err)
			return nil
		}
	}
	in.logger.Info("Loaded %s as workflow %s", result.Name, result.WorkflowID)
	return in.Close()
}

func (in *Instantiator) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q":
		return in.Close()
	case "up", "k":
		if in.cursor > 0 {
			in.cursor--
		}
	case "down", "j":
		if in.cursor < len(in.examples)-1 {
			in.cursor++
		}
	case " ", "right", "l":
		if t, ok := in.current(); ok {
			in.Toggle(t.ID)
		}
	case "enter":
		if t, ok := in.current(); ok {
			return in.Load(t.ID)
		}
	}
	return nil
}

func (in *Instantiator) current() (Template, bool) {
	if in.cursor < 0 || in.cursor >= len(in.examples) {
		return Template{}, false
	}
	return in.examples[in.cursor], true
}
