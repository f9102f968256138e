package ui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"searchgrip/internal/config"
	"searchgrip/internal/domain"
	"searchgrip/internal/eventbus"
	"searchgrip/internal/ui/input"
	inputtypes "searchgrip/internal/ui/input/types"
	"searchgrip/internal/ui/views"
)

// Searcher runs one search cycle. *search.Controller satisfies it.
type Searcher interface {
	Search(ctx context.Context, trigger domain.Trigger) error
}

// HistoryRunner loads the history list on its own. *search.HistoryLoader satisfies it.
type HistoryRunner interface {
	Load(ctx context.Context) error
}

// Deps are the collaborators the model drives
type Deps struct {
	Config   *config.Config
	Searcher Searcher
	History  HistoryRunner
	Binding  *Binding
	Pager    Pager
	Bus      eventbus.EventBus // optional; receives ErrorEvents
	Logger   *slog.Logger
}

// Model represents the UI state
type Model struct {
	ctx    context.Context
	config *config.Config
	logger *slog.Logger

	width   int
	height  int
	help    help.Model
	spinner spinner.Model

	// lists as last rendered by the controller
	results  []string
	history  []string
	notice   string
	inFlight int

	searcher     Searcher
	historyRun   HistoryRunner
	binding      *Binding
	pager        Pager
	bus          eventbus.EventBus
	renderer     *views.Renderer
	inputHandler *input.Handler
}

// NewModel creates a new UI model. Searches run with ctx.
func NewModel(ctx context.Context, deps Deps) *Model {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	binding := deps.Binding
	if binding == nil {
		binding = NewBinding()
	}

	return &Model{
		ctx:          ctx,
		config:       cfg,
		logger:       logger,
		help:         help.New(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		searcher:     deps.Searcher,
		historyRun:   deps.History,
		binding:      binding,
		pager:        deps.Pager,
		bus:          deps.Bus,
		renderer:     views.NewRenderer(),
		inputHandler: input.New(inputtypes.DefaultKeyMap()),
	}
}

// SetProgram points the binding (and the ov pager, if used) at the running program
func (m *Model) SetProgram(p *tea.Program) {
	m.binding.SetSender(p)
	if ov, ok := m.pager.(*OvPager); ok {
		ov.SetProgram(p)
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.config.UI.LoadHistoryOnStart && m.historyRun != nil {
		cmds = append(cmds, m.startWork(m.loadHistoryCmd()))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		actions, cmd := m.inputHandler.HandleKey(msg, m)
		return m, tea.Batch(append([]tea.Cmd{cmd}, m.processActions(actions)...)...)

	case resultsMsg:
		m.results = msg.results
		return m, nil

	case historyMsg:
		m.history = msg.entries
		return m, nil

	case noticeMsg:
		m.notice = msg.err.Error()
		return m, nil

	case searchDoneMsg:
		m.finishWork(msg.err)
		return m, nil

	case historyDoneMsg:
		m.finishWork(msg.err)
		return m, nil

	case pagerMsg:
		if msg.err != nil {
			m.logger.Error("pager failed", "error", msg.err)
			m.notice = "pager: " + msg.err.Error()
			if m.bus != nil {
				m.bus.Publish(eventbus.ErrorEvent{Message: "pager failed", Err: msg.err})
			}
		}
		return m, nil

	case spinner.TickMsg:
		if m.inFlight == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, m.inputHandler.Update(msg)
}

func (m *Model) processActions(actions []inputtypes.Action) []tea.Cmd {
	var cmds []tea.Cmd
	for _, action := range actions {
		switch a := action.(type) {
		case inputtypes.UpdateTextAction:
			m.binding.SetTerm(a.Text)

		case inputtypes.SearchAction:
			if m.searcher == nil {
				continue
			}
			cmds = append(cmds, m.startWork(m.searchCmd(a.Trigger)))

		case inputtypes.OpenPagerAction:
			cmds = append(cmds, m.pagerCmd())

		case inputtypes.ToggleHelpAction:
			m.help.ShowAll = !m.help.ShowAll

		case inputtypes.QuitAction:
			cmds = append(cmds, tea.Quit)
		}
	}
	return cmds
}

// startWork counts a request in flight and starts the spinner for the first one
func (m *Model) startWork(cmd tea.Cmd) tea.Cmd {
	m.inFlight++
	if m.inFlight == 1 {
		return tea.Batch(cmd, m.spinner.Tick)
	}
	return cmd
}

// finishWork clears the notice when a cycle succeeds; a failure's notice has
// already arrived through the binding
func (m *Model) finishWork(err error) {
	if m.inFlight > 0 {
		m.inFlight--
	}
	if err == nil {
		m.notice = ""
	}
}

func (m *Model) searchCmd(trigger domain.Trigger) tea.Cmd {
	searcher, ctx := m.searcher, m.ctx
	return func() tea.Msg {
		return searchDoneMsg{err: searcher.Search(ctx, trigger)}
	}
}

func (m *Model) loadHistoryCmd() tea.Cmd {
	loader, ctx := m.historyRun, m.ctx
	return func() tea.Msg {
		return historyDoneMsg{err: loader.Load(ctx)}
	}
}

func (m *Model) pagerCmd() tea.Cmd {
	pager := m.pager
	content := m.renderer.PagerContent(m.results, m.history)
	return func() tea.Msg {
		if pager == nil {
			return pagerMsg{err: errNoPager}
		}
		return pagerMsg{err: pager.Show(content)}
	}
}

// HasContent reports whether either list has anything to page through
func (m *Model) HasContent() bool {
	return len(m.results) > 0 || len(m.history) > 0
}

// View renders the screen
func (m *Model) View() string {
	return m.renderer.Render(views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Input:         m.inputHandler.TextInput().View(),
		ButtonFocused: m.inputHandler.Focus() == inputtypes.FocusButton,
		Spinner:       m.spinner.View(),
		InFlight:      m.inFlight,
		Notice:        m.notice,
		Results:       m.results,
		History:       m.history,
		HelpView:      m.help.View(m.inputHandler.Keys()),
	})
}

// Results returns the rendered results list
func (m *Model) Results() []string { return m.results }

// History returns the rendered history list
func (m *Model) History() []string { return m.history }

// Notice returns the current error notice, empty when there is none
func (m *Model) Notice() string { return m.notice }

// InFlight is the number of unfinished search or history cycles
func (m *Model) InFlight() int { return m.inFlight }
