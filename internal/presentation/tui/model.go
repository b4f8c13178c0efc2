package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/glean/internal/application/session"
	"github.com/tesso57/glean/internal/application/settings"
	"github.com/tesso57/glean/internal/infrastructure/logging"
	"github.com/tesso57/glean/internal/presentation/tui/state"
	"github.com/tesso57/glean/internal/presentation/tui/update"
	"github.com/tesso57/glean/internal/presentation/tui/view"
)

// Model represents the main application state.
type Model struct {
	settings settings.Settings
	review   update.Reviewer
	log      logging.Logger
	state    *state.ModelState
}

// NewModel creates a new application model.
func NewModel(cfg settings.Settings, review update.Reviewer, log logging.Logger) *Model {
	if log == nil {
		log = logging.NewNop()
	}
	return &Model{
		settings: cfg,
		review:   review,
		log:      log,
		state:    newModelState(cfg),
	}
}

// Init starts the session by loading the first page.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.state.Spinner.Tick,
		update.Dispatch(m.state, session.Start{}, m.deps()),
	)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := update.HandleKeyMsg(m.state, msg, m.deps())
		if handled {
			update.Sync(m.state)
			return m, cmd
		}
	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			break
		}
		return m, update.HandleMouseMsg(m.state, msg, m.deps())
	case tea.WindowSizeMsg:
		update.HandleWindowSize(m.state, msg)
	case update.PageLoadedMsg:
		cmds = append(cmds, update.HandlePageLoadedMsg(m.state, msg, m.deps()))
	case update.SearchResultMsg:
		cmds = append(cmds, update.HandleSearchResultMsg(m.state, msg, m.deps()))
	case update.ExpandedMsg:
		cmds = append(cmds, update.HandleExpandedMsg(m.state, msg, m.deps()))
	case update.LifecycleDoneMsg:
		update.HandleLifecycleDoneMsg(m.state, msg, m.deps())
	case update.SyncedMsg:
		cmds = append(cmds, update.HandleSyncedMsg(m.state, msg, m.deps()))
	case update.OpenedMsg:
		update.HandleOpenedMsg(m.state, msg, m.deps())
	}

	if m.state.Busy() {
		var cmd tea.Cmd
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Remaining input scrolls the detail pane.
	var cmd tea.Cmd
	m.state.Viewport, cmd = m.state.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the application view.
func (m *Model) View() string {
	return view.Render(m.buildProps())
}

// Snapshot exposes the session view for tests and diagnostics.
func (m *Model) Snapshot() session.Snapshot {
	return m.state.Session.Snapshot()
}

func (m *Model) deps() update.Deps {
	return update.Deps{
		Review:  m.review,
		Log:     m.log,
		OpenURL: openBrowser,
	}
}

func newModelState(cfg settings.Settings) *state.ModelState {
	return &state.ModelState{
		Screen:    state.ReviewScreen,
		Session:   session.NewController(cfg.Review.SnoozeWeeks),
		TextInput: newTextInput(),
		Viewport:  newViewport(),
		Help:      help.New(),
		Spinner:   newSpinner(cfg.Theme),
		Keys:      state.NewKeyMap(cfg.KeyMap),
		Theme:     cfg.Theme,
	}
}

func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "ideas about attention, habits, ..."
	ti.Prompt = "/ "
	ti.CharLimit = 512
	ti.Width = 40
	return ti
}

func newSpinner(theme settings.ThemeConfig) spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	accent := theme.Accent
	if accent == "" {
		accent = "205"
	}
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(accent))
	return s
}

func newViewport() viewport.Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)
	return vp
}
