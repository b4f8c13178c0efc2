// Package update holds UI update logic for the TUI.
package update

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/glean/internal/application/session"
	"github.com/tesso57/glean/internal/application/usecase"
	"github.com/tesso57/glean/internal/domain/highlight"
	"github.com/tesso57/glean/internal/infrastructure/logging"
	"github.com/tesso57/glean/internal/presentation/tui/intent"
	"github.com/tesso57/glean/internal/presentation/tui/metrics"
	"github.com/tesso57/glean/internal/presentation/tui/presenter"
	"github.com/tesso57/glean/internal/presentation/tui/state"
)

// Reviewer executes session requests.
type Reviewer interface {
	Sync(ctx context.Context) (usecase.SyncResult, error)
	LoadPage(ctx context.Context, after *highlight.Item) ([]highlight.Item, error)
	Search(ctx context.Context, query string) ([]highlight.Item, error)
	Expand(ctx context.Context, bookID int64, highlightID string) ([]highlight.Item, error)
	ChangeStatus(ctx context.Context, ids []string, status highlight.Status, items []highlight.Item) error
	Snooze(ctx context.Context, ids []string, weeks int) error
}

// Deps groups external dependencies for updates.
type Deps struct {
	Review  Reviewer
	Log     logging.Logger
	OpenURL func(string) error
}

func (d Deps) log() logging.Logger {
	if d.Log == nil {
		return logging.NewNop()
	}
	return d.Log
}

// Dispatch feeds ev to the session and runs the resulting intents.
func Dispatch(s *state.ModelState, ev session.Event, deps Deps) tea.Cmd {
	intents := s.Session.Dispatch(ev)
	Sync(s)

	var writes, cmds []tea.Cmd
	for _, in := range intents {
		cmd := IntentCmd(in, deps)
		switch {
		case cmd == nil:
		case isWrite(in):
			writes = append(writes, cmd)
		default:
			cmds = append(cmds, cmd)
		}
	}
	switch {
	case len(writes) > 0 && len(cmds) > 0:
		cmds = []tea.Cmd{writesFirst(writes, cmds)}
	case len(writes) > 0:
		cmds = writes
	case len(cmds) == 0:
		return nil
	}
	if s.Busy() {
		cmds = append(cmds, s.Spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// HandleKeyMsg processes key input based on the current screen.
func HandleKeyMsg(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit, true
	}
	switch s.Screen {
	case state.QuitScreen:
		return handleQuitScreen(s, msg)
	case state.SearchInputScreen:
		return handleSearchInput(s, msg, deps)
	}

	parsed := intent.FromKeyMsg(msg, s.Keys)
	if s.Help.ShowAll {
		if parsed.Type == intent.ToggleHelp || parsed.Type == intent.Back {
			s.Help.ShowAll = false
		}
		return nil, true
	}

	switch parsed.Type {
	case intent.None:
		return nil, false
	case intent.Quit:
		s.Previous = s.Screen
		s.Screen = state.QuitScreen
		return nil, true
	case intent.ToggleHelp:
		s.Help.ShowAll = true
		return nil, true
	case intent.Search:
		s.Screen = state.SearchInputScreen
		s.TextInput.SetValue(s.Session.Snapshot().Query)
		s.TextInput.CursorEnd()
		return s.TextInput.Focus(), true
	case intent.Sync:
		if s.Syncing {
			return nil, true
		}
		s.Syncing = true
		s.Err = nil
		s.StatusMessage = "Syncing highlights..."
		return tea.Batch(s.Spinner.Tick, SyncCmd(deps.Review)), true
	}

	ev, ok := parsed.Event()
	if !ok {
		return nil, false
	}
	s.Err = nil
	s.StatusMessage = ""
	return Dispatch(s, ev, deps), true
}

func handleQuitScreen(s *state.ModelState, msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "y", "Y":
		return tea.Quit, true
	case "n", "N", "esc", "q":
		s.Screen = s.Previous
		return nil, true
	}
	return nil, true
}

func handleSearchInput(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyEsc:
		s.Screen = state.ReviewScreen
		s.TextInput.Blur()
		return nil, true
	case tea.KeyEnter:
		query := strings.TrimSpace(s.TextInput.Value())
		s.Screen = state.ReviewScreen
		s.TextInput.Blur()
		if query == "" {
			return nil, true
		}
		s.Err = nil
		s.StatusMessage = ""
		return Dispatch(s, session.SubmitSearch{Query: query}, deps), true
	}
	var cmd tea.Cmd
	s.TextInput, cmd = s.TextInput.Update(msg)
	return cmd, true
}

// HandleMouseMsg focuses and toggles the clicked row.
func HandleMouseMsg(s *state.ModelState, msg tea.MouseMsg, deps Deps) tea.Cmd {
	if s.Screen != state.ReviewScreen || s.Help.ShowAll {
		return nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	lm := Layout(s)
	if msg.X >= lm.SidebarWidth {
		return nil
	}
	rows := presenter.BuildRows(s.Session.Snapshot())
	row, ok := presenter.RowAt(rows, s.ListOffset, msg.Y-metrics.SidebarTitleLines)
	if !ok || row.IsHeader() {
		return nil
	}
	return Dispatch(s, session.Click{ID: row.ID}, deps)
}

// HandleWindowSize updates layout sizing based on terminal size.
func HandleWindowSize(s *state.ModelState, msg tea.WindowSizeMsg) {
	s.Width = msg.Width
	s.Height = msg.Height
	s.TextInput.Width = clampMin(msg.Width/2, 20)
	Sync(s)
}

// HandlePageLoadedMsg applies a loaded page or reports its failure.
func HandlePageLoadedMsg(s *state.ModelState, msg PageLoadedMsg, deps Deps) tea.Cmd {
	if msg.Err != nil {
		fail(s, deps, "load highlights", msg.Err)
		return Dispatch(s, session.RequestFailed{Slot: session.SlotPage, Token: msg.Token, Err: msg.Err}, deps)
	}
	deps.log().Debug("page loaded",
		logging.Uint64("token", uint64(msg.Token)),
		logging.Int("items", len(msg.Items)))
	if msg.Append {
		return Dispatch(s, session.AppendBatch{Token: msg.Token, Items: msg.Items}, deps)
	}
	return Dispatch(s, session.LoadBatch{Token: msg.Token, Items: msg.Items}, deps)
}

// HandleSearchResultMsg applies search results or reports the failure.
func HandleSearchResultMsg(s *state.ModelState, msg SearchResultMsg, deps Deps) tea.Cmd {
	if msg.Err != nil {
		fail(s, deps, "search", msg.Err)
		return Dispatch(s, session.RequestFailed{Slot: session.SlotSearch, Token: msg.Token, Err: msg.Err}, deps)
	}
	deps.log().Info("search done", logging.Int("results", len(msg.Items)))
	if len(msg.Items) == 0 && s.Session.State().Token(session.SlotSearch) == msg.Token {
		s.StatusMessage = "No matching highlights"
	}
	return Dispatch(s, session.SearchBatch{Token: msg.Token, Items: msg.Items}, deps)
}

// HandleExpandedMsg inserts the anchor's book or reports the failure.
func HandleExpandedMsg(s *state.ModelState, msg ExpandedMsg, deps Deps) tea.Cmd {
	if msg.Err != nil {
		fail(s, deps, "expand source", msg.Err)
		return Dispatch(s, session.RequestFailed{Slot: session.SlotExpand, Token: msg.Token, Err: msg.Err}, deps)
	}
	deps.log().Debug("source expanded",
		logging.String("anchor", msg.AnchorID),
		logging.Int64("book_id", msg.BookID),
		logging.Int("items", len(msg.Items)))
	return Dispatch(s, session.ExpandBatch{Token: msg.Token, AnchorID: msg.AnchorID, Items: msg.Items}, deps)
}

// HandleLifecycleDoneMsg reports a persisted lifecycle change.
func HandleLifecycleDoneMsg(s *state.ModelState, msg LifecycleDoneMsg, deps Deps) {
	if msg.Err != nil {
		fail(s, deps, msg.Action, msg.Err)
		return
	}
	deps.log().Info("lifecycle change", logging.String("action", msg.Action), logging.Strings("ids", msg.IDs))
	s.StatusMessage = fmt.Sprintf("%d %s", msg.Count, msg.Action)
}

// HandleSyncedMsg reports a sync and reloads the queue.
func HandleSyncedMsg(s *state.ModelState, msg SyncedMsg, deps Deps) tea.Cmd {
	s.Syncing = false
	if msg.Err != nil {
		s.StatusMessage = ""
		if errors.Is(msg.Err, usecase.ErrNoProvider) {
			deps.log().Warn("sync skipped", logging.Error(msg.Err))
			s.Err = fmt.Errorf("sync: %w: set readwise.token or READWISE_TOKEN", msg.Err)
			return nil
		}
		fail(s, deps, "sync", msg.Err)
		return nil
	}
	deps.log().Info("sync done",
		logging.Duration("elapsed", msg.Elapsed),
		logging.Int("fetched", msg.Result.Fetched),
		logging.Int("new", msg.Result.New),
		logging.Int("deleted", msg.Result.Deleted))
	s.StatusMessage = fmt.Sprintf("Synced: %d fetched, %d new", msg.Result.Fetched, msg.Result.New)
	return Dispatch(s, session.Refresh{}, deps)
}

// HandleOpenedMsg reports a failure to open a URL.
func HandleOpenedMsg(s *state.ModelState, msg OpenedMsg, deps Deps) {
	if msg.Err != nil {
		fail(s, deps, "open "+msg.URL, msg.Err)
	}
}

func fail(s *state.ModelState, deps Deps, what string, err error) {
	deps.log().Error(what+" failed", logging.Error(err))
	s.Err = fmt.Errorf("%s: %w", what, err)
}
