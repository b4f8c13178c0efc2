package update

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/glean/internal/application/session"
	"github.com/tesso57/glean/internal/application/usecase"
	"github.com/tesso57/glean/internal/domain/highlight"
)

// PageLoadedMsg answers RequestLoad (Append false) or RequestMore.
type PageLoadedMsg struct {
	Token  session.Token
	Append bool
	Items  []highlight.Item
	Err    error
}

// SearchResultMsg answers RequestSearch.
type SearchResultMsg struct {
	Token session.Token
	Query string
	Items []highlight.Item
	Err   error
}

// ExpandedMsg answers RequestExpand.
type ExpandedMsg struct {
	Token    session.Token
	AnchorID string
	BookID   int64
	Items    []highlight.Item
	Err      error
}

// LifecycleDoneMsg reports a persisted status change or snooze.
type LifecycleDoneMsg struct {
	Action string
	IDs    []string
	Count  int
	Err    error
}

// SyncedMsg is emitted after pulling highlights from the provider.
type SyncedMsg struct {
	Result  usecase.SyncResult
	Elapsed time.Duration
	Err     error
}

// OpenedMsg is emitted after asking the OS to open a URL.
type OpenedMsg struct {
	URL string
	Err error
}

// IntentCmd turns a session intent into a command that performs it.
func IntentCmd(in session.Intent, deps Deps) tea.Cmd {
	switch in := in.(type) {
	case session.RequestLoad:
		return LoadPageCmd(deps.Review, in.Token, nil, false)
	case session.RequestMore:
		return LoadPageCmd(deps.Review, in.Token, in.After, true)
	case session.RequestSearch:
		return SearchCmd(deps.Review, in.Token, in.Query)
	case session.RequestExpand:
		return ExpandCmd(deps.Review, in)
	case session.RequestStatusChange:
		return ChangeStatusCmd(deps.Review, in)
	case session.RequestSnooze:
		return SnoozeCmd(deps.Review, in)
	case session.RequestOpenURL:
		return OpenURLCmd(deps.OpenURL, in.URL)
	default:
		return nil
	}
}

// LoadPageCmd loads the page after the cursor, or the first page when it is
// nil. appendPage marks the reply as an answer to RequestMore.
func LoadPageCmd(svc Reviewer, token session.Token, after *highlight.Item, appendPage bool) tea.Cmd {
	var cursor *highlight.Item
	if after != nil {
		c := *after
		cursor = &c
	}
	return func() tea.Msg {
		items, err := svc.LoadPage(context.Background(), cursor)
		return PageLoadedMsg{Token: token, Append: appendPage, Items: items, Err: err}
	}
}

// writesFirst runs the store writes in order and only then hands the reads
// to the runtime, so a page query never sees the store before a lifecycle
// change has landed.
func writesFirst(writes, reads []tea.Cmd) tea.Cmd {
	return func() tea.Msg {
		batch := make(tea.BatchMsg, 0, len(writes)+len(reads))
		for _, w := range writes {
			msg := w()
			batch = append(batch, func() tea.Msg { return msg })
		}
		return append(batch, reads...)
	}
}

func isWrite(in session.Intent) bool {
	switch in.(type) {
	case session.RequestStatusChange, session.RequestSnooze:
		return true
	}
	return false
}

// SearchCmd runs a search.
func SearchCmd(svc Reviewer, token session.Token, query string) tea.Cmd {
	return func() tea.Msg {
		items, err := svc.Search(context.Background(), query)
		return SearchResultMsg{Token: token, Query: query, Items: items, Err: err}
	}
}

// ExpandCmd loads the anchor's whole book.
func ExpandCmd(svc Reviewer, req session.RequestExpand) tea.Cmd {
	return func() tea.Msg {
		items, err := svc.Expand(context.Background(), req.BookID, req.HighlightID)
		return ExpandedMsg{Token: req.Token, AnchorID: req.AnchorID, BookID: req.BookID, Items: items, Err: err}
	}
}

// ChangeStatusCmd persists a status change.
func ChangeStatusCmd(svc Reviewer, req session.RequestStatusChange) tea.Cmd {
	ids := append([]string(nil), req.IDs...)
	items := append([]highlight.Item(nil), req.Items...)
	return func() tea.Msg {
		err := svc.ChangeStatus(context.Background(), ids, req.Status, items)
		return LifecycleDoneMsg{Action: actionName(req.Status), IDs: ids, Count: len(ids), Err: err}
	}
}

// SnoozeCmd persists a snooze.
func SnoozeCmd(svc Reviewer, req session.RequestSnooze) tea.Cmd {
	ids := append([]string(nil), req.IDs...)
	return func() tea.Msg {
		err := svc.Snooze(context.Background(), ids, req.Weeks)
		return LifecycleDoneMsg{Action: "snoozed", IDs: ids, Count: len(ids), Err: err}
	}
}

// SyncCmd pulls new highlights from the provider.
func SyncCmd(svc Reviewer) tea.Cmd {
	return func() tea.Msg {
		started := time.Now()
		res, err := svc.Sync(context.Background())
		return SyncedMsg{Result: res, Elapsed: time.Since(started), Err: err}
	}
}

// OpenURLCmd opens url with the platform opener.
func OpenURLCmd(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		if open == nil {
			return OpenedMsg{URL: url}
		}
		return OpenedMsg{URL: url, Err: open(url)}
	}
}

func actionName(status highlight.Status) string {
	switch status {
	case highlight.StatusIntegrated:
		return "integrated"
	case highlight.StatusArchived:
		return "archived"
	default:
		return "updated"
	}
}
