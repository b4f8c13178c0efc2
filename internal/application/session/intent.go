package session

import "github.com/tesso57/glean/internal/domain/highlight"

// Intent is a request from the session to the outside world.
type Intent interface {
	isIntent()
}

type (
	// RequestLoad asks for the first page of visible highlights.
	RequestLoad struct {
		Token Token
	}
	// RequestMore asks for the page after After, the last item delivered
	// by a page. After is nil when no page has delivered items yet. The
	// answer is always an AppendBatch.
	RequestMore struct {
		Token Token
		After *highlight.Item
	}
	// RequestSearch asks the search backend for Query.
	RequestSearch struct {
		Token Token
		Query string
	}
	// RequestExpand asks for every highlight of the anchor's book. BookID
	// is UnknownBookID when the book must be looked up from HighlightID.
	RequestExpand struct {
		Token       Token
		AnchorID    string
		BookID      int64
		HighlightID string
	}
	// RequestStatusChange persists a new status for IDs. Items carries the
	// affected highlights in display order.
	RequestStatusChange struct {
		IDs    []string
		Status highlight.Status
		Items  []highlight.Item
	}
	// RequestSnooze hides IDs for Weeks.
	RequestSnooze struct {
		IDs   []string
		Weeks int
	}
	// RequestOpenURL opens URL in the user's browser.
	RequestOpenURL struct {
		URL string
	}
)

func (RequestLoad) isIntent()         {}
func (RequestMore) isIntent()         {}
func (RequestSearch) isIntent()       {}
func (RequestExpand) isIntent()       {}
func (RequestStatusChange) isIntent() {}
func (RequestSnooze) isIntent()       {}
func (RequestOpenURL) isIntent()      {}
