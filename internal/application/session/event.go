package session

import "github.com/tesso57/glean/internal/domain/highlight"

// Event is an input to the session. The set of events is closed.
type Event interface {
	isEvent()
}

type (
	// Start begins a session by requesting the first page.
	Start struct{}
	// Refresh reloads the review queue from scratch.
	Refresh struct{}

	// LoadBatch answers RequestLoad.
	LoadBatch struct {
		Token Token
		Items []highlight.Item
	}
	// AppendBatch answers RequestMore. An empty batch marks the end.
	AppendBatch struct {
		Token Token
		Items []highlight.Item
	}
	// SearchBatch answers RequestSearch.
	SearchBatch struct {
		Token Token
		Items []highlight.Item
	}
	// ExpandBatch answers RequestExpand.
	ExpandBatch struct {
		Token    Token
		AnchorID string
		Items    []highlight.Item
	}
	// RequestFailed reports that the request in Slot with Token failed.
	RequestFailed struct {
		Slot  Slot
		Token Token
		Err   error
	}

	LoadingStarted struct{}
	LoadingStopped struct{}

	MoveUp     struct{}
	MoveDown   struct{}
	GroupUp    struct{}
	GroupDown  struct{}
	MoveTop    struct{}
	MoveBottom struct{}

	// Focus moves focus to ID when it is displayed.
	Focus struct{ ID string }
	// Click focuses ID and toggles its selection.
	Click struct{ ID string }

	ToggleOne   struct{}
	ToggleGroup struct{}

	Integrate  struct{}
	Snooze     struct{}
	Archive    struct{}
	SnoozeAll  struct{}
	ArchiveAll struct{}

	// SubmitSearch runs a text search.
	SubmitSearch struct{ Query string }
	// SearchSimilar searches with the text of the resolved targets.
	SearchSimilar struct{}
	// Expand fetches the rest of the focused item's book.
	Expand struct{}
	// Escape clears the selection and leaves search mode.
	Escape  struct{}
	OpenURL struct{}
)

func (Start) isEvent()          {}
func (Refresh) isEvent()        {}
func (LoadBatch) isEvent()      {}
func (AppendBatch) isEvent()    {}
func (SearchBatch) isEvent()    {}
func (ExpandBatch) isEvent()    {}
func (RequestFailed) isEvent()  {}
func (LoadingStarted) isEvent() {}
func (LoadingStopped) isEvent() {}
func (MoveUp) isEvent()         {}
func (MoveDown) isEvent()       {}
func (GroupUp) isEvent()        {}
func (GroupDown) isEvent()      {}
func (MoveTop) isEvent()        {}
func (MoveBottom) isEvent()     {}
func (Focus) isEvent()          {}
func (Click) isEvent()          {}
func (ToggleOne) isEvent()      {}
func (ToggleGroup) isEvent()    {}
func (Integrate) isEvent()      {}
func (Snooze) isEvent()         {}
func (Archive) isEvent()        {}
func (SnoozeAll) isEvent()      {}
func (ArchiveAll) isEvent()     {}
func (SubmitSearch) isEvent()   {}
func (SearchSimilar) isEvent()  {}
func (Expand) isEvent()         {}
func (Escape) isEvent()         {}
func (OpenURL) isEvent()        {}
