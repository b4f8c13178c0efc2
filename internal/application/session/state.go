// Package session holds the highlight review state machine.
//
// A State is changed only through Reduce, which maps an Event to a new State
// plus the Intents the host must carry out (fetches, persistence, opening a
// URL). Nothing in this package blocks or performs I/O.
package session

import (
	"github.com/tesso57/glean/internal/domain/highlight"
	"github.com/tesso57/glean/internal/domain/review"
)

// ScrollLookahead is how close to the end of the list focus must be before
// the next page is requested.
const ScrollLookahead = 5

// Mode selects which list is displayed.
type Mode int

const (
	// ModeNormal shows the review queue.
	ModeNormal Mode = iota
	// ModeSearch shows search results.
	ModeSearch
)

func (m Mode) String() string {
	if m == ModeSearch {
		return "search"
	}
	return "normal"
}

// Phase is the coarse state reported to the UI.
type Phase int

const (
	PhaseNormalIdle Phase = iota
	PhaseNormalLoading
	PhaseSearchIdle
	PhaseSearchLoading
)

func (p Phase) String() string {
	switch p {
	case PhaseNormalLoading:
		return "Normal.Loading"
	case PhaseSearchIdle:
		return "Search.Idle"
	case PhaseSearchLoading:
		return "Search.Loading"
	default:
		return "Normal.Idle"
	}
}

// Slot identifies a class of outstanding request. At most one request per
// slot is live; responses carrying an older token are dropped.
type Slot int

const (
	// SlotPage covers full loads and infinite-scroll appends.
	SlotPage Slot = iota
	// SlotSearch covers search requests.
	SlotSearch
	// SlotExpand covers book expansion requests.
	SlotExpand
	slotCount
)

func (s Slot) String() string {
	switch s {
	case SlotPage:
		return "page"
	case SlotSearch:
		return "search"
	case SlotExpand:
		return "expand"
	default:
		return "unknown"
	}
}

// Token tags a request so its response can be matched to the slot.
type Token uint64

// State is the full review session.
type State struct {
	Mode          Mode
	Items         []highlight.Item
	SearchResults []highlight.Item
	NormalFocus   string
	SearchFocus   string
	Checked       review.Set
	Loading       bool
	RequestedMore bool
	ReachedEnd    bool

	// Query is the text of the current or last search; Preview holds the
	// items the search was started from.
	Query   string
	Preview []highlight.Item

	SnoozeWeeks int

	tokens     [slotCount]Token
	pending    [slotCount]bool
	pageAppend bool
	// pageCursor is the last item delivered by a page; it is the keyset
	// position for RequestMore. Expanded book items never move it.
	pageCursor *highlight.Item
	expandMode Mode
}

// NewState returns an idle, empty Normal-mode session.
func NewState(snoozeWeeks int) State {
	if snoozeWeeks <= 0 {
		snoozeWeeks = highlight.DefaultSnoozeWeeks
	}
	return State{SnoozeWeeks: snoozeWeeks}
}

// Displayed returns the list currently shown.
func (s State) Displayed() []highlight.Item {
	if s.Mode == ModeSearch {
		return s.SearchResults
	}
	return s.Items
}

// FocusedID returns the focus of the displayed list, or "".
func (s State) FocusedID() string {
	if s.Mode == ModeSearch {
		return s.SearchFocus
	}
	return s.NormalFocus
}

// FocusIndex returns the position of the focused item, 0 when unfocused.
func (s State) FocusIndex() int {
	return review.IndexOf(s.Displayed(), s.FocusedID())
}

// Focused returns the focused item.
func (s State) Focused() (highlight.Item, bool) {
	return review.Find(s.Displayed(), s.FocusedID())
}

// Phase reports the state machine position.
func (s State) Phase() Phase {
	loading := s.Loading || s.RequestedMore
	switch {
	case s.Mode == ModeSearch && loading:
		return PhaseSearchLoading
	case s.Mode == ModeSearch:
		return PhaseSearchIdle
	case loading:
		return PhaseNormalLoading
	default:
		return PhaseNormalIdle
	}
}

// Token returns the current token of slot.
func (s State) Token(slot Slot) Token {
	return s.tokens[slot]
}

// Pending reports whether a request is outstanding in slot.
func (s State) Pending(slot Slot) bool {
	return s.pending[slot]
}

func (s *State) setFocus(id string) {
	if s.Mode == ModeSearch {
		s.SearchFocus = id
		return
	}
	s.NormalFocus = id
}

func (s *State) setDisplayed(list []highlight.Item) {
	if s.Mode == ModeSearch {
		s.SearchResults = list
		return
	}
	s.Items = list
}

func (s *State) issue(slot Slot) Token {
	s.tokens[slot]++
	s.pending[slot] = true
	return s.tokens[slot]
}

// accept reports whether a response for slot with tok is current, and
// retires the slot when it is.
func (s *State) accept(slot Slot, tok Token) bool {
	if !s.pending[slot] || s.tokens[slot] != tok {
		return false
	}
	s.pending[slot] = false
	return true
}

// cancel drops whatever is outstanding in slot.
func (s *State) cancel(slot Slot) {
	s.tokens[slot]++
	s.pending[slot] = false
}

func (s State) busy() bool {
	return (s.pending[SlotPage] && !s.pageAppend) || s.pending[SlotSearch] || s.pending[SlotExpand]
}

// Snapshot is the render-ready view of a State.
type Snapshot struct {
	Mode          Mode
	Phase         Phase
	Items         []highlight.Item
	FocusedID     string
	FocusIndex    int
	Checked       review.Set
	Loading       bool
	RequestedMore bool
	ReachedEnd    bool
	Query         string
	Preview       []highlight.Item
}

// Snapshot builds the render-ready view.
func (s State) Snapshot() Snapshot {
	return Snapshot{
		Mode:          s.Mode,
		Phase:         s.Phase(),
		Items:         s.Displayed(),
		FocusedID:     s.FocusedID(),
		FocusIndex:    s.FocusIndex(),
		Checked:       s.Checked,
		Loading:       s.Loading,
		RequestedMore: s.RequestedMore,
		ReachedEnd:    s.ReachedEnd,
		Query:         s.Query,
		Preview:       s.Preview,
	}
}
