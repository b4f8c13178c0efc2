// Package intent parses user input into UI intents.
package intent

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/glean/internal/application/session"
	"github.com/tesso57/glean/internal/presentation/tui/state"
)

// Type represents a user intent.
type Type int

const (
	None Type = iota
	Quit
	ToggleHelp
	Up
	Down
	GroupUp
	GroupDown
	Top
	Bottom
	Toggle
	ToggleGroup
	Integrate
	Snooze
	Archive
	SnoozeAll
	ArchiveAll
	Open
	Search
	Similar
	Expand
	Back
	Refresh
	Sync
)

// Intent represents a parsed user intent.
type Intent struct {
	Type Type
}

// FromKeyMsg maps a key message to an intent.
func FromKeyMsg(msg tea.KeyMsg, keys state.KeyMap) Intent {
	bindings := []struct {
		binding key.Binding
		typ     Type
	}{
		{keys.Quit, Quit},
		{keys.Help, ToggleHelp},
		{keys.Up, Up},
		{keys.Down, Down},
		{keys.GroupUp, GroupUp},
		{keys.GroupDown, GroupDown},
		{keys.Top, Top},
		{keys.Bottom, Bottom},
		{keys.Toggle, Toggle},
		{keys.ToggleGroup, ToggleGroup},
		{keys.Integrate, Integrate},
		{keys.Snooze, Snooze},
		{keys.Archive, Archive},
		{keys.SnoozeAll, SnoozeAll},
		{keys.ArchiveAll, ArchiveAll},
		{keys.Open, Open},
		{keys.Search, Search},
		{keys.Similar, Similar},
		{keys.Expand, Expand},
		{keys.Back, Back},
		{keys.Refresh, Refresh},
		{keys.Sync, Sync},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return Intent{Type: b.typ}
		}
	}
	return Intent{Type: None}
}

// Event returns the session event an intent maps to directly, if any.
func (i Intent) Event() (session.Event, bool) {
	switch i.Type {
	case Up:
		return session.MoveUp{}, true
	case Down:
		return session.MoveDown{}, true
	case GroupUp:
		return session.GroupUp{}, true
	case GroupDown:
		return session.GroupDown{}, true
	case Top:
		return session.MoveTop{}, true
	case Bottom:
		return session.MoveBottom{}, true
	case Toggle:
		return session.ToggleOne{}, true
	case ToggleGroup:
		return session.ToggleGroup{}, true
	case Integrate:
		return session.Integrate{}, true
	case Snooze:
		return session.Snooze{}, true
	case Archive:
		return session.Archive{}, true
	case SnoozeAll:
		return session.SnoozeAll{}, true
	case ArchiveAll:
		return session.ArchiveAll{}, true
	case Open:
		return session.OpenURL{}, true
	case Similar:
		return session.SearchSimilar{}, true
	case Expand:
		return session.Expand{}, true
	case Back:
		return session.Escape{}, true
	case Refresh:
		return session.Refresh{}, true
	default:
		return nil, false
	}
}
