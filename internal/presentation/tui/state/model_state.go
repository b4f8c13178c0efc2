package state

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/tesso57/glean/internal/application/session"
	"github.com/tesso57/glean/internal/application/settings"
)

// ModelState holds the presentation state for the TUI.
type ModelState struct {
	Screen    Screen
	Previous  Screen
	Session   *session.Controller
	TextInput textinput.Model
	Viewport  viewport.Model
	Help      help.Model
	Spinner   spinner.Model
	Keys      KeyMap
	Theme     settings.ThemeConfig
	Width     int
	Height    int
	// ListOffset is the first list row drawn in the sidebar.
	ListOffset    int
	DetailContent string
	Syncing       bool
	StatusMessage string
	Err           error
}

// Busy reports whether a spinner should be shown.
func (s *ModelState) Busy() bool {
	if s.Syncing {
		return true
	}
	if s.Session == nil {
		return false
	}
	snap := s.Session.Snapshot()
	return snap.Loading || snap.RequestedMore
}
