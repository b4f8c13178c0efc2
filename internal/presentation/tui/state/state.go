// Package state holds UI state types for the TUI.
package state

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/tesso57/glean/internal/application/settings"
)

// Screen represents what currently owns keyboard input.
type Screen int

const (
	ReviewScreen Screen = iota
	SearchInputScreen
	QuitScreen
)

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	GroupUp     key.Binding
	GroupDown   key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Toggle      key.Binding
	ToggleGroup key.Binding
	Integrate   key.Binding
	Snooze      key.Binding
	Archive     key.Binding
	SnoozeAll   key.Binding
	ArchiveAll  key.Binding
	Open        key.Binding
	Search      key.Binding
	Similar     key.Binding
	Expand      key.Binding
	Back        key.Binding
	Refresh     key.Binding
	Sync        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// ShortHelp returns a subset of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Integrate, k.Snooze, k.Archive, k.Search, k.Help, k.Quit}
}

// FullHelp returns all keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.GroupUp, k.GroupDown, k.Top, k.Bottom},
		{k.Toggle, k.ToggleGroup, k.Integrate, k.Snooze, k.Archive},
		{k.SnoozeAll, k.ArchiveAll, k.Open, k.Expand},
		{k.Search, k.Similar, k.Back, k.Refresh, k.Sync},
		{k.Help, k.Quit},
	}
}

// NewKeyMap creates a new KeyMap from the configuration.
func NewKeyMap(cfg settings.KeyMapConfig) KeyMap {
	return KeyMap{
		Up:          binding(cfg.Up, "up"),
		Down:        binding(cfg.Down, "down"),
		GroupUp:     binding(cfg.GroupUp, "prev source"),
		GroupDown:   binding(cfg.GroupDown, "next source"),
		Top:         binding(cfg.Top, "top"),
		Bottom:      binding(cfg.Bottom, "bottom"),
		Toggle:      binding(cfg.Toggle, "select"),
		ToggleGroup: binding(cfg.ToggleGroup, "select source"),
		Integrate:   binding(cfg.Integrate, "integrate"),
		Snooze:      binding(cfg.Snooze, "snooze"),
		Archive:     binding(cfg.Archive, "archive"),
		SnoozeAll:   binding(cfg.SnoozeAll, "snooze all"),
		ArchiveAll:  binding(cfg.ArchiveAll, "archive all"),
		Open:        binding(cfg.Open, "open"),
		Search:      binding(cfg.Search, "search"),
		Similar:     binding(cfg.Similar, "similar"),
		Expand:      binding(cfg.Expand, "expand source"),
		Back:        binding(cfg.Back, "back"),
		Refresh:     binding(cfg.Refresh, "refresh"),
		Sync:        binding(cfg.Sync, "sync"),
		Help:        binding(cfg.Help, "toggle help"),
		Quit:        binding(cfg.Quit, "quit"),
	}
}

func binding(keys, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(splitKeys(keys)...),
		key.WithHelp(keys, desc),
	)
}

func splitKeys(keys string) []string {
	parts := strings.Split(keys, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		keyName := strings.TrimSpace(part)
		if keyName == "" {
			continue
		}
		out = append(out, keyName)
		switch keyName {
		// Space arrives as " " from bubbletea.
		case "space":
			out = append(out, " ")
		case " ":
			out = append(out, "space")
		case "pgdn":
			out = append(out, "pgdown")
		case "pgdown":
			out = append(out, "pgdn")
		}
	}
	return out
}
