// Package metrics centralizes layout constants for the TUI.
package metrics

const (
	HeaderLines             = 2
	SidebarTitleLines       = 2
	SidebarRightBorderWidth = 1
	// SidebarMinWidth keeps the list readable on narrow terminals.
	SidebarMinWidth = 30

	ItemRightPadding  = 1
	ItemSafetyPadding = 1
)
