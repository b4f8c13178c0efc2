// Package modal renders centered dialogs.
package modal

import "github.com/charmbracelet/lipgloss"

// Kind identifies the dialog.
type Kind int

const (
	Quit Kind = iota
	Help
	SearchInput
)

// Props defines the properties for the modal component.
type Props struct {
	Visible bool
	Kind    Kind
	Body    string
	Width   int
	Height  int
}

// Render draws the dialog centered in the terminal.
func Render(p Props) string {
	if !p.Visible {
		return ""
	}
	color := lipgloss.Color("63")
	if p.Kind == Quit {
		color = lipgloss.Color("205")
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(1, 2).
		Render(p.Body)

	if p.Width <= 0 || p.Height <= 0 {
		return box
	}
	return lipgloss.Place(p.Width, p.Height, lipgloss.Center, lipgloss.Center, box)
}
