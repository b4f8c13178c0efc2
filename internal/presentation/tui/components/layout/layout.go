// Package layout joins the sidebar, main area and footer.
package layout

import "github.com/charmbracelet/lipgloss"

// Props defines the rendered parts to arrange.
type Props struct {
	Sidebar string
	Main    string
	Footer  string
}

// Render places sidebar and main side by side above the footer.
func Render(p Props) string {
	body := lipgloss.JoinHorizontal(lipgloss.Top, p.Sidebar, p.Main)
	if p.Footer == "" {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, p.Footer)
}
