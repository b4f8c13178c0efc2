// Package header provides the module header component.
package header

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the header component.
type Props struct {
	Visible bool
	Phase   string
	Spinner string
	Query   string
	Source  string
}

// Render renders the header component.
func Render(p Props) string {
	if !p.Visible {
		return ""
	}
	status := p.Phase
	if p.Spinner != "" {
		status = p.Spinner + " " + status
	}
	second := fmt.Sprintf("📖 %s", p.Source)
	if p.Query != "" {
		second = fmt.Sprintf("🔍 %s", p.Query)
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render(fmt.Sprintf("%s\n%s", status, second))
}
