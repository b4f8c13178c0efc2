// Package listview renders the review list rows.
package listview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/glean/internal/application/settings"
	"github.com/tesso57/glean/internal/presentation/tui/metrics"
	"github.com/tesso57/glean/internal/presentation/tui/presenter"
)

// Styles holds the row styles.
type Styles struct {
	Header  lipgloss.Style
	Normal  lipgloss.Style
	Focused lipgloss.Style
	Checked lipgloss.Style
	Badge   lipgloss.Style
}

// NewStyles builds row styles from the theme.
func NewStyles(theme settings.ThemeConfig) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Source)).
			Bold(true).
			PaddingLeft(1),
		Normal: lipgloss.NewStyle().
			PaddingLeft(2).
			PaddingRight(metrics.ItemRightPadding),
		Focused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color(theme.Accent)).
			Foreground(lipgloss.Color(theme.Accent)).
			PaddingLeft(1).
			PaddingRight(metrics.ItemRightPadding),
		Checked: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Checked)),
		Badge:   lipgloss.NewStyle().Faint(true),
	}
}

// RenderRow renders one row no wider than width.
func RenderRow(r presenter.Row, width int, styles Styles) string {
	if r.IsHeader() {
		label := fmt.Sprintf("%s (%d)", r.Source, r.Count)
		return styles.Header.Render(fitRowText(width, styles.Header, "", label))
	}

	box := "[ ] "
	if r.Checked {
		box = styles.Checked.Render("[x]") + " "
	}
	badge := ""
	if r.Snoozes > 0 {
		badge = fmt.Sprintf(" z%d", r.Snoozes)
	}

	style := rowStyle(styles, r.Focused)
	text := fitRowText(width, style, box+badge, r.Text)
	if badge != "" {
		text += styles.Badge.Render(badge)
	}
	return style.Render(box + text)
}

// RenderRows renders the height-row window starting at offset.
func RenderRows(rows []presenter.Row, offset, height, width int, styles Styles) string {
	if len(rows) == 0 || height <= 0 {
		return ""
	}
	end := min(offset+height, len(rows))
	lines := make([]string, 0, end-offset)
	for _, r := range rows[offset:end] {
		lines = append(lines, RenderRow(r, width, styles))
	}
	return strings.Join(lines, "\n")
}
