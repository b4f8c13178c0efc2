package listview

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/glean/internal/presentation/tui/metrics"
	"github.com/tesso57/glean/internal/presentation/tui/textutil"
)

func rowStyle(styles Styles, focused bool) lipgloss.Style {
	if focused {
		return styles.Focused
	}
	return styles.Normal
}

func fitRowText(width int, style lipgloss.Style, prefix, text string) string {
	maxWidth := width - style.GetHorizontalFrameSize() - lipgloss.Width(prefix) - metrics.ItemSafetyPadding
	return textutil.Fit(text, maxWidth)
}
