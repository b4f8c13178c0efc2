package update

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/glean/internal/presentation/tui/metrics"
	"github.com/tesso57/glean/internal/presentation/tui/presenter"
	"github.com/tesso57/glean/internal/presentation/tui/state"
)

// LayoutMetrics are the sizes of the sidebar list and detail pane.
type LayoutMetrics struct {
	SidebarWidth  int
	MainWidth     int
	ListHeight    int
	DetailHeight  int
	SidebarHeight int
}

// Layout computes the layout for the current terminal size.
func Layout(s *state.ModelState) LayoutMetrics {
	available := clampMin(s.Height-footerHeight(s), 1)

	sidebarWidth := max(s.Width/3, metrics.SidebarMinWidth)
	if sidebarWidth > s.Width/2 {
		sidebarWidth = s.Width / 2
	}
	mainWidth := clampMin(s.Width-sidebarWidth-metrics.SidebarRightBorderWidth, 1)

	return LayoutMetrics{
		SidebarWidth:  sidebarWidth,
		MainWidth:     mainWidth,
		SidebarHeight: available,
		ListHeight:    clampMin(available-metrics.SidebarTitleLines, 1),
		DetailHeight:  clampMin(available-metrics.HeaderLines, 1),
	}
}

// Sync keeps derived view state in line with the session: the list scroll
// offset and the detail pane content.
func Sync(s *state.ModelState) {
	if s.Session == nil {
		return
	}
	lm := Layout(s)
	snap := s.Session.Snapshot()
	rows := presenter.BuildRows(snap)
	s.ListOffset = presenter.ScrollOffset(rows, s.ListOffset, lm.ListHeight)

	s.Viewport.Width = lm.MainWidth - 1
	s.Viewport.Height = lm.DetailHeight
	content := presenter.DetailText(presenter.DetailItems(snap), s.Viewport.Width-2)
	if content != s.DetailContent {
		s.DetailContent = content
		s.Viewport.SetContent(content)
		s.Viewport.GotoTop()
	}
}

func footerHeight(s *state.ModelState) int {
	s.Help.Width = s.Width
	text := state.FooterText(s.Err, s.StatusMessage, s.Help.View(&s.Keys))
	return lipgloss.Height(text)
}

func clampMin(value, min int) int {
	if value < min {
		return min
	}
	return value
}
