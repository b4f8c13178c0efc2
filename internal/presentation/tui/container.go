// Package tui provides the main user interface model and view components.
package tui

import (
	"fmt"

	"github.com/tesso57/glean/internal/application/session"
	"github.com/tesso57/glean/internal/domain/review"
	"github.com/tesso57/glean/internal/presentation/tui/components/header"
	mainview "github.com/tesso57/glean/internal/presentation/tui/components/main"
	"github.com/tesso57/glean/internal/presentation/tui/components/modal"
	"github.com/tesso57/glean/internal/presentation/tui/components/sidebar"
	"github.com/tesso57/glean/internal/presentation/tui/presenter"
	"github.com/tesso57/glean/internal/presentation/tui/state"
	"github.com/tesso57/glean/internal/presentation/tui/textutil"
	"github.com/tesso57/glean/internal/presentation/tui/update"
	"github.com/tesso57/glean/internal/presentation/tui/view"
	listview "github.com/tesso57/glean/internal/presentation/tui/view/list"
)

func (m *Model) buildProps() view.Props {
	lm := update.Layout(m.state)
	snap := m.state.Session.Snapshot()
	return view.Props{
		Sidebar: m.buildSidebarProps(lm, snap),
		Header:  m.buildHeaderProps(lm, snap),
		Main:    m.buildMainProps(lm),
		Modal:   m.buildModalProps(),
		Footer:  m.buildFooterProps(),
	}
}

func (m *Model) buildSidebarProps(lm update.LayoutMetrics, snap session.Snapshot) sidebar.Props {
	rows := presenter.BuildRows(snap)
	body := listview.RenderRows(rows, m.state.ListOffset, lm.ListHeight, lm.SidebarWidth, listview.NewStyles(m.state.Theme))
	if len(rows) == 0 {
		body = emptyListText(snap)
	}
	return sidebar.Props{
		View:        body,
		Width:       lm.SidebarWidth,
		Height:      lm.SidebarHeight,
		Title:       textutil.Fit(presenter.Title(snap), lm.SidebarWidth-2),
		Active:      m.state.Screen == state.ReviewScreen,
		AccentColor: m.state.Theme.Accent,
	}
}

func (m *Model) buildHeaderProps(lm update.LayoutMetrics, snap session.Snapshot) header.Props {
	width := lm.MainWidth - 4
	spin := ""
	if m.state.Busy() {
		spin = m.state.Spinner.View()
	}
	phase := snap.Phase.String()
	if m.state.Syncing {
		phase += " (syncing)"
	}
	var source string
	if it, ok := review.Find(snap.Items, snap.FocusedID); ok {
		source = textutil.Fit(it.Source(), width)
	}
	return header.Props{
		Visible: true,
		Phase:   phase,
		Spinner: spin,
		Query:   textutil.Fit(snap.Query, width),
		Source:  source,
	}
}

func (m *Model) buildMainProps(lm update.LayoutMetrics) mainview.Props {
	return mainview.Props{
		Width:  lm.MainWidth,
		Height: lm.SidebarHeight,
		Body:   m.state.Viewport.View(),
	}
}

func (m *Model) buildModalProps() modal.Props {
	switch {
	case m.state.Screen == state.QuitScreen:
		return modal.Props{
			Visible: true,
			Kind:    modal.Quit,
			Body:    "Are you sure you want to quit?\n\n(y/n)",
			Width:   m.state.Width,
			Height:  m.state.Height,
		}
	case m.state.Screen == state.SearchInputScreen:
		return modal.Props{
			Visible: true,
			Kind:    modal.SearchInput,
			Body: fmt.Sprintf(
				"Search highlights:\n\n%s\n\n(enter to search, esc to cancel)",
				m.state.TextInput.View(),
			),
			Width:  m.state.Width,
			Height: m.state.Height,
		}
	case m.state.Help.ShowAll:
		return modal.Props{
			Visible: true,
			Kind:    modal.Help,
			Body:    m.state.Help.View(&m.state.Keys),
			Width:   m.state.Width,
			Height:  m.state.Height,
		}
	}
	return modal.Props{Visible: false}
}

func (m *Model) buildFooterProps() string {
	m.state.Help.Width = m.state.Width
	return state.FooterText(m.state.Err, m.state.StatusMessage, m.state.Help.View(&m.state.Keys))
}

func emptyListText(snap session.Snapshot) string {
	switch {
	case snap.Phase == session.PhaseNormalLoading || snap.Phase == session.PhaseSearchLoading:
		return "  Loading..."
	case snap.Mode == session.ModeSearch:
		return "  No results. esc to go back."
	default:
		return "  Inbox zero. r to refresh, R to sync."
	}
}
