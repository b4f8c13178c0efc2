// Package presenter builds view models for the TUI.
package presenter

import (
	"fmt"
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"
	"github.com/tesso57/glean/internal/application/session"
	"github.com/tesso57/glean/internal/domain/highlight"
	"github.com/tesso57/glean/internal/domain/review"
	"github.com/tesso57/glean/internal/presentation/tui/textutil"
)

// RowKind distinguishes source headers from highlight rows.
type RowKind int

const (
	HeaderRow RowKind = iota
	ItemRow
)

// Row is one line of the review list.
type Row struct {
	Kind    RowKind
	ID      string
	Text    string
	Source  string
	Count   int
	Snoozes int
	Checked bool
	Focused bool
}

// IsHeader reports whether the row is a source group header.
func (r Row) IsHeader() bool { return r.Kind == HeaderRow }

// BuildRows lays out the displayed list as source groups, each preceded by
// a header row.
func BuildRows(snap session.Snapshot) []Row {
	rows := make([]Row, 0, len(snap.Items)+len(snap.Items)/2)
	for _, g := range review.Groups(snap.Items) {
		rows = append(rows, Row{Kind: HeaderRow, Source: g.Source, Count: g.Len()})
		for _, it := range snap.Items[g.Start:g.End] {
			rows = append(rows, Row{
				Kind:    ItemRow,
				ID:      it.ID,
				Text:    textutil.SingleLine(it.Text),
				Source:  g.Source,
				Snoozes: it.SnoozeCount,
				Checked: snap.Checked.Has(it.ID),
				Focused: it.ID == snap.FocusedID,
			})
		}
	}
	return rows
}

// FocusRow returns the row index of the focused item, or 0.
func FocusRow(rows []Row) int {
	for i, r := range rows {
		if r.Focused {
			return i
		}
	}
	return 0
}

// ScrollOffset returns the first row to draw so that the focused row and
// its group header stay inside a window of height rows.
func ScrollOffset(rows []Row, offset, height int) int {
	if height <= 0 || len(rows) <= height {
		return 0
	}
	focus := FocusRow(rows)
	top := focus
	if top > 0 && rows[top-1].IsHeader() {
		top--
	}
	if top < offset {
		offset = top
	}
	if focus >= offset+height {
		offset = focus - height + 1
	}
	return min(max(offset, 0), len(rows)-height)
}

// RowAt maps a line inside the list window to a row.
func RowAt(rows []Row, offset, line int) (Row, bool) {
	i := offset + line
	if line < 0 || i < 0 || i >= len(rows) {
		return Row{}, false
	}
	return rows[i], true
}

// Title describes the list for the sidebar.
func Title(snap session.Snapshot) string {
	if snap.Mode == session.ModeSearch {
		if snap.Query == "" {
			return "Search"
		}
		return fmt.Sprintf("Search: %s", textutil.SingleLine(snap.Query))
	}
	title := fmt.Sprintf("Review (%d", len(snap.Items))
	if !snap.ReachedEnd {
		title += "+"
	}
	return title + ")"
}

// DetailItems picks what the detail pane shows: the search preview while
// a search is loading, otherwise the checked items, otherwise the focused one.
func DetailItems(snap session.Snapshot) []highlight.Item {
	if snap.Phase == session.PhaseSearchLoading && len(snap.Preview) > 0 {
		return snap.Preview
	}
	if snap.Checked.Len() > 0 {
		out := make([]highlight.Item, 0, snap.Checked.Len())
		for _, it := range snap.Items {
			if snap.Checked.Has(it.ID) {
				out = append(out, it)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	if it, ok := review.Find(snap.Items, snap.FocusedID); ok {
		return []highlight.Item{it}
	}
	return nil
}

// DetailText renders items word-wrapped to width.
func DetailText(items []highlight.Item, width int) string {
	if len(items) == 0 {
		return "Nothing to review."
	}
	if width < 10 {
		width = 10
	}
	blocks := make([]string, 0, len(items))
	for _, it := range items {
		var b strings.Builder
		b.WriteString(wordwrap.String(strings.TrimSpace(it.Text), width))
		b.WriteString("\n\n")
		b.WriteString(wordwrap.String("— "+it.Source(), width))
		if meta := metaLine(it); meta != "" {
			b.WriteString("\n")
			b.WriteString(meta)
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n────────\n\n")
}

func metaLine(it highlight.Item) string {
	var parts []string
	if !it.HighlightedAt.IsZero() {
		parts = append(parts, it.HighlightedAt.Local().Format(time.DateOnly))
	}
	if it.SnoozeCount > 0 {
		parts = append(parts, fmt.Sprintf("Snoozed %d×", it.SnoozeCount))
	}
	if it.UniqueURL != "" {
		parts = append(parts, it.UniqueURL)
	}
	return strings.Join(parts, " · ")
}
