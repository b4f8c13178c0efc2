package presenter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tesso57/glean/internal/application/session"
	"github.com/tesso57/glean/internal/domain/highlight"
	"github.com/tesso57/glean/internal/domain/review"
)

func items() []highlight.Item {
	return []highlight.Item{
		{ID: "1", Text: "first\nline", SourceTitle: "A", BookID: 1},
		{ID: "2", Text: "second", SourceTitle: "A", BookID: 1, SnoozeCount: 2},
		{ID: "3", Text: "third", SourceTitle: "B", BookID: 2},
	}
}

func TestBuildRows(t *testing.T) {
	snap := session.Snapshot{Items: items(), FocusedID: "2", Checked: review.NewSet("3")}
	rows := BuildRows(snap)

	require.Len(t, rows, 5)
	assert.True(t, rows[0].IsHeader())
	assert.Equal(t, "A", rows[0].Source)
	assert.Equal(t, 2, rows[0].Count)
	assert.Equal(t, "first line", rows[1].Text)
	assert.True(t, rows[2].Focused)
	assert.Equal(t, 2, rows[2].Snoozes)
	assert.True(t, rows[3].IsHeader())
	assert.True(t, rows[4].Checked)
	assert.Equal(t, 2, FocusRow(rows))
}

func TestScrollOffset(t *testing.T) {
	var list []highlight.Item
	for i := range 10 {
		list = append(list, highlight.Item{ID: string(rune('a' + i)), SourceTitle: "S"})
	}
	rows := BuildRows(session.Snapshot{Items: list, FocusedID: "j"})
	// 11 rows: header plus ten items; focus is the last row.
	assert.Equal(t, 7, ScrollOffset(rows, 0, 4))

	rows = BuildRows(session.Snapshot{Items: list, FocusedID: "a"})
	assert.Equal(t, 0, ScrollOffset(rows, 5, 4), "header of the focused group stays visible")
	assert.Equal(t, 0, ScrollOffset(rows, 3, 20))
}

func TestRowAt(t *testing.T) {
	rows := BuildRows(session.Snapshot{Items: items()})
	r, ok := RowAt(rows, 1, 2)
	require.True(t, ok)
	assert.True(t, r.IsHeader())

	_, ok = RowAt(rows, 0, -1)
	assert.False(t, ok)
	_, ok = RowAt(rows, 3, 2)
	assert.False(t, ok)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Review (3+)", Title(session.Snapshot{Items: items()}))
	assert.Equal(t, "Review (3)", Title(session.Snapshot{Items: items(), ReachedEnd: true}))
	assert.Equal(t, "Search: deep work", Title(session.Snapshot{Mode: session.ModeSearch, Query: "deep\nwork"}))
}

func TestDetailItems(t *testing.T) {
	list := items()
	preview := []highlight.Item{{ID: "p"}}

	tests := []struct {
		name string
		snap session.Snapshot
		want []string
	}{
		{name: "focused", snap: session.Snapshot{Items: list, FocusedID: "2"}, want: []string{"2"}},
		{name: "checked in display order", snap: session.Snapshot{Items: list, FocusedID: "1", Checked: review.NewSet("3", "1")}, want: []string{"1", "3"}},
		{name: "preview while searching", snap: session.Snapshot{Phase: session.PhaseSearchLoading, Preview: preview}, want: []string{"p"}},
		{name: "empty", snap: session.Snapshot{}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, highlight.IDs(DetailItems(tt.snap)))
		})
	}
}

func TestDetailText(t *testing.T) {
	it := items()[1]
	it.UniqueURL = "https://example.com"
	text := DetailText([]highlight.Item{it}, 40)
	assert.Contains(t, text, "second")
	assert.Contains(t, text, "— A")
	assert.Contains(t, text, "Snoozed 2×")
	assert.Contains(t, text, "https://example.com")

	long := highlight.Item{Text: strings.Repeat("word ", 30), SourceTitle: "S"}
	for _, line := range strings.Split(DetailText([]highlight.Item{long}, 20), "\n") {
		assert.LessOrEqual(t, len(line), 20)
	}
	assert.Equal(t, "Nothing to review.", DetailText(nil, 40))
}
