package listview

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/glean/internal/application/settings"
	"github.com/tesso57/glean/internal/presentation/tui/presenter"
)

var theme = settings.ThemeConfig{Source: "244", Checked: "42", Accent: "205"}

func TestRenderRow_Header(t *testing.T) {
	got := RenderRow(presenter.Row{Kind: presenter.HeaderRow, Source: "Deep Work", Count: 3}, 40, NewStyles(theme))
	if !strings.Contains(got, "Deep Work (3)") {
		t.Errorf("header = %q", got)
	}
}

func TestRenderRow_Item(t *testing.T) {
	styles := NewStyles(theme)
	tests := []struct {
		name string
		row  presenter.Row
		want []string
	}{
		{name: "unchecked", row: presenter.Row{Kind: presenter.ItemRow, Text: "hello"}, want: []string{"[ ]", "hello"}},
		{name: "checked", row: presenter.Row{Kind: presenter.ItemRow, Text: "hello", Checked: true}, want: []string{"[x]"}},
		{name: "snoozed", row: presenter.Row{Kind: presenter.ItemRow, Text: "hello", Snoozes: 2}, want: []string{"z2"}},
		{name: "focused", row: presenter.Row{Kind: presenter.ItemRow, Text: "hello", Focused: true}, want: []string{"hello"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderRow(tt.row, 40, styles)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("RenderRow() = %q, want %q", got, w)
				}
			}
		})
	}
}

func TestRenderRow_TruncatesToWidth(t *testing.T) {
	row := presenter.Row{Kind: presenter.ItemRow, Text: strings.Repeat("long ", 40), Snoozes: 1}
	got := RenderRow(row, 30, NewStyles(theme))
	if w := lipgloss.Width(got); w > 30 {
		t.Errorf("width = %d, want <= 30", w)
	}
}

func TestRenderRows_Window(t *testing.T) {
	rows := []presenter.Row{
		{Kind: presenter.HeaderRow, Source: "A", Count: 2},
		{Kind: presenter.ItemRow, Text: "one"},
		{Kind: presenter.ItemRow, Text: "two"},
	}
	got := RenderRows(rows, 1, 5, 40, NewStyles(theme))
	if strings.Contains(got, "A (2)") || !strings.Contains(got, "two") {
		t.Errorf("RenderRows() = %q", got)
	}
	if RenderRows(nil, 0, 5, 40, NewStyles(theme)) != "" {
		t.Error("empty rows should render nothing")
	}
}
