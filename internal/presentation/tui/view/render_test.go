package view

import (
	"strings"
	"testing"

	"github.com/tesso57/glean/internal/presentation/tui/components/header"
	mainview "github.com/tesso57/glean/internal/presentation/tui/components/main"
	"github.com/tesso57/glean/internal/presentation/tui/components/modal"
	"github.com/tesso57/glean/internal/presentation/tui/components/sidebar"
)

func TestRender(t *testing.T) {
	p := Props{
		Sidebar: sidebar.Props{View: "ROWS", Width: 20, Height: 4, Title: "Review"},
		Header:  header.Props{Visible: true, Phase: "Normal.Idle", Source: "Book"},
		Main:    mainview.Props{Width: 40, Height: 6, Body: "DETAIL"},
		Footer:  "FOOTER",
	}
	got := Render(p)
	for _, want := range []string{"ROWS", "Normal.Idle", "DETAIL", "FOOTER"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() missing %q", want)
		}
	}

	p.Modal = modal.Props{Visible: true, Kind: modal.Help, Body: "HELP"}
	got = Render(p)
	if !strings.Contains(got, "HELP") || strings.Contains(got, "ROWS") {
		t.Errorf("modal should replace the layout, got %q", got)
	}
}
