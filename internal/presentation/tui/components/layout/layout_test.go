package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRender_FooterBelowBody(t *testing.T) {
	got := Render(Props{
		Sidebar: "LIST",
		Main:    "DETAIL",
		Footer:  "STATUS",
	})

	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected body and footer lines, got %q", got)
	}
	if !strings.HasPrefix(lines[0], "LISTDETAIL") {
		t.Errorf("sidebar and main should share the first line, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "STATUS") {
		t.Errorf("footer should be on its own line, got %q", lines[1])
	}
}

func TestRender_NoFooter(t *testing.T) {
	sidebar := "a\nb\nc"
	got := Render(Props{Sidebar: sidebar, Main: "detail"})

	if h := lipgloss.Height(got); h != 3 {
		t.Fatalf("height = %d, want 3 (no footer line)", h)
	}
	if strings.HasSuffix(got, "\n") {
		t.Errorf("no trailing footer separator expected, got %q", got)
	}
	if !strings.HasPrefix(got, "adetail") {
		t.Errorf("main should sit to the right of the sidebar, got %q", got)
	}
}
