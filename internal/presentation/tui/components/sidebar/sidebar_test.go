package sidebar

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	got := Render(Props{View: "ROWS", Width: 30, Height: 5, Title: "Review (3)", Active: true})
	if !strings.Contains(got, "Review (3)") {
		t.Error("Missing title")
	}
	if !strings.Contains(got, "ROWS") {
		t.Error("Missing rows")
	}
	if !strings.Contains(got, "│") {
		t.Error("Missing right border")
	}
}
