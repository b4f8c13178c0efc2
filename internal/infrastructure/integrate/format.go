// Package integrate hands integrated highlights to the user's notes.
package integrate

import (
	"fmt"
	"strings"

	"github.com/tesso57/glean/internal/domain/highlight"
)

// Format renders items as highlight blocks separated by a blank line.
func Format(items []highlight.Item) string {
	blocks := make([]string, 0, len(items))
	for _, it := range items {
		blocks = append(blocks, formatBlock(it))
	}
	return strings.Join(blocks, "\n\n")
}

func formatBlock(it highlight.Item) string {
	var b strings.Builder
	b.WriteString("<highlight>\n")
	b.WriteString(strings.TrimSpace(it.Text))
	b.WriteString("\n— ")
	b.WriteString(highlight.SourceKey(it))
	fmt.Fprintf(&b, "\n— wiseread:///read/%d\n", it.BookID)
	b.WriteString("</highlight>")
	return b.String()
}
