package mainview

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		props Props
		want  []string
	}{
		{name: "with header", props: Props{Width: 60, Height: 10, Header: "HEADER", Body: "BODY"}, want: []string{"HEADER", "BODY"}},
		{name: "body only", props: Props{Width: 60, Height: 10, Body: "BODY"}, want: []string{"BODY"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.props)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Render() missing %q", w)
				}
			}
		})
	}
}
