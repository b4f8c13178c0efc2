package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFit(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{in: "a\n  b\tc", width: 10, want: "a b c"},
		{in: "abcdefghij", width: 6, want: "abc..."},
		{in: "abc", width: 0, want: ""},
		{in: "", width: 5, want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Fit(tt.in, tt.width), tt.in)
	}
}
