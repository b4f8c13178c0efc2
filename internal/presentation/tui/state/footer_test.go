package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFooterText(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status string
		help   string
		want   string
	}{
		{name: "help only", help: "help", want: "help"},
		{name: "status above help", status: " 3 integrated ", help: "help", want: "3 integrated\nhelp"},
		{name: "error wins over status", err: errors.New("boom"), status: "ok", help: "help", want: "Error: boom\nhelp"},
		{name: "status without help", status: "synced", want: "synced"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FooterText(tt.err, tt.status, tt.help))
		})
	}
}
