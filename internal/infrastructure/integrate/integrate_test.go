package integrate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tesso57/glean/internal/domain/highlight"
)

var items = []highlight.Item{
	{ID: "1", Text: " Focus is a skill. ", SourceTitle: "Deep Work", SourceAuthor: "Cal Newport", BookID: 7},
	{ID: "2", Text: "Untitled thought", BookID: highlight.UnknownBookID},
}

func TestFormat(t *testing.T) {
	want := "<highlight>\nFocus is a skill.\n— Deep Work by Cal Newport\n— wiseread:///read/7\n</highlight>" +
		"\n\n" +
		"<highlight>\nUntitled thought\n— Unknown\n— wiseread:///read/0\n</highlight>"
	assert.Equal(t, want, Format(items))
	assert.Empty(t, Format(nil))
}

func TestIntegrate_WritesAllSinks(t *testing.T) {
	var clip string
	var gotCommand, gotInput string
	var gotArgs []string

	in := NewWithSinks(Config{Clipboard: true, Command: " tee ", Args: []string{"-a", "notes.md"}, Timeout: time.Second},
		func(text string) error {
			clip = text
			return nil
		},
		func(ctx context.Context, command string, args []string, stdin string) (string, string, error) {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			gotCommand, gotArgs, gotInput = command, args, stdin
			return "", "", nil
		})

	require.NoError(t, in.Integrate(context.Background(), items))
	assert.Equal(t, Format(items), clip)
	assert.Equal(t, "tee", gotCommand)
	assert.Equal(t, []string{"-a", "notes.md"}, gotArgs)
	assert.Equal(t, clip, gotInput)
}

func TestIntegrate_JoinsErrors(t *testing.T) {
	in := NewWithSinks(Config{Clipboard: true, Command: "notes"},
		func(string) error { return errors.New("no display") },
		func(context.Context, string, []string, string) (string, string, error) {
			return "", "disk full", errors.New("exit status 1")
		})

	err := in.Integrate(context.Background(), items)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clipboard: no display")
	assert.Contains(t, err.Error(), "notes failed: exit status 1: disk full")
}

func TestIntegrate_Disabled(t *testing.T) {
	called := false
	in := NewWithSinks(Config{}, func(string) error {
		called = true
		return nil
	}, nil)

	assert.False(t, in.Enabled())
	require.NoError(t, in.Integrate(context.Background(), items))
	assert.False(t, called)
}
