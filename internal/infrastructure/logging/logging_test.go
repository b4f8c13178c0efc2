package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "glean.log")
	log, err := New(path, "info")
	require.NoError(t, err)

	log.Debug("hidden")
	log.With(String("component", "test")).Info("synced", Int("new", 3), Error(errors.New("boom")))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"synced"`)
	assert.Contains(t, out, `"component":"test"`)
	assert.Contains(t, out, `"new":3`)
	assert.Contains(t, out, `"session_id":"`)
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "debug", want: "debug"},
		{in: " INFO ", want: "info"},
		{in: "warning", want: "warn"},
		{in: "error", want: "error"},
	}
	for _, tt := range tests {
		lvl := parseLevel(tt.in)
		require.NotNil(t, lvl, tt.in)
		assert.Equal(t, tt.want, lvl.String())
	}
	assert.Nil(t, parseLevel("loud"))
}

func TestWrap(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := Wrap(zap.New(core))
	log.Warn("careful", Strings("ids", []string{"a", "b"}), Int64("book", 7))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "careful", entry.Message)
	assert.Equal(t, int64(7), entry.ContextMap()["book"])

	assert.NotNil(t, Wrap(nil))
	NewNop().Error("discarded")
}
