package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("READWISE_TOKEN", "")
	t.Setenv("GLEAN_SEARCH_KEY", "")
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)
	configPath := filepath.Join(dir, "config.yaml")

	store, err := Load(configPath)
	require.NoError(t, err)

	s := store.Settings
	assert.Equal(t, "up,k", s.KeyMap.Up)
	assert.Equal(t, "space", s.KeyMap.Toggle)
	assert.Equal(t, "backspace,x", s.KeyMap.Archive)
	assert.Equal(t, "alt+down,J", s.KeyMap.GroupDown)
	assert.Equal(t, "https://readwise.io", s.Readwise.BaseURL)
	assert.Equal(t, 30, s.Readwise.TimeoutSeconds)
	assert.Equal(t, 4, s.Review.SnoozeWeeks)
	assert.Equal(t, 30, s.Review.PageSize)
	assert.Equal(t, 30, s.Search.Limit)
	assert.Equal(t, 15, s.Search.TimeoutSeconds)
	assert.True(t, s.Integrate.Clipboard)
	assert.Equal(t, "info", s.Log.Level)
	assert.Equal(t, filepath.Join(dir, "data", "glean", "glean.db"), s.DBFile)
	assert.Equal(t, filepath.Join(dir, "state", "glean", "glean.log"), s.Log.File)
	assert.False(t, s.HasProvider())
	assert.Equal(t, configPath, store.Path())

	_, err = os.Stat(configPath)
	assert.NoError(t, err, "config file should be created")
}

func TestLoad_FromFile(t *testing.T) {
	dir := isolate(t)
	configPath := filepath.Join(dir, "config.yaml")
	content := `readwise:
  token: " abc "
  base_url: http://localhost:9999/
search:
  url: http://localhost:8080/search
review:
  snooze_weeks: 2
keymap:
  archive: d
integrate:
  clipboard: false
  command: tee
db_file: /tmp/custom.db
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0600))

	store, err := Load(configPath)
	require.NoError(t, err)

	s := store.Settings
	assert.Equal(t, "abc", s.Readwise.Token)
	assert.Equal(t, "http://localhost:9999", s.Readwise.BaseURL)
	assert.True(t, s.HasSearchBackend())
	assert.Equal(t, 2, s.Review.SnoozeWeeks)
	assert.Equal(t, "d", s.KeyMap.Archive)
	assert.Equal(t, "k", s.KeyMap.Up[len(s.KeyMap.Up)-1:])
	assert.False(t, s.Integrate.Clipboard)
	assert.Equal(t, "tee", s.Integrate.Command)
	assert.Equal(t, "/tmp/custom.db", s.DBFile)
}

func TestLoad_EnvToken(t *testing.T) {
	dir := isolate(t)
	t.Setenv("READWISE_TOKEN", "from-env")

	store, err := Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", store.Settings.Readwise.Token)
}

func TestLoad_EnvTokenNotShadowedBySavedDefault(t *testing.T) {
	dir := isolate(t)
	configPath := filepath.Join(dir, "config.yaml")
	_, err := Load(configPath)
	require.NoError(t, err)

	t.Setenv("READWISE_TOKEN", "later")
	store, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "later", store.Settings.Readwise.Token)
}

func TestLoad_Corrupt(t *testing.T) {
	dir := isolate(t)
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("invalid_yaml: ["), 0600))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := isolate(t)
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, nil, 0600))

	store, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "q", store.Settings.KeyMap.Quit)
}

func TestStore_SaveRoundTrip(t *testing.T) {
	dir := isolate(t)
	configPath := filepath.Join(dir, "config.yaml")
	store, err := Load(configPath)
	require.NoError(t, err)

	store.Settings.Review.SnoozeWeeks = 6
	store.Settings.KeyMap.Open = "O"
	require.NoError(t, store.Save())

	reloaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, 6, reloaded.Settings.Review.SnoozeWeeks)
	assert.Equal(t, "O", reloaded.Settings.KeyMap.Open)
}

func TestLookup(t *testing.T) {
	values := map[string]any{
		"flat": 1,
		"nested": map[string]any{
			"inner": map[string]any{"leaf": "x"},
		},
	}

	v, ok := lookup(values, "flat")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = lookup(values, "nested.inner.leaf")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	_, ok = lookup(values, "nested.missing.leaf")
	assert.False(t, ok)
	_, ok = lookup(values, "missing")
	assert.False(t, ok)
}
