package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tesso57/glean/internal/application/usecase"
	"github.com/tesso57/glean/internal/domain/highlight"
)

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, map[highlight.Status]int{
		highlight.StatusNew:      3,
		highlight.StatusArchived: 2,
	}, time.Time{})

	assert.Equal(t, "NEW         3\nINTEGRATED  0\nARCHIVED    2\nTOTAL       5\nNever synced\n", buf.String())
}

func TestPrintSync(t *testing.T) {
	var buf bytes.Buffer
	printSync(&buf, usecase.SyncResult{Fetched: 5, New: 2, Deleted: 1})
	assert.Equal(t, "Synced since the beginning: 5 fetched, 2 new, 1 deleted\n", buf.String())
}

func TestSeconds(t *testing.T) {
	assert.Equal(t, 30*time.Second, seconds(0))
	assert.Equal(t, 5*time.Second, seconds(5))
}

func TestNewApp_WiresStore(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("READWISE_TOKEN", "")
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("XDG_STATE_HOME", dir)

	a, err := newApp(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	defer a.Close()

	assert.False(t, a.settings.HasProvider())
	assert.Nil(t, a.review.Provider)
	assert.Equal(t, a.settings.Review.PageSize, a.review.PageSize)

	_, err = a.review.Sync(t.Context())
	assert.ErrorIs(t, err, usecase.ErrNoProvider)
}
