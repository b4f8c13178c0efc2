package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tesso57/glean/internal/domain/highlight"
)

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "glean.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func item(id string, minutes int, book int64) highlight.Item {
	return highlight.Item{
		ID:            id,
		Text:          "text of " + id,
		SourceTitle:   "Book",
		SourceAuthor:  "Author",
		HighlightedAt: base.Add(time.Duration(minutes) * time.Minute),
		BookID:        book,
	}
}

func TestUpsert_CountsNewIDs(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	n, err := s.Upsert(ctx, []highlight.Item{item("a", 1, 1), item("b", 2, 1)}, base)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	updated := item("a", 1, 0)
	updated.Text = "edited"
	n, err = s.Upsert(ctx, []highlight.Item{updated, item("c", 3, 2)}, base)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Text)
	assert.Equal(t, int64(1), got.BookID, "a zero book id keeps the stored one")
	assert.True(t, got.HighlightedAt.Equal(base.Add(time.Minute)))

	recs, err := s.Records(ctx, []string{"a", "b", "c", "missing"})
	require.NoError(t, err)
	assert.Len(t, recs, 3)
	assert.Equal(t, highlight.StatusNew, recs["c"].Status)
	assert.True(t, recs["c"].FirstSeen.Equal(base))
}

func TestGet_NotFound(t *testing.T) {
	s := openStore(t)
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVisible_OrderAndKeyset(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	_, err := s.Upsert(ctx, []highlight.Item{
		item("a", 1, 1), item("b", 2, 1), item("c", 3, 1), item("d", 4, 1), item("e", 5, 1),
	}, base)
	require.NoError(t, err)

	page, err := s.Visible(ctx, base, nil, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"e", "d"}, highlight.IDs(page))

	next, err := s.Visible(ctx, base, &page[len(page)-1], 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, highlight.IDs(next))

	last, err := s.Visible(ctx, base, &next[len(next)-1], 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, highlight.IDs(last))
}

func TestVisible_FiltersStatusAndSnooze(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	_, err := s.Upsert(ctx, []highlight.Item{item("new", 1, 1), item("done", 2, 1), item("later", 3, 1), item("due", 4, 1)}, base)
	require.NoError(t, err)

	recs, err := s.Records(ctx, []string{"done", "later", "due"})
	require.NoError(t, err)
	done := recs["done"].SetStatus(highlight.StatusIntegrated, base)
	later := recs["later"].Snooze(2, base)
	due := recs["due"].Snooze(1, base.AddDate(0, 0, -8))
	require.NoError(t, s.SaveRecords(ctx, []highlight.Record{done, later, due}))

	got, err := s.Visible(ctx, base, nil, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"due", "new"}, highlight.IDs(got))
	assert.Equal(t, 1, got[0].SnoozeCount)

	// After the snooze expires the item comes back.
	got, err = s.Visible(ctx, base.AddDate(0, 0, 15), nil, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"due", "later", "new"}, highlight.IDs(got))
}

func TestSaveRecords_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	_, err := s.Upsert(ctx, []highlight.Item{item("a", 1, 1)}, base)
	require.NoError(t, err)

	rec := highlight.NewRecord("a", base).Snooze(4, base).Snooze(4, base.Add(time.Hour))
	require.NoError(t, s.SaveRecords(ctx, []highlight.Record{rec}))

	recs, err := s.Records(ctx, []string{"a"})
	require.NoError(t, err)
	got := recs["a"]
	assert.Equal(t, 2, got.SnoozeCount())
	require.NotNil(t, got.NextShowDate)
	assert.True(t, got.NextShowDate.Equal(rec.NextShowDate.Truncate(time.Millisecond)))
	assert.True(t, got.SnoozeHistory[1].Equal(base.Add(time.Hour)))
}

func TestByBookAndDelete(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	_, err := s.Upsert(ctx, []highlight.Item{item("b2", 2, 7), item("b1", 1, 7), item("x", 3, 8)}, base)
	require.NoError(t, err)

	got, err := s.ByBook(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b2"}, highlight.IDs(got))

	require.NoError(t, s.Delete(ctx, []string{"b1", "x"}))
	got, err = s.ByBook(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"b2"}, highlight.IDs(got))

	recs, err := s.Records(ctx, []string{"b1", "x"})
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestSearch_LocalFallback(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	a := item("a", 1, 1)
	a.Text = "Attention is a finite resource"
	b := item("b", 2, 1)
	b.Text = "Deep work needs long blocks"
	c := item("c", 3, 2)
	c.Text = "100% of nothing"
	_, err := s.Upsert(ctx, []highlight.Item{a, b, c}, base)
	require.NoError(t, err)

	got, err := s.Search(ctx, "ATTENTION", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, highlight.IDs(got))

	got, err = s.Search(ctx, "finite work", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, highlight.IDs(got))

	got, err = s.Search(ctx, "a %", 10)
	require.NoError(t, err)
	assert.Empty(t, got, "short terms are ignored")
}

func TestLastSync(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	at, err := s.LastSync(ctx)
	require.NoError(t, err)
	assert.True(t, at.IsZero())

	require.NoError(t, s.SetLastSync(ctx, base))
	require.NoError(t, s.SetLastSync(ctx, base.Add(time.Hour)))
	at, err = s.LastSync(ctx)
	require.NoError(t, err)
	assert.True(t, at.Equal(base.Add(time.Hour)))
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	_, err := s.Upsert(ctx, []highlight.Item{item("a", 1, 1), item("b", 2, 1)}, base)
	require.NoError(t, err)
	rec := highlight.NewRecord("b", base).SetStatus(highlight.StatusArchived, base)
	require.NoError(t, s.SaveRecords(ctx, []highlight.Record{rec}))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats[highlight.StatusNew])
	assert.Equal(t, 1, stats[highlight.StatusArchived])
}

func TestSearchTerms(t *testing.T) {
	assert.Equal(t, []string{"attention", "finite"}, searchTerms(`"Attention," is finite. attention`))
	assert.Empty(t, searchTerms("a an"))
	assert.Equal(t, `50\% a\_b`, escapeLike("50% a_b"))
}
