// Package usecase contains application-level services.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tesso57/glean/internal/domain/highlight"
)

const (
	// DefaultPageSize is the number of highlights per review page.
	DefaultPageSize = 30
	// DefaultSearchLimit caps the number of search results.
	DefaultSearchLimit = 30
)

var (
	// ErrEmptyQuery is returned when a search has nothing to search for.
	ErrEmptyQuery = errors.New("search query is empty")
	// ErrNoProvider is returned when an operation needs the highlight API but
	// no token is configured.
	ErrNoProvider = errors.New("highlight provider is not configured")
	// ErrUnknownBook is returned when a highlight's book cannot be resolved.
	ErrUnknownBook = errors.New("book of highlight could not be resolved")
)

// Export is the result of an incremental provider export.
type Export struct {
	Items   []highlight.Item
	Deleted []string
}

// HighlightProvider abstracts the upstream highlight API.
type HighlightProvider interface {
	Export(ctx context.Context, updatedAfter time.Time) (Export, error)
	BookHighlights(ctx context.Context, bookID int64) ([]highlight.Item, error)
	Highlight(ctx context.Context, id string) (highlight.Item, error)
}

// Searcher abstracts the semantic search backend.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]highlight.Item, error)
}

// HighlightRepository abstracts the local highlight cache and lifecycle store.
type HighlightRepository interface {
	Upsert(ctx context.Context, items []highlight.Item, now time.Time) (int, error)
	Delete(ctx context.Context, ids []string) error
	Visible(ctx context.Context, now time.Time, after *highlight.Item, limit int) ([]highlight.Item, error)
	ByBook(ctx context.Context, bookID int64) ([]highlight.Item, error)
	Get(ctx context.Context, id string) (highlight.Item, error)
	Search(ctx context.Context, query string, limit int) ([]highlight.Item, error)
	Records(ctx context.Context, ids []string) (map[string]highlight.Record, error)
	SaveRecords(ctx context.Context, records []highlight.Record) error
	LastSync(ctx context.Context) (time.Time, error)
	SetLastSync(ctx context.Context, at time.Time) error
}

// Integrator hands integrated highlights to the user's notes.
type Integrator interface {
	Integrate(ctx context.Context, items []highlight.Item) error
}

// SyncResult summarizes one sync run.
type SyncResult struct {
	Fetched int
	New     int
	Deleted int
	Since   time.Time
}

// ReviewService executes review session requests against the provider,
// search backend, local store and integration sink.
type ReviewService struct {
	Provider    HighlightProvider
	Searcher    Searcher
	Repo        HighlightRepository
	Integrator  Integrator
	Now         func() time.Time
	PageSize    int
	SearchLimit int
}

// NewReviewService constructs a ReviewService. provider, searcher and
// integrator may be nil.
func NewReviewService(provider HighlightProvider, searcher Searcher, repo HighlightRepository, integrator Integrator, now func() time.Time) *ReviewService {
	return new(ReviewService{
		Provider:    provider,
		Searcher:    searcher,
		Repo:        repo,
		Integrator:  integrator,
		Now:         now,
		PageSize:    DefaultPageSize,
		SearchLimit: DefaultSearchLimit,
	})
}

// Sync pulls highlights updated since the last sync into the local store.
func (s *ReviewService) Sync(ctx context.Context) (SyncResult, error) {
	if s.Provider == nil {
		return SyncResult{}, ErrNoProvider
	}
	since, err := s.Repo.LastSync(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("read last sync: %w", err)
	}
	started := s.now()

	export, err := s.Provider.Export(ctx, since)
	if err != nil {
		return SyncResult{}, fmt.Errorf("export highlights: %w", err)
	}
	added, err := s.Repo.Upsert(ctx, export.Items, started)
	if err != nil {
		return SyncResult{}, fmt.Errorf("store highlights: %w", err)
	}
	if len(export.Deleted) > 0 {
		if err := s.Repo.Delete(ctx, export.Deleted); err != nil {
			return SyncResult{}, fmt.Errorf("delete highlights: %w", err)
		}
	}
	if err := s.Repo.SetLastSync(ctx, started); err != nil {
		return SyncResult{}, fmt.Errorf("record sync time: %w", err)
	}
	return SyncResult{
		Fetched: len(export.Items),
		New:     added,
		Deleted: len(export.Deleted),
		Since:   since,
	}, nil
}

// LoadPage returns the next page of visible highlights after the given
// keyset cursor. A nil cursor returns the first page.
func (s *ReviewService) LoadPage(ctx context.Context, after *highlight.Item) ([]highlight.Item, error) {
	items, err := s.Repo.Visible(ctx, s.now(), after, s.pageSize())
	if err != nil {
		return nil, fmt.Errorf("load visible highlights: %w", err)
	}
	return items, nil
}

// Search runs query against the search backend, or the local store when no
// backend is configured. Results are capped at SearchLimit; known results
// are replaced by their cached copy so they carry book and URL data.
func (s *ReviewService) Search(ctx context.Context, query string) ([]highlight.Item, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	limit := s.searchLimit()

	var (
		results []highlight.Item
		err     error
	)
	if s.Searcher != nil {
		results, err = s.Searcher.Search(ctx, query, limit)
	} else {
		results, err = s.Repo.Search(ctx, query, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("search highlights: %w", err)
	}
	if len(results) > limit {
		results = results[:limit]
	}

	for i, it := range results {
		cached, err := s.Repo.Get(ctx, it.ID)
		if err != nil {
			continue
		}
		results[i] = cached
	}
	return s.withSnoozeCounts(ctx, results)
}

// Expand returns every highlight of the book the anchor belongs to. When
// bookID is unknown it is resolved from the cache, then from the provider.
func (s *ReviewService) Expand(ctx context.Context, bookID int64, highlightID string) ([]highlight.Item, error) {
	if bookID == highlight.UnknownBookID {
		resolved, err := s.resolveBook(ctx, highlightID)
		if err != nil {
			return nil, err
		}
		bookID = resolved
	}

	items, err := s.Repo.ByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("load book %d: %w", bookID, err)
	}
	if len(items) == 0 && s.Provider != nil {
		items, err = s.Provider.BookHighlights(ctx, bookID)
		if err != nil {
			return nil, fmt.Errorf("fetch book %d: %w", bookID, err)
		}
		if _, err := s.Repo.Upsert(ctx, items, s.now()); err != nil {
			return nil, fmt.Errorf("store book %d: %w", bookID, err)
		}
	}
	return s.withSnoozeCounts(ctx, items)
}

// ChangeStatus persists status for ids. Integrated items are handed to the
// integrator first and nothing is persisted if that fails.
func (s *ReviewService) ChangeStatus(ctx context.Context, ids []string, status highlight.Status, items []highlight.Item) error {
	if len(ids) == 0 {
		return nil
	}
	if status == highlight.StatusIntegrated && s.Integrator != nil {
		if err := s.Integrator.Integrate(ctx, items); err != nil {
			return fmt.Errorf("integrate highlights: %w", err)
		}
	}
	now := s.now()
	return s.updateRecords(ctx, ids, func(r highlight.Record) highlight.Record {
		return r.SetStatus(status, now)
	})
}

// Snooze hides ids for weeks and records the snooze in their history.
func (s *ReviewService) Snooze(ctx context.Context, ids []string, weeks int) error {
	if len(ids) == 0 {
		return nil
	}
	now := s.now()
	return s.updateRecords(ctx, ids, func(r highlight.Record) highlight.Record {
		return r.Snooze(weeks, now)
	})
}

func (s *ReviewService) updateRecords(ctx context.Context, ids []string, apply func(highlight.Record) highlight.Record) error {
	existing, err := s.Repo.Records(ctx, ids)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	now := s.now()
	records := make([]highlight.Record, 0, len(ids))
	for _, id := range ids {
		rec, ok := existing[id]
		if !ok {
			rec = highlight.NewRecord(id, now)
		}
		records = append(records, apply(rec))
	}
	if err := s.Repo.SaveRecords(ctx, records); err != nil {
		return fmt.Errorf("save records: %w", err)
	}
	return nil
}

func (s *ReviewService) resolveBook(ctx context.Context, highlightID string) (int64, error) {
	if cached, err := s.Repo.Get(ctx, highlightID); err == nil && cached.HasBook() {
		return cached.BookID, nil
	}
	if s.Provider == nil {
		return 0, ErrUnknownBook
	}
	remote, err := s.Provider.Highlight(ctx, highlightID)
	if err != nil {
		return 0, fmt.Errorf("resolve book of %s: %w", highlightID, err)
	}
	if !remote.HasBook() {
		return 0, ErrUnknownBook
	}
	return remote.BookID, nil
}

func (s *ReviewService) withSnoozeCounts(ctx context.Context, items []highlight.Item) ([]highlight.Item, error) {
	if len(items) == 0 {
		return items, nil
	}
	records, err := s.Repo.Records(ctx, highlight.IDs(items))
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	for i := range items {
		if rec, ok := records[items[i].ID]; ok {
			items[i].SnoozeCount = rec.SnoozeCount()
		}
	}
	return items, nil
}

func (s *ReviewService) pageSize() int {
	if s.PageSize > 0 {
		return s.PageSize
	}
	return DefaultPageSize
}

func (s *ReviewService) searchLimit() int {
	if s.SearchLimit > 0 {
		return s.SearchLimit
	}
	return DefaultSearchLimit
}

func (s *ReviewService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
