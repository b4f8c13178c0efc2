// Package storage persists highlights and their review records in SQLite.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/tesso57/glean/internal/domain/highlight"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a highlight is not in the store.
var ErrNotFound = errors.New("highlight not found")

const lastSyncKey = "last_sync"

// Store is a SQLite-backed highlight cache and lifecycle store.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps writes serialized and lets ":memory:" work.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate %s: %w", path, err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS highlights (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			source_title TEXT NOT NULL DEFAULT '',
			source_author TEXT NOT NULL DEFAULT '',
			highlighted_at INTEGER,
			sort_key INTEGER NOT NULL DEFAULT 0,
			book_id INTEGER NOT NULL DEFAULT 0,
			unique_url TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_highlights_order ON highlights(sort_key DESC, id DESC);
		CREATE INDEX IF NOT EXISTS idx_highlights_book ON highlights(book_id);

		CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			status TEXT NOT NULL DEFAULT 'NEW',
			snooze_history TEXT NOT NULL DEFAULT '[]',
			next_show_date INTEGER,
			first_seen INTEGER NOT NULL,
			last_updated INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Upsert stores items and creates a NEW record for each id seen for the
// first time. It returns the number of such new ids.
func (s *Store) Upsert(ctx context.Context, items []highlight.Item, now time.Time) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	upsertItem, err := tx.PrepareContext(ctx, `
		INSERT INTO highlights (id, text, source_title, source_author, highlighted_at, sort_key, book_id, unique_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			source_title = excluded.source_title,
			source_author = excluded.source_author,
			highlighted_at = excluded.highlighted_at,
			sort_key = excluded.sort_key,
			book_id = CASE WHEN excluded.book_id != 0 THEN excluded.book_id ELSE highlights.book_id END,
			unique_url = excluded.unique_url`)
	if err != nil {
		return 0, err
	}
	defer func() { _ = upsertItem.Close() }()

	insertRecord, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO records (id, status, snooze_history, first_seen, last_updated)
		VALUES (?, ?, '[]', ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer func() { _ = insertRecord.Close() }()

	added := 0
	stamp := now.UnixMilli()
	for _, it := range items {
		if it.ID == "" {
			continue
		}
		at := nullMillis(it.HighlightedAt)
		if _, err := upsertItem.ExecContext(ctx, it.ID, it.Text, it.SourceTitle, it.SourceAuthor, at, sortKey(it), it.BookID, it.UniqueURL); err != nil {
			return 0, fmt.Errorf("upsert %s: %w", it.ID, err)
		}
		res, err := insertRecord.ExecContext(ctx, it.ID, string(highlight.StatusNew), stamp, stamp)
		if err != nil {
			return 0, fmt.Errorf("track %s: %w", it.ID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}
	return added, tx.Commit()
}

// Delete removes highlights and their records.
func (s *Store) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	in, args := inClause(ids)
	if _, err := tx.ExecContext(ctx, `DELETE FROM highlights WHERE id IN `+in, args...); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE id IN `+in, args...); err != nil {
		return err
	}
	return tx.Commit()
}

const selectItems = `
	SELECT h.id, h.text, h.source_title, h.source_author, h.highlighted_at, h.book_id, h.unique_url,
		COALESCE(r.snooze_history, '[]')
	FROM highlights h
	LEFT JOIN records r ON r.id = h.id`

// Visible returns up to limit highlights that are NEW and not snoozed past
// now, newest first, strictly after the keyset cursor when one is given.
func (s *Store) Visible(ctx context.Context, now time.Time, after *highlight.Item, limit int) ([]highlight.Item, error) {
	hasAfter, afterKey, afterID := 0, int64(0), ""
	if after != nil {
		hasAfter, afterKey, afterID = 1, sortKey(*after), after.ID
	}
	rows, err := s.db.QueryContext(ctx, selectItems+`
		WHERE COALESCE(r.status, 'NEW') = 'NEW'
			AND (r.next_show_date IS NULL OR r.next_show_date <= ?)
			AND (? = 0 OR h.sort_key < ? OR (h.sort_key = ? AND h.id < ?))
		ORDER BY h.sort_key DESC, h.id DESC
		LIMIT ?`,
		now.UnixMilli(), hasAfter, afterKey, afterKey, afterID, limit)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

// ByBook returns every highlight of a book in reading order.
func (s *Store) ByBook(ctx context.Context, bookID int64) ([]highlight.Item, error) {
	rows, err := s.db.QueryContext(ctx, selectItems+`
		WHERE h.book_id = ?
		ORDER BY h.sort_key ASC, h.id ASC`, bookID)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

// Get returns one highlight.
func (s *Store) Get(ctx context.Context, id string) (highlight.Item, error) {
	rows, err := s.db.QueryContext(ctx, selectItems+` WHERE h.id = ?`, id)
	if err != nil {
		return highlight.Item{}, err
	}
	items, err := scanItems(rows)
	if err != nil {
		return highlight.Item{}, err
	}
	if len(items) == 0 {
		return highlight.Item{}, ErrNotFound
	}
	return items[0], nil
}

// Search is a plain text fallback for semantic search: a highlight matches
// when its text or source contains any of the query's longer terms.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]highlight.Item, error) {
	terms := searchTerms(query)
	if len(terms) == 0 {
		return nil, nil
	}
	clauses := make([]string, 0, len(terms))
	args := make([]any, 0, len(terms)*2+1)
	for _, term := range terms {
		clauses = append(clauses, `(h.text LIKE ? ESCAPE '\' OR h.source_title LIKE ? ESCAPE '\')`)
		pattern := "%" + escapeLike(term) + "%"
		args = append(args, pattern, pattern)
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, selectItems+`
		WHERE `+strings.Join(clauses, " OR ")+`
		ORDER BY h.sort_key DESC, h.id DESC
		LIMIT ?`, args...)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

// Records returns the lifecycle records of ids that exist.
func (s *Store) Records(ctx context.Context, ids []string) (map[string]highlight.Record, error) {
	out := make(map[string]highlight.Record, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	in, args := inClause(ids)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, status, snooze_history, next_show_date, first_seen, last_updated
		FROM records WHERE id IN `+in, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			rec               highlight.Record
			status, history   string
			next              sql.NullInt64
			firstSeen, update int64
		)
		if err := rows.Scan(&rec.ID, &status, &history, &next, &firstSeen, &update); err != nil {
			return nil, err
		}
		if rec.Status, err = highlight.ParseStatus(status); err != nil {
			return nil, err
		}
		if rec.SnoozeHistory, err = decodeHistory(history); err != nil {
			return nil, fmt.Errorf("record %s: %w", rec.ID, err)
		}
		if next.Valid {
			t := fromMillis(next.Int64)
			rec.NextShowDate = &t
		}
		rec.FirstSeen = fromMillis(firstSeen)
		rec.LastUpdated = fromMillis(update)
		out[rec.ID] = rec
	}
	return out, rows.Err()
}

// SaveRecords writes records, replacing existing ones.
func (s *Store) SaveRecords(ctx context.Context, records []highlight.Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (id, status, snooze_history, next_show_date, first_seen, last_updated)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			snooze_history = excluded.snooze_history,
			next_show_date = excluded.next_show_date,
			last_updated = excluded.last_updated`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, rec := range records {
		history, err := encodeHistory(rec.SnoozeHistory)
		if err != nil {
			return err
		}
		var next any
		if rec.NextShowDate != nil {
			next = rec.NextShowDate.UnixMilli()
		}
		status := rec.Status
		if status == "" {
			status = highlight.StatusNew
		}
		if _, err := stmt.ExecContext(ctx, rec.ID, string(status), history, next, rec.FirstSeen.UnixMilli(), rec.LastUpdated.UnixMilli()); err != nil {
			return fmt.Errorf("save record %s: %w", rec.ID, err)
		}
	}
	return tx.Commit()
}

// LastSync returns the time of the last successful sync, zero if none.
func (s *Store) LastSync(ctx context.Context) (time.Time, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, lastSyncKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339Nano, value)
}

// SetLastSync records the time of a successful sync.
func (s *Store) SetLastSync(ctx context.Context, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		lastSyncKey, at.UTC().Format(time.RFC3339Nano))
	return err
}

// Stats counts stored highlights per status.
func (s *Store) Stats(ctx context.Context) (map[highlight.Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(r.status, 'NEW'), COUNT(*)
		FROM highlights h LEFT JOIN records r ON r.id = h.id
		GROUP BY 1`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := map[highlight.Status]int{}
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		out[highlight.Status(status)] = count
	}
	return out, rows.Err()
}

func scanItems(rows *sql.Rows) ([]highlight.Item, error) {
	defer func() { _ = rows.Close() }()

	var items []highlight.Item
	for rows.Next() {
		var (
			it      highlight.Item
			at      sql.NullInt64
			history string
		)
		if err := rows.Scan(&it.ID, &it.Text, &it.SourceTitle, &it.SourceAuthor, &at, &it.BookID, &it.UniqueURL, &history); err != nil {
			return nil, err
		}
		if at.Valid {
			it.HighlightedAt = fromMillis(at.Int64)
		}
		snoozes, err := decodeHistory(history)
		if err != nil {
			return nil, fmt.Errorf("highlight %s: %w", it.ID, err)
		}
		it.SnoozeCount = len(snoozes)
		items = append(items, it)
	}
	return items, rows.Err()
}

func sortKey(it highlight.Item) int64 {
	if it.HighlightedAt.IsZero() {
		return 0
	}
	return it.HighlightedAt.UnixMilli()
}

func nullMillis(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func encodeHistory(history []time.Time) (string, error) {
	values := make([]string, 0, len(history))
	for _, t := range history {
		values = append(values, t.UTC().Format(time.RFC3339Nano))
	}
	data, err := json.Marshal(values)
	return string(data), err
}

func decodeHistory(raw string) ([]time.Time, error) {
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("decode snooze history: %w", err)
	}
	out := make([]time.Time, 0, len(values))
	for _, v := range values {
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, fmt.Errorf("decode snooze history: %w", err)
		}
		out = append(out, t)
	}
	return out, nil
}

func inClause(ids []string) (string, []any) {
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	return "(" + strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",") + ")", args
}

const maxSearchTerms = 8

func searchTerms(query string) []string {
	seen := map[string]bool{}
	var terms []string
	for _, f := range strings.Fields(strings.ToLower(query)) {
		f = strings.Trim(f, ".,;:!?\"'()[]{}“”‘’")
		if len([]rune(f)) < 3 || seen[f] {
			continue
		}
		seen[f] = true
		terms = append(terms, f)
	}
	slices.SortStableFunc(terms, func(a, b string) int { return len(b) - len(a) })
	if len(terms) > maxSearchTerms {
		terms = terms[:maxSearchTerms]
	}
	return terms
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
