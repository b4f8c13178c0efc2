// Package readwise is a client for the Readwise v2 highlight API.
package readwise

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tesso57/glean/internal/application/usecase"
	"github.com/tesso57/glean/internal/domain/highlight"
)

const (
	// DefaultBaseURL is the public API host.
	DefaultBaseURL = "https://readwise.io"
	bookPageSize   = 1000
	maxErrorBody   = 512
)

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("readwise API error (%d): %s", e.StatusCode, e.Body)
}

// Client talks to the Readwise API with a static access token.
type Client struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewClient creates a client. An empty baseURL uses DefaultBaseURL.
func NewClient(token, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		token:   token,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type exportResponse struct {
	Count          int          `json:"count"`
	NextPageCursor *string      `json:"nextPageCursor"`
	Results        []exportBook `json:"results"`
}

type exportBook struct {
	UserBookID int64         `json:"user_book_id"`
	Title      string        `json:"title"`
	Author     string        `json:"author"`
	UniqueURL  string        `json:"unique_url"`
	SourceURL  string        `json:"source_url"`
	Highlights []apiHighlight `json:"highlights"`
}

type apiHighlight struct {
	ID            int64   `json:"id"`
	Text          string  `json:"text"`
	HighlightedAt *string `json:"highlighted_at"`
	URL           string  `json:"url"`
	BookID        int64   `json:"book_id"`
	IsDeleted     bool    `json:"is_deleted"`
}

type highlightPage struct {
	Next    *string        `json:"next"`
	Results []apiHighlight `json:"results"`
}

type apiBook struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	SourceURL string `json:"source_url"`
}

// Export pulls every highlight updated after updatedAfter, following the
// page cursor until it is exhausted. A zero time exports everything.
func (c *Client) Export(ctx context.Context, updatedAfter time.Time) (usecase.Export, error) {
	var out usecase.Export
	cursor := ""
	for {
		q := url.Values{}
		if !updatedAfter.IsZero() {
			q.Set("updatedAfter", updatedAfter.UTC().Format(time.RFC3339))
		}
		if cursor != "" {
			q.Set("pageCursor", cursor)
		}

		var page exportResponse
		if err := c.get(ctx, c.endpoint("/api/v2/export/", q), &page); err != nil {
			return usecase.Export{}, fmt.Errorf("export page: %w", err)
		}
		for _, book := range page.Results {
			src := apiBook{ID: book.UserBookID, Title: book.Title, Author: book.Author, SourceURL: book.UniqueURL}
			if src.SourceURL == "" {
				src.SourceURL = book.SourceURL
			}
			for _, h := range book.Highlights {
				if h.IsDeleted {
					out.Deleted = append(out.Deleted, strconv.FormatInt(h.ID, 10))
					continue
				}
				out.Items = append(out.Items, toItem(h, src))
			}
		}

		if page.NextPageCursor == nil || *page.NextPageCursor == "" {
			return out, nil
		}
		cursor = *page.NextPageCursor
	}
}

// BookHighlights returns every highlight of a book.
func (c *Client) BookHighlights(ctx context.Context, bookID int64) ([]highlight.Item, error) {
	book, err := c.book(ctx, bookID)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("book_id", strconv.FormatInt(bookID, 10))
	q.Set("page_size", strconv.Itoa(bookPageSize))
	next := c.endpoint("/api/v2/highlights/", q)

	var items []highlight.Item
	for next != "" {
		var page highlightPage
		if err := c.get(ctx, next, &page); err != nil {
			return nil, fmt.Errorf("book %d highlights: %w", bookID, err)
		}
		for _, h := range page.Results {
			items = append(items, toItem(h, book))
		}
		next = ""
		if page.Next != nil {
			next = *page.Next
		}
	}
	return items, nil
}

// Highlight returns one highlight with its source resolved.
func (c *Client) Highlight(ctx context.Context, id string) (highlight.Item, error) {
	var h apiHighlight
	if err := c.get(ctx, c.endpoint("/api/v2/highlights/"+url.PathEscape(id)+"/", nil), &h); err != nil {
		return highlight.Item{}, fmt.Errorf("highlight %s: %w", id, err)
	}
	book := apiBook{ID: h.BookID}
	if h.BookID != highlight.UnknownBookID {
		b, err := c.book(ctx, h.BookID)
		if err != nil {
			return highlight.Item{}, err
		}
		book = b
	}
	return toItem(h, book), nil
}

func (c *Client) book(ctx context.Context, bookID int64) (apiBook, error) {
	var b apiBook
	if err := c.get(ctx, c.endpoint("/api/v2/books/"+strconv.FormatInt(bookID, 10)+"/", nil), &b); err != nil {
		return apiBook{}, fmt.Errorf("book %d: %w", bookID, err)
	}
	if b.ID == 0 {
		b.ID = bookID
	}
	return b, nil
}

func (c *Client) endpoint(path string, q url.Values) string {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	if c.token == "" {
		return usecase.ErrNoProvider
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := strings.TrimSpace(string(body))
		if len(text) > maxErrorBody {
			text = text[:maxErrorBody]
		}
		return &APIError{StatusCode: resp.StatusCode, Body: text}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func toItem(h apiHighlight, book apiBook) highlight.Item {
	it := highlight.Item{
		ID:           strconv.FormatInt(h.ID, 10),
		Text:         h.Text,
		SourceTitle:  book.Title,
		SourceAuthor: book.Author,
		BookID:       book.ID,
		UniqueURL:    book.SourceURL,
	}
	if it.BookID == highlight.UnknownBookID {
		it.BookID = h.BookID
	}
	if h.URL != "" {
		it.UniqueURL = h.URL
	}
	if h.HighlightedAt != nil {
		if t, err := time.Parse(time.RFC3339, *h.HighlightedAt); err == nil {
			it.HighlightedAt = t
		}
	}
	return it
}
