// Package search is a client for the semantic highlight search backend.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tesso57/glean/internal/domain/highlight"
)

// Client posts queries to a search endpoint.
type Client struct {
	url    string
	apiKey string
	client *http.Client
}

// NewClient creates a client for endpoint. apiKey may be empty.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	return &Client{
		url:    endpoint,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

type request struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type response struct {
	Results []result `json:"results"`
}

type result struct {
	ID         flexString `json:"id"`
	Score      float64    `json:"score"`
	Attributes struct {
		Text   string     `json:"highlight_plaintext"`
		Title  string     `json:"document_title"`
		Author string     `json:"document_author"`
		BookID flexString `json:"book_id"`
	} `json:"attributes"`
}

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// Search returns up to limit highlights ranked by the backend.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]highlight.Item, error) {
	body, err := json.Marshal(request{Query: query, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var decoded response
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	items := make([]highlight.Item, 0, len(decoded.Results))
	seen := make(map[string]bool, len(decoded.Results))
	for _, r := range decoded.Results {
		id := strings.TrimSpace(string(r.ID))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		items = append(items, highlight.Item{
			ID:           id,
			Text:         r.Attributes.Text,
			SourceTitle:  r.Attributes.Title,
			SourceAuthor: r.Attributes.Author,
			BookID:       parseBookID(r.Attributes.BookID),
		})
		if limit > 0 && len(items) == limit {
			break
		}
	}
	return items, nil
}

// parseBookID returns the sentinel for missing or malformed ids.
func parseBookID(s flexString) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(string(s)), 10, 64)
	if err != nil {
		return highlight.UnknownBookID
	}
	return id
}
