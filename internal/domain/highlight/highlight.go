// Package highlight defines the highlight item and its review lifecycle.
package highlight

import "time"

// UnknownBookID marks an item whose parent book has not been resolved yet.
// Search results carry it until the book is looked up.
const UnknownBookID int64 = 0

const unknownSource = "Unknown"

// Item is a single displayable highlight.
type Item struct {
	ID            string    `json:"id"`
	Text          string    `json:"text"`
	SourceTitle   string    `json:"source_title"`
	SourceAuthor  string    `json:"source_author,omitempty"`
	HighlightedAt time.Time `json:"highlighted_at"`
	SnoozeCount   int       `json:"snooze_count"`
	BookID        int64     `json:"book_id"`
	UniqueURL     string    `json:"unique_url,omitempty"`
}

// SourceKey returns the grouping key of the item: "title by author",
// the bare title, or "Unknown".
func SourceKey(item Item) string {
	switch {
	case item.SourceTitle != "" && item.SourceAuthor != "":
		return item.SourceTitle + " by " + item.SourceAuthor
	case item.SourceAuthor != "":
		return unknownSource + " by " + item.SourceAuthor
	case item.SourceTitle != "":
		return item.SourceTitle
	default:
		return unknownSource
	}
}

// Source is a convenience wrapper for SourceKey.
func (i Item) Source() string {
	return SourceKey(i)
}

// Equal reports whether two items share an id.
func (i Item) Equal(other Item) bool {
	return i.ID == other.ID
}

// HasBook reports whether the item's book id has been resolved.
func (i Item) HasBook() bool {
	return i.BookID != UnknownBookID
}

// IDs returns the ids of items in order.
func IDs(items []Item) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}
