package review

import (
	"slices"

	"github.com/tesso57/glean/internal/domain/highlight"
)

// Load replaces the list with batch. The previous focus is kept when batch
// still contains it, otherwise focus moves to the first item or to none.
func Load(batch []highlight.Item, focus string) ([]highlight.Item, string) {
	items := appendUnique(nil, batch, make(map[string]struct{}, len(batch)))
	if focus != "" && indexOf(items, focus) >= 0 {
		return items, focus
	}
	return items, firstID(items)
}

// Append adds the items of batch that are not yet in list. An empty batch
// means the provider has no more data: the list is returned unchanged and
// reachedEnd is true. A batch made only of duplicates is not the end.
func Append(list, batch []highlight.Item) (items []highlight.Item, reachedEnd bool) {
	if len(batch) == 0 {
		return slices.Clone(list), true
	}
	items = make([]highlight.Item, len(list), len(list)+len(batch))
	copy(items, list)
	return appendUnique(items, batch, idSet(list)), false
}

// ReplaceWithSearch builds the search list from batch. Checked items come
// first: the checked items of the current displayed list in display order,
// then checked batch items not already there. Unchecked batch items follow
// in their given order. Focus goes to the first unchecked result, else the
// first result, else none.
func ReplaceWithSearch(displayed, batch []highlight.Item, checked Set) ([]highlight.Item, string) {
	seen := make(map[string]struct{}, len(displayed)+len(batch))
	items := make([]highlight.Item, 0, len(batch)+checked.Len())

	for _, it := range displayed {
		if !checked.Has(it.ID) {
			continue
		}
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		items = append(items, it)
	}

	var tail []highlight.Item
	for _, it := range batch {
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		if checked.Has(it.ID) {
			items = append(items, it)
			continue
		}
		tail = append(tail, it)
	}
	items = append(items, tail...)

	for _, it := range items {
		if !checked.Has(it.ID) {
			return items, it.ID
		}
	}
	return items, firstID(items)
}

// InsertAdjacent splices batch into list right after the run of items that
// share the anchor's book. It reports false and returns list unchanged when
// the anchor is absent.
//
// An anchor with UnknownBookID takes the book id of batch[0] before the
// splice, so it joins the run it was expanded into. Batch items already in
// the list, including the anchor itself, are dropped.
func InsertAdjacent(list, batch []highlight.Item, anchorID string) ([]highlight.Item, bool) {
	anchor := indexOf(list, anchorID)
	if anchor < 0 {
		return slices.Clone(list), false
	}

	items := slices.Clone(list)
	if !items[anchor].HasBook() && len(batch) > 0 {
		items[anchor].BookID = batch[0].BookID
	}

	fresh := appendUnique(nil, batch, idSet(items))
	if len(fresh) == 0 {
		return items, true
	}

	book := items[anchor].BookID
	end := anchor
	for end+1 < len(items) && items[end+1].BookID == book {
		end++
	}
	return slices.Insert(items, end+1, fresh...), true
}

// Contains reports whether id is in list.
func Contains(list []highlight.Item, id string) bool {
	return indexOf(list, id) >= 0
}

// Find returns the item with id.
func Find(list []highlight.Item, id string) (highlight.Item, bool) {
	if i := indexOf(list, id); i >= 0 {
		return list[i], true
	}
	return highlight.Item{}, false
}

func appendUnique(dst, batch []highlight.Item, seen map[string]struct{}) []highlight.Item {
	for _, it := range batch {
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		dst = append(dst, it)
	}
	return dst
}

func idSet(list []highlight.Item) map[string]struct{} {
	seen := make(map[string]struct{}, len(list))
	for _, it := range list {
		seen[it.ID] = struct{}{}
	}
	return seen
}

func indexOf(list []highlight.Item, id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(list, func(it highlight.Item) bool { return it.ID == id })
}

func firstID(list []highlight.Item) string {
	if len(list) == 0 {
		return ""
	}
	return list[0].ID
}
