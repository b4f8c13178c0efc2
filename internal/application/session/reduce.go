package session

import (
	"strings"

	"github.com/tesso57/glean/internal/domain/highlight"
	"github.com/tesso57/glean/internal/domain/review"
)

// Reduce applies ev to s and returns the next state and the intents to run.
// It never panics on stale ids or out-of-order responses.
func Reduce(s State, ev Event) (State, []Intent) {
	switch ev := ev.(type) {
	case Start, Refresh:
		return requestLoad(s)
	case LoadBatch:
		return applyLoad(s, ev), nil
	case AppendBatch:
		return applyAppend(s, ev), nil
	case SearchBatch:
		return applySearch(s, ev), nil
	case ExpandBatch:
		return applyExpand(s, ev), nil
	case RequestFailed:
		return applyFailure(s, ev), nil
	case LoadingStarted:
		s.Loading = true
		return s, nil
	case LoadingStopped:
		s.Loading = false
		return s, nil

	case MoveUp:
		return move(s, review.StepUp, false)
	case MoveDown:
		return move(s, review.StepDown, true)
	case GroupUp:
		return move(s, review.PrevGroupStart, false)
	case GroupDown:
		return move(s, review.NextGroupStart, true)
	case MoveTop:
		return move(s, func([]highlight.Item, int) int { return 0 }, false)
	case MoveBottom:
		return move(s, func(list []highlight.Item, _ int) int { return review.Last(list) }, true)
	case Focus:
		if review.Contains(s.Displayed(), ev.ID) {
			s.setFocus(ev.ID)
		}
		return s, nil
	case Click:
		if !review.Contains(s.Displayed(), ev.ID) {
			return s, nil
		}
		s.setFocus(ev.ID)
		s.Checked = review.ToggleOne(s.Checked, ev.ID)
		return s, nil

	case ToggleOne:
		s.Checked = review.ToggleOne(s.Checked, s.FocusedID())
		return s, nil
	case ToggleGroup:
		s.Checked = review.ToggleGroup(s.Displayed(), s.FocusIndex(), s.Checked)
		return s, nil

	case Integrate:
		return integrate(s, targetSet(s))
	case Snooze:
		return snooze(s, targetSet(s))
	case Archive:
		return archive(s, targetSet(s))
	case SnoozeAll:
		return snooze(s, review.NewSet(highlight.IDs(s.Displayed())...))
	case ArchiveAll:
		return archive(s, review.NewSet(highlight.IDs(s.Displayed())...))

	case SubmitSearch:
		return submitSearch(s, strings.TrimSpace(ev.Query), nil)
	case SearchSimilar:
		targets := pick(s.Displayed(), targetSet(s))
		texts := make([]string, 0, len(targets))
		for _, it := range targets {
			if t := strings.TrimSpace(it.Text); t != "" {
				texts = append(texts, t)
			}
		}
		return submitSearch(s, strings.Join(texts, "\n\n"), targets)
	case Expand:
		return expand(s)
	case Escape:
		return escape(s), nil
	case OpenURL:
		it, ok := s.Focused()
		if !ok || it.UniqueURL == "" {
			return s, nil
		}
		return s, []Intent{RequestOpenURL{URL: it.UniqueURL}}
	}
	return s, nil
}

func requestLoad(s State) (State, []Intent) {
	tok := s.issue(SlotPage)
	s.pageAppend = false
	s.RequestedMore = false
	s.Loading = true
	return s, []Intent{RequestLoad{Token: tok}}
}

func applyLoad(s State, ev LoadBatch) State {
	if s.pageAppend || !s.accept(SlotPage, ev.Token) {
		return s
	}
	s.Items, s.NormalFocus = review.Load(ev.Items, s.NormalFocus)
	s.pageCursor = lastOf(ev.Items)
	s.ReachedEnd = false
	s.RequestedMore = false
	if s.Mode == ModeNormal {
		s.Checked = keepPresent(s.Checked, s.Items)
	}
	s.Loading = s.busy()
	return s
}

func applyAppend(s State, ev AppendBatch) State {
	if !s.pageAppend || !s.accept(SlotPage, ev.Token) {
		return s
	}
	items, reachedEnd := review.Append(s.Items, ev.Items)
	s.Items = items
	if last := lastOf(ev.Items); last != nil {
		s.pageCursor = last
	}
	if reachedEnd {
		s.ReachedEnd = true
	}
	s.RequestedMore = false
	s.pageAppend = false
	if s.NormalFocus == "" && len(s.Items) > 0 {
		s.NormalFocus = s.Items[0].ID
	}
	s.Loading = s.busy()
	return s
}

func applySearch(s State, ev SearchBatch) State {
	if s.Mode != ModeSearch || !s.accept(SlotSearch, ev.Token) {
		return s
	}
	s.SearchResults, s.SearchFocus = review.ReplaceWithSearch(s.SearchResults, ev.Items, s.Checked)
	s.Loading = s.busy()
	return s
}

func applyExpand(s State, ev ExpandBatch) State {
	if !s.accept(SlotExpand, ev.Token) {
		return s
	}
	s.Loading = s.busy()
	if s.expandMode != s.Mode {
		return s
	}
	list, applied := review.InsertAdjacent(s.Displayed(), ev.Items, ev.AnchorID)
	if applied {
		s.setDisplayed(list)
	}
	return s
}

func applyFailure(s State, ev RequestFailed) State {
	if ev.Slot < 0 || ev.Slot >= slotCount || !s.accept(ev.Slot, ev.Token) {
		return s
	}
	if ev.Slot == SlotPage && s.pageAppend {
		s.RequestedMore = false
		s.pageAppend = false
	}
	s.Loading = s.busy()
	return s
}

func move(s State, step func([]highlight.Item, int) int, down bool) (State, []Intent) {
	list := s.Displayed()
	if len(list) == 0 {
		return s, nil
	}
	s.setFocus(list[step(list, s.FocusIndex())].ID)
	if !down {
		return s, nil
	}
	return maybeRequestMore(s)
}

// maybeRequestMore issues RequestMore when focus is within ScrollLookahead
// items of the end of the review queue.
func maybeRequestMore(s State) (State, []Intent) {
	if s.Mode != ModeNormal || s.Loading || s.RequestedMore || s.ReachedEnd {
		return s, nil
	}
	threshold := max(0, len(s.Items)-ScrollLookahead)
	if s.FocusIndex() < threshold {
		return s, nil
	}

	var after *highlight.Item
	if s.pageCursor != nil {
		c := *s.pageCursor
		after = &c
	}
	tok := s.issue(SlotPage)
	s.pageAppend = true
	s.RequestedMore = true
	return s, []Intent{RequestMore{Token: tok, After: after}}
}

func lastOf(items []highlight.Item) *highlight.Item {
	if len(items) == 0 {
		return nil
	}
	last := items[len(items)-1]
	return &last
}

func integrate(s State, targets review.Set) (State, []Intent) {
	affected := pick(s.Displayed(), targets)
	if len(affected) == 0 {
		return s, nil
	}
	list, focus := review.Integrate(s.Displayed(), targets, s.FocusedID())
	s = removeEverywhere(s, list, focus, targets)
	intent := RequestStatusChange{IDs: highlight.IDs(affected), Status: highlight.StatusIntegrated, Items: affected}
	return withMore(s, intent)
}

func snooze(s State, targets review.Set) (State, []Intent) {
	affected := pick(s.Displayed(), targets)
	if len(affected) == 0 {
		return s, nil
	}
	list, focus := review.Snooze(s.Displayed(), targets, s.FocusedID())
	s = removeEverywhere(s, list, focus, targets)
	return withMore(s, RequestSnooze{IDs: highlight.IDs(affected), Weeks: s.SnoozeWeeks})
}

func archive(s State, targets review.Set) (State, []Intent) {
	affected := pick(s.Displayed(), targets)
	if len(affected) == 0 {
		return s, nil
	}
	list, focus := review.Archive(s.Displayed(), targets, s.FocusedID())
	s = removeEverywhere(s, list, focus, targets)
	intent := RequestStatusChange{IDs: highlight.IDs(affected), Status: highlight.StatusArchived, Items: affected}
	return withMore(s, intent)
}

// removeEverywhere installs the shrunk displayed list and drops the same
// ids from the hidden Normal list, so Escape never resurrects them.
func removeEverywhere(s State, list []highlight.Item, focus string, targets review.Set) State {
	if s.Mode == ModeSearch {
		items, normalFocus := review.Integrate(s.Items, targets, s.NormalFocus)
		s.Items = items
		s.NormalFocus = normalFocus
	}
	s.setDisplayed(list)
	s.setFocus(focus)
	s.Checked = review.Set{}
	return s
}

func withMore(s State, intent Intent) (State, []Intent) {
	s, more := maybeRequestMore(s)
	return s, append([]Intent{intent}, more...)
}

func submitSearch(s State, query string, preview []highlight.Item) (State, []Intent) {
	if query == "" {
		return s, nil
	}
	selected := pick(s.Displayed(), s.Checked)
	if preview == nil {
		preview = selected
	}

	tok := s.issue(SlotSearch)
	s.Mode = ModeSearch
	s.Query = query
	s.Preview = preview
	s.SearchResults = selected
	s.SearchFocus = review.IDAt(selected, 0)
	s.Checked = review.NewSet(highlight.IDs(selected)...)
	s.Loading = true
	return s, []Intent{RequestSearch{Token: tok, Query: query}}
}

func expand(s State) (State, []Intent) {
	it, ok := s.Focused()
	if !ok {
		return s, nil
	}
	tok := s.issue(SlotExpand)
	s.expandMode = s.Mode
	s.Loading = true
	return s, []Intent{RequestExpand{Token: tok, AnchorID: it.ID, BookID: it.BookID, HighlightID: it.ID}}
}

func escape(s State) State {
	s.Checked = review.Set{}
	if s.Mode != ModeSearch {
		return s
	}
	s.cancel(SlotSearch)
	if s.expandMode == ModeSearch {
		s.cancel(SlotExpand)
	}
	s.Mode = ModeNormal
	s.SearchResults = nil
	s.SearchFocus = ""
	s.Query = ""
	s.Preview = nil
	s.Loading = s.busy()
	return s
}

func targetSet(s State) review.Set {
	return review.NewSet(review.ResolveTargets(s.Checked, s.FocusedID())...)
}

// pick returns the items of list whose ids are in ids, in list order.
func pick(list []highlight.Item, ids review.Set) []highlight.Item {
	if ids.Len() == 0 {
		return nil
	}
	out := make([]highlight.Item, 0, ids.Len())
	for _, it := range list {
		if ids.Has(it.ID) {
			out = append(out, it)
		}
	}
	return out
}

func keepPresent(checked review.Set, list []highlight.Item) review.Set {
	var drop []string
	for _, id := range checked.IDs() {
		if !review.Contains(list, id) {
			drop = append(drop, id)
		}
	}
	return checked.Without(drop...)
}
