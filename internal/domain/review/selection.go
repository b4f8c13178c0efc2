package review

import "github.com/tesso57/glean/internal/domain/highlight"

// ToggleOne flips id in checked.
func ToggleOne(checked Set, id string) Set {
	if id == "" {
		return checked
	}
	return checked.Toggle(id)
}

// ToggleGroup checks every member of the group at index, or unchecks them
// all when they are all checked already.
func ToggleGroup(list []highlight.Item, index int, checked Set) Set {
	if len(list) == 0 {
		return checked
	}
	g := GroupAt(list, index)
	ids := highlight.IDs(list[g.Start : g.End+1])
	for _, id := range ids {
		if !checked.Has(id) {
			return checked.With(ids...)
		}
	}
	return checked.Without(ids...)
}

// ResolveTargets returns the ids an action applies to: the checked ids,
// else the focused id, else nothing.
func ResolveTargets(checked Set, focus string) []string {
	if checked.Len() > 0 {
		return checked.IDs()
	}
	if focus != "" {
		return []string{focus}
	}
	return nil
}

// Remove drops every item whose id is in targets.
func Remove(list []highlight.Item, targets Set) []highlight.Item {
	out := make([]highlight.Item, 0, len(list))
	for _, it := range list {
		if !targets.Has(it.ID) {
			out = append(out, it)
		}
	}
	return out
}

// Integrate removes targets from list. Focus stays where it is when it
// survives, otherwise it is recovered around the first removed item.
func Integrate(list []highlight.Item, targets Set, focus string) ([]highlight.Item, string) {
	removedAt := 0
	for i, it := range list {
		if targets.Has(it.ID) {
			removedAt = i
			break
		}
	}
	items := Remove(list, targets)
	return items, RecoverFocus(items, focus, removedAt)
}

// Snooze removes targets from list and moves focus to the next survivor.
func Snooze(list []highlight.Item, targets Set, focus string) ([]highlight.Item, string) {
	return dismiss(list, targets, focus)
}

// Archive removes targets from list and moves focus to the next survivor.
func Archive(list []highlight.Item, targets Set, focus string) ([]highlight.Item, string) {
	return dismiss(list, targets, focus)
}

func dismiss(list []highlight.Item, targets Set, focus string) ([]highlight.Item, string) {
	next := NextSurvivor(list, targets, IndexOf(list, focus))
	return Remove(list, targets), next
}

// NextSurvivor scans forward from index past every target, then backward
// from index when the forward walk runs off the end. It returns the id of
// the first non-target found, or "" when every item is a target.
func NextSurvivor(list []highlight.Item, targets Set, index int) string {
	if len(list) == 0 {
		return ""
	}
	index = clamp(index, len(list))
	for i := index; i < len(list); i++ {
		if !targets.Has(list[i].ID) {
			return list[i].ID
		}
	}
	for i := index; i >= 0; i-- {
		if !targets.Has(list[i].ID) {
			return list[i].ID
		}
	}
	return ""
}
