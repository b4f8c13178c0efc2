package review

import "github.com/tesso57/glean/internal/domain/highlight"

// Group is a maximal run of adjacent items with the same source key.
// Start and End are inclusive indexes.
type Group struct {
	Source string
	Start  int
	End    int
}

// Len returns the number of items in the group.
func (g Group) Len() int {
	return g.End - g.Start + 1
}

// IndexOf returns the position of id in list. A missing id yields 0 so
// stale focus degrades to the first item.
func IndexOf(list []highlight.Item, id string) int {
	if i := indexOf(list, id); i >= 0 {
		return i
	}
	return 0
}

// GroupAt returns the adjacent group containing index. The index is
// clamped into range; an empty list yields the zero Group.
func GroupAt(list []highlight.Item, index int) Group {
	if len(list) == 0 {
		return Group{}
	}
	index = clamp(index, len(list))
	key := highlight.SourceKey(list[index])

	start := index
	for start > 0 && highlight.SourceKey(list[start-1]) == key {
		start--
	}
	end := index
	for end < len(list)-1 && highlight.SourceKey(list[end+1]) == key {
		end++
	}
	return Group{Source: key, Start: start, End: end}
}

// Groups splits list into its adjacent groups in order.
func Groups(list []highlight.Item) []Group {
	var groups []Group
	for i := 0; i < len(list); {
		g := GroupAt(list, i)
		groups = append(groups, g)
		i = g.End + 1
	}
	return groups
}

// NextGroupStart returns the first index after the group containing index,
// or the last index when that group is the final one.
func NextGroupStart(list []highlight.Item, index int) int {
	if len(list) == 0 {
		return 0
	}
	g := GroupAt(list, index)
	if g.End >= len(list)-1 {
		return len(list) - 1
	}
	return g.End + 1
}

// PrevGroupStart moves to the start of the current group, or to the start
// of the previous group when index is already at a group start.
func PrevGroupStart(list []highlight.Item, index int) int {
	if len(list) == 0 {
		return 0
	}
	index = clamp(index, len(list))
	g := GroupAt(list, index)
	if index != g.Start {
		return g.Start
	}
	if g.Start == 0 {
		return 0
	}
	return GroupAt(list, g.Start-1).Start
}

// StepUp moves one item up, stopping at the first item.
func StepUp(list []highlight.Item, index int) int {
	if len(list) == 0 {
		return 0
	}
	return clamp(index-1, len(list))
}

// StepDown moves one item down, stopping at the last item.
func StepDown(list []highlight.Item, index int) int {
	if len(list) == 0 {
		return 0
	}
	return clamp(index+1, len(list))
}

// Last returns the index of the last item, or 0 for an empty list.
func Last(list []highlight.Item) int {
	return max(0, len(list)-1)
}

// IDAt returns the id at index, or "" when index is out of range.
func IDAt(list []highlight.Item, index int) string {
	if index < 0 || index >= len(list) {
		return ""
	}
	return list[index].ID
}

// RecoverFocus picks a valid focus for list after items were removed.
// focus is kept when it survived. Otherwise removedAt, the original position
// of the first removed item, selects the survivor just before it, or the
// first survivor after it. An empty list has no focus.
func RecoverFocus(list []highlight.Item, focus string, removedAt int) string {
	if Contains(list, focus) {
		return focus
	}
	if len(list) == 0 {
		return ""
	}
	i := removedAt - 1
	if i < 0 {
		i = 0
	}
	return list[clamp(i, len(list))].ID
}

func clamp(index, n int) int {
	if index < 0 {
		return 0
	}
	if index > n-1 {
		return n - 1
	}
	return index
}
