package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tesso57/glean/internal/domain/highlight"
)

// A A B A C C
func mixed() []highlight.Item {
	return []highlight.Item{
		item("1", "A"), item("2", "A"), item("3", "B"), item("4", "A"), item("5", "C"), item("6", "C"),
	}
}

func TestIndexOf(t *testing.T) {
	list := mixed()
	assert.Equal(t, 2, IndexOf(list, "3"))
	assert.Equal(t, 0, IndexOf(list, "missing"))
	assert.Equal(t, 0, IndexOf(list, ""))
	assert.Equal(t, 0, IndexOf(nil, "3"))
}

func TestGroupAt(t *testing.T) {
	list := mixed()
	tests := []struct {
		index int
		want  Group
	}{
		{index: 0, want: Group{Source: "A", Start: 0, End: 1}},
		{index: 1, want: Group{Source: "A", Start: 0, End: 1}},
		{index: 2, want: Group{Source: "B", Start: 2, End: 2}},
		{index: 3, want: Group{Source: "A", Start: 3, End: 3}},
		{index: 5, want: Group{Source: "C", Start: 4, End: 5}},
		{index: 99, want: Group{Source: "C", Start: 4, End: 5}},
		{index: -1, want: Group{Source: "A", Start: 0, End: 1}},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, GroupAt(list, tt.index), "GroupAt(%d)", tt.index)
	}
	assert.Equal(t, Group{}, GroupAt(nil, 0))
}

func TestGroups_AreAdjacentNotGlobal(t *testing.T) {
	got := Groups(mixed())
	assert.Equal(t, []Group{
		{Source: "A", Start: 0, End: 1},
		{Source: "B", Start: 2, End: 2},
		{Source: "A", Start: 3, End: 3},
		{Source: "C", Start: 4, End: 5},
	}, got)
	assert.Equal(t, 2, got[0].Len())
	assert.Empty(t, Groups(nil))
}

func TestNextGroupStart(t *testing.T) {
	list := mixed()
	tests := []struct{ from, want int }{
		{0, 2}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 5},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, NextGroupStart(list, tt.from), "from %d", tt.from)
	}
	assert.Equal(t, 0, NextGroupStart(nil, 3))
}

func TestPrevGroupStart(t *testing.T) {
	list := mixed()
	tests := []struct {
		name       string
		from, want int
	}{
		{name: "inside group snaps to its start", from: 5, want: 4},
		{name: "at group start jumps to previous group", from: 4, want: 3},
		{name: "singleton group jumps to previous", from: 3, want: 2},
		{name: "into multi-item group start", from: 2, want: 0},
		{name: "inside first group", from: 1, want: 0},
		{name: "first item saturates", from: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrevGroupStart(list, tt.from))
		})
	}
}

func TestStep_Saturates(t *testing.T) {
	list := mixed()
	assert.Equal(t, 0, StepUp(list, 0))
	assert.Equal(t, 1, StepUp(list, 2))
	assert.Equal(t, 5, StepDown(list, 5))
	assert.Equal(t, 3, StepDown(list, 2))
	assert.Equal(t, 0, StepDown(nil, 0))
	assert.Equal(t, 0, StepUp(nil, 0))
	assert.Equal(t, 5, Last(list))
	assert.Equal(t, 0, Last(nil))
}

func TestIDAt(t *testing.T) {
	list := mixed()
	assert.Equal(t, "1", IDAt(list, 0))
	assert.Equal(t, "", IDAt(list, 6))
	assert.Equal(t, "", IDAt(list, -1))
}

func TestRecoverFocus(t *testing.T) {
	tests := []struct {
		name      string
		list      []highlight.Item
		focus     string
		removedAt int
		want      string
	}{
		{name: "focus survived", list: items("a", "c"), focus: "c", removedAt: 1, want: "c"},
		{name: "previous survivor", list: items("a", "d"), focus: "b", removedAt: 1, want: "a"},
		{name: "removed at head goes to first after", list: items("c", "d"), focus: "a", removedAt: 0, want: "c"},
		{name: "removed past the end", list: items("a"), focus: "c", removedAt: 5, want: "a"},
		{name: "empty list", list: nil, focus: "a", removedAt: 0, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecoverFocus(tt.list, tt.focus, tt.removedAt))
		})
	}
}
