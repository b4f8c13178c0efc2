// Package review implements the pure list operations behind a highlight
// review session: merging incoming batches, moving focus across adjacent
// source groups and consuming the multi-select set.
//
// Every function takes values and returns new values. Input slices are never
// modified, so callers may keep references to earlier states.
package review

import "slices"

// Set is an immutable, insertion-ordered set of highlight ids.
// The zero value is an empty set.
type Set struct {
	ids   []string
	index map[string]struct{}
}

// NewSet builds a set from ids, ignoring duplicates and empty ids.
func NewSet(ids ...string) Set {
	return Set{}.With(ids...)
}

// Has reports whether id is a member.
func (s Set) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s.ids)
}

// IDs returns the members in insertion order.
func (s Set) IDs() []string {
	return slices.Clone(s.ids)
}

// With returns a set that also contains ids.
func (s Set) With(ids ...string) Set {
	out := s.clone()
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := out.index[id]; ok {
			continue
		}
		out.index[id] = struct{}{}
		out.ids = append(out.ids, id)
	}
	return out
}

// Without returns a set that no longer contains ids.
func (s Set) Without(ids ...string) Set {
	if s.Len() == 0 || len(ids) == 0 {
		return s
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	out := Set{index: make(map[string]struct{}, len(s.ids))}
	for _, id := range s.ids {
		if _, ok := drop[id]; ok {
			continue
		}
		out.index[id] = struct{}{}
		out.ids = append(out.ids, id)
	}
	return out
}

// Toggle flips the membership of id.
func (s Set) Toggle(id string) Set {
	if s.Has(id) {
		return s.Without(id)
	}
	return s.With(id)
}

func (s Set) clone() Set {
	out := Set{
		ids:   make([]string, len(s.ids), len(s.ids)+1),
		index: make(map[string]struct{}, len(s.ids)+1),
	}
	copy(out.ids, s.ids)
	for _, id := range s.ids {
		out.index[id] = struct{}{}
	}
	return out
}
