package payload

import (
	"cmp"
	"slices"
)

// Set is a duplicate-free collection that remembers insertion order.
// Equality ignores order.
type Set[E comparable] struct {
	items []E
	index map[E]struct{}
}

// NewSet creates a set from elems, dropping duplicates.
func NewSet[E comparable](elems ...E) Set[E] {
	s := Set[E]{
		items: make([]E, 0, len(elems)),
		index: make(map[E]struct{}, len(elems)),
	}
	for _, e := range elems {
		if _, dup := s.index[e]; dup {
			continue
		}
		s.index[e] = struct{}{}
		s.items = append(s.items, e)
	}
	return s
}

// Len returns the number of elements.
func (s Set[E]) Len() int {
	return len(s.items)
}

// Contains reports whether e is in the set.
func (s Set[E]) Contains(e E) bool {
	_, ok := s.index[e]
	return ok
}

// Items returns the elements in insertion order.
func (s Set[E]) Items() []E {
	return slices.Clone(s.items)
}

// With returns a new set with e added.
func (s Set[E]) With(e E) Set[E] {
	return NewSet(append(s.Items(), e)...)
}

// Equal reports whether both sets hold the same elements.
func (s Set[E]) Equal(other Set[E]) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, e := range s.items {
		if !other.Contains(e) {
			return false
		}
	}
	return true
}

// SortedSet is a duplicate-free collection enumerated in ascending order.
type SortedSet[E cmp.Ordered] struct {
	items []E
}

// NewSortedSet creates a sorted set from elems, dropping duplicates.
func NewSortedSet[E cmp.Ordered](elems ...E) SortedSet[E] {
	items := slices.Clone(elems)
	slices.Sort(items)
	return SortedSet[E]{items: slices.Compact(items)}
}

// Len returns the number of elements.
func (s SortedSet[E]) Len() int {
	return len(s.items)
}

// Contains reports whether e is in the set.
func (s SortedSet[E]) Contains(e E) bool {
	_, ok := slices.BinarySearch(s.items, e)
	return ok
}

// Items returns the elements in ascending order.
func (s SortedSet[E]) Items() []E {
	return slices.Clone(s.items)
}

// With returns a new set with e added.
func (s SortedSet[E]) With(e E) SortedSet[E] {
	return NewSortedSet(append(s.Items(), e)...)
}

// Equal reports whether both sets hold the same elements.
func (s SortedSet[E]) Equal(other SortedSet[E]) bool {
	return slices.Equal(s.items, other.items)
}
