package collections

import (
	"fmt"
	"slices"
	"strings"
)

// Set is an unordered set of comparable values
type Set[T comparable] map[T]struct{}

// NewSet returns a Set holding vs
func NewSet[T comparable](vs ...T) Set[T] {
	s := Set[T]{}
	s.Add(vs...)
	return s
}

// Add inserts vs
func (s Set[T]) Add(vs ...T) {
	for _, v := range vs {
		s[v] = struct{}{}
	}
}

// Has reports whether v is present
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// OrderedSet remembers the order in which values were first added.
// The zero value is ready to use.
type OrderedSet[T comparable] struct {
	seen  Set[T]
	order []T
}

// NewOrderedSet creates an OrderedSet holding vs in order, without repeats
func NewOrderedSet[T comparable](vs ...T) *OrderedSet[T] {
	s := &OrderedSet[T]{}
	for _, v := range vs {
		s.Add(v)
	}
	return s
}

// Add appends v unless it is already present, and reports whether it was added
func (s *OrderedSet[T]) Add(v T) bool {
	if s.seen == nil {
		s.seen = Set[T]{}
	}
	if s.seen.Has(v) {
		return false
	}
	s.seen.Add(v)
	s.order = append(s.order, v)
	return true
}

// Has reports whether v was added
func (s *OrderedSet[T]) Has(v T) bool {
	return s.seen.Has(v)
}

// Len returns the number of distinct values
func (s *OrderedSet[T]) Len() int {
	return len(s.order)
}

// Members returns the values in insertion order
func (s *OrderedSet[T]) Members() []T {
	return slices.Clone(s.order)
}

func (s *OrderedSet[T]) String() string {
	parts := make([]string, len(s.order))
	for i, v := range s.order {
		parts[i] = fmt.Sprint(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
