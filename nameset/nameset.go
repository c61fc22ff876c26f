// Package nameset implements the unique-string set that enforces the
// single namespace shared by macro names and labels.
package nameset

// Set is a presence-only collection of strings: it tracks uniqueness, not
// any payload per key. Zero value is ready to use.
type Set struct {
	m map[string]struct{}
}

// New returns an empty Set.
func New() *Set {
	return &Set{m: make(map[string]struct{})}
}

// Add inserts name into the set. It returns false if name was already
// present (the caller decides whether that's a duplicate-definition error
// or something to treat idempotently).
func (s *Set) Add(name string) bool {
	if s.m == nil {
		s.m = make(map[string]struct{})
	}
	if _, found := s.m[name]; found {
		return false
	}
	s.m[name] = struct{}{}
	return true
}

// Contains reports whether name is already in the set.
func (s *Set) Contains(name string) bool {
	_, found := s.m[name]
	return found
}
