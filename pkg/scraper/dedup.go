package scraper

import "sync"

// SeenSet tracks article ids already accepted during a run. A single-query
// run owns one; an assortment run shares one across all of its items so an
// article surfaced by two items is emitted once.
type SeenSet struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// NewSeenSet creates an empty SeenSet.
func NewSeenSet() *SeenSet {
	return &SeenSet{ids: make(map[string]struct{})}
}

// Register records the id and reports whether it was new. First registration
// returns true; repeats return false.
func (s *SeenSet) Register(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Len returns the number of registered ids.
func (s *SeenSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}
