package store

import (
	"strings"
	"sync"
)

// FavoritesStore is a concurrency-safe, insertion-ordered set of canonical
// country names. Names are compared case-insensitively.
type FavoritesStore struct {
	mu    sync.RWMutex
	names []string
}

// NewFavoritesStore creates an empty FavoritesStore.
func NewFavoritesStore() *FavoritesStore {
	return &FavoritesStore{}
}

// Add inserts name unless an equal name is already present.
// It reports whether the set changed.
func (s *FavoritesStore) Add(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(name) >= 0 {
		return false
	}
	s.names = append(s.names, name)
	return true
}

// Remove deletes name if present and reports whether the set changed.
func (s *FavoritesStore) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(name)
	if i < 0 {
		return false
	}
	s.names = append(s.names[:i], s.names[i+1:]...)
	return true
}

// List returns a snapshot of the current favorites in insertion order.
func (s *FavoritesStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// indexOf must be called with s.mu held.
func (s *FavoritesStore) indexOf(name string) int {
	for i, n := range s.names {
		if strings.EqualFold(n, name) {
			return i
		}
	}
	return -1
}
