package dataset

import "sync"

// Store holds the current snapshot behind a read-write lock so a reload can
// swap it atomically while request handlers keep reading the old one.
type Store struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Set replaces the current snapshot.
func (s *Store) Set(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
}

// Get returns the current snapshot, or false when none has been loaded yet.
func (s *Store) Get() (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, false
	}
	return s.snap, true
}
