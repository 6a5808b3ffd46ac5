// Package memory implements an in-memory submission store for tests
// and ephemeral development runs.
package memory

import (
	"context"
	"sync"

	"github.com/arcanedigitalshield/siteapi/internal/contact"
)

// Store holds the submission collection in memory. It is safe for
// concurrent use; like the durable stores, writes replace the
// collection wholesale.
type Store struct {
	mu          sync.RWMutex
	submissions []contact.Submission
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

// ReadSubmissions returns a copy of the collection.
func (s *Store) ReadSubmissions(_ context.Context) ([]contact.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]contact.Submission, len(s.submissions))
	copy(out, s.submissions)
	return out, nil
}

// WriteSubmissions replaces the collection.
func (s *Store) WriteSubmissions(_ context.Context, submissions []contact.Submission) error {
	cp := make([]contact.Submission, len(submissions))
	copy(cp, submissions)
	s.mu.Lock()
	s.submissions = cp
	s.mu.Unlock()
	return nil
}
