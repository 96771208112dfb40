// Package store defines the persistence boundary for assessment results.
// The engine only ever talks to the ResultStore interface; the reference
// implementation is volatile and in-memory.
package store

import (
	"errors"
	"sync"

	"neuroscreen/internal/models"
)

// ErrNotFound is returned when no result matches a lookup.
var ErrNotFound = errors.New("no result found")

// ResultStore is the only contract a storage layer needs to implement.
// Implementations must be safe for concurrent use and preserve insertion
// order.
type ResultStore interface {
	Add(result models.AssessmentResult) error
	ByDomain(domain models.Domain) ([]models.AssessmentResult, error)
	Latest(domain models.Domain) (models.AssessmentResult, error)
}

// MemoryStore keeps results in process memory, insertion-ordered. Each
// store instance is independent, so tests and concurrent sessions can run
// against isolated stores.
type MemoryStore struct {
	mu      sync.RWMutex
	results []models.AssessmentResult
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Add(result models.AssessmentResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
	return nil
}

func (s *MemoryStore) ByDomain(domain models.Domain) ([]models.AssessmentResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.AssessmentResult
	for _, r := range s.results {
		if r.Domain == domain {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryStore) Latest(domain models.Domain) (models.AssessmentResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.results) - 1; i >= 0; i-- {
		if s.results[i].Domain == domain {
			return s.results[i], nil
		}
	}
	return models.AssessmentResult{}, ErrNotFound
}
