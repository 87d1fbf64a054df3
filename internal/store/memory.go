package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements Store with an in-memory map. Used for testing
// and for running the service without a database.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]*ValuationRecord
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs: make(map[uuid.UUID]*ValuationRecord),
	}
}

func (s *MemoryStore) SaveRun(_ context.Context, rec *ValuationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Store a copy to avoid external mutation.
	cp := *rec
	s.runs[rec.ID] = &cp
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id uuid.UUID) (*ValuationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.runs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *MemoryStore) ListRuns(_ context.Context, limit int) ([]ValuationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ValuationRecord, 0, len(s.runs))
	for _, rec := range s.runs {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
