package santri

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore implements Store in process memory, for tests and local
// development.
type MemoryStore struct {
	mu   sync.RWMutex
	rows []Santri
}

func NewMemoryStore(rows ...Santri) *MemoryStore {
	return &MemoryStore{rows: rows}
}

func (s *MemoryStore) Put(st Santri) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, st)
}

func (s *MemoryStore) List(ctx context.Context) ([]Santri, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]Santri(nil), s.rows...)
	sort.Slice(out, func(i, j int) bool { return out[i].Nama < out[j].Nama })
	return out, nil
}
