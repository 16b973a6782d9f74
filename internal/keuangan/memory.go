package keuangan

import (
	"context"
	"sync"
)

// Entry is one cash-book line for the memory store.
type Entry struct {
	Jenis  string
	Jumlah int64
}

// MemoryStore implements Store in process memory, for tests and local
// development.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewMemoryStore(entries ...Entry) *MemoryStore {
	return &MemoryStore{entries: entries}
}

func (s *MemoryStore) Add(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

func (s *MemoryStore) Summary(ctx context.Context) (*Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum Summary
	for _, e := range s.entries {
		switch e.Jenis {
		case JenisPemasukan:
			sum.TotalPemasukan += e.Jumlah
		case JenisPengeluaran:
			sum.TotalPengeluaran += e.Jumlah
		}
	}
	sum.Saldo = sum.TotalPemasukan - sum.TotalPengeluaran
	return &sum, nil
}
