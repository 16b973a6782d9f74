package profile

import (
	"context"
	"sync"
	"time"

	"github.com/pondokdigital/pesantren-api/internal/rbac"
)

// MemoryStore implements Store in process memory. Used by tests and local
// development without a database. The mutex covers the whole
// read-validate-write sequence of SwitchActiveRole, matching the atomicity
// the SQL validate-in-write gives the pg store.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[string]*Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[string]*Record)}
}

// Put inserts or replaces a raw record (legacy shapes welcome).
func (s *MemoryStore) Put(rec *Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	if cp.UpdatedAt.IsZero() {
		cp.UpdatedAt = time.Now().UTC()
	}
	s.rows[rec.UserID] = &cp
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) GetByUserID(ctx context.Context, userID string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.rows[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return Normalize(rec), nil
}

func (s *MemoryStore) SwitchActiveRole(ctx context.Context, userID string, newRole rbac.Role) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.rows[userID]
	if !ok {
		return nil, ErrNotFound
	}

	// Validate against the current snapshot, not a cached one.
	if !Normalize(rec).HasRole(newRole) {
		return nil, ErrRoleNotAssigned
	}

	rec.ActiveRole = string(newRole)
	rec.UpdatedAt = time.Now().UTC()
	return Normalize(rec), nil
}
