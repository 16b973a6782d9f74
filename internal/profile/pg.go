package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pondokdigital/pesantren-api/internal/rbac"
)

// PGStore implements Store on PostgreSQL via pgxpool.
type PGStore struct {
	pool *pgxpool.Pool
}

// PGConfig tunes the connection pool.
type PGConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

// NewPGStore connects a pool and pings it.
func NewPGStore(ctx context.Context, cfg PGConfig) (*PGStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("profile: parse DSN: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		poolCfg.MinConns = int32(cfg.MaxIdleConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("profile: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("profile: ping: %w", err)
	}
	return &PGStore{pool: pool}, nil
}

// NewPGStoreFromPool wraps an existing pool (shared with other stores).
func NewPGStoreFromPool(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// Pool exposes the underlying pool for shared wiring.
func (s *PGStore) Pool() *pgxpool.Pool { return s.pool }

func (s *PGStore) Close() { s.pool.Close() }

func (s *PGStore) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

const selectProfileSQL = `
SELECT user_id, COALESCE(nama, ''), roles, COALESCE(active_role, ''), COALESCE(role, ''), updated_at
FROM user_profiles
WHERE user_id = $1`

func (s *PGStore) GetByUserID(ctx context.Context, userID string) (*Profile, error) {
	var rec Record
	err := s.pool.QueryRow(ctx, selectProfileSQL, userID).Scan(
		&rec.UserID, &rec.Nama, &rec.Roles, &rec.ActiveRole, &rec.Role, &rec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("profile: get %s: %w", userID, err)
	}
	return Normalize(&rec), nil
}

// switchRoleSQL validates in the write itself: the row only updates when
// the requested role is in the freshly-read assigned set (array format) or
// equals the legacy scalar role. A concurrent roles edit therefore cannot
// leave active_role outside the assigned set.
const switchRoleSQL = `
UPDATE user_profiles
SET active_role = $2, updated_at = now()
WHERE user_id = $1
  AND ($2 = ANY(roles) OR (roles IS NULL AND role = $2))`

func (s *PGStore) SwitchActiveRole(ctx context.Context, userID string, newRole rbac.Role) (*Profile, error) {
	tag, err := s.pool.Exec(ctx, switchRoleSQL, userID, string(newRole))
	if err != nil {
		return nil, fmt.Errorf("profile: switch role for %s: %w", userID, err)
	}

	if tag.RowsAffected() == 0 {
		// Distinguish missing profile from unassigned role.
		if _, err := s.GetByUserID(ctx, userID); err != nil {
			return nil, err
		}
		return nil, ErrRoleNotAssigned
	}

	return s.GetByUserID(ctx, userID)
}
