package santri

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const listSQL = `
SELECT id, nis, nama, COALESCE(kelas, ''), COALESCE(halaqoh, ''), status, created_at
FROM santri
ORDER BY nama`

// PGStore implements Store on Postgres.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) List(ctx context.Context) ([]Santri, error) {
	rows, err := s.pool.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("santri: list: %w", err)
	}
	defer rows.Close()

	var out []Santri
	for rows.Next() {
		var st Santri
		if err := rows.Scan(&st.ID, &st.NIS, &st.Nama, &st.Kelas, &st.Halaqoh, &st.Status, &st.CreatedAt); err != nil {
			return nil, fmt.Errorf("santri: scan: %w", err)
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("santri: rows: %w", err)
	}
	return out, nil
}
