package keuangan

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// The aggregation happens in SQL so the summary stays one round-trip no
// matter how large the cash book grows.
const summarySQL = `
SELECT
    COALESCE(SUM(jumlah) FILTER (WHERE jenis = 'pemasukan'), 0),
    COALESCE(SUM(jumlah) FILTER (WHERE jenis = 'pengeluaran'), 0)
FROM kas_transaksi`

// PGStore implements Store on Postgres.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) Summary(ctx context.Context) (*Summary, error) {
	var in, out int64
	if err := s.pool.QueryRow(ctx, summarySQL).Scan(&in, &out); err != nil {
		return nil, fmt.Errorf("keuangan: summary: %w", err)
	}
	return &Summary{
		TotalPemasukan:   in,
		TotalPengeluaran: out,
		Saldo:            in - out,
	}, nil
}
