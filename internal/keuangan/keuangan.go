// Package keuangan owns the cash-flow datastore used by the finance
// summary endpoint.
package keuangan

import "context"

// Transaction kinds as stored in kas_transaksi.jenis.
const (
	JenisPemasukan   = "pemasukan"
	JenisPengeluaran = "pengeluaran"
)

// Summary aggregates the cash book. Amounts are in whole rupiah.
type Summary struct {
	TotalPemasukan   int64 `json:"totalPemasukan"`
	TotalPengeluaran int64 `json:"totalPengeluaran"`
	Saldo            int64 `json:"saldo"`
}

// Store is the persistence boundary for the cash book.
type Store interface {
	// Summary aggregates income, expense and balance over all transactions.
	Summary(ctx context.Context) (*Summary, error)
}
