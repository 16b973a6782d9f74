package keuangan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySummary(t *testing.T) {
	store := NewMemoryStore(
		Entry{Jenis: JenisPemasukan, Jumlah: 5_000_000},
		Entry{Jenis: JenisPemasukan, Jumlah: 1_500_000},
		Entry{Jenis: JenisPengeluaran, Jumlah: 2_000_000},
	)

	sum, err := store.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(6_500_000), sum.TotalPemasukan)
	assert.Equal(t, int64(2_000_000), sum.TotalPengeluaran)
	assert.Equal(t, int64(4_500_000), sum.Saldo)
}

func TestMemorySummaryEmpty(t *testing.T) {
	sum, err := NewMemoryStore().Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Summary{}, sum)
}

func TestMemorySummaryIgnoresUnknownJenis(t *testing.T) {
	store := NewMemoryStore(
		Entry{Jenis: "transfer", Jumlah: 999},
		Entry{Jenis: JenisPemasukan, Jumlah: 100},
	)
	sum, err := store.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(100), sum.Saldo)
}
