package inventory

import (
	"context"
	"testing"

	"github.com/giftgeek/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddStockCreatesRecord(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(NewMemoryRepository())

	require.NoError(t, l.AddStock(ctx, 1, 10, "restock"))

	rec, err := l.Record(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, rec.Stock)
	assert.Equal(t, 0, rec.Reserved)
	assert.Equal(t, 10, rec.Available())
	assert.Equal(t, DefaultLowStockThreshold, rec.LowStockThreshold)
}

func TestReserveConfirmReleaseFlow(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(NewMemoryRepository())
	require.NoError(t, l.AddStock(ctx, 1, 10, "restock"))

	ok, err := l.Reserve(ctx, 1, 4, "ORD-1")
	require.NoError(t, err)
	require.True(t, ok)

	rec, _ := l.Record(ctx, 1)
	assert.Equal(t, 10, rec.Stock)
	assert.Equal(t, 4, rec.Reserved)
	assert.Equal(t, 6, rec.Available())

	ok, err = l.ConfirmSale(ctx, 1, 4, "ORD-1")
	require.NoError(t, err)
	require.True(t, ok)

	rec, _ = l.Record(ctx, 1)
	assert.Equal(t, 6, rec.Stock)
	assert.Equal(t, 0, rec.Reserved)
	assert.Equal(t, 6, rec.Available())

	// reserving more than what is left fails with no state change
	ok, err = l.Reserve(ctx, 1, 10, "ORD-2")
	require.NoError(t, err)
	assert.False(t, ok)

	rec, _ = l.Record(ctx, 1)
	assert.Equal(t, 6, rec.Stock)
	assert.Equal(t, 0, rec.Reserved)
}

func TestReleaseReturnsReservation(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(NewMemoryRepository())
	require.NoError(t, l.AddStock(ctx, 1, 5, "restock"))

	ok, err := l.Reserve(ctx, 1, 3, "ORD-1")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = l.Release(ctx, 1, 3, "ORD-1")
	require.NoError(t, err)
	require.True(t, ok)

	rec, _ := l.Record(ctx, 1)
	assert.Equal(t, 5, rec.Stock)
	assert.Equal(t, 0, rec.Reserved)
	assert.Equal(t, 5, rec.Available())
}

func TestOperationsOnMissingRecord(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(NewMemoryRepository())

	ok, err := l.Reserve(ctx, 42, 1, "ORD-1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = l.ConfirmSale(ctx, 42, 1, "ORD-1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = l.Release(ctx, 42, 1, "ORD-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConfirmSaleNeverExceedsReservation(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(NewMemoryRepository())
	require.NoError(t, l.AddStock(ctx, 1, 10, "restock"))

	ok, err := l.Reserve(ctx, 1, 2, "ORD-1")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = l.ConfirmSale(ctx, 1, 3, "ORD-1")
	require.NoError(t, err)
	assert.False(t, ok)

	rec, _ := l.Record(ctx, 1)
	assert.Equal(t, 10, rec.Stock)
	assert.Equal(t, 2, rec.Reserved)
}

func TestMovementLogRecordsEveryOperation(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(NewMemoryRepository())

	require.NoError(t, l.AddStock(ctx, 1, 10, "restock"))
	_, _ = l.Reserve(ctx, 1, 4, "ORD-1")
	_, _ = l.ConfirmSale(ctx, 1, 4, "ORD-1")

	moves, err := l.Movements(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, moves, 3)
	// newest first
	assert.Equal(t, domain.MovementOut, moves[0].Type)
	assert.Equal(t, domain.MovementReserved, moves[1].Type)
	assert.Equal(t, domain.MovementIn, moves[2].Type)
	assert.Equal(t, "ORD-1", moves[0].OrderRef)
}

func TestMovementLogCapDropsOldestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	l := NewLedgerWithCap(repo, 5)

	for i := 0; i < 8; i++ {
		require.NoError(t, l.AddStock(ctx, 1, 1, "restock"))
	}

	total, err := repo.CountMovements(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	// counters are unaffected by trimming
	rec, _ := l.Record(ctx, 1)
	assert.Equal(t, 8, rec.Stock)
}

func TestLowStock(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(NewMemoryRepository())

	require.NoError(t, l.AddStock(ctx, 1, 2, "restock"))
	require.NoError(t, l.AddStock(ctx, 2, 50, "restock"))

	low, err := l.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, int64(1), low[0].ProductID)

	require.NoError(t, l.SetThreshold(ctx, 2, 60))
	low, err = l.LowStock(ctx)
	require.NoError(t, err)
	assert.Len(t, low, 2)
}
