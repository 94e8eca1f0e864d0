package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posledger/internal/core/types"
	"posledger/internal/domain/documents"
	"posledger/internal/infrastructure/storage/memory"
)

func TestMovementHistory_SortedByDate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	it := seedItem(t, store, "Rice", "850")
	svc := NewService(store, store.Items())

	seedDoc(t, store, documents.KindSale, "SV-10001", "2026-03-05",
		documents.Line{ItemID: it.ID, Quantity: 2, Price: types.MustMoney("1050")})
	seedDoc(t, store, documents.KindPurchase, "PRC-10001", "2026-03-01",
		documents.Line{ItemID: it.ID, Quantity: 10, Price: types.MustMoney("850")})
	seedDoc(t, store, documents.KindSaleReturn, "SRV-10001", "2026-03-10",
		documents.Line{ItemID: it.ID, Quantity: 1, Price: types.MustMoney("1050")})

	movements, err := svc.MovementHistory(ctx, it.ID)
	require.NoError(t, err)
	require.Len(t, movements, 3)

	assert.Equal(t, "PRC-10001", movements[0].Number)
	assert.Equal(t, "SV-10001", movements[1].Number)
	assert.Equal(t, "SRV-10001", movements[2].Number)
}

func TestMovementHistory_EqualDateTieBreakIsScanOrder(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	it := seedItem(t, store, "Oil", "320")
	svc := NewService(store, store.Items())

	// Saved in reverse scan order on the same date; the history must still
	// come back as purchase, stock return, sale, sale return.
	seedDoc(t, store, documents.KindSaleReturn, "SRV-10001", "2026-04-01",
		documents.Line{ItemID: it.ID, Quantity: 1, Price: types.MustMoney("395")})
	seedDoc(t, store, documents.KindSale, "SV-10001", "2026-04-01",
		documents.Line{ItemID: it.ID, Quantity: 3, Price: types.MustMoney("395")})
	seedDoc(t, store, documents.KindStockReturn, "SRT-10001", "2026-04-01",
		documents.Line{ItemID: it.ID, Quantity: 2, Price: types.MustMoney("320")})
	seedDoc(t, store, documents.KindPurchase, "PRC-10001", "2026-04-01",
		documents.Line{ItemID: it.ID, Quantity: 12, Price: types.MustMoney("320")})

	movements, err := svc.MovementHistory(ctx, it.ID)
	require.NoError(t, err)
	require.Len(t, movements, 4)

	assert.Equal(t, documents.KindPurchase, movements[0].Kind)
	assert.Equal(t, documents.KindStockReturn, movements[1].Kind)
	assert.Equal(t, documents.KindSale, movements[2].Kind)
	assert.Equal(t, documents.KindSaleReturn, movements[3].Kind)
}

func TestMovementHistory_SignsLabelsAndTotals(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	it := seedItem(t, store, "Tea", "210")
	svc := NewService(store, store.Items())

	seedDoc(t, store, documents.KindPurchase, "PRC-10001", "2026-05-01",
		documents.Line{ItemID: it.ID, Quantity: 10, Price: types.MustMoney("210")})
	seedDoc(t, store, documents.KindSale, "SV-10001", "2026-05-02",
		documents.Line{ItemID: it.ID, Quantity: 4, Price: types.MustMoney("280")})

	movements, err := svc.MovementHistory(ctx, it.ID)
	require.NoError(t, err)
	require.Len(t, movements, 2)

	purchase := movements[0]
	assert.Equal(t, int64(10), purchase.Quantity)
	assert.Equal(t, "Purchase", purchase.Label)
	assert.Equal(t, "🛒", purchase.Icon)
	assert.True(t, purchase.TotalPrice.Decimal.Equal(types.MustMoney("2100").Decimal))

	sale := movements[1]
	assert.Equal(t, int64(-4), sale.Quantity)
	assert.Equal(t, "Sale", sale.Label)
	assert.Equal(t, "💰", sale.Icon)
	// Money stays unsigned even though the quantity is negative.
	assert.True(t, sale.TotalPrice.Decimal.Equal(types.MustMoney("1120").Decimal))
}

func TestMovementHistory_SumEqualsCurrentStock(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	it := seedItem(t, store, "Soap", "95")
	svc := NewService(store, store.Items())

	seedDoc(t, store, documents.KindPurchase, "PRC-10001", "2026-06-01",
		documents.Line{ItemID: it.ID, Quantity: 30, Price: types.MustMoney("95")})
	seedDoc(t, store, documents.KindStockReturn, "SRT-10001", "2026-06-02",
		documents.Line{ItemID: it.ID, Quantity: 5, Price: types.MustMoney("95")})
	seedDoc(t, store, documents.KindSale, "SV-10001", "2026-06-03",
		documents.Line{ItemID: it.ID, Quantity: 12, Price: types.MustMoney("140")})
	seedDoc(t, store, documents.KindSaleReturn, "SRV-10001", "2026-06-04",
		documents.Line{ItemID: it.ID, Quantity: 2, Price: types.MustMoney("140")})

	movements, err := svc.MovementHistory(ctx, it.ID)
	require.NoError(t, err)

	var sum int64
	for _, m := range movements {
		sum += m.Quantity
	}

	stock, err := svc.CurrentStock(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, stock, sum)
}

func TestMovementHistory_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	it := seedItem(t, store, "Rice", "850")
	svc := NewService(store, store.Items())

	seedDoc(t, store, documents.KindPurchase, "PRC-10001", "2026-07-01",
		documents.Line{ItemID: it.ID, Quantity: 7, Price: types.MustMoney("850")})

	first, err := svc.MovementHistory(ctx, it.ID)
	require.NoError(t, err)
	second, err := svc.MovementHistory(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFilterMovements(t *testing.T) {
	d := func(s string) types.Date {
		parsed, err := types.ParseDate(s)
		require.NoError(t, err)
		return parsed
	}

	movements := []Movement{
		{Number: "PRC-10001", Kind: documents.KindPurchase, Date: d("2026-01-01"), Quantity: 10},
		{Number: "SV-10001", Kind: documents.KindSale, Date: d("2026-01-05"), Quantity: -3},
		{Number: "SV-10002", Kind: documents.KindSale, Date: d("2026-01-10"), Quantity: -2},
		{Number: "SRV-10001", Kind: documents.KindSaleReturn, Date: d("2026-01-10"), Quantity: 1},
	}

	t.Run("no filter returns all", func(t *testing.T) {
		got := FilterMovements(movements, MovementFilter{})
		assert.Len(t, got, 4)
	})

	t.Run("all kind returns all", func(t *testing.T) {
		got := FilterMovements(movements, MovementFilter{Kind: "all"})
		assert.Len(t, got, 4)
	})

	t.Run("kind filter", func(t *testing.T) {
		got := FilterMovements(movements, MovementFilter{Kind: documents.KindSale})
		require.Len(t, got, 2)
		assert.Equal(t, "SV-10001", got[0].Number)
		assert.Equal(t, "SV-10002", got[1].Number)
	})

	t.Run("date range is inclusive", func(t *testing.T) {
		got := FilterMovements(movements, MovementFilter{
			From: d("2026-01-05"),
			To:   d("2026-01-10"),
		})
		assert.Len(t, got, 3)
	})

	t.Run("open-ended from", func(t *testing.T) {
		got := FilterMovements(movements, MovementFilter{From: d("2026-01-06")})
		assert.Len(t, got, 2)
	})

	t.Run("kind and range combined", func(t *testing.T) {
		got := FilterMovements(movements, MovementFilter{
			Kind: documents.KindSale,
			From: d("2026-01-06"),
		})
		require.Len(t, got, 1)
		assert.Equal(t, "SV-10002", got[0].Number)
	})

	t.Run("filter preserves quantities", func(t *testing.T) {
		got := FilterMovements(movements, MovementFilter{Kind: documents.KindSale})
		var sum int64
		for _, m := range got {
			sum += m.Quantity
		}
		// A filtered view sums to a partial figure, not current stock.
		assert.Equal(t, int64(-5), sum)
	})
}
