package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posledger/internal/core/apperror"
	"posledger/internal/core/types"
	"posledger/internal/domain/catalog/item"
	"posledger/internal/domain/documents"
)

func newDoc(number string) *documents.Transaction {
	doc := documents.NewTransaction("X", types.Today())
	doc.Number = number
	doc.Items = []documents.Line{{ItemID: "i", Quantity: 1}}
	return doc
}

func TestDocuments_ReadAfterWrite(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	doc := newDoc("PRC-10001")
	require.NoError(t, store.Save(ctx, documents.KindPurchase, doc))

	got, err := store.Get(ctx, documents.KindPurchase, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "PRC-10001", got.Number)

	docs, err := store.List(ctx, documents.KindPurchase)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestDocuments_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	first := newDoc("SV-10001")
	second := newDoc("SV-10002")
	require.NoError(t, store.Save(ctx, documents.KindSale, first))
	require.NoError(t, store.Save(ctx, documents.KindSale, second))

	docs, err := store.List(ctx, documents.KindSale)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, second.ID, docs[0].ID)
	assert.Equal(t, first.ID, docs[1].ID)
}

func TestDocuments_UpsertKeepsPosition(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	first := newDoc("SV-10001")
	second := newDoc("SV-10002")
	require.NoError(t, store.Save(ctx, documents.KindSale, first))
	require.NoError(t, store.Save(ctx, documents.KindSale, second))

	first.CounterpartyName = "Edited"
	require.NoError(t, store.Save(ctx, documents.KindSale, first))

	docs, err := store.List(ctx, documents.KindSale)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, second.ID, docs[0].ID)
	assert.Equal(t, "Edited", docs[1].CounterpartyName)
}

func TestDocuments_KindsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.Save(ctx, documents.KindSale, newDoc("SV-10001")))

	docs, err := store.List(ctx, documents.KindPurchase)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDocuments_ReturnedValuesAreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	doc := newDoc("PRC-10001")
	require.NoError(t, store.Save(ctx, documents.KindPurchase, doc))

	got, err := store.Get(ctx, documents.KindPurchase, doc.ID)
	require.NoError(t, err)
	got.Items[0].Quantity = 999
	got.Number = "mutated"

	again, err := store.Get(ctx, documents.KindPurchase, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "PRC-10001", again.Number)
	assert.Equal(t, types.Quantity(1), again.Items[0].Quantity)
}

func TestDocuments_DeleteAndNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	doc := newDoc("PRC-10001")
	require.NoError(t, store.Save(ctx, documents.KindPurchase, doc))
	require.NoError(t, store.Delete(ctx, documents.KindPurchase, doc.ID))

	_, err := store.Get(ctx, documents.KindPurchase, doc.ID)
	assert.True(t, apperror.IsNotFound(err))
	assert.True(t, apperror.IsNotFound(store.Delete(ctx, documents.KindPurchase, doc.ID)))
}

func TestItems_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Items()

	it := item.NewItem("Rice", "Grocery")
	require.NoError(t, repo.Save(ctx, it))

	got, err := repo.Get(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rice", got.Name)

	it.Name = "Basmati Rice"
	require.NoError(t, repo.Save(ctx, it))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Basmati Rice", items[0].Name)

	require.NoError(t, repo.Delete(ctx, it.ID))
	_, err = repo.Get(ctx, it.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Save(ctx, documents.KindSale, newDoc("SV-10001"))
		}()
		go func() {
			defer wg.Done()
			_, _ = store.List(ctx, documents.KindSale)
		}()
	}
	wg.Wait()

	docs, err := store.List(ctx, documents.KindSale)
	require.NoError(t, err)
	assert.Len(t, docs, 20)
}
