package item_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posledger/internal/core/apperror"
	"posledger/internal/core/types"
	"posledger/internal/domain/catalog/item"
	"posledger/internal/infrastructure/storage/memory"
)

func newService() *item.Service {
	return item.NewService(memory.NewStore().Items())
}

func TestNextCode_EmptyCatalogStartsAtFloor(t *testing.T) {
	svc := newService()
	code, err := svc.NextCode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "10001", code)
}

func TestNextCode_Sequential(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	first := item.NewItem("A", "")
	require.NoError(t, svc.Create(ctx, first))
	assert.Equal(t, "10001", first.Code)

	second := item.NewItem("B", "")
	require.NoError(t, svc.Create(ctx, second))
	assert.Equal(t, "10002", second.Code)
}

func TestNextCode_MaxPlusOneWithGaps(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	it := item.NewItem("A", "")
	it.Code = "10050"
	require.NoError(t, svc.Create(ctx, it))

	// Next code follows the maximum, not the count; gaps are never refilled.
	code, err := svc.NextCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "10051", code)
}

func TestNextCode_IgnoresLegacyAndNonNumericCodes(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	legacy := item.NewItem("Legacy", "")
	legacy.Code = "42" // below the floor
	require.NoError(t, svc.Create(ctx, legacy))

	odd := item.NewItem("Odd", "")
	odd.Code = "SKU-9"
	require.NoError(t, svc.Create(ctx, odd))

	code, err := svc.NextCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "10001", code)
}

func TestCreate_ExplicitCodeKept(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	it := item.NewItem("A", "")
	it.Code = "20000"
	require.NoError(t, svc.Create(ctx, it))
	assert.Equal(t, "20000", it.Code)
}

func TestCreate_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	t.Run("missing name", func(t *testing.T) {
		err := svc.Create(ctx, item.NewItem("", ""))
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	})

	t.Run("negative purchase price", func(t *testing.T) {
		it := item.NewItem("A", "")
		it.PurchasePrice = types.MustMoney("-1")
		assert.Error(t, svc.Create(ctx, it))
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	it := item.NewItem("A", "")
	require.NoError(t, svc.Create(ctx, it))
	require.NoError(t, svc.Delete(ctx, it.ID))

	_, err := svc.Get(ctx, it.ID)
	assert.True(t, apperror.IsNotFound(err))

	assert.True(t, apperror.IsNotFound(svc.Delete(ctx, "missing")))
}
