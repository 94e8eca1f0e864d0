// Package item provides the item catalog.
package item

import (
	"context"
	"time"

	"posledger/internal/core/apperror"
	"posledger/internal/core/id"
	"posledger/internal/core/types"
)

// Item is one catalog entry. Code is a display identifier assigned
// sequentially; uniqueness of codes is a catalog courtesy, not something
// the ledger depends on (it keys everything by ID).
type Item struct {
	ID            string      `json:"id"`
	Code          string      `json:"code"`
	Name          string      `json:"name"`
	Category      string      `json:"category"`
	PurchasePrice types.Money `json:"purchasePrice"`
	SalePrice     types.Money `json:"salePrice"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// NewItem creates an item with generated ID and timestamp.
func NewItem(name, category string) *Item {
	return &Item{
		ID:            id.NewString(),
		Name:          name,
		Category:      category,
		PurchasePrice: types.ZeroMoney(),
		SalePrice:     types.ZeroMoney(),
		CreatedAt:     time.Now().UTC(),
	}
}

// Validate checks catalog invariants.
func (i *Item) Validate(ctx context.Context) error {
	if i.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if i.PurchasePrice.Decimal.IsNegative() {
		return apperror.NewValidation("purchase price cannot be negative").
			WithDetail("field", "purchasePrice")
	}
	if i.SalePrice.Decimal.IsNegative() {
		return apperror.NewValidation("sale price cannot be negative").
			WithDetail("field", "salePrice")
	}
	return nil
}

// Repository defines storage access for the item catalog.
type Repository interface {
	// List returns the full catalog in stored order.
	List(ctx context.Context) ([]*Item, error)

	// Get retrieves one item by id.
	Get(ctx context.Context, itemID string) (*Item, error)

	// Save upserts an item by id.
	Save(ctx context.Context, it *Item) error

	// Delete removes an item. Transaction history referencing the id stays
	// valid; the ledger derives stock purely from the transaction logs.
	Delete(ctx context.Context, itemID string) error
}
