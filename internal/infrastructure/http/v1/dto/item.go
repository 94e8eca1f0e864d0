package dto

import (
	"posledger/internal/core/types"
	"posledger/internal/domain/catalog/item"
)

// ItemRequest is the create/update payload for a catalog item.
// Code is optional on create; when absent the next sequential code is
// assigned. It is ignored on update.
type ItemRequest struct {
	Code          string      `json:"code"`
	Name          string      `json:"name"`
	Category      string      `json:"category"`
	PurchasePrice types.Money `json:"purchasePrice"`
	SalePrice     types.Money `json:"salePrice"`
}

// ToModel builds a new item from the payload.
func (r ItemRequest) ToModel() *item.Item {
	it := item.NewItem(r.Name, r.Category)
	it.Code = r.Code
	it.PurchasePrice = r.PurchasePrice
	it.SalePrice = r.SalePrice
	return it
}

// ApplyTo overwrites an existing item's editable fields.
func (r ItemRequest) ApplyTo(it *item.Item) {
	it.Name = r.Name
	it.Category = r.Category
	it.PurchasePrice = r.PurchasePrice
	it.SalePrice = r.SalePrice
}
