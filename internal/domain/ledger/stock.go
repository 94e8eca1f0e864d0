// Package ledger derives stock from the transaction collections. There is
// no stored balance anywhere: every quantity reported here is recomputed
// from the purchase, stock return, sale, and sale return documents on each
// call, so the figures can never drift from the documents that justify them.
package ledger

import (
	"context"
	"fmt"

	"posledger/internal/core/types"
	"posledger/internal/domain/catalog/item"
	"posledger/internal/domain/documents"
)

// StockStatus filters closing stock rows by balance.
type StockStatus string

const (
	StatusAll      StockStatus = "all"
	StatusInStock  StockStatus = "inStock"
	StatusOutOf    StockStatus = "outOfStock"
	StatusNegative StockStatus = "negativeStock"
)

// ParseStockStatus validates a status filter, defaulting to all.
func ParseStockStatus(s string) (StockStatus, bool) {
	switch StockStatus(s) {
	case StatusInStock, StatusOutOf, StatusNegative:
		return StockStatus(s), true
	case StatusAll, "":
		return StatusAll, true
	}
	return "", false
}

// StockRow is one item's position in the closing stock report.
type StockRow struct {
	ItemID        string      `json:"itemId"`
	Code          string      `json:"code"`
	Name          string      `json:"name"`
	Category      string      `json:"category"`
	PurchasePrice types.Money `json:"purchasePrice"`
	SalePrice     types.Money `json:"salePrice"`
	Stock         int64       `json:"stock"`
	StockValue    types.Money `json:"stockValue"`
}

// StockStats aggregates the closing stock report. AvailableQuantity and
// TotalStockValue sum over every catalog item, negative balances included,
// so an oversold item reduces both figures.
type StockStats struct {
	InStockCount      int64       `json:"inStockCount"`
	OutOfStockCount   int64       `json:"outOfStockCount"`
	AvailableQuantity int64       `json:"availableQuantity"`
	TotalStockValue   types.Money `json:"totalStockValue"`
}

// StockReport is the closing stock report: filtered rows plus aggregates.
// Stats always cover the whole catalog regardless of the row filter.
type StockReport struct {
	Rows  []StockRow `json:"rows"`
	Stats StockStats `json:"stats"`
}

// Service recomputes stock and movements from the document collections.
type Service struct {
	docs    documents.Repository
	catalog item.Repository
}

// NewService creates a ledger service.
func NewService(docs documents.Repository, catalog item.Repository) *Service {
	return &Service{docs: docs, catalog: catalog}
}

// stockMap folds all four collections into per-item balances in one pass.
// Items that never moved are absent from the map.
func (s *Service) stockMap(ctx context.Context) (map[string]int64, error) {
	balances := make(map[string]int64)
	for _, kind := range documents.Kinds() {
		docs, err := s.docs.List(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", kind, err)
		}
		sign := kind.Sign()
		for _, doc := range docs {
			for _, line := range doc.Items {
				balances[line.ItemID] += sign * line.Quantity.Int64()
			}
		}
	}
	return balances, nil
}

// CurrentStock returns the derived balance for one item. Unknown item ids
// yield zero; an id with no movements is indistinguishable from one that
// never existed, which is exactly the derived-stock contract.
func (s *Service) CurrentStock(ctx context.Context, itemID string) (int64, error) {
	balances, err := s.stockMap(ctx)
	if err != nil {
		return 0, err
	}
	return balances[itemID], nil
}

// ClosingStock builds the report over the full catalog, one row per item in
// catalog order, then filters rows by status. Stats are computed before the
// filter so the headline figures do not change when the user narrows the view.
func (s *Service) ClosingStock(ctx context.Context, status StockStatus) (*StockReport, error) {
	items, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	balances, err := s.stockMap(ctx)
	if err != nil {
		return nil, err
	}

	report := &StockReport{
		Rows:  make([]StockRow, 0, len(items)),
		Stats: StockStats{TotalStockValue: types.ZeroMoney()},
	}

	for _, it := range items {
		stock := balances[it.ID]
		value := types.NewMoney(it.PurchasePrice.Decimal.Mul(types.Quantity(stock).Decimal()))

		switch {
		case stock > 0:
			report.Stats.InStockCount++
		case stock == 0:
			report.Stats.OutOfStockCount++
		}
		report.Stats.AvailableQuantity += stock
		report.Stats.TotalStockValue = types.NewMoney(
			report.Stats.TotalStockValue.Decimal.Add(value.Decimal))

		if !matchesStatus(stock, status) {
			continue
		}
		report.Rows = append(report.Rows, StockRow{
			ItemID:        it.ID,
			Code:          it.Code,
			Name:          it.Name,
			Category:      it.Category,
			PurchasePrice: it.PurchasePrice,
			SalePrice:     it.SalePrice,
			Stock:         stock,
			StockValue:    value,
		})
	}
	return report, nil
}

func matchesStatus(stock int64, status StockStatus) bool {
	switch status {
	case StatusInStock:
		return stock > 0
	case StatusOutOf:
		return stock == 0
	case StatusNegative:
		return stock < 0
	}
	return true
}

var _ documents.StockReader = (*Service)(nil)
