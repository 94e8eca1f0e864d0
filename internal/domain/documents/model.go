package documents

import (
	"context"
	"time"

	"posledger/internal/core/apperror"
	"posledger/internal/core/id"
	"posledger/internal/core/types"
)

// Line is one item entry embedded in a transaction document.
// ItemName and ItemCode are value copies taken when the line is built;
// they are never re-resolved from the catalog, so history stays accurate
// after an item is edited or deleted.
type Line struct {
	ItemID   string         `json:"itemId"`
	ItemName string         `json:"itemName"`
	ItemCode string         `json:"itemCode"`
	Quantity types.Quantity `json:"quantity"`
	Price    types.Money    `json:"price"`
	Total    types.Money    `json:"total"`
}

// ComputeTotal returns quantity x price for the line.
func (l Line) ComputeTotal() types.Money {
	return types.NewMoney(l.Quantity.Decimal().Mul(l.Price.Decimal))
}

// Transaction is one POS document: a purchase, stock return, sale, or
// sale return. The shape is identical across kinds; the kind lives in the
// collection the document is stored in.
type Transaction struct {
	ID               string      `json:"id"`
	Number           string      `json:"number"`
	CounterpartyName string      `json:"counterpartyName"`
	Date             types.Date  `json:"date"`
	Narration        string      `json:"narration,omitempty"`
	Items            []Line      `json:"items"`
	TotalAmount      types.Money `json:"totalAmount"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// NewTransaction creates a transaction with generated ID and timestamp.
// The document number is assigned by the service at save time.
func NewTransaction(counterparty string, date types.Date) *Transaction {
	return &Transaction{
		ID:               id.NewString(),
		CounterpartyName: counterparty,
		Date:             date,
		Items:            make([]Line, 0),
		TotalAmount:      types.ZeroMoney(),
		CreatedAt:        time.Now().UTC(),
	}
}

// AddLine appends a line and recalculates totals.
func (t *Transaction) AddLine(line Line) {
	line.Total = line.ComputeTotal()
	t.Items = append(t.Items, line)
	t.RecalculateTotals()
}

// RecalculateTotals rebuilds every line total and the document total.
// TotalAmount is always the sum of line totals, never edited independently.
func (t *Transaction) RecalculateTotals() {
	total := types.ZeroMoney()
	for i := range t.Items {
		t.Items[i].Total = t.Items[i].ComputeTotal()
		total = types.NewMoney(total.Decimal.Add(t.Items[i].Total.Decimal))
	}
	t.TotalAmount = total
}

// Validate checks document invariants before save.
func (t *Transaction) Validate(ctx context.Context) error {
	if t.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	if len(t.Items) == 0 {
		return apperror.NewValidation("at least one item is required").
			WithDetail("field", "items")
	}
	for i, line := range t.Items {
		if line.ItemID == "" {
			return apperror.NewValidation("item is required").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		if line.Price.Decimal.IsNegative() {
			return apperror.NewValidation("price cannot be negative").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
	}
	return nil
}
