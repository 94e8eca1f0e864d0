// Package dto defines HTTP request and response payloads.
package dto

import (
	"posledger/internal/core/types"
	"posledger/internal/domain/documents"
)

// LineRequest is one item line in a transaction payload. Name and code are
// not accepted from the client; the service snapshots them from the catalog.
type LineRequest struct {
	ItemID   string         `json:"itemId"`
	Quantity types.Quantity `json:"quantity"`
	Price    types.Money    `json:"price"`
}

// TransactionRequest is the create/update payload for any transaction kind.
type TransactionRequest struct {
	CounterpartyName string        `json:"counterpartyName"`
	Date             types.Date    `json:"date"`
	Narration        string        `json:"narration"`
	Items            []LineRequest `json:"items"`
}

// ToModel builds a new transaction from the payload. Totals are
// recalculated by the service on save.
func (r TransactionRequest) ToModel() *documents.Transaction {
	doc := documents.NewTransaction(r.CounterpartyName, r.Date)
	doc.Narration = r.Narration
	for _, line := range r.Items {
		doc.Items = append(doc.Items, documents.Line{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
			Price:    line.Price,
		})
	}
	return doc
}

// ApplyTo overwrites an existing transaction's editable fields.
func (r TransactionRequest) ApplyTo(doc *documents.Transaction) {
	doc.CounterpartyName = r.CounterpartyName
	doc.Date = r.Date
	doc.Narration = r.Narration
	doc.Items = doc.Items[:0]
	for _, line := range r.Items {
		doc.Items = append(doc.Items, documents.Line{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
			Price:    line.Price,
		})
	}
}
