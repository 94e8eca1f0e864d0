package documents

import (
	"context"
)

// Repository defines storage access for the four transaction collections.
// Collections are always read in full; the ledger and the number generator
// both rely on reads reflecting the latest save (read-after-write).
type Repository interface {
	// List returns every document of the kind in stored order, newest first.
	List(ctx context.Context, kind Kind) ([]*Transaction, error)

	// Get retrieves one document by id.
	Get(ctx context.Context, kind Kind, docID string) (*Transaction, error)

	// Save upserts a document by id.
	Save(ctx context.Context, kind Kind, doc *Transaction) error

	// Delete removes a document. Historical references to its items remain
	// in other documents; nothing cascades.
	Delete(ctx context.Context, kind Kind, docID string) error
}

// NumberGenerator produces the next document number for a kind's namespace.
// Implementations live in the docnum package.
type NumberGenerator interface {
	Next(ctx context.Context, kind Kind) (string, error)
}

// StockReader reports current stock for sale validation.
// Implemented by the ledger aggregator.
type StockReader interface {
	CurrentStock(ctx context.Context, itemID string) (int64, error)
}
