package documents

import (
	"context"
	"fmt"
	"strings"

	"posledger/internal/core/apperror"
	"posledger/internal/domain/catalog/item"
	"posledger/pkg/logger"
)

// Service provides CRUD for one transaction kind. The four kinds share one
// implementation; a Service is bound to its kind at construction, mirroring
// the per-collection pages of the POS.
type Service struct {
	kind    Kind
	repo    Repository
	catalog *item.Service
	numbers NumberGenerator
	stock   StockReader
}

// NewService creates a document service for the given kind.
// stock may be nil for kinds that never check availability.
func NewService(kind Kind, repo Repository, catalog *item.Service, numbers NumberGenerator, stock StockReader) *Service {
	return &Service{
		kind:    kind,
		repo:    repo,
		catalog: catalog,
		numbers: numbers,
		stock:   stock,
	}
}

// Kind returns the kind this service is bound to.
func (s *Service) Kind() Kind {
	return s.kind
}

// List returns documents of the kind, newest first, optionally filtered by
// a case-insensitive search over number, counterparty, and line item names.
func (s *Service) List(ctx context.Context, search string) ([]*Transaction, error) {
	docs, err := s.repo.List(ctx, s.kind)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.kind, err)
	}
	if search == "" {
		return docs, nil
	}

	needle := strings.ToLower(search)
	filtered := make([]*Transaction, 0, len(docs))
	for _, doc := range docs {
		if docMatches(doc, needle) {
			filtered = append(filtered, doc)
		}
	}
	return filtered, nil
}

func docMatches(doc *Transaction, needle string) bool {
	if strings.Contains(strings.ToLower(doc.Number), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(doc.CounterpartyName), needle) {
		return true
	}
	for _, line := range doc.Items {
		if strings.Contains(strings.ToLower(line.ItemName), needle) {
			return true
		}
	}
	return false
}

// Get retrieves one document.
func (s *Service) Get(ctx context.Context, docID string) (*Transaction, error) {
	return s.repo.Get(ctx, s.kind, docID)
}

// Create assigns a document number, snapshots item names and codes from the
// catalog, recalculates totals, and saves. Sales additionally verify that
// every line has enough stock at the time of the call; this is the only
// place availability is enforced. Stock may still go negative through
// stock returns or backdated edits, and the ledger reports it as is.
func (s *Service) Create(ctx context.Context, doc *Transaction) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}
	if err := s.snapshotLines(ctx, doc); err != nil {
		return err
	}
	doc.RecalculateTotals()

	if s.kind == KindSale && s.stock != nil {
		if err := s.checkAvailability(ctx, doc); err != nil {
			return err
		}
	}

	if doc.Number == "" {
		number, err := s.numbers.Next(ctx, s.kind)
		if err != nil {
			return fmt.Errorf("assign %s number: %w", s.kind, err)
		}
		doc.Number = number
	}

	if err := s.repo.Save(ctx, s.kind, doc); err != nil {
		return fmt.Errorf("save %s: %w", s.kind, err)
	}

	logger.Info(ctx, "document created",
		"kind", string(s.kind), "id", doc.ID, "number", doc.Number)
	return nil
}

// Update rewrites an existing document in place. The number is kept; lines
// are re-snapshotted because the caller re-picks items when editing.
func (s *Service) Update(ctx context.Context, doc *Transaction) error {
	existing, err := s.repo.Get(ctx, s.kind, doc.ID)
	if err != nil {
		return err
	}
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	doc.Number = existing.Number
	doc.CreatedAt = existing.CreatedAt
	if err := s.snapshotLines(ctx, doc); err != nil {
		return err
	}
	doc.RecalculateTotals()

	if err := s.repo.Save(ctx, s.kind, doc); err != nil {
		return fmt.Errorf("save %s: %w", s.kind, err)
	}

	logger.Info(ctx, "document updated",
		"kind", string(s.kind), "id", doc.ID, "number", doc.Number)
	return nil
}

// Delete removes a document. Stock derived from it disappears with it.
func (s *Service) Delete(ctx context.Context, docID string) error {
	doc, err := s.repo.Get(ctx, s.kind, docID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, s.kind, docID); err != nil {
		return fmt.Errorf("delete %s: %w", s.kind, err)
	}
	logger.Info(ctx, "document deleted",
		"kind", string(s.kind), "id", doc.ID, "number", doc.Number)
	return nil
}

// snapshotLines copies current item name and code into each line. The line
// keeps whatever price the caller set; catalog prices are defaults offered
// upstream, not authoritative here.
func (s *Service) snapshotLines(ctx context.Context, doc *Transaction) error {
	for i := range doc.Items {
		it, err := s.catalog.Get(ctx, doc.Items[i].ItemID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewValidation("unknown item").
					WithDetail("itemId", doc.Items[i].ItemID).
					WithDetail("lineNo", i+1)
			}
			return err
		}
		doc.Items[i].ItemName = it.Name
		doc.Items[i].ItemCode = it.Code
	}
	return nil
}

// checkAvailability rejects a sale whose lines exceed current stock.
// Quantities of the same item across lines are summed before comparing.
func (s *Service) checkAvailability(ctx context.Context, doc *Transaction) error {
	wanted := make(map[string]int64)
	order := make([]string, 0, len(doc.Items))
	for _, line := range doc.Items {
		if _, seen := wanted[line.ItemID]; !seen {
			order = append(order, line.ItemID)
		}
		wanted[line.ItemID] += line.Quantity.Int64()
	}

	for _, itemID := range order {
		available, err := s.stock.CurrentStock(ctx, itemID)
		if err != nil {
			return fmt.Errorf("read stock for %s: %w", itemID, err)
		}
		if wanted[itemID] > available {
			return apperror.NewInsufficientStock(itemID, wanted[itemID], available)
		}
	}
	return nil
}
