package ledger

import (
	"context"
	"fmt"
	"sort"

	"posledger/internal/core/types"
	"posledger/internal/domain/documents"
)

// Movement is one reconstructed stock entry for an item: which document
// moved it, when, by how much, and at what value. Quantity carries the
// kind's sign; TotalPrice is always the unsigned quantity times the line
// price, so returns show positive money next to negative quantity.
type Movement struct {
	Date       types.Date     `json:"date"`
	Number     string         `json:"number"`
	Kind       documents.Kind `json:"kind"`
	Label      string         `json:"label"`
	Icon       string         `json:"icon"`
	Quantity   int64          `json:"quantity"`
	Price      types.Money    `json:"price"`
	TotalPrice types.Money    `json:"totalPrice"`
}

// MovementFilter narrows a movement history. Kind empty or "all" keeps
// every kind; From and To are inclusive day bounds, either may be zero.
type MovementFilter struct {
	Kind documents.Kind
	From types.Date
	To   types.Date
}

// MovementHistory reconstructs the full movement list for one item, sorted
// by document date ascending. Equal dates keep collection scan order
// (purchases, stock returns, sales, sale returns) and store order within a
// collection; the sort is stable so that tie-break is deterministic.
func (s *Service) MovementHistory(ctx context.Context, itemID string) ([]Movement, error) {
	movements := make([]Movement, 0)
	for _, kind := range documents.Kinds() {
		docs, err := s.docs.List(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", kind, err)
		}
		sign := kind.Sign()
		for _, doc := range docs {
			for _, line := range doc.Items {
				if line.ItemID != itemID {
					continue
				}
				qty := line.Quantity.Int64()
				movements = append(movements, Movement{
					Date:       doc.Date,
					Number:     doc.Number,
					Kind:       kind,
					Label:      kind.Label(),
					Icon:       kind.Icon(),
					Quantity:   sign * qty,
					Price:      line.Price,
					TotalPrice: types.NewMoney(types.Quantity(qty).Abs().Decimal().Mul(line.Price.Decimal)),
				})
			}
		}
	}

	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].Date.Before(movements[j].Date)
	})
	return movements, nil
}

// FilterMovements returns the subset of movements matching the filter.
// Filtering never changes quantities; a filtered view sums to a partial
// figure, not to current stock.
func FilterMovements(movements []Movement, f MovementFilter) []Movement {
	out := make([]Movement, 0, len(movements))
	for _, m := range movements {
		if f.Kind != "" && f.Kind != "all" && m.Kind != f.Kind {
			continue
		}
		if !f.From.IsZero() && m.Date.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && m.Date.After(f.To) {
			continue
		}
		out = append(out, m)
	}
	return out
}
