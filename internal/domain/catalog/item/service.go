package item

import (
	"context"
	"fmt"
	"strconv"

	"posledger/pkg/logger"
)

// codeFloor is the first item code ever assigned. Codes below it (legacy,
// hand-entered) are ignored when computing the next code.
const codeFloor = 10001

// Service provides catalog operations, including sequential code
// assignment. Item codes are deterministic (max existing + 1), unlike
// document numbers, which are drawn at random. Different entities,
// different policies, on purpose.
type Service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the full catalog.
func (s *Service) List(ctx context.Context) ([]*Item, error) {
	return s.repo.List(ctx)
}

// Get retrieves one item.
func (s *Service) Get(ctx context.Context, itemID string) (*Item, error) {
	return s.repo.Get(ctx, itemID)
}

// Create validates the item, assigns the next code when none was given,
// and saves.
func (s *Service) Create(ctx context.Context, it *Item) error {
	if err := it.Validate(ctx); err != nil {
		return err
	}

	if it.Code == "" {
		code, err := s.NextCode(ctx)
		if err != nil {
			return fmt.Errorf("assign item code: %w", err)
		}
		it.Code = code
	}

	if err := s.repo.Save(ctx, it); err != nil {
		return fmt.Errorf("save item: %w", err)
	}

	logger.Info(ctx, "item created", "id", it.ID, "code", it.Code)
	return nil
}

// Update validates and saves an existing item. Transaction lines keep
// their snapshots; edits here never rewrite history.
func (s *Service) Update(ctx context.Context, it *Item) error {
	if err := it.Validate(ctx); err != nil {
		return err
	}
	if _, err := s.repo.Get(ctx, it.ID); err != nil {
		return err
	}
	return s.repo.Save(ctx, it)
}

// Delete removes an item from the catalog. Historical transactions keep
// their dangling itemId references and stay fully reportable.
func (s *Service) Delete(ctx context.Context, itemID string) error {
	if _, err := s.repo.Get(ctx, itemID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, itemID); err != nil {
		return err
	}
	logger.Info(ctx, "item deleted", "id", itemID)
	return nil
}

// NextCode computes the next sequential item code:
// max(existing numeric codes >= 10001) + 1, or 10001 for a fresh catalog.
func (s *Service) NextCode(ctx context.Context) (string, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return "", err
	}

	maxCode := 0
	for _, it := range items {
		n, err := strconv.Atoi(it.Code)
		if err != nil || n < codeFloor {
			continue
		}
		if n > maxCode {
			maxCode = n
		}
	}

	if maxCode == 0 {
		return strconv.Itoa(codeFloor), nil
	}
	return strconv.Itoa(maxCode + 1), nil
}
