package docnum

import (
	"context"
	"fmt"

	"posledger/internal/domain/documents"
)

// Service implements documents.NumberGenerator over the transaction
// repository. Every call re-reads the kind's collection so numbers issued
// since the last call are always visible; the collection read is the only
// synchronization there is.
type Service struct {
	repo documents.Repository
	src  Source
}

// NewService creates a number generator backed by the given repository.
func NewService(repo documents.Repository, src Source) *Service {
	if src == nil {
		src = NewSource()
	}
	return &Service{repo: repo, src: src}
}

// Next returns a fresh number for the kind's namespace.
func (s *Service) Next(ctx context.Context, kind documents.Kind) (string, error) {
	docs, err := s.repo.List(ctx, kind)
	if err != nil {
		return "", fmt.Errorf("read %s numbers: %w", kind, err)
	}

	numbers := make([]string, 0, len(docs))
	for _, doc := range docs {
		numbers = append(numbers, doc.Number)
	}

	prefix := kind.Prefix()
	return Generate(prefix, TakenSuffixes(prefix, numbers), s.src), nil
}

var _ documents.NumberGenerator = (*Service)(nil)
