package docnum

import (
	"context"

	"posledger/internal/domain/documents"
)

// MockGenerator is a test implementation of documents.NumberGenerator.
// Use in unit tests to avoid repository dependencies.
type MockGenerator struct {
	NextFunc func(ctx context.Context, kind documents.Kind) (string, error)
}

// Next implements documents.NumberGenerator.
func (m *MockGenerator) Next(ctx context.Context, kind documents.Kind) (string, error) {
	if m.NextFunc != nil {
		return m.NextFunc(ctx, kind)
	}
	// Default: return predictable mock number
	return kind.Prefix() + "-10001", nil
}

// Ensure compile-time interface compliance.
var _ documents.NumberGenerator = (*MockGenerator)(nil)
