package storage

import (
	"context"
	"log/slog"
	"slices"
)

// =============================================================================
// MemoryStorage Implementation
// =============================================================================

// MemoryStorage serves a fixed in-memory item list.
type MemoryStorage struct {
	items []Item
}

// NewMemoryStorage creates a MemoryStorage holding n generated items.
func NewMemoryStorage(n int, logger *slog.Logger) (*MemoryStorage, error) {
	if n < 0 {
		return nil, &StorageError{Op: "New", Err: ErrInvalidCount}
	}

	logger.Info("initialized memory storage", "items", n)

	return &MemoryStorage{items: GenerateItems(n)}, nil
}

// Items returns a copy of the stored items.
func (s *MemoryStorage) Items(ctx context.Context) ([]Item, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return slices.Clone(s.items), nil
}

// Count returns the number of stored items.
func (s *MemoryStorage) Count(ctx context.Context) (int, error) {
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	return len(s.items), nil
}
