// Package storage provides the item sources the demo paginates over.
//
// Implementations:
//   - MemoryStorage: generated items held in memory
//   - PostgresStorage: items read from the "items" table
//
// Sources report their item count separately from the item list so a
// paginator can be built over a collection counted elsewhere.
package storage

import (
	"context"
	"fmt"
)

// =============================================================================
// Interface Definition
// =============================================================================

// Storage defines the read operations the pagination handlers need.
type Storage interface {
	// Items returns every item in display order.
	Items(ctx context.Context) ([]Item, error)

	// Count returns the number of items without materializing them.
	Count(ctx context.Context) (int, error)
}

// =============================================================================
// Data Types
// =============================================================================

// Item is one entry of the demo collection.
type Item struct {
	ID    int    `json:"id"    yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// GenerateItems returns n items titled "Item 1" through "Item n".
func GenerateItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{ID: i + 1, Title: fmt.Sprintf("Item %d", i+1)}
	}
	return items
}
