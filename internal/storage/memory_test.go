package storage

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func TestGenerateItems(t *testing.T) {
	items := GenerateItems(3)

	assert.Equal(t, []Item{
		{ID: 1, Title: "Item 1"},
		{ID: 2, Title: "Item 2"},
		{ID: 3, Title: "Item 3"},
	}, items)
	assert.Empty(t, GenerateItems(0))
}

func TestMemoryStorage(t *testing.T) {
	s, err := NewMemoryStorage(1000, testLogger())
	require.NoError(t, err)

	ctx := context.Background()

	items, err := s.Items(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1000)
	assert.Equal(t, "Item 1000", items[999].Title)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1000, n)
}

func TestMemoryStorage_ItemsAreCopied(t *testing.T) {
	s, err := NewMemoryStorage(2, testLogger())
	require.NoError(t, err)

	items, _ := s.Items(context.Background())
	items[0].Title = "changed"

	again, _ := s.Items(context.Background())
	assert.Equal(t, "Item 1", again[0].Title)
}

func TestMemoryStorage_RejectsNegativeCount(t *testing.T) {
	_, err := NewMemoryStorage(-1, testLogger())

	var se *StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "New", se.Op)
	assert.ErrorIs(t, err, ErrInvalidCount)
}

func TestMemoryStorage_CanceledContext(t *testing.T) {
	s, err := NewMemoryStorage(2, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Items(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.Count(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStorageError(t *testing.T) {
	err := &StorageError{Op: "Count", Err: ErrUnavailable}

	assert.Equal(t, "storage Count: storage unavailable", err.Error())
	assert.True(t, IsUnavailable(err))
	assert.False(t, IsUnavailable(errors.New("other")))
}
