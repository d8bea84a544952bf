package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// =============================================================================
// PostgresStorage Implementation
// =============================================================================

// PostgresStorage reads items from the "items" table.
// The database handle is expected to use the pgx stdlib driver.
type PostgresStorage struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresStorage creates a PostgresStorage and verifies the connection.
func NewPostgresStorage(ctx context.Context, db *sql.DB, logger *slog.Logger) (*PostgresStorage, error) {
	if err := db.PingContext(ctx); err != nil {
		return nil, &StorageError{Op: "New", Err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
	}

	logger.Info("initialized postgres storage")

	return &PostgresStorage{db: db, logger: logger}, nil
}

const (
	selectItemsQuery = `SELECT id, title FROM items ORDER BY id`
	countItemsQuery  = `SELECT COUNT(*) FROM items`
	seedItemsQuery   = `INSERT INTO items (title) SELECT 'Item ' || g FROM generate_series(1, $1) AS g`
)

// Items returns every row of the items table ordered by id.
func (s *PostgresStorage) Items(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, selectItemsQuery)
	if err != nil {
		return nil, &StorageError{Op: "Items", Err: err}
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.Title); err != nil {
			return nil, &StorageError{Op: "Items", Err: err}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "Items", Err: err}
	}

	return items, nil
}

// Count returns the number of rows in the items table.
func (s *PostgresStorage) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, countItemsQuery).Scan(&n); err != nil {
		return 0, &StorageError{Op: "Count", Err: err}
	}
	return n, nil
}

// Seed inserts n generated items when the table is empty.
// It returns the number of rows inserted.
func (s *PostgresStorage) Seed(ctx context.Context, n int) (int, error) {
	if n < 0 {
		return 0, &StorageError{Op: "Seed", Err: ErrInvalidCount}
	}

	existing, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}
	if existing > 0 || n == 0 {
		return 0, nil
	}

	res, err := s.db.ExecContext(ctx, seedItemsQuery, n)
	if err != nil {
		return 0, &StorageError{Op: "Seed", Err: err}
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, &StorageError{Op: "Seed", Err: err}
	}

	s.logger.Info("seeded items table", "rows", inserted)
	return int(inserted), nil
}
