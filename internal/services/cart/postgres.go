package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"table-order/internal/database"
	"table-order/internal/models"
)

// Store persists one cart per table. A table with no stored cart is an
// empty cart, not an error.
type Store interface {
	Load(ctx context.Context, tableNumber int) ([]models.CartItem, error)
	Save(ctx context.Context, tableNumber int, items []models.CartItem) error
	Delete(ctx context.Context, tableNumber int) error
}

// PostgresStore implements Store on the shared pgx pool, one JSONB row per
// table, mirroring the original per-table storage entry
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore creates a Postgres-backed cart store
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Load(ctx context.Context, tableNumber int) ([]models.CartItem, error) {
	var raw []byte
	err := s.db.QueryRow(ctx, database.GetCartSQL, tableNumber).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load cart for table %d: %w", tableNumber, err)
	}

	var items []models.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart for table %d: %w", tableNumber, err)
	}
	return items, nil
}

func (s *PostgresStore) Save(ctx context.Context, tableNumber int, items []models.CartItem) error {
	if items == nil {
		items = []models.CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart for table %d: %w", tableNumber, err)
	}

	if err := s.db.Exec(ctx, database.UpsertCartSQL, tableNumber, raw); err != nil {
		return fmt.Errorf("failed to save cart for table %d: %w", tableNumber, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, tableNumber int) error {
	if err := s.db.Exec(ctx, database.DeleteCartSQL, tableNumber); err != nil {
		return fmt.Errorf("failed to delete cart for table %d: %w", tableNumber, err)
	}
	return nil
}
