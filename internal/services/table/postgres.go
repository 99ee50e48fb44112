package table

import (
	"context"
	"fmt"

	"table-order/internal/database"
	"table-order/internal/models"
)

// Repository is the storage contract for tables
type Repository interface {
	List(ctx context.Context) ([]models.Table, error)
	Insert(ctx context.Context, table *models.Table) error
	Delete(ctx context.Context, id int) error
	SetOccupied(ctx context.Context, id int, orderID string) error
	FreeByOrder(ctx context.Context, orderID string) error
}

// PostgresRepository implements Repository on the shared pgx pool. Table ids
// come from a database sequence.
type PostgresRepository struct {
	db *database.DB
}

// NewPostgresRepository creates a Postgres-backed table repository
func NewPostgresRepository(db *database.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Table, error) {
	rows, err := r.db.Query(ctx, database.ListTablesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []models.Table
	for rows.Next() {
		var t models.Table
		if err := rows.Scan(&t.ID, &t.Name, &t.Seats, &t.IsOccupied, &t.CurrentOrderID, &t.CreatedAt); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

func (r *PostgresRepository) Insert(ctx context.Context, table *models.Table) error {
	err := r.db.QueryRow(ctx, database.InsertTableSQL, table.Name, table.Seats).
		Scan(&table.ID, &table.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert table: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Pool.Exec(ctx, database.DeleteTableSQL, id)
	if err != nil {
		return fmt.Errorf("failed to delete table: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetOccupied(ctx context.Context, id int, orderID string) error {
	err := r.db.Exec(ctx, database.SetTableOccupiedSQL, true, orderID, id)
	if err != nil {
		return fmt.Errorf("failed to mark table occupied: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FreeByOrder(ctx context.Context, orderID string) error {
	err := r.db.Exec(ctx, database.FreeTableByOrderSQL, orderID)
	if err != nil {
		return fmt.Errorf("failed to free table: %w", err)
	}
	return nil
}
