package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"table-order/internal/database"
	"table-order/internal/models"
)

// Repository is the storage contract the menu service needs
type Repository interface {
	List(ctx context.Context) ([]models.MenuItem, error)
	Get(ctx context.Context, id string) (*models.MenuItem, error)
	Insert(ctx context.Context, item *models.MenuItem) error
	Update(ctx context.Context, item *models.MenuItem) error
	SetAvailability(ctx context.Context, id string, isAvailable bool) error
	Count(ctx context.Context) (int, error)
}

// PostgresRepository implements Repository on the shared pgx pool
type PostgresRepository struct {
	db *database.DB
}

// NewPostgresRepository creates a Postgres-backed menu repository
func NewPostgresRepository(db *database.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := r.db.Query(ctx, database.ListMenuItemsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	return items, rows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	row := r.db.QueryRow(ctx, database.GetMenuItemSQL, id)
	item, err := scanMenuItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, item *models.MenuItem) error {
	sizes, extras, err := marshalVariants(item)
	if err != nil {
		return err
	}

	err = r.db.QueryRow(ctx, database.InsertMenuItemSQL,
		item.ID, item.Name, item.Description, item.Image, item.Price,
		item.Category, item.IsAvailable, item.IsPopular, sizes, extras,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert menu item: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, item *models.MenuItem) error {
	sizes, extras, err := marshalVariants(item)
	if err != nil {
		return err
	}

	tag, err := r.db.Pool.Exec(ctx, database.UpdateMenuItemSQL,
		item.Name, item.Description, item.Image, item.Price, item.Category,
		item.IsAvailable, item.IsPopular, sizes, extras, item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetAvailability(ctx context.Context, id string, isAvailable bool) error {
	tag, err := r.db.Pool.Exec(ctx, database.SetMenuItemAvailabilitySQL, isAvailable, id)
	if err != nil {
		return fmt.Errorf("failed to set availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, database.CountMenuItemsSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count menu items: %w", err)
	}
	return count, nil
}

func marshalVariants(item *models.MenuItem) ([]byte, []byte, error) {
	sizes, err := json.Marshal(item.Sizes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal sizes: %w", err)
	}
	extras, err := json.Marshal(item.Extras)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal extras: %w", err)
	}
	return sizes, extras, nil
}

func scanMenuItem(row pgx.Row) (*models.MenuItem, error) {
	var item models.MenuItem
	var sizes, extras []byte

	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Image,
		&item.Price, &item.Category, &item.IsAvailable, &item.IsPopular,
		&sizes, &extras, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(sizes, &item.Sizes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sizes: %w", err)
	}
	if err := json.Unmarshal(extras, &item.Extras); err != nil {
		return nil, fmt.Errorf("failed to unmarshal extras: %w", err)
	}

	return &item, nil
}
