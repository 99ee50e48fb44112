package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"table-order/internal/database"
	"table-order/internal/models"
)

// Repository is the storage contract for orders (spec'd §6 boundary)
type Repository interface {
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	Insert(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus, changedBy string) (time.Time, error)
	StatusHistory(ctx context.Context, id string) ([]models.OrderStatusHistory, error)
}

// PostgresRepository implements Repository on the shared pgx pool
type PostgresRepository struct {
	db *database.DB
}

// NewPostgresRepository creates a Postgres-backed order repository
func NewPostgresRepository(db *database.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert stores the order, its item snapshot and the initial status log
// entry in one transaction
func (r *PostgresRepository) Insert(ctx context.Context, order *models.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, database.InsertOrderSQL,
		order.ID, order.TableNumber, order.Status, order.PaymentMethod,
		order.Subtotal, order.Tax, order.Total, nullable(order.SpecialInstructions),
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]

		var size []byte
		if item.SelectedSize != nil {
			size, err = json.Marshal(item.SelectedSize)
			if err != nil {
				return fmt.Errorf("failed to marshal size: %w", err)
			}
		}
		extras, err := json.Marshal(item.SelectedExtras)
		if err != nil {
			return fmt.Errorf("failed to marshal extras: %w", err)
		}

		_, err = tx.Exec(ctx, database.InsertOrderItemSQL,
			item.ID, order.ID, item.MenuItem.ID, item.MenuItem.Name,
			item.MenuItem.Price, item.Quantity, size, extras, nullable(item.SpecialInstructions),
		)
		if err != nil {
			return fmt.Errorf("failed to insert order item %s: %w", item.MenuItem.Name, err)
		}
	}

	if _, err := tx.Exec(ctx, database.InsertOrderStatusLogSQL, order.ID, order.Status, "api-server"); err != nil {
		return fmt.Errorf("failed to insert status log: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, database.ListOrdersSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.orderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Order, error) {
	row := r.db.QueryRow(ctx, database.GetOrderSQL, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	order.Items, err = r.orderItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus persists a transition and appends to the status log. Missing
// ids surface as models.ErrNotFound, never silently swallowed.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus, changedBy string) (time.Time, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var updatedAt time.Time
	err = tx.QueryRow(ctx, database.UpdateOrderStatusSQL, status, id).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, models.ErrNotFound
		}
		return time.Time{}, fmt.Errorf("failed to update order status: %w", err)
	}

	if _, err := tx.Exec(ctx, database.InsertOrderStatusLogSQL, id, status, changedBy); err != nil {
		return time.Time{}, fmt.Errorf("failed to insert status log: %w", err)
	}

	return updatedAt, tx.Commit(ctx)
}

func (r *PostgresRepository) StatusHistory(ctx context.Context, id string) ([]models.OrderStatusHistory, error) {
	rows, err := r.db.Query(ctx, database.GetOrderStatusHistorySQL, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get status history: %w", err)
	}
	defer rows.Close()

	var history []models.OrderStatusHistory
	for rows.Next() {
		var entry models.OrderStatusHistory
		if err := rows.Scan(&entry.Status, &entry.ChangedBy, &entry.ChangedAt); err != nil {
			return nil, err
		}
		history = append(history, entry)
	}
	return history, rows.Err()
}

func (r *PostgresRepository) orderItems(ctx context.Context, orderID string) ([]models.CartItem, error) {
	rows, err := r.db.Query(ctx, database.GetOrderItemsSQL, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	var items []models.CartItem
	for rows.Next() {
		var item models.CartItem
		var size, extras []byte
		var instructions *string

		err := rows.Scan(&item.ID, &item.MenuItem.ID, &item.MenuItem.Name,
			&item.MenuItem.Price, &item.Quantity, &size, &extras, &instructions)
		if err != nil {
			return nil, err
		}

		if size != nil {
			if err := json.Unmarshal(size, &item.SelectedSize); err != nil {
				return nil, fmt.Errorf("failed to unmarshal size: %w", err)
			}
		}
		if err := json.Unmarshal(extras, &item.SelectedExtras); err != nil {
			return nil, fmt.Errorf("failed to unmarshal extras: %w", err)
		}
		if instructions != nil {
			item.SpecialInstructions = *instructions
		}

		items = append(items, item)
	}
	return items, rows.Err()
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	var order models.Order
	var instructions *string

	err := row.Scan(&order.ID, &order.TableNumber, &order.Status, &order.PaymentMethod,
		&order.Subtotal, &order.Tax, &order.Total, &instructions,
		&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if instructions != nil {
		order.SpecialInstructions = *instructions
	}
	return &order, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
