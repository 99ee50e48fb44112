package analytics

import (
	"context"
	"fmt"

	"table-order/internal/database"
	"table-order/internal/models"
)

// Repository is the read-side contract for order analytics
type Repository interface {
	DailyStats(ctx context.Context) ([]models.DailyStats, error)
	PopularItems(ctx context.Context, limit int) ([]models.PopularItem, error)
	TableStats(ctx context.Context) ([]models.TableStats, error)
	OrderTotals(ctx context.Context) (int, int64, error)
}

// PostgresRepository implements Repository with aggregate queries over the
// orders tables. Cancelled orders are excluded everywhere.
type PostgresRepository struct {
	db *database.DB
}

// NewPostgresRepository creates a Postgres-backed analytics repository
func NewPostgresRepository(db *database.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) DailyStats(ctx context.Context) ([]models.DailyStats, error) {
	rows, err := r.db.Query(ctx, database.DailyStatsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	defer rows.Close()

	var stats []models.DailyStats
	for rows.Next() {
		var day models.DailyStats
		if err := rows.Scan(&day.Date, &day.Orders, &day.Revenue); err != nil {
			return nil, err
		}
		stats = append(stats, day)
	}
	return stats, rows.Err()
}

func (r *PostgresRepository) PopularItems(ctx context.Context, limit int) ([]models.PopularItem, error) {
	rows, err := r.db.Query(ctx, database.PopularItemsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query popular items: %w", err)
	}
	defer rows.Close()

	var items []models.PopularItem
	for rows.Next() {
		var item models.PopularItem
		if err := rows.Scan(&item.MenuItemID, &item.Name, &item.OrderCount); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) TableStats(ctx context.Context) ([]models.TableStats, error) {
	rows, err := r.db.Query(ctx, database.TableStatsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query table stats: %w", err)
	}
	defer rows.Close()

	var stats []models.TableStats
	for rows.Next() {
		var entry models.TableStats
		if err := rows.Scan(&entry.TableID, &entry.OrderCount); err != nil {
			return nil, err
		}
		stats = append(stats, entry)
	}
	return stats, rows.Err()
}

func (r *PostgresRepository) OrderTotals(ctx context.Context) (int, int64, error) {
	var count int
	var revenue int64
	err := r.db.QueryRow(ctx, database.OrderTotalsSQL).Scan(&count, &revenue)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query order totals: %w", err)
	}
	return count, revenue, nil
}
