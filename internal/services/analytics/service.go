package analytics

import (
	"context"
	"fmt"

	"table-order/internal/logger"
	"table-order/internal/models"
)

// popularItemsLimit caps the most-ordered-items ranking
const popularItemsLimit = 5

// Service assembles the analytics summary
type Service struct {
	repo   Repository
	logger *logger.Logger
}

// NewService creates an analytics service
func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: log,
	}
}

// Summary aggregates daily volume, popular items, per-table counts and the
// overall totals into one payload
func (s *Service) Summary(ctx context.Context) (*models.AnalyticsSummary, error) {
	daily, err := s.repo.DailyStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily stats: %w", err)
	}

	popular, err := s.repo.PopularItems(ctx, popularItemsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load popular items: %w", err)
	}

	tables, err := s.repo.TableStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load table stats: %w", err)
	}

	totalOrders, totalRevenue, err := s.repo.OrderTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load order totals: %w", err)
	}

	summary := &models.AnalyticsSummary{
		Daily:        daily,
		PopularItems: popular,
		TableStats:   tables,
		TotalOrders:  totalOrders,
		TotalRevenue: totalRevenue,
	}
	if summary.Daily == nil {
		summary.Daily = []models.DailyStats{}
	}
	if summary.PopularItems == nil {
		summary.PopularItems = []models.PopularItem{}
	}
	if summary.TableStats == nil {
		summary.TableStats = []models.TableStats{}
	}
	return summary, nil
}
