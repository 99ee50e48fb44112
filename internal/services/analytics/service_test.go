package analytics

import (
	"context"
	"errors"
	"testing"

	"table-order/internal/logger"
	"table-order/internal/models"
)

type fakeRepo struct {
	daily    []models.DailyStats
	popular  []models.PopularItem
	tables   []models.TableStats
	count    int
	revenue  int64
	failWith error
}

func (f *fakeRepo) DailyStats(ctx context.Context) ([]models.DailyStats, error) {
	return f.daily, f.failWith
}

func (f *fakeRepo) PopularItems(ctx context.Context, limit int) ([]models.PopularItem, error) {
	if limit != popularItemsLimit {
		return nil, errors.New("unexpected limit")
	}
	return f.popular, f.failWith
}

func (f *fakeRepo) TableStats(ctx context.Context) ([]models.TableStats, error) {
	return f.tables, f.failWith
}

func (f *fakeRepo) OrderTotals(ctx context.Context) (int, int64, error) {
	return f.count, f.revenue, f.failWith
}

func TestSummary(t *testing.T) {
	repo := &fakeRepo{
		daily:   []models.DailyStats{{Date: "2026-08-28", Orders: 3, Revenue: 4176}},
		popular: []models.PopularItem{{MenuItemID: "m1", Name: "Zinger Burger", OrderCount: 3}},
		tables:  []models.TableStats{{TableID: 4, OrderCount: 2}},
		count:   3,
		revenue: 4176,
	}
	svc := NewService(repo, logger.New("analytics-test"))

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	if summary.TotalOrders != 3 || summary.TotalRevenue != 4176 {
		t.Errorf("totals = %d/%d, want 3/4176", summary.TotalOrders, summary.TotalRevenue)
	}
	if len(summary.Daily) != 1 || summary.Daily[0].Date != "2026-08-28" {
		t.Errorf("daily = %v", summary.Daily)
	}
	if len(summary.PopularItems) != 1 || summary.PopularItems[0].Name != "Zinger Burger" {
		t.Errorf("popular = %v", summary.PopularItems)
	}
}

func TestSummary_EmptyDatabase(t *testing.T) {
	svc := NewService(&fakeRepo{}, logger.New("analytics-test"))

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	if summary.Daily == nil || summary.PopularItems == nil || summary.TableStats == nil {
		t.Error("empty summary slices must be non-nil for JSON encoding")
	}
	if summary.TotalOrders != 0 || summary.TotalRevenue != 0 {
		t.Errorf("totals = %d/%d, want 0/0", summary.TotalOrders, summary.TotalRevenue)
	}
}

func TestSummary_RepoError(t *testing.T) {
	svc := NewService(&fakeRepo{failWith: errors.New("connection refused")}, logger.New("analytics-test"))

	if _, err := svc.Summary(context.Background()); err == nil {
		t.Fatal("Summary() expected error, got nil")
	}
}
