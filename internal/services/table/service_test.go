package table

import (
	"context"
	"errors"
	"testing"

	"table-order/internal/logger"
	"table-order/internal/models"
)

type memoryRepo struct {
	tables map[int]*models.Table
	nextID int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{tables: make(map[int]*models.Table), nextID: 1}
}

func (m *memoryRepo) List(ctx context.Context) ([]models.Table, error) {
	var tables []models.Table
	for _, t := range m.tables {
		tables = append(tables, *t)
	}
	return tables, nil
}

func (m *memoryRepo) Insert(ctx context.Context, table *models.Table) error {
	table.ID = m.nextID
	m.nextID++
	cp := *table
	m.tables[table.ID] = &cp
	return nil
}

func (m *memoryRepo) Delete(ctx context.Context, id int) error {
	if _, ok := m.tables[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.tables, id)
	return nil
}

func (m *memoryRepo) SetOccupied(ctx context.Context, id int, orderID string) error {
	if t, ok := m.tables[id]; ok {
		t.IsOccupied = true
		t.CurrentOrderID = orderID
	}
	return nil
}

func (m *memoryRepo) FreeByOrder(ctx context.Context, orderID string) error {
	for _, t := range m.tables {
		if t.CurrentOrderID == orderID {
			t.IsOccupied = false
			t.CurrentOrderID = ""
		}
	}
	return nil
}

type nopPublisher struct{ events int }

func (n *nopPublisher) PublishChange(ctx context.Context, event *models.ChangeEvent) error {
	n.events++
	return nil
}

func TestCreate_AssignsSequentialIDs(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, &nopPublisher{}, logger.New("table-test"))

	first, err := svc.Create(context.Background(), &models.CreateTableRequest{Name: "Window 1", Seats: 4}, "req_test")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second, err := svc.Create(context.Background(), &models.CreateTableRequest{Name: "Window 2", Seats: 2}, "req_test")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("ids = %d, %d, want 1, 2", first.ID, second.ID)
	}
	if first.IsOccupied {
		t.Error("new table should start unoccupied")
	}
}

func TestDelete_Missing(t *testing.T) {
	svc := NewService(newMemoryRepo(), &nopPublisher{}, logger.New("table-test"))

	err := svc.Delete(context.Background(), 42, "req_test")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestOccupancyRoundTrip(t *testing.T) {
	repo := newMemoryRepo()
	publisher := &nopPublisher{}
	svc := NewService(repo, publisher, logger.New("table-test"))

	table, _ := svc.Create(context.Background(), &models.CreateTableRequest{Name: "Booth", Seats: 6}, "req_test")

	if err := svc.SetOccupied(context.Background(), table.ID, "order-1"); err != nil {
		t.Fatalf("SetOccupied() error = %v", err)
	}
	if !repo.tables[table.ID].IsOccupied || repo.tables[table.ID].CurrentOrderID != "order-1" {
		t.Fatalf("table not occupied by order-1: %+v", repo.tables[table.ID])
	}

	if err := svc.FreeByOrder(context.Background(), "order-1"); err != nil {
		t.Fatalf("FreeByOrder() error = %v", err)
	}
	if repo.tables[table.ID].IsOccupied {
		t.Error("table still occupied after FreeByOrder")
	}
	if publisher.events != 3 {
		t.Errorf("published %d events, want 3", publisher.events)
	}
}
