package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"table-order/internal/logger"
	"table-order/internal/models"
)

type memoryRepo struct {
	orders  map[string]*models.Order
	history map[string][]models.OrderStatusHistory
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		orders:  make(map[string]*models.Order),
		history: make(map[string][]models.OrderStatusHistory),
	}
}

func (m *memoryRepo) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	for _, o := range m.orders {
		orders = append(orders, *o)
	}
	return orders, nil
}

func (m *memoryRepo) Get(ctx context.Context, id string) (*models.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memoryRepo) Insert(ctx context.Context, order *models.Order) error {
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	cp := *order
	m.orders[order.ID] = &cp
	m.history[order.ID] = append(m.history[order.ID], models.OrderStatusHistory{
		Status: order.Status, ChangedBy: "api-server", ChangedAt: now,
	})
	return nil
}

func (m *memoryRepo) UpdateStatus(ctx context.Context, id string, status models.OrderStatus, changedBy string) (time.Time, error) {
	o, ok := m.orders[id]
	if !ok {
		return time.Time{}, models.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	m.history[id] = append(m.history[id], models.OrderStatusHistory{
		Status: status, ChangedBy: changedBy, ChangedAt: o.UpdatedAt,
	})
	return o.UpdatedAt, nil
}

func (m *memoryRepo) StatusHistory(ctx context.Context, id string) ([]models.OrderStatusHistory, error) {
	return m.history[id], nil
}

type fakeCart struct {
	items   map[int][]models.CartItem
	cleared []int
}

func (f *fakeCart) Items(ctx context.Context, tableNumber int) ([]models.CartItem, error) {
	return f.items[tableNumber], nil
}

func (f *fakeCart) Clear(ctx context.Context, tableNumber int, requestID string) error {
	f.cleared = append(f.cleared, tableNumber)
	delete(f.items, tableNumber)
	return nil
}

type fakeTables struct {
	occupied map[int]string
}

func (f *fakeTables) SetOccupied(ctx context.Context, tableNumber int, orderID string) error {
	f.occupied[tableNumber] = orderID
	return nil
}

func (f *fakeTables) FreeByOrder(ctx context.Context, orderID string) error {
	for table, id := range f.occupied {
		if id == orderID {
			delete(f.occupied, table)
		}
	}
	return nil
}

type nopPublisher struct {
	changes  int
	statuses []models.StatusUpdateMessage
}

func (n *nopPublisher) PublishChange(ctx context.Context, event *models.ChangeEvent) error {
	n.changes++
	return nil
}

func (n *nopPublisher) PublishStatusUpdate(ctx context.Context, msg *models.StatusUpdateMessage) error {
	n.statuses = append(n.statuses, *msg)
	return nil
}

func newTestService() (*Service, *memoryRepo, *fakeCart, *fakeTables, *nopPublisher) {
	repo := newMemoryRepo()
	cart := &fakeCart{items: make(map[int][]models.CartItem)}
	tables := &fakeTables{occupied: make(map[int]string)}
	publisher := &nopPublisher{}
	svc := NewService(repo, cart, tables, publisher, logger.New("order-test"))
	return svc, repo, cart, tables, publisher
}

func burgerLine(quantity int) models.CartItem {
	return models.CartItem{
		MenuItem: models.MenuItem{ID: "m1", Name: "Zinger Burger", Price: 600},
		Quantity: quantity,
	}
}

func TestCreate_AssignsServerIdentityAndTotals(t *testing.T) {
	svc, _, _, tables, publisher := newTestService()

	order, err := svc.Create(context.Background(), &models.CreateOrderRequest{
		ID:            "client-supplied-id",
		TableNumber:   4,
		Items:         []models.CartItem{burgerLine(2)},
		PaymentMethod: models.PaymentJazzCash,
	}, "req_test")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if order.ID == "" || order.ID == "client-supplied-id" {
		t.Errorf("order id = %q, want a server-assigned id", order.ID)
	}
	if order.Status != models.StatusPending {
		t.Errorf("status = %q, want %q", order.Status, models.StatusPending)
	}
	if order.Subtotal != 1200 || order.Tax != 192 || order.Total != 1392 {
		t.Errorf("totals = %d/%d/%d, want 1200/192/1392", order.Subtotal, order.Tax, order.Total)
	}
	if tables.occupied[4] != order.ID {
		t.Errorf("table 4 not marked occupied by %s", order.ID)
	}
	if publisher.changes != 1 {
		t.Errorf("published %d change events, want 1", publisher.changes)
	}
}

func TestCheckout_MaterializesAndClearsCart(t *testing.T) {
	svc, repo, cart, _, _ := newTestService()
	cart.items[7] = []models.CartItem{burgerLine(1)}

	order, err := svc.Checkout(context.Background(), 7, &models.CheckoutRequest{
		PaymentMethod: models.PaymentCashOnDelivery,
	}, "req_test")
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}

	if order.TableNumber != 7 {
		t.Errorf("table number = %d, want 7", order.TableNumber)
	}
	if order.Total != 696 {
		t.Errorf("total = %d, want 696", order.Total)
	}
	if len(cart.cleared) != 1 || cart.cleared[0] != 7 {
		t.Errorf("cart clear calls = %v, want [7]", cart.cleared)
	}

	stored, err := repo.Get(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("order not persisted: %v", err)
	}
	if stored.Status != models.StatusPending {
		t.Errorf("persisted status = %q, want pending", stored.Status)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Checkout(context.Background(), 3, &models.CheckoutRequest{
		PaymentMethod: models.PaymentEasyPaisa,
	}, "req_test")
	if !errors.Is(err, models.ErrEmptyCart) {
		t.Fatalf("Checkout() error = %v, want ErrEmptyCart", err)
	}
}

func TestAdvance_WalksLifecycleToServed(t *testing.T) {
	svc, _, _, tables, publisher := newTestService()

	order, err := svc.Create(context.Background(), &models.CreateOrderRequest{
		TableNumber:   2,
		Items:         []models.CartItem{burgerLine(1)},
		PaymentMethod: models.PaymentEasyPaisa,
	}, "req_test")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	want := []models.OrderStatus{models.StatusPreparing, models.StatusReady, models.StatusServed}
	for _, status := range want {
		order, err = svc.Advance(context.Background(), order.ID, "kitchen", "req_test")
		if err != nil {
			t.Fatalf("Advance() to %s error = %v", status, err)
		}
		if order.Status != status {
			t.Fatalf("status = %q, want %q", order.Status, status)
		}
	}

	if _, ok := tables.occupied[2]; ok {
		t.Error("table 2 still occupied after order served")
	}
	if len(publisher.statuses) != 3 {
		t.Fatalf("published %d status updates, want 3", len(publisher.statuses))
	}
	last := publisher.statuses[2]
	if last.OldStatus != models.StatusReady || last.NewStatus != models.StatusServed {
		t.Errorf("last status update = %s -> %s, want ready -> served", last.OldStatus, last.NewStatus)
	}
}

func TestAdvance_TerminalOrder(t *testing.T) {
	svc, repo, _, _, _ := newTestService()

	order, _ := svc.Create(context.Background(), &models.CreateOrderRequest{
		TableNumber:   1,
		Items:         []models.CartItem{burgerLine(1)},
		PaymentMethod: models.PaymentEasyPaisa,
	}, "req_test")
	repo.orders[order.ID].Status = models.StatusServed

	_, err := svc.Advance(context.Background(), order.ID, "kitchen", "req_test")
	if !errors.Is(err, ErrNoTransition) {
		t.Fatalf("Advance() on served order error = %v, want ErrNoTransition", err)
	}
}

func TestAdvance_UnknownOrder(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Advance(context.Background(), "missing", "kitchen", "req_test")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Advance() error = %v, want ErrNotFound", err)
	}
}

func TestCancel(t *testing.T) {
	tests := []struct {
		name    string
		status  models.OrderStatus
		wantErr error
	}{
		{"pending order", models.StatusPending, nil},
		{"preparing order", models.StatusPreparing, nil},
		{"ready order", models.StatusReady, nil},
		{"served order", models.StatusServed, ErrNoTransition},
		{"already cancelled", models.StatusCancelled, ErrNoTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, tables, _ := newTestService()
			order, _ := svc.Create(context.Background(), &models.CreateOrderRequest{
				TableNumber:   5,
				Items:         []models.CartItem{burgerLine(1)},
				PaymentMethod: models.PaymentBankTransfer,
			}, "req_test")
			repo.orders[order.ID].Status = tt.status

			cancelled, err := svc.Cancel(context.Background(), order.ID, "staff", "req_test")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Cancel() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Cancel() error = %v", err)
			}
			if cancelled.Status != models.StatusCancelled {
				t.Errorf("status = %q, want cancelled", cancelled.Status)
			}
			if _, ok := tables.occupied[5]; ok {
				t.Error("table 5 still occupied after cancellation")
			}
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		wantErr error
	}{
		{"pending to preparing", models.StatusPending, models.StatusPreparing, nil},
		{"accepted to preparing", models.StatusAccepted, models.StatusPreparing, nil},
		{"preparing to ready", models.StatusPreparing, models.StatusReady, nil},
		{"ready to cancelled", models.StatusReady, models.StatusCancelled, nil},
		{"skip ahead", models.StatusPending, models.StatusReady, ErrIllegalTransition},
		{"backwards", models.StatusReady, models.StatusPreparing, ErrIllegalTransition},
		{"revive cancelled", models.StatusCancelled, models.StatusPending, ErrIllegalTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, _, _ := newTestService()
			order, _ := svc.Create(context.Background(), &models.CreateOrderRequest{
				TableNumber:   6,
				Items:         []models.CartItem{burgerLine(1)},
				PaymentMethod: models.PaymentJazzCash,
			}, "req_test")
			repo.orders[order.ID].Status = tt.from

			updated, err := svc.UpdateStatus(context.Background(), order.ID, tt.to, "staff", "req_test")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("UpdateStatus() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateStatus() error = %v", err)
			}
			if updated.Status != tt.to {
				t.Errorf("status = %q, want %q", updated.Status, tt.to)
			}
		})
	}
}

func TestStatusHistory_RecordsTransitions(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	order, _ := svc.Create(context.Background(), &models.CreateOrderRequest{
		TableNumber:   9,
		Items:         []models.CartItem{burgerLine(1)},
		PaymentMethod: models.PaymentEasyPaisa,
	}, "req_test")
	if _, err := svc.Advance(context.Background(), order.ID, "kitchen", "req_test"); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}

	history, err := svc.StatusHistory(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("StatusHistory() error = %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].Status != models.StatusPending || history[1].Status != models.StatusPreparing {
		t.Errorf("history = %v, want pending then preparing", history)
	}
}
