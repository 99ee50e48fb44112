package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"table-order/internal/logger"
	"table-order/internal/metrics"
	"table-order/internal/models"
	"table-order/internal/pricing"
)

// ErrNoTransition is returned when an order cannot move forward or be
// cancelled because it is already in a terminal state.
var ErrNoTransition = errors.New("order has no further transition")

// ErrIllegalTransition is returned when an explicitly requested status is
// not reachable from the order's current status.
var ErrIllegalTransition = errors.New("illegal status transition")

// EventPublisher publishes change events and status updates to the
// storage_events exchange
type EventPublisher interface {
	PublishChange(ctx context.Context, event *models.ChangeEvent) error
	PublishStatusUpdate(ctx context.Context, msg *models.StatusUpdateMessage) error
}

// CartSource lets checkout read and release a table's cart
type CartSource interface {
	Items(ctx context.Context, tableNumber int) ([]models.CartItem, error)
	Clear(ctx context.Context, tableNumber int, requestID string) error
}

// TableTracker updates table occupancy as orders open and close
type TableTracker interface {
	SetOccupied(ctx context.Context, tableNumber int, orderID string) error
	FreeByOrder(ctx context.Context, orderID string) error
}

// Service implements order submission and the status lifecycle
type Service struct {
	repo      Repository
	cart      CartSource
	tables    TableTracker
	publisher EventPublisher
	logger    *logger.Logger
}

// NewService creates an order service
func NewService(repo Repository, cart CartSource, tables TableTracker, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		cart:      cart,
		tables:    tables,
		publisher: publisher,
		logger:    log,
	}
}

// List returns all orders, newest first
func (s *Service) List(ctx context.Context) ([]models.Order, error) {
	return s.repo.List(ctx)
}

// Get returns a single order with its item snapshot
func (s *Service) Get(ctx context.Context, id string) (*models.Order, error) {
	return s.repo.Get(ctx, id)
}

// StatusHistory returns the recorded transitions for an order
func (s *Service) StatusHistory(ctx context.Context, id string) ([]models.OrderStatusHistory, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.StatusHistory(ctx, id)
}

// Create submits an order directly from the given items. The server assigns
// the order id and recomputes totals; client-supplied values for either are
// ignored.
func (s *Service) Create(ctx context.Context, req *models.CreateOrderRequest, requestID string) (*models.Order, error) {
	items := make([]models.CartItem, len(req.Items))
	copy(items, req.Items)
	for i := range items {
		items[i].ID = uuid.NewString()
	}

	totals := pricing.ComputeTotals(items)
	order := &models.Order{
		ID:                  uuid.NewString(),
		TableNumber:         req.TableNumber,
		Items:               items,
		Status:              models.StatusPending,
		PaymentMethod:       req.PaymentMethod,
		Subtotal:            totals.Subtotal,
		Tax:                 totals.Tax,
		Total:               totals.Total,
		SpecialInstructions: req.SpecialInstructions,
	}

	if err := s.repo.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.tables.SetOccupied(ctx, order.TableNumber, order.ID); err != nil {
		s.logger.Error("table_occupy_failed", "failed to mark table occupied", requestID, err,
			map[string]interface{}{"order_id": order.ID, "table_number": order.TableNumber})
	}

	metrics.OrdersTotal.WithLabelValues(string(order.PaymentMethod)).Inc()
	metrics.OrderAmount.Observe(float64(order.Total))

	s.logger.Info("order_created", "order created", requestID, map[string]interface{}{
		"order_id":     order.ID,
		"table_number": order.TableNumber,
		"total":        order.Total,
		"items":        len(order.Items),
	})

	s.notifyChange(ctx, "created", order.ID, requestID)
	return order, nil
}

// Checkout materializes a table's cart into an order and clears the cart.
// An empty cart is rejected with models.ErrEmptyCart.
func (s *Service) Checkout(ctx context.Context, tableNumber int, req *models.CheckoutRequest, requestID string) (*models.Order, error) {
	items, err := s.cart.Items(ctx, tableNumber)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, models.ErrEmptyCart
	}

	order, err := s.Create(ctx, &models.CreateOrderRequest{
		TableNumber:         tableNumber,
		Items:               items,
		PaymentMethod:       req.PaymentMethod,
		SpecialInstructions: req.SpecialInstructions,
	}, requestID)
	if err != nil {
		return nil, err
	}

	if err := s.cart.Clear(ctx, tableNumber, requestID); err != nil {
		s.logger.Error("cart_clear_failed", "failed to clear cart after checkout", requestID, err,
			map[string]interface{}{"order_id": order.ID, "table_number": tableNumber})
	}

	return order, nil
}

// Advance moves an order one step forward along the lifecycle. Terminal
// orders return ErrNoTransition.
func (s *Service) Advance(ctx context.Context, id, changedBy, requestID string) (*models.Order, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next, ok := models.Next(order.Status)
	if !ok {
		return nil, ErrNoTransition
	}
	return s.transition(ctx, order, next, changedBy, requestID)
}

// Cancel cancels an order. Legal from any non-terminal state.
func (s *Service) Cancel(ctx context.Context, id, changedBy, requestID string) (*models.Order, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !models.CanCancel(order.Status) {
		return nil, ErrNoTransition
	}
	return s.transition(ctx, order, models.StatusCancelled, changedBy, requestID)
}

// UpdateStatus sets an explicitly requested status, enforcing the same
// single-step-or-cancel rules as Advance and Cancel.
func (s *Service) UpdateStatus(ctx context.Context, id string, status models.OrderStatus, changedBy, requestID string) (*models.Order, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !models.CanTransition(order.Status, status) {
		return nil, ErrIllegalTransition
	}
	return s.transition(ctx, order, status, changedBy, requestID)
}

func (s *Service) transition(ctx context.Context, order *models.Order, to models.OrderStatus, changedBy, requestID string) (*models.Order, error) {
	from := order.Status

	updatedAt, err := s.repo.UpdateStatus(ctx, order.ID, to, changedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = to
	order.UpdatedAt = updatedAt

	if order.Status.IsTerminal() {
		if err := s.tables.FreeByOrder(ctx, order.ID); err != nil {
			s.logger.Error("table_free_failed", "failed to free table", requestID, err,
				map[string]interface{}{"order_id": order.ID, "table_number": order.TableNumber})
		}
	}

	metrics.OrderStatusTransitions.WithLabelValues(string(from), string(to)).Inc()

	s.logger.Info("order_status_changed", "order status changed", requestID, map[string]interface{}{
		"order_id":   order.ID,
		"old_status": from,
		"new_status": to,
		"changed_by": changedBy,
	})

	if err := s.publisher.PublishStatusUpdate(ctx, models.NewStatusUpdateMessage(order, from, changedBy)); err != nil {
		s.logger.Error("publish_failed", "failed to publish status update", requestID, err,
			map[string]interface{}{"order_id": order.ID})
	}
	s.notifyChange(ctx, "status_changed", order.ID, requestID)

	return order, nil
}

// notifyChange publishes a change event for the orders collection. Publish
// failures are logged and tolerated; the board's periodic poll will catch up.
func (s *Service) notifyChange(ctx context.Context, action, orderID, requestID string) {
	event := models.NewChangeEvent(models.KeyOrders, action, orderID, "api-server")
	if err := s.publisher.PublishChange(ctx, event); err != nil {
		s.logger.Error("publish_failed", "failed to publish change event", requestID, err,
			map[string]interface{}{"order_id": orderID, "action": action})
	}
}
