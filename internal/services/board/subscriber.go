package board

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"table-order/internal/logger"
	"table-order/internal/messaging"
	"table-order/internal/models"
)

// Subscriber keeps the board current. It consumes change events from the
// board_updates queue and re-fetches on anything order-related, while a
// ticker re-fetches unconditionally as the staleness bound.
type Subscriber struct {
	board        *Board
	poller       *Poller
	consumer     *messaging.Consumer
	pollInterval time.Duration
	logger       *logger.Logger
}

// NewSubscriber creates a board subscriber
func NewSubscriber(board *Board, poller *Poller, consumer *messaging.Consumer, pollInterval time.Duration, log *logger.Logger) *Subscriber {
	return &Subscriber{
		board:        board,
		poller:       poller,
		consumer:     consumer,
		pollInterval: pollInterval,
		logger:       log,
	}
}

// Run consumes events and polls until the context is cancelled
func (s *Subscriber) Run(ctx context.Context) error {
	if err := s.refresh(ctx); err != nil {
		s.logger.Error("board_refresh_failed", "Initial board fetch failed", "", err, nil)
	}

	go s.pollLoop(ctx)

	return s.consumer.StartConsuming(ctx, s.handleMessage)
}

func (s *Subscriber) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.refresh(ctx); err != nil {
				s.logger.Error("board_refresh_failed", "Periodic board fetch failed", "", err, nil)
			}
		}
	}
}

// handleMessage dispatches one delivery by its AMQP type
func (s *Subscriber) handleMessage(ctx context.Context, messageType string, body []byte) error {
	switch messageType {
	case messaging.TypeChangeEvent:
		var event models.ChangeEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return fmt.Errorf("failed to unmarshal change event: %w", err)
		}
		return s.handleChange(ctx, &event)

	case messaging.TypeStatusUpdate:
		var update models.StatusUpdateMessage
		if err := json.Unmarshal(body, &update); err != nil {
			return fmt.Errorf("failed to unmarshal status update: %w", err)
		}
		s.logger.Info("order_status_announced",
			fmt.Sprintf("Order %s: %s -> %s", update.OrderID, update.OldStatus, update.NewStatus),
			"", map[string]interface{}{
				"order_id":     update.OrderID,
				"table_number": update.TableNumber,
				"old_status":   update.OldStatus,
				"new_status":   update.NewStatus,
				"changed_by":   update.ChangedBy,
			})
		return s.refresh(ctx)

	default:
		s.logger.Debug("message_ignored", "Unknown message type", "", map[string]interface{}{
			"message_type": messageType,
		})
		return nil
	}
}

// handleChange re-fetches only for keys the board renders. Cart changes are
// per-table noise the display does not show.
func (s *Subscriber) handleChange(ctx context.Context, event *models.ChangeEvent) error {
	switch {
	case event.Key == models.KeyOrders, event.Key == models.KeyTables:
		return s.refresh(ctx)
	case strings.HasPrefix(event.Key, "restaurant_cart"):
		return nil
	case event.Key == models.KeyMenu:
		return nil
	default:
		s.logger.Debug("change_ignored", "Unknown storage key", "", map[string]interface{}{
			"key": event.Key,
		})
		return nil
	}
}

func (s *Subscriber) refresh(ctx context.Context) error {
	orders, err := s.poller.FetchOrders(ctx)
	if err != nil {
		return err
	}

	s.board.Update(orders)
	s.logger.Debug("board_refreshed", "Board updated from API server", "", map[string]interface{}{
		"orders": len(orders),
	})
	return nil
}
