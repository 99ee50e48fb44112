package table

import (
	"context"
	"fmt"
	"strconv"

	"table-order/internal/logger"
	"table-order/internal/models"
)

// EventPublisher publishes change events to the storage_events exchange
type EventPublisher interface {
	PublishChange(ctx context.Context, event *models.ChangeEvent) error
}

// Service implements tables admin and occupancy tracking
type Service struct {
	repo      Repository
	publisher EventPublisher
	logger    *logger.Logger
}

// NewService creates a table service
func NewService(repo Repository, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    log,
	}
}

// List returns all tables in id order
func (s *Service) List(ctx context.Context) ([]models.Table, error) {
	return s.repo.List(ctx)
}

// Create adds a table. The id is assigned by the database.
func (s *Service) Create(ctx context.Context, req *models.CreateTableRequest, requestID string) (*models.Table, error) {
	table := &models.Table{
		Name:  req.Name,
		Seats: req.Seats,
	}
	if err := s.repo.Insert(ctx, table); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	s.logger.Info("table_created", "table created", requestID, map[string]interface{}{
		"table_id": table.ID,
		"name":     table.Name,
		"seats":    table.Seats,
	})

	s.notifyChange(ctx, "created", table.ID, requestID)
	return table, nil
}

// Delete removes a table
func (s *Service) Delete(ctx context.Context, id int, requestID string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("table_deleted", "table deleted", requestID, map[string]interface{}{
		"table_id": id,
	})

	s.notifyChange(ctx, "deleted", id, requestID)
	return nil
}

// SetOccupied marks a table occupied by an open order
func (s *Service) SetOccupied(ctx context.Context, tableNumber int, orderID string) error {
	if err := s.repo.SetOccupied(ctx, tableNumber, orderID); err != nil {
		return err
	}
	s.notifyChange(ctx, "occupied", tableNumber, "")
	return nil
}

// FreeByOrder releases whichever table the given order was holding
func (s *Service) FreeByOrder(ctx context.Context, orderID string) error {
	if err := s.repo.FreeByOrder(ctx, orderID); err != nil {
		return err
	}

	event := models.NewChangeEvent(models.KeyTables, "freed", orderID, "api-server")
	if err := s.publisher.PublishChange(ctx, event); err != nil {
		s.logger.Error("publish_failed", "failed to publish change event", "", err,
			map[string]interface{}{"order_id": orderID})
	}
	return nil
}

func (s *Service) notifyChange(ctx context.Context, action string, tableID int, requestID string) {
	event := models.NewChangeEvent(models.KeyTables, action, strconv.Itoa(tableID), "api-server")
	if err := s.publisher.PublishChange(ctx, event); err != nil {
		s.logger.Error("publish_failed", "failed to publish change event", requestID, err,
			map[string]interface{}{"table_id": tableID, "action": action})
	}
}
