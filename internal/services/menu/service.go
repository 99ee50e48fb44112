package menu

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"table-order/internal/logger"
	"table-order/internal/models"
)

// EventPublisher announces menu writes to other sessions
type EventPublisher interface {
	PublishChange(ctx context.Context, event *models.ChangeEvent) error
}

// Service implements menu management on top of the repository
type Service struct {
	repo      Repository
	publisher EventPublisher
	logger    *logger.Logger
}

// NewService creates a new menu service
func NewService(repo Repository, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    log,
	}
}

// List returns all menu items
func (s *Service) List(ctx context.Context) ([]models.MenuItem, error) {
	return s.repo.List(ctx)
}

// Get returns a single menu item
func (s *Service) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	return s.repo.Get(ctx, id)
}

// Create adds a new menu item with a server-assigned identity
func (s *Service) Create(ctx context.Context, req *models.CreateMenuItemRequest, requestID string) (*models.MenuItem, error) {
	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	item := &models.MenuItem{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
		Category:    req.Category,
		IsAvailable: isAvailable,
		IsPopular:   req.IsPopular,
		Sizes:       req.Sizes,
		Extras:      req.Extras,
	}

	if err := s.repo.Insert(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	s.notifyChange(ctx, "created", item.ID, requestID)
	return item, nil
}

// Update replaces an existing menu item's fields
func (s *Service) Update(ctx context.Context, id string, req *models.CreateMenuItemRequest, requestID string) (*models.MenuItem, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Image = req.Image
	existing.Price = req.Price
	existing.Category = req.Category
	existing.IsPopular = req.IsPopular
	existing.Sizes = req.Sizes
	existing.Extras = req.Extras
	if req.IsAvailable != nil {
		existing.IsAvailable = *req.IsAvailable
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.notifyChange(ctx, "updated", id, requestID)
	return existing, nil
}

// SetAvailability toggles an item's availability. Idempotent: setting the
// same value twice has no additional effect. Unknown ids return
// models.ErrNotFound.
func (s *Service) SetAvailability(ctx context.Context, id string, isAvailable bool, requestID string) error {
	if err := s.repo.SetAvailability(ctx, id, isAvailable); err != nil {
		return err
	}

	s.logger.Info("availability_changed", fmt.Sprintf("Menu item %s availability set to %t", id, isAvailable), requestID, map[string]interface{}{
		"menu_item_id": id,
		"is_available": isAvailable,
	})

	s.notifyChange(ctx, "availability", id, requestID)
	return nil
}

// notifyChange publishes a menu change event; failures are logged and
// tolerated since the poll path bounds staleness
func (s *Service) notifyChange(ctx context.Context, action, itemID, requestID string) {
	event := models.NewChangeEvent(models.KeyMenu, action, itemID, "api-server")
	if err := s.publisher.PublishChange(ctx, event); err != nil {
		s.logger.Error("change_event_failed", "Failed to publish menu change event", requestID, err, map[string]interface{}{
			"menu_item_id": itemID,
		})
	}
}
