package cart

import (
	"context"
	"errors"
	"fmt"

	"table-order/internal/logger"
	"table-order/internal/models"
	"table-order/internal/pricing"
)

// ErrItemUnavailable signals an attempt to add a menu item whose
// availability toggle is off
var ErrItemUnavailable = errors.New("menu item is not available")

// ErrUnknownOption signals a size or extra id the menu item does not define
var ErrUnknownOption = errors.New("unknown size or extra")

// MenuLookup resolves menu items when a line is added, so the cart stores
// an add-time snapshot rather than a live reference
type MenuLookup interface {
	Get(ctx context.Context, id string) (*models.MenuItem, error)
}

// EventPublisher announces cart writes to other sessions
type EventPublisher interface {
	PublishChange(ctx context.Context, event *models.ChangeEvent) error
}

// View is the cart representation returned to clients
type View struct {
	TableNumber  int               `json:"tableNumber"`
	Items        []models.CartItem `json:"items"`
	ItemCount    int               `json:"itemCount"`
	Totals       pricing.Totals    `json:"totals"`
	TotalDisplay string            `json:"totalDisplay"`
}

// Service implements per-table cart operations over the persisted store
type Service struct {
	store     Store
	menu      MenuLookup
	publisher EventPublisher
	logger    *logger.Logger
}

// NewService creates a new cart service
func NewService(store Store, menu MenuLookup, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		store:     store,
		menu:      menu,
		publisher: publisher,
		logger:    log,
	}
}

// Get returns the cart for a table; a table without a stored cart yields an
// empty view
func (s *Service) Get(ctx context.Context, tableNumber int) (*View, error) {
	c, err := s.load(ctx, tableNumber)
	if err != nil {
		return nil, err
	}
	return s.view(c), nil
}

// AddItem resolves the menu item, snapshot-copies it into the cart with the
// selected size and extras, and merges with an existing equal line
func (s *Service) AddItem(ctx context.Context, tableNumber int, req *models.AddCartItemRequest, requestID string) (*View, error) {
	menuItem, err := s.menu.Get(ctx, req.MenuItemID)
	if err != nil {
		return nil, err
	}
	if !menuItem.IsAvailable {
		return nil, ErrItemUnavailable
	}

	size, err := resolveSize(menuItem, req.SizeID)
	if err != nil {
		return nil, err
	}
	extras, err := resolveExtras(menuItem, req.ExtraIDs)
	if err != nil {
		return nil, err
	}

	c, err := s.load(ctx, tableNumber)
	if err != nil {
		return nil, err
	}

	c.AddItem(*menuItem, req.Quantity, size, extras, req.SpecialInstructions)

	if err := s.persist(ctx, c, requestID); err != nil {
		return nil, err
	}
	return s.view(c), nil
}

// UpdateQuantity sets a line's quantity; zero or below removes the line
func (s *Service) UpdateQuantity(ctx context.Context, tableNumber int, lineID string, quantity int, requestID string) (*View, error) {
	c, err := s.load(ctx, tableNumber)
	if err != nil {
		return nil, err
	}

	c.UpdateQuantity(lineID, quantity)

	if err := s.persist(ctx, c, requestID); err != nil {
		return nil, err
	}
	return s.view(c), nil
}

// RemoveItem deletes a line; removing an absent line is a no-op
func (s *Service) RemoveItem(ctx context.Context, tableNumber int, lineID string, requestID string) (*View, error) {
	c, err := s.load(ctx, tableNumber)
	if err != nil {
		return nil, err
	}

	c.RemoveItem(lineID)

	if err := s.persist(ctx, c, requestID); err != nil {
		return nil, err
	}
	return s.view(c), nil
}

// Clear empties the cart and releases its persisted representation
func (s *Service) Clear(ctx context.Context, tableNumber int, requestID string) error {
	if err := s.store.Delete(ctx, tableNumber); err != nil {
		return err
	}
	s.notifyChange(ctx, tableNumber, requestID)
	return nil
}

// Items returns the raw cart lines for checkout
func (s *Service) Items(ctx context.Context, tableNumber int) ([]models.CartItem, error) {
	return s.store.Load(ctx, tableNumber)
}

func (s *Service) load(ctx context.Context, tableNumber int) (*Cart, error) {
	items, err := s.store.Load(ctx, tableNumber)
	if err != nil {
		return nil, err
	}
	return Restore(tableNumber, items), nil
}

func (s *Service) persist(ctx context.Context, c *Cart, requestID string) error {
	if err := s.store.Save(ctx, c.TableNumber, c.Items); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	s.notifyChange(ctx, c.TableNumber, requestID)
	return nil
}

func (s *Service) notifyChange(ctx context.Context, tableNumber int, requestID string) {
	event := models.NewChangeEvent(models.CartKey(tableNumber), "updated", "", "api-server")
	if err := s.publisher.PublishChange(ctx, event); err != nil {
		s.logger.Error("change_event_failed", "Failed to publish cart change event", requestID, err, map[string]interface{}{
			"table_number": tableNumber,
		})
	}
}

func (s *Service) view(c *Cart) *View {
	items := c.Items
	if items == nil {
		items = []models.CartItem{}
	}
	totals := c.Totals()
	return &View{
		TableNumber:  c.TableNumber,
		Items:        items,
		ItemCount:    c.ItemCount(),
		Totals:       totals,
		TotalDisplay: models.FormatPrice(totals.Total),
	}
}

func resolveSize(menuItem *models.MenuItem, sizeID string) (*models.Size, error) {
	if sizeID == "" {
		return nil, nil
	}
	for i := range menuItem.Sizes {
		if menuItem.Sizes[i].ID == sizeID {
			size := menuItem.Sizes[i]
			return &size, nil
		}
	}
	return nil, fmt.Errorf("%w: size %q for menu item %s", ErrUnknownOption, sizeID, menuItem.ID)
}

func resolveExtras(menuItem *models.MenuItem, extraIDs []string) ([]models.Extra, error) {
	extras := make([]models.Extra, 0, len(extraIDs))
	for _, id := range extraIDs {
		found := false
		for i := range menuItem.Extras {
			if menuItem.Extras[i].ID == id {
				extras = append(extras, menuItem.Extras[i])
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: extra %q for menu item %s", ErrUnknownOption, id, menuItem.ID)
		}
	}
	return extras, nil
}
