package menu

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"table-order/internal/models"
)

// Seed populates an empty menu with the sample items so a fresh install has
// something to sell. A non-empty menu is left untouched.
func (s *Service) Seed(ctx context.Context, requestID string) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check menu size: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, item := range sampleMenuItems() {
		if err := s.repo.Insert(ctx, &item); err != nil {
			return fmt.Errorf("failed to seed menu item %s: %w", item.Name, err)
		}
	}

	s.logger.Info("menu_seeded", "Seeded sample menu", requestID, map[string]interface{}{
		"item_count": len(sampleMenuItems()),
	})
	return nil
}

func sampleMenuItems() []models.MenuItem {
	burgerSizes := []models.Size{
		{ID: uuid.NewString(), Name: "Single", PriceModifier: 0},
		{ID: uuid.NewString(), Name: "Double", PriceModifier: 250},
	}
	burgerExtras := []models.Extra{
		{ID: uuid.NewString(), Name: "Extra Cheese", Price: 100},
		{ID: uuid.NewString(), Name: "Fried Egg", Price: 80},
	}
	pizzaSizes := []models.Size{
		{ID: uuid.NewString(), Name: "Small", PriceModifier: -300},
		{ID: uuid.NewString(), Name: "Medium", PriceModifier: 0},
		{ID: uuid.NewString(), Name: "Large", PriceModifier: 400},
	}
	pizzaExtras := []models.Extra{
		{ID: uuid.NewString(), Name: "Extra Cheese", Price: 150},
		{ID: uuid.NewString(), Name: "Olives", Price: 100},
	}
	drinkSizes := []models.Size{
		{ID: uuid.NewString(), Name: "Regular", PriceModifier: 0},
		{ID: uuid.NewString(), Name: "Large", PriceModifier: 60},
	}

	return []models.MenuItem{
		{
			ID: uuid.NewString(), Name: "Zinger Burger",
			Description: "Crispy fried chicken fillet with lettuce and signature sauce",
			Price:       550, Category: "Burgers", IsAvailable: true, IsPopular: true,
			Sizes: burgerSizes, Extras: burgerExtras,
		},
		{
			ID: uuid.NewString(), Name: "Beef Smash Burger",
			Description: "Double-smashed beef patties with cheddar and caramelized onions",
			Price:       750, Category: "Burgers", IsAvailable: true,
			Sizes: burgerSizes, Extras: burgerExtras,
		},
		{
			ID: uuid.NewString(), Name: "Chicken Tikka Pizza",
			Description: "Spicy chicken tikka with onions and green chillies",
			Price:       1200, Category: "Pizza", IsAvailable: true, IsPopular: true,
			Sizes: pizzaSizes, Extras: pizzaExtras,
		},
		{
			ID: uuid.NewString(), Name: "Margherita Pizza",
			Description: "Classic tomato, mozzarella and basil",
			Price:       1000, Category: "Pizza", IsAvailable: true,
			Sizes: pizzaSizes, Extras: pizzaExtras,
		},
		{
			ID: uuid.NewString(), Name: "Chicken Karahi",
			Description: "Half kg traditional karahi served with naan",
			Price:       1400, Category: "Desi", IsAvailable: true, IsPopular: true,
		},
		{
			ID: uuid.NewString(), Name: "Seekh Kebab Platter",
			Description: "Six charcoal-grilled beef kebabs with chutney and salad",
			Price:       900, Category: "Desi", IsAvailable: true,
		},
		{
			ID: uuid.NewString(), Name: "Fresh Lime Soda",
			Description: "Sweet or salted, served chilled",
			Price:       180, Category: "Drinks", IsAvailable: true,
			Sizes: drinkSizes,
		},
		{
			ID: uuid.NewString(), Name: "Mango Lassi",
			Description: "Thick yogurt shake with mango pulp",
			Price:       250, Category: "Drinks", IsAvailable: true,
			Sizes: drinkSizes,
		},
		{
			ID: uuid.NewString(), Name: "Gulab Jamun",
			Description: "Two pieces in warm syrup",
			Price:       220, Category: "Desserts", IsAvailable: true,
		},
		{
			ID: uuid.NewString(), Name: "Molten Lava Cake",
			Description: "Chocolate cake with a liquid center, served warm",
			Price:       450, Category: "Desserts", IsAvailable: true,
		},
	}
}
