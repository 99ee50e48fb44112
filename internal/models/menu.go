package models

import (
	"fmt"
	"time"
)

// Categories is the fixed set of menu categories
var Categories = []string{"Burgers", "Pizza", "Desi", "Drinks", "Desserts"}

// Size is a menu item size variant; its modifier is added to the base price
type Size struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PriceModifier int64  `json:"priceModifier"`
}

// Extra is an optional add-on with a non-negative price
type Extra struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// MenuItem represents a menu entry. Prices are integer minor-unit currency.
type MenuItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Price       int64     `json:"price"`
	Category    string    `json:"category"`
	IsAvailable bool      `json:"isAvailable"`
	IsPopular   bool      `json:"isPopular,omitempty"`
	Sizes       []Size    `json:"sizes,omitempty"`
	Extras      []Extra   `json:"extras,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// CreateMenuItemRequest represents the request to create or replace a menu item
type CreateMenuItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       int64   `json:"price"`
	Category    string  `json:"category"`
	IsAvailable *bool   `json:"isAvailable,omitempty"`
	IsPopular   bool    `json:"isPopular,omitempty"`
	Sizes       []Size  `json:"sizes,omitempty"`
	Extras      []Extra `json:"extras,omitempty"`
}

// Validate validates the create menu item request
func (req *CreateMenuItemRequest) Validate() error {
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(req.Name) > 100 {
		return fmt.Errorf("name must not exceed 100 characters")
	}
	if req.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if !validCategory(req.Category) {
		return fmt.Errorf("category must be one of: %v", Categories)
	}
	for i, size := range req.Sizes {
		if size.Name == "" {
			return fmt.Errorf("sizes[%d].name is required", i)
		}
	}
	for i, extra := range req.Extras {
		if extra.Name == "" {
			return fmt.Errorf("extras[%d].name is required", i)
		}
		if extra.Price < 0 {
			return fmt.Errorf("extras[%d].price must not be negative", i)
		}
	}
	return nil
}

func validCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// SetAvailabilityRequest represents the availability toggle payload
type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable"`
}
