package models

import "sort"

// CartItem is a single cart line. MenuItem is a snapshot taken at add time,
// so later menu edits don't retroactively alter an in-progress cart.
type CartItem struct {
	ID                  string   `json:"id"`
	MenuItem            MenuItem `json:"menuItem"`
	Quantity            int      `json:"quantity"`
	SelectedSize        *Size    `json:"selectedSize,omitempty"`
	SelectedExtras      []Extra  `json:"selectedExtras"`
	SpecialInstructions string   `json:"specialInstructions,omitempty"`
}

// UnitPrice returns the price of one unit of this line: base price plus the
// size modifier plus all selected extras.
func (ci *CartItem) UnitPrice() int64 {
	price := ci.MenuItem.Price
	if ci.SelectedSize != nil {
		price += ci.SelectedSize.PriceModifier
	}
	for _, extra := range ci.SelectedExtras {
		price += extra.Price
	}
	return price
}

// SameLine reports whether another line is the "same line" for merge
// purposes: same menu item, same selected size (or both absent), and
// identical extra sets regardless of order.
func (ci *CartItem) SameLine(other *CartItem) bool {
	if ci.MenuItem.ID != other.MenuItem.ID {
		return false
	}
	if (ci.SelectedSize == nil) != (other.SelectedSize == nil) {
		return false
	}
	if ci.SelectedSize != nil && ci.SelectedSize.ID != other.SelectedSize.ID {
		return false
	}
	return equalExtraSets(ci.SelectedExtras, other.SelectedExtras)
}

func equalExtraSets(a, b []Extra) bool {
	if len(a) != len(b) {
		return false
	}
	aIDs := extraIDs(a)
	bIDs := extraIDs(b)
	for i := range aIDs {
		if aIDs[i] != bIDs[i] {
			return false
		}
	}
	return true
}

func extraIDs(extras []Extra) []string {
	ids := make([]string, 0, len(extras))
	for _, e := range extras {
		ids = append(ids, e.ID)
	}
	sort.Strings(ids)
	return ids
}

// AddCartItemRequest represents the request to add a line to a table's cart
type AddCartItemRequest struct {
	MenuItemID          string   `json:"menuItemId"`
	Quantity            int      `json:"quantity"`
	SizeID              string   `json:"sizeId,omitempty"`
	ExtraIDs            []string `json:"extraIds,omitempty"`
	SpecialInstructions string   `json:"specialInstructions,omitempty"`
}

// UpdateQuantityRequest represents the request to change a cart line quantity
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}
