package cart

import (
	"github.com/google/uuid"

	"table-order/internal/models"
	"table-order/internal/pricing"
)

// Cart is the in-memory line-item collection for one table. Insertion order
// is preserved for display; merge-equal lines are never duplicated. All
// operations are synchronous and touch only the owned slice.
type Cart struct {
	TableNumber int
	Items       []models.CartItem
}

// New creates an empty cart for a table
func New(tableNumber int) *Cart {
	return &Cart{TableNumber: tableNumber}
}

// Restore rebuilds a cart from persisted lines
func Restore(tableNumber int, items []models.CartItem) *Cart {
	return &Cart{TableNumber: tableNumber, Items: items}
}

// AddItem adds a line or merges into an existing one. Lines referencing the
// same menu item, same size (or none) and the same extra set are the same
// line and merge by summing quantity; otherwise a fresh line is appended.
// Quantities below 1 are normalized to 1, never rejected.
func (c *Cart) AddItem(menuItem models.MenuItem, quantity int, size *models.Size, extras []models.Extra, instructions string) *models.CartItem {
	if quantity < 1 {
		quantity = 1
	}
	if extras == nil {
		extras = []models.Extra{}
	}

	candidate := models.CartItem{
		MenuItem:       menuItem,
		SelectedSize:   size,
		SelectedExtras: extras,
	}

	for i := range c.Items {
		if c.Items[i].SameLine(&candidate) {
			c.Items[i].Quantity += quantity
			return &c.Items[i]
		}
	}

	line := models.CartItem{
		ID:                  uuid.NewString(),
		MenuItem:            menuItem,
		Quantity:            quantity,
		SelectedSize:        size,
		SelectedExtras:      extras,
		SpecialInstructions: instructions,
	}
	c.Items = append(c.Items, line)
	return &c.Items[len(c.Items)-1]
}

// RemoveItem deletes the line with the given id; a no-op if absent
func (c *Cart) RemoveItem(lineID string) {
	for i := range c.Items {
		if c.Items[i].ID == lineID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets a line's quantity in place. A quantity of zero or
// below removes the line entirely; it is never persisted at zero.
func (c *Cart) UpdateQuantity(lineID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(lineID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ID == lineID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the collection
func (c *Cart) Clear() {
	c.Items = nil
}

// ItemCount returns the sum of quantities across all lines
func (c *Cart) ItemCount() int {
	count := 0
	for i := range c.Items {
		count += c.Items[i].Quantity
	}
	return count
}

// Totals delegates to the pricing calculator
func (c *Cart) Totals() pricing.Totals {
	return pricing.ComputeTotals(c.Items)
}
