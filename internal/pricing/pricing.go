// Package pricing computes order totals from cart lines. All amounts are
// integer minor-unit currency; the functions are pure and hold no state.
package pricing

import "table-order/internal/models"

// TaxRatePercent is the flat GST rate applied to every order
const TaxRatePercent = 16

// Totals is the derived price breakdown for a set of cart lines
type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

// ComputeTotals derives subtotal, tax and total for the given lines. An
// empty input yields all-zero totals.
func ComputeTotals(items []models.CartItem) Totals {
	var subtotal int64
	for i := range items {
		subtotal += items[i].UnitPrice() * int64(items[i].Quantity)
	}

	tax := Tax(subtotal)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// Tax returns the flat-rate tax for a subtotal, rounded half-up in integer
// arithmetic so results match round(subtotal * 0.16) exactly.
func Tax(subtotal int64) int64 {
	return (subtotal*TaxRatePercent + 50) / 100
}
