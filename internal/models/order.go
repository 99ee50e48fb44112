package models

import (
	"fmt"
	"time"
)

// PaymentMethod is a label only, not a gateway integration
type PaymentMethod string

const (
	PaymentEasyPaisa      PaymentMethod = "EasyPaisa"
	PaymentJazzCash       PaymentMethod = "JazzCash"
	PaymentBankTransfer   PaymentMethod = "Bank Transfer"
	PaymentCashOnDelivery PaymentMethod = "Cash on Delivery"
)

// IsValid reports whether the payment method is one of the known labels
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentEasyPaisa, PaymentJazzCash, PaymentBankTransfer, PaymentCashOnDelivery:
		return true
	}
	return false
}

// Order is a materialized cart snapshot. Totals are computed once at
// submission and stored, never recomputed later.
type Order struct {
	ID                  string        `json:"id"`
	TableNumber         int           `json:"tableNumber"`
	Items               []CartItem    `json:"items"`
	Status              OrderStatus   `json:"status"`
	PaymentMethod       PaymentMethod `json:"paymentMethod"`
	Subtotal            int64         `json:"subtotal"`
	Tax                 int64         `json:"tax"`
	Total               int64         `json:"total"`
	SpecialInstructions string        `json:"specialInstructions,omitempty"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
}

// CreateOrderRequest represents the request to submit an order directly.
// The client-supplied id, status and totals are advisory: the server
// assigns its own identity and recomputes totals from the items.
type CreateOrderRequest struct {
	ID                  string        `json:"id,omitempty"`
	TableNumber         int           `json:"tableNumber"`
	Items               []CartItem    `json:"items"`
	PaymentMethod       PaymentMethod `json:"paymentMethod"`
	SpecialInstructions string        `json:"specialInstructions,omitempty"`
}

// Validate validates the create order request
func (req *CreateOrderRequest) Validate() error {
	if req.TableNumber < 1 {
		return fmt.Errorf("tableNumber must be positive")
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("items array cannot be empty")
	}
	if !req.PaymentMethod.IsValid() {
		return fmt.Errorf("paymentMethod must be one of: EasyPaisa, JazzCash, Bank Transfer, Cash on Delivery")
	}
	for i, item := range req.Items {
		if item.MenuItem.ID == "" {
			return fmt.Errorf("items[%d].menuItem.id is required", i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("items[%d].quantity must be at least 1", i)
		}
		if item.MenuItem.Price < 0 {
			return fmt.Errorf("items[%d].menuItem.price must not be negative", i)
		}
	}
	return nil
}

// CheckoutRequest represents the request to materialize a table's cart
type CheckoutRequest struct {
	PaymentMethod       PaymentMethod `json:"paymentMethod"`
	SpecialInstructions string        `json:"specialInstructions,omitempty"`
}

// Validate validates the checkout request
func (req *CheckoutRequest) Validate() error {
	if !req.PaymentMethod.IsValid() {
		return fmt.Errorf("paymentMethod must be one of: EasyPaisa, JazzCash, Bank Transfer, Cash on Delivery")
	}
	return nil
}

// UpdateStatusRequest represents the request to change an order status
type UpdateStatusRequest struct {
	Status OrderStatus `json:"status"`
}

// OrderStatusHistory represents an entry in the order status log
type OrderStatusHistory struct {
	Status    OrderStatus `json:"status"`
	ChangedBy string      `json:"changed_by"`
	ChangedAt time.Time   `json:"timestamp"`
}
