package models

import (
	"fmt"
	"time"
)

// Storage keys identify which collection a change event refers to. Board
// consumers match on the key prefix to decide what to re-read.
const (
	KeyOrders = "restaurant_orders"
	KeyMenu   = "restaurant_menu"
	KeyTables = "restaurant_tables"
	keyCart   = "restaurant_cart"
)

// CartKey returns the storage key for one table's cart
func CartKey(tableNumber int) string {
	return fmt.Sprintf("%s_%d", keyCart, tableNumber)
}

// ChangeEvent is published to the storage_events fanout exchange whenever a
// writer mutates shared state. Subscribers re-read the named collection on
// receipt; the periodic poll remains the staleness fallback.
type ChangeEvent struct {
	Key       string    `json:"key"`
	Action    string    `json:"action"`
	EntityID  string    `json:"entity_id,omitempty"`
	ChangedBy string    `json:"changed_by"`
	Timestamp time.Time `json:"timestamp"`
}

// NewChangeEvent creates a change event stamped with the current time
func NewChangeEvent(key, action, entityID, changedBy string) *ChangeEvent {
	return &ChangeEvent{
		Key:       key,
		Action:    action,
		EntityID:  entityID,
		ChangedBy: changedBy,
		Timestamp: time.Now().UTC(),
	}
}

// StatusUpdateMessage carries the detail of an order status transition,
// published alongside the generic change event so displays can announce
// transitions without re-fetching.
type StatusUpdateMessage struct {
	OrderID     string      `json:"order_id"`
	TableNumber int         `json:"table_number"`
	OldStatus   OrderStatus `json:"old_status"`
	NewStatus   OrderStatus `json:"new_status"`
	ChangedBy   string      `json:"changed_by"`
	Timestamp   time.Time   `json:"timestamp"`
}

// NewStatusUpdateMessage creates a status update message for an order transition
func NewStatusUpdateMessage(order *Order, oldStatus OrderStatus, changedBy string) *StatusUpdateMessage {
	return &StatusUpdateMessage{
		OrderID:     order.ID,
		TableNumber: order.TableNumber,
		OldStatus:   oldStatus,
		NewStatus:   order.Status,
		ChangedBy:   changedBy,
		Timestamp:   time.Now().UTC(),
	}
}
