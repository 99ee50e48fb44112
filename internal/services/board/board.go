// Package board maintains a live view of open orders for the kitchen
// display. It converges through two paths: change events pushed over
// RabbitMQ trigger an immediate re-fetch, and a periodic poll bounds
// staleness when events are lost.
package board

import (
	"sync"
	"time"

	"table-order/internal/models"
)

// Snapshot is one consistent view of the board
type Snapshot struct {
	Columns     map[models.OrderStatus][]models.Order `json:"columns"`
	TotalOrders int                                   `json:"total_orders"`
	RefreshedAt time.Time                             `json:"refreshed_at"`
}

// Board holds the latest fetched orders grouped by status
type Board struct {
	mu          sync.RWMutex
	orders      []models.Order
	refreshedAt time.Time
}

// New creates an empty board
func New() *Board {
	return &Board{}
}

// Update replaces the board contents with a freshly fetched order list
func (b *Board) Update(orders []models.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders = orders
	b.refreshedAt = time.Now()
}

// Snapshot returns the current view grouped by status. Terminal orders are
// left off the board; the display only tracks work in progress.
func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	columns := make(map[models.OrderStatus][]models.Order)
	active := 0
	for _, order := range b.orders {
		if order.Status.IsTerminal() {
			continue
		}
		columns[order.Status] = append(columns[order.Status], order)
		active++
	}

	return Snapshot{
		Columns:     columns,
		TotalOrders: active,
		RefreshedAt: b.refreshedAt,
	}
}

// RefreshedAt returns when the board last saw a successful fetch
func (b *Board) RefreshedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.refreshedAt
}
