package board

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"table-order/internal/logger"
	"table-order/internal/metrics"
	"table-order/internal/models"
)

// Poller fetches the order list from the API server. Fetches run through a
// circuit breaker so a dead API server is probed, not hammered.
type Poller struct {
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker
	logger  *logger.Logger
}

// NewPoller creates a poller against the given API base URL
func NewPoller(apiURL string, log *logger.Logger) *Poller {
	client := resty.New().
		SetBaseURL(apiURL).
		SetTimeout(5 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond)

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "board-poller",
		MaxRequests: 1,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info("breaker_state_changed",
				fmt.Sprintf("Circuit breaker %s: %s -> %s", name, from, to),
				"", map[string]interface{}{"from": from.String(), "to": to.String()})
		},
	})

	return &Poller{
		client:  client,
		breaker: breaker,
		logger:  log,
	}
}

// FetchOrders retrieves all orders from the API server
func (p *Poller) FetchOrders(ctx context.Context) ([]models.Order, error) {
	result, err := p.breaker.Execute(func() (interface{}, error) {
		var orders []models.Order
		resp, err := p.client.R().
			SetContext(ctx).
			SetResult(&orders).
			Get("/api/orders")
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("api server returned %s", resp.Status())
		}
		return orders, nil
	})
	if err != nil {
		metrics.BoardPollFailures.Inc()
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return result.([]models.Order), nil
}
