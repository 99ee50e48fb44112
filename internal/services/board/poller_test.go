package board

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"table-order/internal/logger"
	"table-order/internal/models"
)

func TestFetchOrders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/orders" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]models.Order{
			{ID: "o1", TableNumber: 4, Status: models.StatusPreparing, Total: 1392},
		})
	}))
	defer server.Close()

	poller := NewPoller(server.URL, logger.New("board-test"))

	orders, err := poller.FetchOrders(context.Background())
	if err != nil {
		t.Fatalf("FetchOrders() error = %v", err)
	}
	if len(orders) != 1 || orders[0].ID != "o1" || orders[0].Total != 1392 {
		t.Errorf("orders = %v", orders)
	}
}

func TestFetchOrders_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	poller := NewPoller(server.URL, logger.New("board-test"))

	if _, err := poller.FetchOrders(context.Background()); err == nil {
		t.Fatal("FetchOrders() expected error, got nil")
	}
}

func TestFetchOrders_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	poller := NewPoller(server.URL, logger.New("board-test"))

	for i := 0; i < 5; i++ {
		if _, err := poller.FetchOrders(context.Background()); err == nil {
			t.Fatalf("fetch %d: expected error, got nil", i)
		}
	}

	// After three consecutive failures the breaker is open and stops
	// reaching the server at all. The bound allows for client retries.
	if hits > 9 {
		t.Errorf("server hit %d times, breaker never opened", hits)
	}
}
