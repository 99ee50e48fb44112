package cart

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"table-order/internal/logger"
	"table-order/internal/models"
)

// failingStore simulates a storage outage
type failingStore struct{}

func (f *failingStore) Load(ctx context.Context, tableNumber int) ([]models.CartItem, error) {
	return nil, errors.New("connection refused")
}

func (f *failingStore) Save(ctx context.Context, tableNumber int, items []models.CartItem) error {
	return errors.New("connection refused")
}

func (f *failingStore) Delete(ctx context.Context, tableNumber int) error {
	return errors.New("connection refused")
}

func addItemStatus(t *testing.T, svc *Service, body string) int {
	t.Helper()

	mux := http.NewServeMux()
	NewHandler(svc, logger.New("cart-test")).Register(mux)

	req := httptest.NewRequest(http.MethodPost, "/api/tables/7/cart/items", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec.Code
}

func TestAddItemHandler_UnknownOptionIsBadRequest(t *testing.T) {
	svc, _, _ := newTestService()

	status := addItemStatus(t, svc, `{"menuItemId":"m1","sizeId":"xxl"}`)
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", status, http.StatusBadRequest)
	}
}

func TestAddItemHandler_StoreFailureIsServerError(t *testing.T) {
	menu := &fakeMenu{items: map[string]models.MenuItem{
		"m1": {ID: "m1", Name: "Zinger Burger", Price: 500, IsAvailable: true},
	}}
	svc := NewService(&failingStore{}, menu, &nopPublisher{}, logger.New("cart-test"))

	status := addItemStatus(t, svc, `{"menuItemId":"m1","quantity":1}`)
	if status != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", status, http.StatusInternalServerError)
	}
}
