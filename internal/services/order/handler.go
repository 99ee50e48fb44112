package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"table-order/internal/httpx"
	"table-order/internal/logger"
	"table-order/internal/models"
)

// Handler handles HTTP requests for the order service
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new order handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register mounts the order routes on the mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/orders", httpx.WithLogging(h.logger, h.ListOrders))
	mux.HandleFunc("POST /api/orders", httpx.WithLogging(h.logger, h.CreateOrder))
	mux.HandleFunc("GET /api/orders/{id}", httpx.WithLogging(h.logger, h.GetOrder))
	mux.HandleFunc("GET /api/orders/{id}/history", httpx.WithLogging(h.logger, h.GetStatusHistory))
	mux.HandleFunc("PATCH /api/orders/{id}/status", httpx.WithLogging(h.logger, h.UpdateStatus))
	mux.HandleFunc("POST /api/orders/{id}/advance", httpx.WithLogging(h.logger, h.AdvanceOrder))
	mux.HandleFunc("POST /api/orders/{id}/cancel", httpx.WithLogging(h.logger, h.CancelOrder))
	mux.HandleFunc("POST /api/tables/{table}/checkout", httpx.WithLogging(h.logger, h.Checkout))
}

// ListOrders handles GET /api/orders
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	orders, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("db_query_failed", "Failed to list orders", requestID, err, nil)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}
	httpx.WriteJSON(w, http.StatusOK, orders)
}

// CreateOrder handles POST /api/orders
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Error("validation_failed", "Order validation failed", requestID, err, nil)
		httpx.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	order, err := h.service.Create(r.Context(), &req, requestID)
	if err != nil {
		h.logger.Error("order_create_failed", "Failed to create order", requestID, err, nil)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, order)
}

// GetOrder handles GET /api/orders/{id}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)
	id := r.PathValue("id")

	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Order not found", requestID)
			return
		}
		h.logger.Error("db_query_failed", "Failed to get order", requestID, err, map[string]interface{}{
			"order_id": id,
		})
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, order)
}

// GetStatusHistory handles GET /api/orders/{id}/history
func (h *Handler) GetStatusHistory(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)
	id := r.PathValue("id")

	history, err := h.service.StatusHistory(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Order not found", requestID)
			return
		}
		h.logger.Error("db_query_failed", "Failed to get status history", requestID, err, map[string]interface{}{
			"order_id": id,
		})
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, history)
}

// UpdateStatus handles PATCH /api/orders/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)
	id := r.PathValue("id")

	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}
	if !req.Status.IsValid() {
		httpx.WriteError(w, http.StatusBadRequest, "status must be one of: pending, accepted, preparing, ready, served, cancelled", requestID)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), id, req.Status, changedBy(r), requestID)
	if err != nil {
		h.writeTransitionError(w, requestID, id, err, "Failed to update order status")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, order)
}

// AdvanceOrder handles POST /api/orders/{id}/advance
func (h *Handler) AdvanceOrder(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)
	id := r.PathValue("id")

	order, err := h.service.Advance(r.Context(), id, changedBy(r), requestID)
	if err != nil {
		h.writeTransitionError(w, requestID, id, err, "Failed to advance order")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, order)
}

// CancelOrder handles POST /api/orders/{id}/cancel
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)
	id := r.PathValue("id")

	order, err := h.service.Cancel(r.Context(), id, changedBy(r), requestID)
	if err != nil {
		h.writeTransitionError(w, requestID, id, err, "Failed to cancel order")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, order)
}

// Checkout handles POST /api/tables/{table}/checkout
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	table, err := strconv.Atoi(r.PathValue("table"))
	if err != nil || table < 1 {
		httpx.WriteError(w, http.StatusBadRequest, "table number must be a positive integer", requestID)
		return
	}

	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	order, err := h.service.Checkout(r.Context(), table, &req, requestID)
	if err != nil {
		if errors.Is(err, models.ErrEmptyCart) {
			httpx.WriteError(w, http.StatusConflict, "Cart is empty", requestID)
			return
		}
		h.logger.Error("checkout_failed", "Failed to checkout", requestID, err, map[string]interface{}{
			"table_number": table,
		})
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, order)
}

func (h *Handler) writeTransitionError(w http.ResponseWriter, requestID, orderID string, err error, logMessage string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Order not found", requestID)
	case errors.Is(err, ErrNoTransition), errors.Is(err, ErrIllegalTransition):
		httpx.WriteError(w, http.StatusConflict, err.Error(), requestID)
	default:
		h.logger.Error("status_update_failed", logMessage, requestID, err, map[string]interface{}{
			"order_id": orderID,
		})
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
	}
}

// changedBy identifies the actor for the status log. Falls back to the
// service name when the client does not identify itself.
func changedBy(r *http.Request) string {
	if actor := r.Header.Get("X-Changed-By"); actor != "" {
		return actor
	}
	return "api-server"
}
