package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"table-order/internal/httpx"
	"table-order/internal/logger"
	"table-order/internal/models"
)

// Handler handles HTTP requests for per-table carts
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new cart handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register mounts the cart routes on the mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/tables/{table}/cart", httpx.WithLogging(h.logger, h.GetCart))
	mux.HandleFunc("POST /api/tables/{table}/cart/items", httpx.WithLogging(h.logger, h.AddItem))
	mux.HandleFunc("PATCH /api/tables/{table}/cart/items/{line}", httpx.WithLogging(h.logger, h.UpdateQuantity))
	mux.HandleFunc("DELETE /api/tables/{table}/cart/items/{line}", httpx.WithLogging(h.logger, h.RemoveItem))
	mux.HandleFunc("DELETE /api/tables/{table}/cart", httpx.WithLogging(h.logger, h.ClearCart))
}

func tableNumber(r *http.Request) (int, bool) {
	n, err := strconv.Atoi(r.PathValue("table"))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// GetCart handles GET /api/tables/{table}/cart
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	table, ok := tableNumber(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid table number", requestID)
		return
	}

	view, err := h.service.Get(r.Context(), table)
	if err != nil {
		h.logger.Error("cart_load_failed", "Failed to load cart", requestID, err, map[string]interface{}{
			"table_number": table,
		})
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, view)
}

// AddItem handles POST /api/tables/{table}/cart/items
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	table, ok := tableNumber(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid table number", requestID)
		return
	}

	var req models.AddCartItemRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}
	if req.MenuItemID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "menuItemId is required", requestID)
		return
	}

	view, err := h.service.AddItem(r.Context(), table, &req, requestID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, "Menu item not found", requestID)
		case errors.Is(err, ErrItemUnavailable):
			httpx.WriteError(w, http.StatusConflict, "Menu item is not available", requestID)
		case errors.Is(err, ErrUnknownOption):
			httpx.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		default:
			h.logger.Error("cart_add_failed", "Failed to add cart item", requestID, err, map[string]interface{}{
				"table_number": table,
				"menu_item_id": req.MenuItemID,
			})
			httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, view)
}

// UpdateQuantity handles PATCH /api/tables/{table}/cart/items/{line}
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	table, ok := tableNumber(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid table number", requestID)
		return
	}

	var req models.UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	view, err := h.service.UpdateQuantity(r.Context(), table, r.PathValue("line"), req.Quantity, requestID)
	if err != nil {
		h.logger.Error("cart_update_failed", "Failed to update cart line", requestID, err, map[string]interface{}{
			"table_number": table,
		})
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, view)
}

// RemoveItem handles DELETE /api/tables/{table}/cart/items/{line}
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	table, ok := tableNumber(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid table number", requestID)
		return
	}

	view, err := h.service.RemoveItem(r.Context(), table, r.PathValue("line"), requestID)
	if err != nil {
		h.logger.Error("cart_remove_failed", "Failed to remove cart line", requestID, err, map[string]interface{}{
			"table_number": table,
		})
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, view)
}

// ClearCart handles DELETE /api/tables/{table}/cart
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	table, ok := tableNumber(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid table number", requestID)
		return
	}

	if err := h.service.Clear(r.Context(), table, requestID); err != nil {
		h.logger.Error("cart_clear_failed", "Failed to clear cart", requestID, err, map[string]interface{}{
			"table_number": table,
		})
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"cleared": true})
}
