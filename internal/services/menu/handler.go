package menu

import (
	"encoding/json"
	"errors"
	"net/http"

	"table-order/internal/httpx"
	"table-order/internal/logger"
	"table-order/internal/models"
)

// Handler handles HTTP requests for the menu service
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new menu handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register mounts the menu routes on the mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/menu", httpx.WithLogging(h.logger, h.ListMenu))
	mux.HandleFunc("POST /api/menu", httpx.WithLogging(h.logger, h.CreateMenuItem))
	mux.HandleFunc("PUT /api/menu/{id}", httpx.WithLogging(h.logger, h.UpdateMenuItem))
	mux.HandleFunc("PATCH /api/menu/{id}/availability", httpx.WithLogging(h.logger, h.SetAvailability))
}

// ListMenu handles GET /api/menu
func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	items, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("db_query_failed", "Failed to list menu", requestID, err, nil)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	if items == nil {
		items = []models.MenuItem{}
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

// CreateMenuItem handles POST /api/menu
func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	var req models.CreateMenuItemRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Error("validation_failed", "Menu item validation failed", requestID, err, nil)
		httpx.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	item, err := h.service.Create(r.Context(), &req, requestID)
	if err != nil {
		h.logger.Error("menu_create_failed", "Failed to create menu item", requestID, err, nil)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, item)
}

// UpdateMenuItem handles PUT /api/menu/{id}
func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)
	id := r.PathValue("id")

	var req models.CreateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	if err := req.Validate(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	item, err := h.service.Update(r.Context(), id, &req, requestID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Menu item not found", requestID)
			return
		}
		h.logger.Error("menu_update_failed", "Failed to update menu item", requestID, err, map[string]interface{}{
			"menu_item_id": id,
		})
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, item)
}

// SetAvailability handles PATCH /api/menu/{id}/availability
func (h *Handler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)
	id := r.PathValue("id")

	var req models.SetAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsAvailable == nil {
		httpx.WriteError(w, http.StatusBadRequest, "isAvailable is required", requestID)
		return
	}

	if err := h.service.SetAvailability(r.Context(), id, *req.IsAvailable, requestID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Menu item not found", requestID)
			return
		}
		h.logger.Error("availability_update_failed", "Failed to set availability", requestID, err, map[string]interface{}{
			"menu_item_id": id,
		})
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"id":          id,
		"isAvailable": *req.IsAvailable,
	})
}
