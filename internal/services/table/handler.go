package table

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"table-order/internal/httpx"
	"table-order/internal/logger"
	"table-order/internal/models"
)

// Handler handles HTTP requests for the table service
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new table handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register mounts the table admin routes on the mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/tables", httpx.WithLogging(h.logger, h.ListTables))
	mux.HandleFunc("POST /api/tables", httpx.WithLogging(h.logger, h.CreateTable))
	mux.HandleFunc("DELETE /api/tables/{id}", httpx.WithLogging(h.logger, h.DeleteTable))
}

// ListTables handles GET /api/tables
func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	tables, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("db_query_failed", "Failed to list tables", requestID, err, nil)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	if tables == nil {
		tables = []models.Table{}
	}
	httpx.WriteJSON(w, http.StatusOK, tables)
}

// CreateTable handles POST /api/tables
func (h *Handler) CreateTable(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	var req models.CreateTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	if err := req.Validate(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	table, err := h.service.Create(r.Context(), &req, requestID)
	if err != nil {
		h.logger.Error("table_create_failed", "Failed to create table", requestID, err, nil)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, table)
}

// DeleteTable handles DELETE /api/tables/{id}
func (h *Handler) DeleteTable(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 {
		httpx.WriteError(w, http.StatusBadRequest, "table id must be a positive integer", requestID)
		return
	}

	if err := h.service.Delete(r.Context(), id, requestID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Table not found", requestID)
			return
		}
		h.logger.Error("table_delete_failed", "Failed to delete table", requestID, err, map[string]interface{}{
			"table_id": id,
		})
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
