package analytics

import (
	"net/http"

	"table-order/internal/httpx"
	"table-order/internal/logger"
)

// Handler handles HTTP requests for the analytics service
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new analytics handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register mounts the analytics routes on the mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/analytics/summary", httpx.WithLogging(h.logger, h.GetSummary))
}

// GetSummary handles GET /api/analytics/summary
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.logger.Error("db_query_failed", "Failed to build analytics summary", requestID, err, nil)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, summary)
}
