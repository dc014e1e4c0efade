package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shelfwise/shelfwise/internal/pkg/ctxlog"
	"github.com/shelfwise/shelfwise/internal/pkg/httputil"
)

// Handler handles HTTP requests for the analytics module.
type Handler struct {
	service *Service
}

// NewHandler creates a new analytics handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterManagerRoutes registers analytics routes (manager only).
func (h *Handler) RegisterManagerRoutes(r chi.Router) {
	r.Get("/stats/dashboard", h.GetDashboard)
}

// GetDashboard handles GET /stats/dashboard.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.GetDashboard(r.Context())
	if err != nil {
		ctxlog.FromContext(r.Context()).Error("dashboard stats failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	httputil.Success(w, http.StatusOK, dashboard)
}
