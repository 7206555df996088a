package httpx

import (
	"errors"
	"net/http"

	"github.com/gnwofoke/portfolio-api/internal/service"
)

// StatsHandlers provides the admin dashboard stats endpoint.
type StatsHandlers struct {
	Svc *service.StatsService
}

// Get handles GET /api/stats.
func (h *StatsHandlers) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.Snapshot(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Err: errors.New("stats failed")})
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}
