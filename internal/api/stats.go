package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/erazemk/arsenal/internal/service"
)

// StatsHandler serves the dashboard summary.
type StatsHandler struct {
	Service *service.Service
	Log     *zap.Logger
}

// Get handles GET /api/stats. An unreachable store yields 200 with
// "configured": false.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.GetStats(r.Context())
	if err != nil {
		writeError(w, h.Log, r, err)
		return
	}
	jsonResponse(w, h.Log, http.StatusOK, stats)
}
