package handler

import (
	"log/slog"
	"net/http"

	"github.com/golfimprover/golfimprover/internal/ctxkeys"
	"github.com/golfimprover/golfimprover/internal/service"
)

type dashboardHandler struct {
	statsService *service.StatsService
}

func NewDashboardHandler(statsService *service.StatsService) *dashboardHandler {
	return &dashboardHandler{statsService: statsService}
}

func (h *dashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	stats, err := h.statsService.Dashboard(user.ID)
	if err != nil {
		slog.Error("failed to compute dashboard stats", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
