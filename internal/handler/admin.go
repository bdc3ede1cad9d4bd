package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golfimprover/golfimprover/internal/service"
)

// test hook
var timeNow = time.Now

type adminHandler struct {
	recapJob        *service.RecapJobService
	feedbackService *service.FeedbackService
	apiKey          string
}

func NewAdminHandler(recapJob *service.RecapJobService, feedbackService *service.FeedbackService, apiKey string) *adminHandler {
	return &adminHandler{recapJob: recapJob, feedbackService: feedbackService, apiKey: apiKey}
}

// authorized checks the Bearer token. An unset ADMIN_API_KEY denies everything
// rather than opening the endpoints up.
func (h *adminHandler) authorized(r *http.Request) bool {
	if h.apiKey == "" {
		return false
	}
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	return ok && token == h.apiKey
}

// GenerateRecaps kicks off the monthly batch for the previous month. Meant to
// be called by ops tooling or an external cron as a backstop for the built-in
// scheduler.
func (h *adminHandler) GenerateRecaps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if !h.authorized(r) {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	month := r.URL.Query().Get("month")
	if month == "" {
		month = service.PreviousMonth(timeNow())
	}

	count, err := h.recapJob.GenerateAll(r.Context(), month)
	if err != nil {
		slog.Error("admin recap generation failed", "error", err, "month", month)
		respondError(w, http.StatusInternalServerError, "Failed to generate recaps")
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"recapsGenerated": count})
}

// Feedback lists submitted feedback, optionally filtered by status.
func (h *adminHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	feedback, err := h.feedbackService.Feedback(r.URL.Query().Get("status"))
	if err != nil {
		slog.Error("failed to load feedback", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load feedback")
		return
	}

	respondJSON(w, http.StatusOK, feedback)
}
