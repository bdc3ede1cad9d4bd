package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golfimprover/golfimprover/internal/ctxkeys"
	"github.com/golfimprover/golfimprover/internal/service"
)

type goalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *goalHandler {
	return &goalHandler{goalService: goalService}
}

func (h *goalHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goals, err := h.goalService.Goals(user.ID)
	if err != nil {
		slog.Error("failed to load goals", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "Failed to load goals")
		return
	}

	respondJSON(w, http.StatusOK, goals)
}

func (h *goalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Title        string   `json:"title"`
		Description  string   `json:"description"`
		Category     string   `json:"category"`
		CurrentValue *float64 `json:"currentValue"`
		TargetValue  float64  `json:"targetValue"`
		TargetDate   string   `json:"targetDate"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	targetDate, err := parseDate(req.TargetDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid target date")
		return
	}

	goal, err := h.goalService.Create(user.ID, service.GoalInput{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Category:     req.Category,
		CurrentValue: req.CurrentValue,
		TargetValue:  req.TargetValue,
		TargetDate:   targetDate,
	})
	if err != nil {
		if errors.Is(err, service.ErrGoalTitleRequired) {
			respondError(w, http.StatusBadRequest, "Goal title is required")
			return
		}
		slog.Error("failed to create goal", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "Failed to create goal")
		return
	}

	respondJSON(w, http.StatusCreated, goal)
}

// parseDate accepts either a bare date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
