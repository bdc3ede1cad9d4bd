package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golfimprover/golfimprover/internal/ctxkeys"
	"github.com/golfimprover/golfimprover/internal/model"
	"github.com/golfimprover/golfimprover/internal/service"
)

type practiceLogHandler struct {
	logService *service.PracticeLogService
	aiService  *service.AIService
}

func NewPracticeLogHandler(logService *service.PracticeLogService, aiService *service.AIService) *practiceLogHandler {
	return &practiceLogHandler{logService: logService, aiService: aiService}
}

func (h *practiceLogHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if month := r.URL.Query().Get("month"); month != "" {
		logs, err := h.logService.LogsForMonth(user.ID, month)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid month, expected YYYY-MM")
			return
		}
		respondJSON(w, http.StatusOK, logs)
		return
	}

	logs, err := h.logService.Logs(user.ID)
	if err != nil {
		slog.Error("failed to load practice logs", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "Failed to load practice logs")
		return
	}

	respondJSON(w, http.StatusOK, logs)
}

func (h *practiceLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Type         string           `json:"type"`
		SessionTitle string           `json:"sessionTitle"`
		Notes        string           `json:"notes"`
		Rating       *int             `json:"rating"`
		Duration     int              `json:"duration"`
		Drills       []model.LogDrill `json:"drills"`
		Categories   []string         `json:"categories"`
		PlanID       *string          `json:"planId"`
		Date         string           `json:"date"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	entry, err := h.logService.Log(user.ID, service.LogInput{
		Type:         req.Type,
		SessionTitle: strings.TrimSpace(req.SessionTitle),
		Notes:        req.Notes,
		Rating:       req.Rating,
		Duration:     req.Duration,
		Drills:       req.Drills,
		Categories:   req.Categories,
		PlanID:       req.PlanID,
		Date:         date,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLogTitleRequired):
			respondError(w, http.StatusBadRequest, "Session title is required")
		case errors.Is(err, service.ErrInvalidRating):
			respondError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		default:
			slog.Error("failed to save practice log", "error", err, "user_id", user.ID)
			respondError(w, http.StatusInternalServerError, "Failed to save practice log")
		}
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

// Suggest drafts session notes and a drill list from a minimal description.
func (h *practiceLogHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Category string `json:"category"`
		Duration int    `json:"duration"`
		Rating   int    `json:"rating"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Category == "" {
		respondError(w, http.StatusBadRequest, "Category is required")
		return
	}

	content, _, err := h.aiService.GeneratePracticeLogContent(r.Context(), req.Category, req.Duration, req.Rating)
	if err != nil {
		if errors.Is(err, service.ErrAIBadResponse) {
			respondError(w, http.StatusBadGateway, "The generated content could not be parsed. Please try again.")
			return
		}
		slog.Error("log content generation failed", "error", err, "user_id", user.ID)
		respondError(w, http.StatusBadGateway, "Content generation is currently unavailable")
		return
	}

	respondJSON(w, http.StatusOK, content)
}
