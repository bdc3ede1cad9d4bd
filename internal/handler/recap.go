package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/golfimprover/golfimprover/internal/ctxkeys"
	"github.com/golfimprover/golfimprover/internal/model"
	"github.com/golfimprover/golfimprover/internal/repository"
	"github.com/golfimprover/golfimprover/internal/service"
	"github.com/golfimprover/golfimprover/internal/validation"
)

type recapHandler struct {
	recapService *service.RecapService
	recapJob     *service.RecapJobService
	aiService    *service.AIService
}

func NewRecapHandler(recapService *service.RecapService, recapJob *service.RecapJobService, aiService *service.AIService) *recapHandler {
	return &recapHandler{recapService: recapService, recapJob: recapJob, aiService: aiService}
}

func (h *recapHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	recaps, err := h.recapService.Recaps(user.ID, limit)
	if err != nil {
		slog.Error("failed to load recaps", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "Failed to load recaps")
		return
	}

	respondJSON(w, http.StatusOK, recaps)
}

func (h *recapHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	month := r.PathValue("month")

	err := validation.ValidateMonth(month)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid month, expected YYYY-MM")
		return
	}

	recap, err := h.recapService.ByMonth(user.ID, month)
	if err != nil {
		if errors.Is(err, repository.ErrRecapNotFound) {
			respondError(w, http.StatusNotFound, "Recap not found")
			return
		}
		slog.Error("failed to load recap", "error", err, "user_id", user.ID, "month", month)
		respondError(w, http.StatusInternalServerError, "Failed to load recap")
		return
	}

	respondJSON(w, http.StatusOK, recap)
}

// Save stores the user's reviewed recap. Writing over an auto-generated recap
// is how the review is confirmed; the month stays unique per user.
func (h *recapHandler) Save(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Month         string             `json:"month"`
		EffortScores  model.EffortScores `json:"effortScores"`
		HandicapStart float64            `json:"handicapStartOfMonth"`
		HandicapEnd   float64            `json:"handicapEndOfMonth"`
		Notes         string             `json:"notes"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	recap, err := h.recapService.Save(user.ID, service.RecapInput{
		Month:         req.Month,
		EffortScores:  req.EffortScores,
		HandicapStart: req.HandicapStart,
		HandicapEnd:   req.HandicapEnd,
		Notes:         req.Notes,
		AutoGenerated: false,
		UserReviewed:  true,
	})
	if err != nil {
		if errors.Is(err, validation.ErrInvalidMonth) {
			respondError(w, http.StatusBadRequest, "Invalid month, expected YYYY-MM")
			return
		}
		slog.Error("failed to save recap", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "Failed to save recap")
		return
	}

	respondJSON(w, http.StatusOK, recap)
}

// Generate builds or refreshes the recap for one month on demand.
func (h *recapHandler) Generate(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Month string `json:"month"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	recap, err := h.recapJob.GenerateForUser(user.ID, req.Month)
	if err != nil {
		if errors.Is(err, validation.ErrInvalidMonth) {
			respondError(w, http.StatusBadRequest, "Invalid month, expected YYYY-MM")
			return
		}
		if errors.Is(err, repository.ErrRecapNotFound) {
			respondError(w, http.StatusUnprocessableEntity, "Not enough data to generate a recap for this month")
			return
		}
		slog.Error("recap generation failed", "error", err, "user_id", user.ID, "month", req.Month)
		respondError(w, http.StatusInternalServerError, "Failed to generate recap")
		return
	}

	respondJSON(w, http.StatusOK, recap)
}

// Narrative asks the model for a written summary of the month's recap.
func (h *recapHandler) Narrative(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	month := r.PathValue("month")

	err := validation.ValidateMonth(month)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid month, expected YYYY-MM")
		return
	}

	recap, err := h.recapService.ByMonth(user.ID, month)
	if err != nil {
		if errors.Is(err, repository.ErrRecapNotFound) {
			respondError(w, http.StatusNotFound, "Recap not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to load recap")
		return
	}

	completed := recap.EffortScores.PracticeSessions
	narrative, _, err := h.aiService.GenerateMonthlyRecap(r.Context(), completed, completed, recap.EffortScores, recap.HandicapStart, recap.HandicapEnd)
	if err != nil {
		if errors.Is(err, service.ErrAIBadResponse) {
			respondError(w, http.StatusBadGateway, "The generated summary could not be parsed. Please try again.")
			return
		}
		slog.Error("recap narrative generation failed", "error", err, "user_id", user.ID, "month", month)
		respondError(w, http.StatusBadGateway, "Summary generation is currently unavailable")
		return
	}

	respondJSON(w, http.StatusOK, narrative)
}
