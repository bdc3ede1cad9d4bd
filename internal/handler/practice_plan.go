package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golfimprover/golfimprover/internal/ctxkeys"
	"github.com/golfimprover/golfimprover/internal/model"
	"github.com/golfimprover/golfimprover/internal/repository"
	"github.com/golfimprover/golfimprover/internal/service"
)

type practicePlanHandler struct {
	planService *service.PracticePlanService
	aiService   *service.AIService
}

func NewPracticePlanHandler(planService *service.PracticePlanService, aiService *service.AIService) *practicePlanHandler {
	return &practicePlanHandler{planService: planService, aiService: aiService}
}

func (h *practicePlanHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	plans, err := h.planService.Plans(user.ID)
	if err != nil {
		slog.Error("failed to load plans", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "Failed to load plans")
		return
	}

	respondJSON(w, http.StatusOK, plans)
}

func (h *practicePlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	planID := r.PathValue("id")

	plan, err := h.planService.ByID(user.ID, planID)
	if err != nil {
		if errors.Is(err, repository.ErrPlanNotFound) {
			respondError(w, http.StatusNotFound, "Plan not found")
			return
		}
		slog.Error("failed to load plan", "error", err, "user_id", user.ID, "plan_id", planID)
		respondError(w, http.StatusInternalServerError, "Failed to load plan")
		return
	}

	respondJSON(w, http.StatusOK, plan)
}

type planRequest struct {
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Sessions       []model.PlanSession `json:"sessions"`
	TimePerSession int                 `json:"timePerSession"`
	AIGenerated    bool                `json:"aiGenerated"`
	StartDate      string              `json:"startDate"`
	EndDate        string              `json:"endDate"`
}

func (h *practicePlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req planRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid start date")
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid end date")
		return
	}
	if startDate.IsZero() {
		startDate = time.Now()
	}

	plan, err := h.planService.Save(user.ID, service.PlanInput{
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		Sessions:       req.Sessions,
		TimePerSession: req.TimePerSession,
		AIGenerated:    req.AIGenerated,
		StartDate:      startDate,
		EndDate:        endDate,
	})
	if err != nil {
		if errors.Is(err, service.ErrPlanTitleRequired) {
			respondError(w, http.StatusBadRequest, "Plan title is required")
			return
		}
		slog.Error("failed to save plan", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "Failed to save plan")
		return
	}

	respondJSON(w, http.StatusCreated, plan)
}

// Generate asks the model to draft a weekly plan. The result is returned to
// the client for review, not saved; saving is an explicit second call.
func (h *practicePlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Handicap         *float64 `json:"handicap"`
		SessionsPerWeek  int      `json:"sessionsPerWeek"`
		Description      string   `json:"description"`
		TimeAvailability string   `json:"timeAvailability"`
		FocusArea        string   `json:"focusArea"`
		EndDate          string   `json:"endDate"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	handicap := 0.0
	if req.Handicap != nil {
		handicap = *req.Handicap
	} else if profile := ctxkeys.Profile(r.Context()); profile != nil && profile.Handicap != nil {
		handicap = *profile.Handicap
	}

	if req.SessionsPerWeek < 1 {
		req.SessionsPerWeek = 3
	}

	plan, _, err := h.aiService.GeneratePracticePlan(r.Context(), service.PlanRequest{
		Handicap:         handicap,
		SessionsPerWeek:  req.SessionsPerWeek,
		Description:      req.Description,
		TimeAvailability: req.TimeAvailability,
		FocusArea:        req.FocusArea,
		EndDate:          req.EndDate,
	})
	if err != nil {
		if errors.Is(err, service.ErrAIBadResponse) {
			respondError(w, http.StatusBadGateway, "The generated plan could not be parsed. Please try again.")
			return
		}
		slog.Error("plan generation failed", "error", err, "user_id", user.ID)
		respondError(w, http.StatusBadGateway, "Plan generation is currently unavailable")
		return
	}

	respondJSON(w, http.StatusOK, plan)
}
