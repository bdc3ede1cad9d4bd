package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golfimprover/golfimprover/internal/ctxkeys"
	"github.com/golfimprover/golfimprover/internal/repository"
	"github.com/golfimprover/golfimprover/internal/service"
)

type profileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *profileHandler {
	return &profileHandler{profileService: profileService}
}

func (h *profileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	profile, err := h.profileService.ByUserID(user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			respondError(w, http.StatusNotFound, "Profile not found")
			return
		}
		slog.Error("failed to load profile", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// Update merges the supplied fields. Omitted fields keep their stored value.
func (h *profileHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Name                 *string  `json:"name"`
		Handicap             *float64 `json:"handicap"`
		HasCompletedTutorial *bool    `json:"hasCompletedTutorial"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}

	err = h.profileService.Update(user.ID, repository.ProfilePatch{
		Name:                 req.Name,
		Handicap:             req.Handicap,
		HasCompletedTutorial: req.HasCompletedTutorial,
	})
	if err != nil {
		slog.Error("failed to update profile", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	profile, err := h.profileService.ByUserID(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

func (h *profileHandler) CompleteTutorial(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.profileService.CompleteTutorial(user.ID)
	if err != nil {
		slog.Error("failed to complete tutorial", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
