package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golfimprover/golfimprover/internal/ctxkeys"
	"github.com/golfimprover/golfimprover/internal/service"
)

// 5 MB screenshot cap
const maxScreenshotSize = 5 << 20

type feedbackHandler struct {
	feedbackService *service.FeedbackService
}

func NewFeedbackHandler(feedbackService *service.FeedbackService) *feedbackHandler {
	return &feedbackHandler{feedbackService: feedbackService}
}

// Create accepts multipart form feedback with an optional screenshot.
// Works both authenticated and anonymous.
func (h *feedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(maxScreenshotSize)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	input := service.FeedbackInput{
		Type:    r.FormValue("type"),
		Message: r.FormValue("message"),
	}

	if deviceInfo := strings.TrimSpace(r.FormValue("deviceInfo")); deviceInfo != "" {
		input.DeviceInfo = &deviceInfo
	}

	if user := ctxkeys.User(r.Context()); user != nil {
		input.UserID = &user.ID
		input.UserEmail = &user.Email
	} else if email := strings.TrimSpace(r.FormValue("email")); email != "" {
		input.UserEmail = &email
	}

	var screenshot *service.Screenshot
	file, header, err := r.FormFile("screenshot")
	if err == nil {
		defer file.Close()
		screenshot = &service.Screenshot{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        file,
		}
	}

	feedback, err := h.feedbackService.Create(r.Context(), input, screenshot)
	if err != nil {
		if errors.Is(err, service.ErrFeedbackMessageRequired) {
			respondError(w, http.StatusBadRequest, "Feedback message is required")
			return
		}
		slog.Error("failed to save feedback", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to save feedback")
		return
	}

	respondJSON(w, http.StatusCreated, feedback)
}
