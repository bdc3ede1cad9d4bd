package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/golfimprover/golfimprover/internal/model"
	"github.com/golfimprover/golfimprover/internal/repository"
	"github.com/golfimprover/golfimprover/internal/storage"
	"github.com/google/uuid"
)

var ErrFeedbackMessageRequired = errors.New("feedback message is required")

type FeedbackService struct {
	repo  repository.FeedbackRepository
	store storage.Storage // nil when screenshot uploads are disabled
}

func NewFeedbackService(repo repository.FeedbackRepository, store storage.Storage) *FeedbackService {
	return &FeedbackService{repo: repo, store: store}
}

type FeedbackInput struct {
	UserID     *string
	UserEmail  *string
	Type       string
	Message    string
	DeviceInfo *string
}

type Screenshot struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

// Create records feedback, uploading the screenshot first when one was
// attached. A failed upload is logged and the feedback is kept without it.
func (s *FeedbackService) Create(ctx context.Context, input FeedbackInput, screenshot *Screenshot) (*model.Feedback, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, ErrFeedbackMessageRequired
	}

	feedbackType := input.Type
	if feedbackType == "" {
		feedbackType = "general"
	}

	feedback := &model.Feedback{
		ID:         uuid.New().String(),
		UserID:     input.UserID,
		UserEmail:  input.UserEmail,
		Type:       feedbackType,
		Message:    strings.TrimSpace(input.Message),
		DeviceInfo: input.DeviceInfo,
		Status:     model.FeedbackStatusNew,
		CreatedAt:  time.Now(),
	}

	if screenshot != nil && s.store != nil {
		url, err := s.uploadScreenshot(ctx, feedback.ID, screenshot)
		if err != nil {
			slog.Warn("screenshot upload failed", "error", err, "feedback_id", feedback.ID)
		} else {
			feedback.ScreenshotURL = &url
		}
	}

	err := s.repo.Create(feedback)
	if err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}

	return feedback, nil
}

func (s *FeedbackService) uploadScreenshot(ctx context.Context, feedbackID string, screenshot *Screenshot) (string, error) {
	ext := filepath.Ext(screenshot.Filename)
	if ext == "" {
		ext = ".png"
	}
	path := fmt.Sprintf("feedback/%s%s", feedbackID, ext)

	err := s.store.Save(ctx, path, screenshot.Data, screenshot.ContentType)
	if err != nil {
		return "", err
	}

	return s.store.URL(path), nil
}

func (s *FeedbackService) Feedback(status string) ([]*model.Feedback, error) {
	return s.repo.Feedback(status)
}
