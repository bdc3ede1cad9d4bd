package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golfimprover/golfimprover/internal/model"
	"github.com/golfimprover/golfimprover/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrLogTitleRequired = errors.New("session title is required")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
)

type PracticeLogService struct {
	repo repository.PracticeLogRepository
}

func NewPracticeLogService(repo repository.PracticeLogRepository) *PracticeLogService {
	return &PracticeLogService{repo: repo}
}

type LogInput struct {
	Type         string
	SessionTitle string
	Notes        string
	Rating       *int
	Duration     int
	Drills       []model.LogDrill
	Categories   []string
	PlanID       *string
	Date         time.Time
}

// Log appends a practice session. Logs are immutable once written.
func (s *PracticeLogService) Log(userID string, input LogInput) (*model.PracticeLog, error) {
	if input.SessionTitle == "" {
		return nil, ErrLogTitleRequired
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return nil, ErrInvalidRating
	}
	if input.Type == "" {
		input.Type = model.LogTypeStructured
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	log := &model.PracticeLog{
		ID:           uuid.New().String(),
		UserID:       userID,
		Type:         input.Type,
		SessionTitle: input.SessionTitle,
		Notes:        input.Notes,
		Rating:       input.Rating,
		Duration:     input.Duration,
		Drills:       input.Drills,
		Categories:   input.Categories,
		PlanID:       input.PlanID,
		Date:         input.Date,
		CreatedAt:    time.Now(),
	}

	err := s.repo.Create(log)
	if err != nil {
		return nil, fmt.Errorf("failed to log practice session: %w", err)
	}

	return log, nil
}

func (s *PracticeLogService) Logs(userID string) ([]*model.PracticeLog, error) {
	return s.repo.Logs(userID)
}

// LogsForMonth returns the user's logs dated within the given "YYYY-MM" month.
func (s *PracticeLogService) LogsForMonth(userID, month string) ([]*model.PracticeLog, error) {
	from, to, err := MonthBounds(month)
	if err != nil {
		return nil, err
	}
	return s.repo.LogsBetween(userID, from, to)
}

// MonthBounds returns the first instant of the month and the last instant of
// its final day for a "YYYY-MM" key.
func MonthBounds(month string) (time.Time, time.Time, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q: %w", month, err)
	}
	from := t
	to := t.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return from, to, nil
}
