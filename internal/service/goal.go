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
	ErrGoalTitleRequired = errors.New("goal title is required")
)

type GoalService struct {
	repo repository.GoalRepository
}

func NewGoalService(repo repository.GoalRepository) *GoalService {
	return &GoalService{repo: repo}
}

// GoalInput carries the fields of the goal form.
type GoalInput struct {
	Title        string
	Description  string
	Category     string
	CurrentValue *float64
	TargetValue  float64
	TargetDate   time.Time
}

func (s *GoalService) Create(userID string, input GoalInput) (*model.Goal, error) {
	if input.Title == "" {
		return nil, ErrGoalTitleRequired
	}
	if input.Category == "" {
		input.Category = model.GoalCategoryPractice
	}

	goal := &model.Goal{
		ID:           uuid.New().String(),
		UserID:       userID,
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		CurrentValue: input.CurrentValue,
		TargetValue:  input.TargetValue,
		TargetDate:   input.TargetDate,
		CreatedAt:    time.Now(),
	}

	err := s.repo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) Goals(userID string) ([]*model.Goal, error) {
	return s.repo.Goals(userID)
}
