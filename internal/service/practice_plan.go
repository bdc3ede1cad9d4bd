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
	ErrPlanTitleRequired = errors.New("plan title is required")
)

type PracticePlanService struct {
	repo repository.PracticePlanRepository
}

func NewPracticePlanService(repo repository.PracticePlanRepository) *PracticePlanService {
	return &PracticePlanService{repo: repo}
}

type PlanInput struct {
	Title          string
	Description    string
	Sessions       []model.PlanSession
	TimePerSession int
	AIGenerated    bool
	StartDate      time.Time
	EndDate        time.Time
}

// Save appends a new plan. Plans are read-only after creation.
func (s *PracticePlanService) Save(userID string, input PlanInput) (*model.PracticePlan, error) {
	if input.Title == "" {
		return nil, ErrPlanTitleRequired
	}

	plan := &model.PracticePlan{
		ID:             uuid.New().String(),
		UserID:         userID,
		Title:          input.Title,
		Description:    input.Description,
		Sessions:       input.Sessions,
		TimePerSession: input.TimePerSession,
		AIGenerated:    input.AIGenerated,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		CreatedAt:      time.Now(),
	}

	err := s.repo.Create(plan)
	if err != nil {
		return nil, fmt.Errorf("failed to save practice plan: %w", err)
	}

	return plan, nil
}

func (s *PracticePlanService) Plans(userID string) ([]*model.PracticePlan, error) {
	return s.repo.Plans(userID)
}

func (s *PracticePlanService) ByID(userID, planID string) (*model.PracticePlan, error) {
	return s.repo.ByID(userID, planID)
}
