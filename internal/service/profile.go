package service

import (
	"github.com/golfimprover/golfimprover/internal/model"
	"github.com/golfimprover/golfimprover/internal/repository"
	"github.com/google/uuid"
)

type ProfileService struct {
	repo repository.ProfileRepository
}

func NewProfileService(repo repository.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

func (s *ProfileService) ByUserID(userID string) (*model.Profile, error) {
	return s.repo.ByUserID(userID)
}

// Update merges the supplied fields into the profile, creating it if it does
// not exist yet. Empty values are normalized to nil so they never clobber
// existing data.
func (s *ProfileService) Update(userID string, patch repository.ProfilePatch) error {
	if patch.Name != nil && *patch.Name == "" {
		patch.Name = nil
	}
	return s.repo.Upsert(userID, uuid.New().String(), patch)
}

// CompleteTutorial flips the tutorial flag for the user.
func (s *ProfileService) CompleteTutorial(userID string) error {
	done := true
	return s.repo.Upsert(userID, uuid.New().String(), repository.ProfilePatch{HasCompletedTutorial: &done})
}
