package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/golfimprover/golfimprover/internal/model"
	"github.com/golfimprover/golfimprover/internal/repository"
	"github.com/golfimprover/golfimprover/internal/validation"
	"golang.org/x/sync/errgroup"
)

// RecapJobService generates monthly recaps: in bulk on the schedule, or for a
// single user on demand.
type RecapJobService struct {
	userRepo     repository.UserRepository
	profileRepo  repository.ProfileRepository
	recaps       *RecapService
	notification *NotificationService
	email        *EmailService
	workerLimit  int
}

func NewRecapJobService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	recaps *RecapService,
	notification *NotificationService,
	email *EmailService,
	workerLimit int,
) *RecapJobService {
	if workerLimit < 1 {
		workerLimit = 1
	}
	return &RecapJobService{
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		recaps:       recaps,
		notification: notification,
		email:        email,
		workerLimit:  workerLimit,
	}
}

// PreviousMonth returns the "YYYY-MM" key of the month before now. The day
// is truncated to the 1st before subtracting: AddDate normalizes overflow,
// so March 31 minus a month would land in March again.
func PreviousMonth(now time.Time) string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first.AddDate(0, -1, 0).Format("2006-01")
}

// GenerateAll produces a recap for every user who practiced toward the given
// month and has a handicap on file. Users are processed concurrently under a
// bounded worker pool; one user's failure never aborts the others. Returns
// the number of recaps generated.
func (s *RecapJobService) GenerateAll(ctx context.Context, month string) (int, error) {
	err := validation.ValidateMonth(month)
	if err != nil {
		return 0, err
	}

	users, err := s.userRepo.All()
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}

	slog.Info("monthly recap job starting", "month", month, "users", len(users), "workers", s.workerLimit)

	var generated atomic.Int64

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.workerLimit)

	for _, user := range users {
		g.Go(func() error {
			if gCtx.Err() != nil {
				return gCtx.Err()
			}

			created, err := s.generateForUser(user, month, false)
			if err != nil {
				// Per-user failures are logged and skipped, the job continues
				slog.Error("recap generation failed for user", "error", err, "user_id", user.ID, "month", month)
				return nil
			}
			if created {
				generated.Add(1)
			}
			return nil
		})
	}

	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return int(generated.Load()), err
	}

	slog.Info("monthly recap job completed", "month", month, "generated", generated.Load())
	return int(generated.Load()), nil
}

// GenerateForUser is the manually-triggered single-user variant. Unlike the
// bulk job it refreshes the suggested scores of an existing recap instead of
// skipping the user.
func (s *RecapJobService) GenerateForUser(userID, month string) (*model.MonthlyRecap, error) {
	err := validation.ValidateMonth(month)
	if err != nil {
		return nil, err
	}

	existing, err := s.recaps.ByMonth(userID, month)
	if err != nil && !errors.Is(err, repository.ErrRecapNotFound) {
		return nil, err
	}

	if existing != nil {
		scores, err := s.recaps.SuggestScoresForMonth(userID, month)
		if err != nil {
			return nil, err
		}
		err = s.recaps.repo.UpdateSuggestedScores(userID, month, scores)
		if err != nil {
			return nil, err
		}
		return s.recaps.ByMonth(userID, month)
	}

	user, err := s.userRepo.ByID(userID)
	if err != nil {
		return nil, err
	}

	_, err = s.generateForUser(user, month, true)
	if err != nil {
		return nil, err
	}

	return s.recaps.ByMonth(userID, month)
}

var errNoHandicap = errors.New("no handicap on profile")

// generateForUser computes and stores one user's recap. Returns false without
// error when the user is skipped (recap exists, or no handicap known).
// fallbackStart forces the starting handicap to the current one, used by the
// manual path where last month's recap is not consulted.
func (s *RecapJobService) generateForUser(user *model.User, month string, fallbackStart bool) (bool, error) {
	_, err := s.recaps.ByMonth(user.ID, month)
	if err == nil {
		slog.Debug("recap already exists", "user_id", user.ID, "month", month)
		return false, nil
	}
	if !errors.Is(err, repository.ErrRecapNotFound) {
		return false, err
	}

	profile, err := s.profileRepo.ByUserID(user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			slog.Debug("skipping recap, no profile", "user_id", user.ID)
			return false, nil
		}
		return false, err
	}

	if profile.Handicap == nil {
		slog.Debug("skipping recap, no handicap", "user_id", user.ID)
		return false, nil
	}
	current := *profile.Handicap

	scores, err := s.recaps.SuggestScoresForMonth(user.ID, month)
	if err != nil {
		return false, err
	}

	// Starting handicap comes from the previous month's recap when one
	// exists, otherwise we can only anchor at the current value.
	start := current
	if !fallbackStart {
		prev, err := s.recaps.ByMonth(user.ID, PreviousMonth(monthStart(month)))
		if err == nil {
			start = prev.HandicapEnd
		} else if !errors.Is(err, repository.ErrRecapNotFound) {
			return false, err
		}
	}

	_, err = s.recaps.Save(user.ID, RecapInput{
		Month:               month,
		EffortScores:        scores,
		AutoSuggestedScores: &scores,
		HandicapStart:       start,
		HandicapEnd:         current,
		Notes:               RecapNote(DominantFocus(scores), current-start),
		AutoGenerated:       true,
		UserReviewed:        false,
	})
	if err != nil {
		return false, err
	}

	s.sendRecapNotifications(user, profile, month)

	return true, nil
}

// sendRecapNotifications delivers the email and in-app notices. Both are
// best-effort: failures are logged, never propagated.
func (s *RecapJobService) sendRecapNotifications(user *model.User, profile *model.Profile, month string) {
	monthName := MonthName(month)

	err := s.email.SendRecapReadyEmail(user.Email, profile.Name, month, monthName)
	if err != nil {
		slog.Warn("recap email failed", "error", err, "user_id", user.ID, "month", month)
	}

	_, err = s.notification.Notify(
		user.ID,
		fmt.Sprintf("%s Recap Ready", monthName),
		fmt.Sprintf("Your monthly golf improvement recap for %s is now available. Check it out!", monthName),
		model.NotificationTypeRecap,
		fmt.Sprintf("/recap/%s", month),
	)
	if err != nil {
		slog.Warn("recap notification failed", "error", err, "user_id", user.ID, "month", month)
	}
}

func monthStart(month string) time.Time {
	t, _ := time.Parse("2006-01", month)
	return t
}
