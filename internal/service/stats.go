package service

import (
	"strings"
	"time"

	"github.com/golfimprover/golfimprover/internal/model"
	"github.com/golfimprover/golfimprover/internal/repository"
)

// DashboardStats is the summary block shown on the dashboard.
type DashboardStats struct {
	SessionsThisMonth  int     `json:"sessionsThisMonth"`
	TotalTimeThisMonth int     `json:"totalTimeThisMonth"` // minutes
	CurrentStreak      int     `json:"currentStreak"`
	HandicapProgress   float64 `json:"handicapProgress"`
	HasImproved        bool    `json:"hasImproved"`
	HandicapChange     float64 `json:"handicapChange"`
}

type StatsService struct {
	logRepo     repository.PracticeLogRepository
	goalRepo    repository.GoalRepository
	profileRepo repository.ProfileRepository
}

func NewStatsService(
	logRepo repository.PracticeLogRepository,
	goalRepo repository.GoalRepository,
	profileRepo repository.ProfileRepository,
) *StatsService {
	return &StatsService{
		logRepo:     logRepo,
		goalRepo:    goalRepo,
		profileRepo: profileRepo,
	}
}

func (s *StatsService) Dashboard(userID string) (*DashboardStats, error) {
	logs, err := s.logRepo.Logs(userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.ByUserID(userID)
	if err != nil {
		return nil, err
	}

	goals, err := s.goalRepo.Goals(userID)
	if err != nil {
		return nil, err
	}

	return ComputeDashboardStats(logs, profile, goals, time.Now()), nil
}

// ComputeDashboardStats derives the dashboard summary from in-memory records.
// Logs must be sorted by date descending, as the repository returns them.
func ComputeDashboardStats(logs []*model.PracticeLog, profile *model.Profile, goals []*model.Goal, now time.Time) *DashboardStats {
	stats := &DashboardStats{}

	for _, log := range logs {
		if log.Date.Year() == now.Year() && log.Date.Month() == now.Month() {
			stats.SessionsThisMonth++
			stats.TotalTimeThisMonth += log.Duration
		}
	}

	stats.CurrentStreak = PracticeStreak(logs, now)

	// Handicap progress is measured against the user's handicap goal, if any.
	// The goal's current value at creation time is the starting point; the
	// profile handicap stands in when the goal didn't record one.
	var handicapGoal *model.Goal
	for _, goal := range goals {
		if strings.Contains(strings.ToLower(goal.Title), "handicap") {
			handicapGoal = goal
			break
		}
	}

	if handicapGoal != nil && profile != nil && profile.Handicap != nil {
		start := *profile.Handicap
		if handicapGoal.CurrentValue != nil {
			start = *handicapGoal.CurrentValue
		}
		progress := HandicapProgress(start, *profile.Handicap, handicapGoal.TargetValue)
		stats.HandicapProgress = progress.Percent
		stats.HasImproved = progress.HasImproved
		stats.HandicapChange = progress.Change
	}

	return stats
}

// PracticeStreak counts consecutive days with at least one logged session,
// anchored at today or yesterday. Logs must be sorted by date descending.
// A gap of more than one calendar day breaks the streak; a most recent log
// older than yesterday means no streak at all.
func PracticeStreak(logs []*model.PracticeLog, now time.Time) int {
	if len(logs) == 0 {
		return 0
	}

	today := truncateDay(now)
	mostRecent := truncateDay(logs[0].Date)

	if today.Sub(mostRecent) > 24*time.Hour {
		return 0
	}

	streak := 1
	current := mostRecent

	for _, log := range logs[1:] {
		prev := current.AddDate(0, 0, -1)
		day := truncateDay(log.Date)

		if day.Equal(prev) {
			streak++
			current = day
		} else if day.Before(prev) {
			// Gap in streak, stop counting
			break
		}
		// Same-day duplicates fall through without counting
	}

	return streak
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// HandicapProgressResult describes travel from a starting handicap toward a
// target. Percent is always clamped to [0,100].
type HandicapProgressResult struct {
	Percent     float64
	HasImproved bool
	Change      float64
}

// HandicapProgress computes how far a golfer has moved from start toward
// target. Direction is inferred: a target below the start means improvement is
// downward (the usual case), otherwise upward.
func HandicapProgress(start, current, target float64) HandicapProgressResult {
	var result HandicapProgressResult

	if target < start {
		needed := start - target
		actual := start - current
		if needed > 0 {
			result.Percent = clampPercent(actual / needed * 100)
		}
		result.HasImproved = current < start
		result.Change = start - current
	} else {
		needed := target - start
		actual := current - start
		if needed > 0 {
			result.Percent = clampPercent(actual / needed * 100)
		}
		result.HasImproved = current > start
		result.Change = current - start
	}

	return result
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
