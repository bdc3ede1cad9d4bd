package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/golfimprover/golfimprover/internal/model"
	"github.com/golfimprover/golfimprover/internal/repository"
	"github.com/golfimprover/golfimprover/internal/validation"
	"github.com/google/uuid"
)

// DrillClassifier maps a drill name to an effort category. The keyword
// implementation below is deliberately fuzzy; anything smarter can be swapped
// in without touching the scoring pipeline.
type DrillClassifier interface {
	Classify(name string) (category string, ok bool)
}

type keywordRule struct {
	category string
	keywords []string
}

// KeywordClassifier matches drill names against category keyword lists, first
// match wins.
type KeywordClassifier struct {
	rules []keywordRule
}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		rules: []keywordRule{
			{model.CategoryPutting, []string{"putt", "green"}},
			{model.CategoryShortGame, []string{"chip", "pitch", "bunker"}},
			{model.CategoryFullSwing, []string{"swing", "drive", "iron"}},
			{model.CategoryMental, []string{"mental", "routine", "visualization"}},
			{model.CategoryStrength, []string{"strength", "fitness"}},
			{model.CategoryMobility, []string{"mobility", "stretch"}},
		},
	}
}

func (c *KeywordClassifier) Classify(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, rule := range c.rules {
		for _, keyword := range rule.keywords {
			if strings.Contains(name, keyword) {
				return rule.category, true
			}
		}
	}
	return "", false
}

// Scoring assumptions. A category's expected max is the drill count that earns
// a 5; practicing five times a week is treated as a full month of sessions.
const maxSessionsPerMonth = 20

var categoryExpectedMax = map[string]int{
	model.CategoryFullSwing: 15,
	model.CategoryShortGame: 15,
	model.CategoryPutting:   15,
	model.CategoryMental:    10,
	model.CategoryStrength:  12,
	model.CategoryMobility:  12,
}

// SuggestScores converts a month of practice logs into 1-5 effort scores by
// counting classified drills. It is a heuristic, not a measurement.
func SuggestScores(logs []*model.PracticeLog, classifier DrillClassifier) model.EffortScores {
	counts := map[string]int{}
	for _, log := range logs {
		for _, drill := range log.Drills {
			category, ok := classifier.Classify(drill.Name)
			if ok {
				counts[category]++
			}
		}
	}

	return model.EffortScores{
		PracticeSessions:  categoryScore(len(logs), maxSessionsPerMonth),
		FullSwingWork:     categoryScore(counts[model.CategoryFullSwing], categoryExpectedMax[model.CategoryFullSwing]),
		ShortGameWork:     categoryScore(counts[model.CategoryShortGame], categoryExpectedMax[model.CategoryShortGame]),
		PuttingWork:       categoryScore(counts[model.CategoryPutting], categoryExpectedMax[model.CategoryPutting]),
		MentalGame:        categoryScore(counts[model.CategoryMental], categoryExpectedMax[model.CategoryMental]),
		StrengthTraining:  categoryScore(counts[model.CategoryStrength], categoryExpectedMax[model.CategoryStrength]),
		MobilityExercises: categoryScore(counts[model.CategoryMobility], categoryExpectedMax[model.CategoryMobility]),
	}
}

// categoryScore scales a raw count onto 1-5: a fifth of expectedMax per step,
// floored at 1 and capped at 5.
func categoryScore(count, expectedMax int) int {
	step := float64(expectedMax) / 5
	score := int(math.Ceil(float64(count) / step))
	if score < 1 {
		return 1
	}
	if score > 5 {
		return 5
	}
	return score
}

// DominantFocus returns the focus category with the highest score. Ties go to
// the category listed first in the fixed order below so the result is stable.
func DominantFocus(scores model.EffortScores) string {
	order := []string{
		model.CategoryFullSwing,
		model.CategoryShortGame,
		model.CategoryPutting,
		model.CategoryMental,
		model.CategoryStrength,
		model.CategoryMobility,
	}
	byCategory := scores.FocusCategories()

	best := order[0]
	for _, category := range order[1:] {
		if byCategory[category] > byCategory[best] {
			best = category
		}
	}
	return best
}

var focusAreaNames = map[string]string{
	model.CategoryFullSwing: "full swing",
	model.CategoryShortGame: "short game",
	model.CategoryPutting:   "putting",
	model.CategoryMental:    "mental game",
	model.CategoryStrength:  "strength training",
	model.CategoryMobility:  "flexibility and mobility",
}

// RecapNote picks a canned summary sentence from the handicap change and the
// month's dominant focus. handicapChange is end minus start, so negative means
// improvement.
func RecapNote(focusArea string, handicapChange float64) string {
	areaName, ok := focusAreaNames[focusArea]
	if !ok {
		areaName = "your game"
	}

	switch {
	case handicapChange < -0.3:
		return fmt.Sprintf("Great progress this month! Your focus on %s is really paying off. Keep up the good work!", areaName)
	case handicapChange < 0:
		return fmt.Sprintf("Solid month of improvement. Your %s work is showing progress, but there's still room to grow.", areaName)
	default:
		return fmt.Sprintf("This month was challenging. Despite working on %s, you may need to adjust your practice approach. Don't get discouraged!", areaName)
	}
}

// MonthName renders a "YYYY-MM" key as "January 2026".
func MonthName(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.Format("January 2006")
}

type RecapService struct {
	repo       repository.RecapRepository
	logRepo    repository.PracticeLogRepository
	classifier DrillClassifier
}

func NewRecapService(repo repository.RecapRepository, logRepo repository.PracticeLogRepository, classifier DrillClassifier) *RecapService {
	return &RecapService{
		repo:       repo,
		logRepo:    logRepo,
		classifier: classifier,
	}
}

// SuggestScoresForMonth classifies the user's logged drills for the month and
// scales them to suggested effort scores.
func (s *RecapService) SuggestScoresForMonth(userID, month string) (model.EffortScores, error) {
	from, to, err := MonthBounds(month)
	if err != nil {
		return model.EffortScores{}, err
	}

	logs, err := s.logRepo.LogsBetween(userID, from, to)
	if err != nil {
		return model.EffortScores{}, err
	}

	return SuggestScores(logs, s.classifier), nil
}

type RecapInput struct {
	Month               string
	EffortScores        model.EffortScores
	AutoSuggestedScores *model.EffortScores
	HandicapStart       float64
	HandicapEnd         float64
	Notes               string
	AutoGenerated       bool
	UserReviewed        bool
}

// Save upserts the recap for (user, month). Saving over an existing recap
// updates it in place; the unique month constraint guarantees no duplicates.
func (s *RecapService) Save(userID string, input RecapInput) (*model.MonthlyRecap, error) {
	err := validation.ValidateMonth(input.Month)
	if err != nil {
		return nil, err
	}

	recap := &model.MonthlyRecap{
		ID:                  uuid.New().String(),
		UserID:              userID,
		Month:               input.Month,
		EffortScores:        input.EffortScores,
		AutoSuggestedScores: input.AutoSuggestedScores,
		HandicapStart:       input.HandicapStart,
		HandicapEnd:         input.HandicapEnd,
		Notes:               input.Notes,
		AutoGenerated:       input.AutoGenerated,
		UserReviewed:        input.UserReviewed,
		CreatedAt:           time.Now(),
	}

	err = s.repo.Upsert(recap)
	if err != nil {
		return nil, fmt.Errorf("failed to save monthly recap: %w", err)
	}

	// Return the stored row: an update keeps the original id and created_at
	return s.repo.ByMonth(userID, input.Month)
}

func (s *RecapService) ByMonth(userID, month string) (*model.MonthlyRecap, error) {
	return s.repo.ByMonth(userID, month)
}

func (s *RecapService) Recaps(userID string, limit int) ([]*model.MonthlyRecap, error) {
	if limit <= 0 {
		limit = 12
	}
	return s.repo.Recaps(userID, limit)
}
