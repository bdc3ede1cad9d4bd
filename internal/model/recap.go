package model

import (
	"time"
)

// Effort score categories. Keys match the client's recap documents.
const (
	CategoryPracticeSessions = "practiceSessions"
	CategoryFullSwing        = "fullSwingWork"
	CategoryShortGame        = "shortGameWork"
	CategoryPutting          = "puttingWork"
	CategoryMental           = "mentalGame"
	CategoryStrength         = "strengthTraining"
	CategoryMobility         = "mobilityExercises"
)

// EffortScores holds the seven 1-5 monthly effort ratings.
type EffortScores struct {
	PracticeSessions  int `json:"practiceSessions"`
	FullSwingWork     int `json:"fullSwingWork"`
	ShortGameWork     int `json:"shortGameWork"`
	PuttingWork       int `json:"puttingWork"`
	MentalGame        int `json:"mentalGame"`
	StrengthTraining  int `json:"strengthTraining"`
	MobilityExercises int `json:"mobilityExercises"`
}

// FocusCategories returns the six focus-area scores keyed by category name.
// The overall practiceSessions score is not a focus area.
func (s EffortScores) FocusCategories() map[string]int {
	return map[string]int{
		CategoryFullSwing: s.FullSwingWork,
		CategoryShortGame: s.ShortGameWork,
		CategoryPutting:   s.PuttingWork,
		CategoryMental:    s.MentalGame,
		CategoryStrength:  s.StrengthTraining,
		CategoryMobility:  s.MobilityExercises,
	}
}

type MonthlyRecap struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"userId"`
	Month         string    `db:"month" json:"month"` // "YYYY-MM", unique per user
	HandicapStart float64   `db:"handicap_start" json:"handicapStartOfMonth"`
	HandicapEnd   float64   `db:"handicap_end" json:"handicapEndOfMonth"`
	Notes         string    `db:"notes" json:"notes"`
	AutoGenerated bool      `db:"auto_generated" json:"autoGenerated"`
	UserReviewed  bool      `db:"user_reviewed" json:"userReviewed"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`

	// Decoded from JSON columns by the repository
	EffortScores        EffortScores  `db:"-" json:"effortScores"`
	AutoSuggestedScores *EffortScores `db:"-" json:"autoSuggestedScores,omitempty"`
}
