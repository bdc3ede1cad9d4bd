package model

import (
	"time"
)

const (
	GoalCategoryHandicap  = "handicap"
	GoalCategoryPractice  = "practice"
	GoalCategoryScoring   = "scoring"
	GoalCategoryTechnique = "technique"
)

type Goal struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"userId"`
	Title        string    `db:"title" json:"title"`
	Description  string    `db:"description" json:"description"`
	Category     string    `db:"category" json:"category"`
	CurrentValue *float64  `db:"current_value" json:"currentValue"`
	TargetValue  float64   `db:"target_value" json:"targetValue"`
	TargetDate   time.Time `db:"target_date" json:"targetDate"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
