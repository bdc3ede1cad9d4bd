package model

import "time"

type Profile struct {
	ID                   string    `db:"id" json:"id"`
	UserID               string    `db:"user_id" json:"userId"`
	Name                 string    `db:"name" json:"name"`
	Handicap             *float64  `db:"handicap" json:"handicap"` // Nullable until the golfer enters one
	HasCompletedTutorial bool      `db:"has_completed_tutorial" json:"hasCompletedTutorial"`
	CreatedAt            time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt            time.Time `db:"updated_at" json:"updatedAt"`
}
