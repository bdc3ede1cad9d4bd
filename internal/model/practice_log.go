package model

import (
	"time"
)

const (
	LogTypeStructured = "structured"
	LogTypeActivity   = "activity"
)

// LogDrill is a drill performed during a logged session.
type LogDrill struct {
	Name     string `json:"name"`
	Duration string `json:"duration,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type PracticeLog struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"userId"`
	Type         string    `db:"type" json:"type"`
	SessionTitle string    `db:"session_title" json:"sessionTitle"`
	Notes        string    `db:"notes" json:"notes"`
	Rating       *int      `db:"rating" json:"rating"`
	Duration     int       `db:"duration" json:"duration"` // minutes
	PlanID       *string   `db:"plan_id" json:"planId"`    // weak reference, plan may be gone
	Date         time.Time `db:"date" json:"date"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`

	// Decoded from JSON columns by the repository. Drills for structured
	// sessions, categories for free-form activities.
	Drills     []LogDrill `db:"-" json:"drills,omitempty"`
	Categories []string   `db:"-" json:"categories,omitempty"`
}
