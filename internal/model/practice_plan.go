package model

import (
	"time"
)

// PlanDrill is a single drill inside a plan session. Stored as part of the
// plan's JSON sessions payload, not as its own row.
type PlanDrill struct {
	Name        string `json:"name"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
	Goal        string `json:"goal"`
	KeyThought  string `json:"keyThought"`
}

type PlanSession struct {
	Day      string      `json:"day"`
	Focus    string      `json:"focus"`
	Duration string      `json:"duration"`
	Location string      `json:"location,omitempty"`
	Warmup   string      `json:"warmup,omitempty"`
	Drills   []PlanDrill `json:"drills"`
}

type PracticePlan struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"userId"`
	Title          string    `db:"title" json:"title"`
	Description    string    `db:"description" json:"description"`
	TimePerSession int       `db:"time_per_session" json:"timePerSession"` // minutes
	AIGenerated    bool      `db:"ai_generated" json:"aiGenerated"`
	StartDate      time.Time `db:"start_date" json:"startDate"`
	EndDate        time.Time `db:"end_date" json:"endDate"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`

	// Decoded from the sessions JSON column by the repository
	Sessions []PlanSession `db:"-" json:"sessions"`
}
