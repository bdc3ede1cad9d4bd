package model

import (
	"time"
)

const (
	FeedbackStatusNew      = "new"
	FeedbackStatusReviewed = "reviewed"
	FeedbackStatusResolved = "resolved"
)

type Feedback struct {
	ID            string    `db:"id" json:"id"`
	UserID        *string   `db:"user_id" json:"userId"` // nil for anonymous feedback
	UserEmail     *string   `db:"user_email" json:"userEmail"`
	Type          string    `db:"type" json:"type"`
	Message       string    `db:"message" json:"message"`
	DeviceInfo    *string   `db:"device_info" json:"deviceInfo"`
	ScreenshotURL *string   `db:"screenshot_url" json:"screenshotUrl"`
	Status        string    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}
