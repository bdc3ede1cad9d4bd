package model

import (
	"time"
)

const (
	NotificationTypeRecap  = "recap"
	NotificationTypeSystem = "system"
)

type Notification struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Title     string    `db:"title" json:"title"`
	Message   string    `db:"message" json:"message"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
	Read      bool      `db:"read" json:"read"`
	Type      string    `db:"type" json:"type"`
	Link      string    `db:"link" json:"link"`
}
