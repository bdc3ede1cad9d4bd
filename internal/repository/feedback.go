package repository

import (
	"github.com/golfimprover/golfimprover/internal/model"
	"github.com/jmoiron/sqlx"
)

type FeedbackRepository interface {
	Create(feedback *model.Feedback) error
	Feedback(status string) ([]*model.Feedback, error)
}

type feedbackRepository struct {
	db *sqlx.DB
}

func NewFeedbackRepository(db *sqlx.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(feedback *model.Feedback) error {
	query := `INSERT INTO feedback (id, user_id, user_email, type, message, device_info, screenshot_url, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		feedback.ID,
		feedback.UserID,
		feedback.UserEmail,
		feedback.Type,
		feedback.Message,
		feedback.DeviceInfo,
		feedback.ScreenshotURL,
		feedback.Status,
		feedback.CreatedAt,
	)

	return err
}

// Feedback lists feedback newest first, optionally filtered by status.
func (r *feedbackRepository) Feedback(status string) ([]*model.Feedback, error) {
	var feedback []*model.Feedback
	var err error

	if status != "" {
		query := `SELECT * FROM feedback WHERE status = $1 ORDER BY created_at DESC`
		err = r.db.Select(&feedback, query, status)
	} else {
		query := `SELECT * FROM feedback ORDER BY created_at DESC`
		err = r.db.Select(&feedback, query)
	}

	if err != nil {
		return nil, err
	}

	return feedback, nil
}
