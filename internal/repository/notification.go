package repository

import (
	"errors"

	"github.com/golfimprover/golfimprover/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
)

type NotificationRepository interface {
	Create(notification *model.Notification) error
	Notifications(userID string) ([]*model.Notification, error)
	MarkRead(userID, notificationID string) error
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *model.Notification) error {
	query := `INSERT INTO notifications (id, user_id, title, message, timestamp, read, type, link)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		notification.ID,
		notification.UserID,
		notification.Title,
		notification.Message,
		notification.Timestamp,
		notification.Read,
		notification.Type,
		notification.Link,
	)

	return err
}

func (r *notificationRepository) Notifications(userID string) ([]*model.Notification, error) {
	var notifications []*model.Notification
	query := `SELECT * FROM notifications WHERE user_id = $1 ORDER BY timestamp DESC`

	err := r.db.Select(&notifications, query, userID)
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

// MarkRead flips the read flag. The only mutation notifications support.
func (r *notificationRepository) MarkRead(userID, notificationID string) error {
	query := `UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(query, notificationID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}
