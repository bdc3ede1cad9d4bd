package service

import (
	"fmt"
	"time"

	"github.com/golfimprover/golfimprover/internal/model"
	"github.com/golfimprover/golfimprover/internal/notify"
	"github.com/golfimprover/golfimprover/internal/repository"
	"github.com/google/uuid"
)

type NotificationService struct {
	repo repository.NotificationRepository
	hub  *notify.Hub
}

func NewNotificationService(repo repository.NotificationRepository, hub *notify.Hub) *NotificationService {
	return &NotificationService{
		repo: repo,
		hub:  hub,
	}
}

// Notify persists an unread notification and pushes it to any live
// subscribers.
func (s *NotificationService) Notify(userID, title, message, notificationType, link string) (*model.Notification, error) {
	notification := &model.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Timestamp: time.Now(),
		Read:      false,
		Type:      notificationType,
		Link:      link,
	}

	err := s.repo.Create(notification)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.hub.Publish(notification)

	return notification, nil
}

func (s *NotificationService) Notifications(userID string) ([]*model.Notification, error) {
	return s.repo.Notifications(userID)
}

func (s *NotificationService) MarkRead(userID, notificationID string) error {
	return s.repo.MarkRead(userID, notificationID)
}

// Subscribe hands out a live feed of the user's notifications. The cancel
// func must be called when the consumer goes away.
func (s *NotificationService) Subscribe(userID string) (<-chan *model.Notification, func()) {
	return s.hub.Subscribe(userID)
}
