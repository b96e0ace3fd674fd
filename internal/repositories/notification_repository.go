package repositories

import (
	"context"
	"time"

	"task-service/internal/models"
	"task-service/internal/store"
)

// NotificationRepository stores notifications created by task triggers.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, userID int, taskID int, message string) (models.Notification, error)
	ListForUser(ctx context.Context, userID int) ([]models.Notification, error)
}

// NotificationRepo is a document-store implementation of NotificationRepository.
type NotificationRepo struct {
	store *store.Store
}

// NewNotificationRepo constructs a NotificationRepo.
func NewNotificationRepo(s *store.Store) *NotificationRepo {
	return &NotificationRepo{store: s}
}

// CreateNotification appends an unread notification for the user.
func (r *NotificationRepo) CreateNotification(ctx context.Context, userID int, taskID int, message string) (models.Notification, error) {
	var n models.Notification
	err := r.store.Update(func(doc *store.Document) error {
		n = models.Notification{
			ID:        doc.NextNotificationID(),
			UserID:    userID,
			TaskID:    taskID,
			Message:   message,
			CreatedAt: time.Now().UTC(),
			Read:      false,
		}
		doc.Notifications = append(doc.Notifications, n)
		return nil
	})
	return n, err
}

// ListForUser returns the user's stored notifications in insertion order.
func (r *NotificationRepo) ListForUser(ctx context.Context, userID int) ([]models.Notification, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	var list []models.Notification
	for _, n := range doc.Notifications {
		if n.UserID == userID {
			list = append(list, n)
		}
	}
	return list, nil
}
