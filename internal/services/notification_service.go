package services

import (
	"context"

	"github.com/pawhub/pawhub-server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationService struct {
	repo NotificationStore
}

func NewNotificationService(repo NotificationStore) *NotificationService {
	return &NotificationService{repo: repo}
}

// CreateNotification logs a new notification for a user
func (s *NotificationService) CreateNotification(ctx context.Context, userID primitive.ObjectID, message string) error {
	notif := &models.Notification{
		UserID:  userID,
		Message: message,
		IsRead:  false,
	}
	return s.repo.CreateNotification(ctx, notif)
}

// GetUserNotifications returns the user's 20 most recent notifications.
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	return s.repo.GetUserNotifications(ctx, userID)
}

// MarkAllAsRead flags every notification of the user as read.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID primitive.ObjectID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// DeleteExpiredNotifications is called periodically by cron to delete old ones.
func (s *NotificationService) DeleteExpiredNotifications(ctx context.Context) error {
	return s.repo.DeleteExpiredNotifications(ctx)
}
