package service

import (
	"context"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/repository"
)

// NotificationService handles in-app notification queries and read state.
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService with the provided repository dependencies.
func NewNotificationService(notificationRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
	}
}

// GetNotifications retrieves a user's notifications, newest first.
func (s *NotificationService) GetNotifications(userID string, unreadOnly bool) ([]model.Notification, error) {
	return s.notificationRepo.GetNotificationsForUser(userID, unreadOnly)
}

// MarkRead marks a single notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID string) error {
	return s.notificationRepo.MarkRead(ctx, notificationID)
}

// MarkAllRead marks all of a user's notifications as read and returns how
// many were updated.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
