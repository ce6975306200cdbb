package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/repository"
)

// Notifier enqueues the side effects of state transitions: outbox emails and
// in-app notifications. Both are written through the caller's transaction so
// they commit or roll back with the state change that caused them; actual
// email delivery happens later in the outbox dispatcher.
type Notifier struct {
	outboxRepo       *repository.OutboxRepository
	notificationRepo *repository.NotificationRepository
	adminEmail       string
}

// NewNotifier creates a new Notifier with the provided repository dependencies.
func NewNotifier(
	outboxRepo *repository.OutboxRepository,
	notificationRepo *repository.NotificationRepository,
	adminEmail string,
) *Notifier {
	return &Notifier{
		outboxRepo:       outboxRepo,
		notificationRepo: notificationRepo,
		adminEmail:       adminEmail,
	}
}

// EnqueueEmail writes a pending outbox row for one recipient.
func (n *Notifier) EnqueueEmail(ctx context.Context, q repository.Querier, recipient, subject, body string) error {
	if recipient == "" {
		return fmt.Errorf("email has no recipient")
	}

	entry := &model.OutboxEntry{
		ID:            uuid.New().String(),
		Kind:          model.OutboxKindEmail,
		Recipient:     recipient,
		Subject:       subject,
		Body:          body,
		Status:        model.OutboxStatusPending,
		NextAttemptAt: time.Now(),
		CreatedAt:     time.Now(),
	}

	return n.outboxRepo.InsertEntry(ctx, q, entry)
}

// EnqueueAdminEmail writes a pending outbox row addressed to the configured
// admin mailbox.
func (n *Notifier) EnqueueAdminEmail(ctx context.Context, q repository.Querier, subject, body string) error {
	return n.EnqueueEmail(ctx, q, n.adminEmail, subject, body)
}

// PushNotification writes an in-app notification for one user.
func (n *Notifier) PushNotification(ctx context.Context, q repository.Querier, userID, notificationType, title, message, link string) error {
	notification := &model.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      notificationType,
		Title:     title,
		Message:   message,
		Link:      link,
		CreatedAt: time.Now(),
	}

	return n.notificationRepo.InsertNotification(ctx, q, notification)
}
