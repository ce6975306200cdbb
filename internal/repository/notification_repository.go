package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/apperrors"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
)

// NotificationRepository provides data access methods for the notification table.
type NotificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new NotificationRepository with the provided database connection.
func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// InsertNotification persists a new in-app notification. Callers mutating
// other state in the same operation pass their transaction as q.
func (s *NotificationRepository) InsertNotification(ctx context.Context, q Querier, n *model.Notification) error {
	if q == nil {
		q = s.db
	}

	query := `
		INSERT INTO notification (id, user_id, type, title, message, link, read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := q.ExecContext(ctx, query,
		n.ID,
		n.UserID,
		n.Type,
		n.Title,
		n.Message,
		n.Link,
		n.Read,
		n.CreatedAt.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	return nil
}

// GetNotificationsForUser retrieves a user's notifications, newest first.
// When unreadOnly is set, read notifications are filtered out.
func (s *NotificationRepository) GetNotificationsForUser(userID string, unreadOnly bool) ([]model.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, link, read, created_at
		FROM notification
		WHERE user_id = ?
	`
	args := []any{userID}

	if unreadOnly {
		query += " AND read = ?"
		args = append(args, 0)
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notification table: %w", err)
	}
	defer rows.Close()

	notifications := []model.Notification{}

	for rows.Next() {
		var n model.Notification
		var link sql.NullString
		var createdAtStr string

		err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &link, &n.Read, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification table results: %w", err)
		}

		n.Link = link.String
		n.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		notifications = append(notifications, n)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification table: %w", err)
	}

	return notifications, nil
}

// MarkRead flags a single notification as read.
func (s *NotificationRepository) MarkRead(ctx context.Context, notificationID string) error {
	result, err := s.db.ExecContext(ctx, "UPDATE notification SET read = 1 WHERE id = ?", notificationID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead flags all of a user's notifications as read and returns the count.
func (s *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, "UPDATE notification SET read = 1 WHERE user_id = ? AND read = 0", userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check update result: %w", err)
	}

	return rows, nil
}
