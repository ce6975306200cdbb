package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
)

// OutboxRepository provides data access methods for the outbox table.
// Entries are inserted inside the transaction of the operation that caused
// them and claimed later by the dispatcher.
type OutboxRepository struct {
	db *sql.DB
}

// NewOutboxRepository creates a new OutboxRepository with the provided database connection.
func NewOutboxRepository(db *sql.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

// InsertEntry persists a new pending outbox entry.
func (s *OutboxRepository) InsertEntry(ctx context.Context, q Querier, e *model.OutboxEntry) error {
	if q == nil {
		q = s.db
	}

	query := `
		INSERT INTO outbox (id, kind, recipient, subject, body, status, attempts, next_attempt_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := q.ExecContext(ctx, query,
		e.ID,
		e.Kind,
		e.Recipient,
		e.Subject,
		e.Body,
		e.Status,
		e.Attempts,
		e.NextAttemptAt.UTC().Format("2006-01-02 15:04:05"),
		e.CreatedAt.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert outbox entry: %w", err)
	}

	return nil
}

// GetDueEntries retrieves pending entries whose next attempt time has passed,
// oldest first, up to limit rows.
func (s *OutboxRepository) GetDueEntries(ctx context.Context, now time.Time, limit int) ([]model.OutboxEntry, error) {
	query := `
		SELECT id, kind, recipient, subject, body, status, attempts, next_attempt_at, last_error, created_at, sent_at
		FROM outbox
		WHERE status = 'pending' AND next_attempt_at <= ?
		ORDER BY next_attempt_at ASC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, now.UTC().Format("2006-01-02 15:04:05"), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query outbox table: %w", err)
	}
	defer rows.Close()

	entries := []model.OutboxEntry{}

	for rows.Next() {
		var e model.OutboxEntry
		var lastError, sentAtStr sql.NullString
		var nextAttemptStr, createdAtStr string

		err := rows.Scan(
			&e.ID,
			&e.Kind,
			&e.Recipient,
			&e.Subject,
			&e.Body,
			&e.Status,
			&e.Attempts,
			&nextAttemptStr,
			&lastError,
			&createdAtStr,
			&sentAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outbox table results: %w", err)
		}

		e.LastError = lastError.String

		e.NextAttemptAt, err = ParseTime(nextAttemptStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		e.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		if sentAtStr.Valid {
			sentAt, err := ParseTime(sentAtStr.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse date: %w", err)
			}
			e.SentAt = &sentAt
		}

		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating outbox table: %w", err)
	}

	return entries, nil
}

// MarkSent flags an entry as delivered.
func (s *OutboxRepository) MarkSent(ctx context.Context, entryID string, sentAt time.Time) error {
	query := `
		UPDATE outbox
		SET status = 'sent', sent_at = ?
		WHERE id = ?
	`

	_, err := s.db.ExecContext(ctx, query, sentAt.UTC().Format("2006-01-02 15:04:05"), entryID)
	if err != nil {
		return fmt.Errorf("failed to mark outbox entry sent: %w", err)
	}

	return nil
}

// RecordFailure stores a failed delivery attempt. When the attempt budget is
// exhausted the entry is marked failed, otherwise it stays pending with the
// given next attempt time.
func (s *OutboxRepository) RecordFailure(ctx context.Context, entryID string, attempts int, nextAttempt time.Time, lastError string, exhausted bool) error {
	status := model.OutboxStatusPending
	if exhausted {
		status = model.OutboxStatusFailed
	}

	query := `
		UPDATE outbox
		SET status = ?, attempts = ?, next_attempt_at = ?, last_error = ?
		WHERE id = ?
	`

	_, err := s.db.ExecContext(ctx, query, status, attempts, nextAttempt.UTC().Format("2006-01-02 15:04:05"), lastError, entryID)
	if err != nil {
		return fmt.Errorf("failed to record outbox failure: %w", err)
	}

	return nil
}
