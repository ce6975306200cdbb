package model

import "time"

// Outbox kinds and statuses.
const (
	OutboxKindEmail = "email"

	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

// OutboxEntry is a durable side-effect record. Entries are written in the
// same transaction as the state change that caused them and delivered later
// by the dispatcher, so a delivery failure never fails the primary operation.
type OutboxEntry struct {
	ID            string
	Kind          string
	Recipient     string
	Subject       string
	Body          string
	Status        string
	Attempts      int
	NextAttemptAt time.Time
	LastError     string
	CreatedAt     time.Time
	SentAt        *time.Time
}
