package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repository methods that must participate in a caller-owned transaction
// take a Querier so the service layer decides the transaction boundary.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ParseTime parses a date string in "2006-01-02", RFC3339, or
// "2006-01-02 15:04:05" format.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			returnTime, err = time.Parse("2006-01-02 15:04:05", str)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
			}
		}
	}
	return returnTime.UTC(), nil
}

// isUniqueViolation reports whether the driver error is a UNIQUE constraint
// failure. The modernc sqlite driver exposes this only through the message.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
