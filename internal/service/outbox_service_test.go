package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/testutil"
)

// TestOutboxService_DispatchDue tests the outbox drain loop.
//
// WHY: Side effects are written transactionally and delivered later. The
// dispatcher must deliver pending entries, back failures off with growing
// delays, and park an entry as failed once its attempt budget runs out, all
// without ever losing a record.
func TestOutboxService_DispatchDue(t *testing.T) {
	t.Run("delivers pending entries and marks them sent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mailer := testutil.NewMockMailer()
		svc := testutil.NewTestOutboxService(t, db, mailer)
		notifier := testutil.NewTestNotifier(t, db)

		for _, recipient := range []string{"a@example.com", "b@example.com"} {
			if err := notifier.EnqueueEmail(context.Background(), nil, recipient, "Hello", "Body"); err != nil {
				t.Fatalf("Failed to enqueue email: %v", err)
			}
		}

		delivered, err := svc.DispatchDue(context.Background())
		if err != nil {
			t.Fatalf("DispatchDue() returned unexpected error: %v", err)
		}
		if delivered != 2 {
			t.Errorf("Expected 2 deliveries, got %d", delivered)
		}
		if mailer.SentCount() != 2 {
			t.Errorf("Expected mailer to send 2 messages, got %d", mailer.SentCount())
		}

		var sent int
		if err := db.QueryRow(`SELECT COUNT(*) FROM outbox WHERE status = 'sent' AND sent_at IS NOT NULL`).Scan(&sent); err != nil {
			t.Fatalf("Failed to count sent entries: %v", err)
		}
		if sent != 2 {
			t.Errorf("Expected 2 sent entries, got %d", sent)
		}
	})

	t.Run("returns zero when nothing is due", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mailer := testutil.NewMockMailer()
		svc := testutil.NewTestOutboxService(t, db, mailer)

		delivered, err := svc.DispatchDue(context.Background())
		if err != nil {
			t.Fatalf("DispatchDue() returned unexpected error: %v", err)
		}
		if delivered != 0 {
			t.Errorf("Expected 0 deliveries, got %d", delivered)
		}
	})

	t.Run("failure backs off and keeps the entry pending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mailer := testutil.NewMockMailer().WithError(errors.New("smtp relay down"))
		svc := testutil.NewTestOutboxService(t, db, mailer)
		notifier := testutil.NewTestNotifier(t, db)

		if err := notifier.EnqueueEmail(context.Background(), nil, "a@example.com", "Hello", "Body"); err != nil {
			t.Fatalf("Failed to enqueue email: %v", err)
		}

		delivered, err := svc.DispatchDue(context.Background())
		if err != nil {
			t.Fatalf("DispatchDue() returned unexpected error: %v", err)
		}
		if delivered != 0 {
			t.Errorf("Expected 0 deliveries, got %d", delivered)
		}

		var status, lastError string
		var attempts int
		if err := db.QueryRow(`SELECT status, attempts, last_error FROM outbox`).Scan(&status, &attempts, &lastError); err != nil {
			t.Fatalf("Failed to read outbox entry: %v", err)
		}
		if status != "pending" {
			t.Errorf("Expected status pending after first failure, got %s", status)
		}
		if attempts != 1 {
			t.Errorf("Expected 1 attempt, got %d", attempts)
		}
		if lastError != "smtp relay down" {
			t.Errorf("Expected last error recorded, got %q", lastError)
		}
	})

	t.Run("backed-off entry is not retried before its next attempt", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mailer := testutil.NewMockMailer().WithError(errors.New("smtp relay down"))
		svc := testutil.NewTestOutboxService(t, db, mailer)
		notifier := testutil.NewTestNotifier(t, db)

		if err := notifier.EnqueueEmail(context.Background(), nil, "a@example.com", "Hello", "Body"); err != nil {
			t.Fatalf("Failed to enqueue email: %v", err)
		}

		// First dispatch fails and schedules the retry a minute out.
		if _, err := svc.DispatchDue(context.Background()); err != nil {
			t.Fatalf("DispatchDue() returned unexpected error: %v", err)
		}
		if _, err := svc.DispatchDue(context.Background()); err != nil {
			t.Fatalf("DispatchDue() returned unexpected error: %v", err)
		}

		if mailer.SentCount() != 0 {
			t.Errorf("Expected no deliveries, got %d", mailer.SentCount())
		}

		var attempts int
		if err := db.QueryRow(`SELECT attempts FROM outbox`).Scan(&attempts); err != nil {
			t.Fatalf("Failed to read outbox entry: %v", err)
		}
		if attempts != 1 {
			t.Errorf("Expected the second dispatch to skip the entry, got %d attempts", attempts)
		}
	})

	t.Run("exhausted entry flips to failed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mailer := testutil.NewMockMailer().WithError(errors.New("smtp relay down"))
		svc := testutil.NewTestOutboxService(t, db, mailer)
		notifier := testutil.NewTestNotifier(t, db)

		if err := notifier.EnqueueEmail(context.Background(), nil, "a@example.com", "Hello", "Body"); err != nil {
			t.Fatalf("Failed to enqueue email: %v", err)
		}

		// Walk the entry through its attempt budget by forcing it due again
		// after each failed dispatch. The test service allows 3 attempts.
		for i := 0; i < 3; i++ {
			if _, err := svc.DispatchDue(context.Background()); err != nil {
				t.Fatalf("DispatchDue() attempt %d returned unexpected error: %v", i+1, err)
			}
			if _, err := db.Exec(`UPDATE outbox SET next_attempt_at = '2000-01-01 00:00:00' WHERE status = 'pending'`); err != nil {
				t.Fatalf("Failed to force entry due: %v", err)
			}
		}

		var status string
		var attempts int
		if err := db.QueryRow(`SELECT status, attempts FROM outbox`).Scan(&status, &attempts); err != nil {
			t.Fatalf("Failed to read outbox entry: %v", err)
		}
		if status != "failed" {
			t.Errorf("Expected status failed after exhaustion, got %s", status)
		}
		if attempts != 3 {
			t.Errorf("Expected 3 attempts, got %d", attempts)
		}
	})

	t.Run("delivery succeeds on retry after transient failure", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mailer := testutil.NewMockMailer().WithError(errors.New("smtp relay down"))
		svc := testutil.NewTestOutboxService(t, db, mailer)
		notifier := testutil.NewTestNotifier(t, db)

		if err := notifier.EnqueueEmail(context.Background(), nil, "a@example.com", "Hello", "Body"); err != nil {
			t.Fatalf("Failed to enqueue email: %v", err)
		}

		if _, err := svc.DispatchDue(context.Background()); err != nil {
			t.Fatalf("DispatchDue() returned unexpected error: %v", err)
		}

		// Relay recovers; force the entry due and dispatch again.
		mailer.MockError = nil
		if _, err := db.Exec(`UPDATE outbox SET next_attempt_at = '2000-01-01 00:00:00'`); err != nil {
			t.Fatalf("Failed to force entry due: %v", err)
		}

		delivered, err := svc.DispatchDue(context.Background())
		if err != nil {
			t.Fatalf("DispatchDue() returned unexpected error: %v", err)
		}
		if delivered != 1 {
			t.Errorf("Expected 1 delivery on retry, got %d", delivered)
		}

		var status string
		if err := db.QueryRow(`SELECT status FROM outbox`).Scan(&status); err != nil {
			t.Fatalf("Failed to read outbox entry: %v", err)
		}
		if status != "sent" {
			t.Errorf("Expected status sent, got %s", status)
		}
	})
}
