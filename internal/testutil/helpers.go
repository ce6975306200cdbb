package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/config"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/payment"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/repository"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/service"
)

// TestAdminEmail is the admin mailbox used by test notifiers.
const TestAdminEmail = "admin@test.local"

func NewTestNotifier(t *testing.T, db *sql.DB) *service.Notifier {
	t.Helper()

	outboxRepo := repository.NewOutboxRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	return service.NewNotifier(outboxRepo, notificationRepo, TestAdminEmail)
}

func NewTestInvestmentService(t *testing.T, db *sql.DB) *service.InvestmentService {
	t.Helper()

	return service.NewInvestmentService(
		db,
		repository.NewInvestmentRepository(db),
		repository.NewRoundRepository(db),
		repository.NewPitchRepository(db),
		repository.NewProfileRepository(db),
		NewTestNotifier(t, db),
	)
}

func NewTestPitchService(t *testing.T, db *sql.DB) *service.PitchService {
	t.Helper()

	return service.NewPitchService(
		db,
		repository.NewPitchRepository(db),
		repository.NewRoundRepository(db),
		repository.NewInvestmentRepository(db),
		repository.NewProfileRepository(db),
		NewTestNotifier(t, db),
	)
}

// NewTestPaymentService creates a PaymentService backed by the given mock
// payment client, so tests exercise the checkout flow without a provider.
func NewTestPaymentService(t *testing.T, db *sql.DB, client payment.Client) *service.PaymentService {
	t.Helper()

	cfg := config.PaymentConfig{
		SuccessURL: "http://test.local/success",
		CancelURL:  "http://test.local/cancel",
	}

	return service.NewPaymentService(
		db,
		repository.NewInvestmentRepository(db),
		repository.NewPitchRepository(db),
		repository.NewProfileRepository(db),
		client,
		NewTestNotifier(t, db),
		cfg,
	)
}

func NewTestProfileService(t *testing.T, db *sql.DB) *service.ProfileService {
	t.Helper()

	return service.NewProfileService(repository.NewProfileRepository(db))
}

func NewTestCategoryService(t *testing.T, db *sql.DB) *service.CategoryService {
	t.Helper()

	return service.NewCategoryService(repository.NewCategoryRepository(db))
}

func NewTestNotificationService(t *testing.T, db *sql.DB) *service.NotificationService {
	t.Helper()

	return service.NewNotificationService(repository.NewNotificationRepository(db))
}

// NewTestOutboxService creates an OutboxService backed by the given mock
// mailer with a small retry budget suitable for tests.
func NewTestOutboxService(t *testing.T, db *sql.DB, mailer *MockMailer) *service.OutboxService {
	t.Helper()

	return service.NewOutboxService(
		repository.NewOutboxRepository(db),
		mailer,
		config.OutboxConfig{BatchSize: 50, MaxAttempts: 3},
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
