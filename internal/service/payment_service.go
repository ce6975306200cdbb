package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/apperrors"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/config"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/payment"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/repository"
)

// StaleCheckoutAge is how long an investment may sit in payment_processing
// before the expiry job returns it to payment_pending.
const StaleCheckoutAge = 24 * time.Hour

// PaymentService bridges investments to the external checkout provider.
// It creates checkout sessions for approved investments and applies the
// provider's webhook events idempotently.
type PaymentService struct {
	db             *sql.DB
	investmentRepo *repository.InvestmentRepository
	pitchRepo      *repository.PitchRepository
	profileRepo    *repository.ProfileRepository
	client         payment.Client
	notifier       *Notifier
	cfg            config.PaymentConfig
}

// NewPaymentService creates a new PaymentService with the provided dependencies.
func NewPaymentService(
	db *sql.DB,
	investmentRepo *repository.InvestmentRepository,
	pitchRepo *repository.PitchRepository,
	profileRepo *repository.ProfileRepository,
	client payment.Client,
	notifier *Notifier,
	cfg config.PaymentConfig,
) *PaymentService {
	return &PaymentService{
		db:             db,
		investmentRepo: investmentRepo,
		pitchRepo:      pitchRepo,
		profileRepo:    profileRepo,
		client:         client,
		notifier:       notifier,
		cfg:            cfg,
	}
}

// CreateCheckoutSession creates a provider checkout session for an
// investment in payment_pending and moves it to payment_processing. The
// provider is called before any mutation; a provider failure leaves the
// investment untouched. The session id is stored with a status-guarded
// update so two concurrent checkouts cannot both claim the investment.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, investmentID, successURL, cancelURL string) (payment.Session, error) {
	investment, err := s.investmentRepo.GetInvestmentOnID(ctx, nil, investmentID)
	if err != nil {
		return payment.Session{}, err
	}
	if investment.Status != model.InvestmentStatusPaymentPending {
		return payment.Session{}, fmt.Errorf("%w: investment is %s, checkout requires %s",
			apperrors.ErrInvalidTransition, investment.Status, model.InvestmentStatusPaymentPending)
	}

	if successURL == "" {
		successURL = s.cfg.SuccessURL
	}
	if cancelURL == "" {
		cancelURL = s.cfg.CancelURL
	}

	session, err := s.client.CreateSession(ctx, payment.SessionRequest{
		AmountMinor: int64(math.Round(investment.Amount * 100)),
		Currency:    "usd",
		SuccessURL:  successURL,
		CancelURL:   cancelURL,
		CustomerRef: investment.InvestorUserID,
		Metadata: map[string]string{
			"investment_id": investment.ID,
			"pitch_id":      investment.PitchID,
			"investor_id":   investment.InvestorID,
		},
	})
	if err != nil {
		return payment.Session{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToCreateSession, err)
	}

	claimed, err := s.investmentRepo.SetCheckoutSession(ctx, nil, investment.ID, session.ID)
	if err != nil {
		return payment.Session{}, err
	}
	if !claimed {
		return payment.Session{}, fmt.Errorf("%w: investment left %s during checkout",
			apperrors.ErrInvalidTransition, model.InvestmentStatusPaymentPending)
	}

	return session, nil
}

// HandleWebhook applies a provider webhook event.
//
// Completion events mark the investment completed, stamp the payment
// reference and paid timestamp, and increment the pitch's funding_raised by
// exactly the investment amount. The completion update is guarded on the
// payment_processing status, so a duplicate delivery matches no row and is
// acknowledged without effect. Expiry events return the investment to
// payment_pending. An event for an unknown session is a not-found error.
func (s *PaymentService) HandleWebhook(ctx context.Context, event payment.WebhookEvent) error {
	switch event.Type {
	case payment.EventCheckoutCompleted:
		return s.completeCheckout(ctx, event)
	case payment.EventCheckoutExpired:
		return s.expireCheckout(ctx, event.SessionID)
	default:
		return fmt.Errorf("%w: unknown event type %q", apperrors.ErrFailedToProcessWebhook, event.Type)
	}
}

func (s *PaymentService) completeCheckout(ctx context.Context, event payment.WebhookEvent) error {
	// Resolves the session before mutating; an unknown session surfaces here.
	investment, err := s.investmentRepo.GetInvestmentBySession(ctx, nil, event.SessionID)
	if err != nil {
		return err
	}

	pitch, err := s.pitchRepo.GetPitchOnID(ctx, nil, investment.PitchID)
	if err != nil {
		return err
	}

	investor, err := s.profileRepo.GetProfileOnID(investment.InvestorID)
	if err != nil {
		return err
	}

	paidAt := event.OccurredAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToProcessWebhook, err)
	}
	defer tx.Rollback()

	completed, err := s.investmentRepo.CompleteBySession(ctx, tx, event.SessionID, event.PaymentReference, paidAt)
	if err != nil {
		return err
	}
	if !completed {
		// Replayed delivery: acknowledge without effect.
		return nil
	}

	if err := s.pitchRepo.IncrementFundingRaised(ctx, tx, investment.PitchID, investment.Amount); err != nil {
		return err
	}

	if err := s.enqueueCompletionEffects(ctx, tx, investment, pitch, investor); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToProcessWebhook, err)
	}

	return nil
}

func (s *PaymentService) enqueueCompletionEffects(ctx context.Context, tx *sql.Tx, investment model.Investment, pitch model.Pitch, investor model.Profile) error {
	if err := s.notifier.EnqueueEmail(ctx, tx, investor.Email,
		fmt.Sprintf("Payment received for %s", pitch.Title),
		fmt.Sprintf("Your investment of %.2f in %s is complete.", investment.Amount, pitch.Title)); err != nil {
		return err
	}

	return s.notifier.PushNotification(ctx, tx, investment.InvestorUserID,
		model.NotificationInvestmentComplete, "Investment completed",
		fmt.Sprintf("Your investment in %s is complete.", pitch.Title),
		"/investments/"+investment.ID)
}

func (s *PaymentService) expireCheckout(ctx context.Context, sessionID string) error {
	expired, err := s.investmentRepo.ExpireBySession(ctx, nil, sessionID)
	if err != nil {
		return err
	}
	if !expired {
		// Completed or already expired; confirm the session exists at all.
		if _, err := s.investmentRepo.GetInvestmentBySession(ctx, nil, sessionID); err != nil {
			return err
		}
	}
	return nil
}

// ExpireStaleCheckouts returns investments stuck in payment_processing past
// the stale cutoff to payment_pending. Run periodically by the scheduler.
func (s *PaymentService) ExpireStaleCheckouts(ctx context.Context) (int, error) {
	stale, err := s.investmentRepo.GetStaleProcessing(ctx, time.Now().Add(-StaleCheckoutAge))
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, investment := range stale {
		if investment.CheckoutSessionID == "" {
			continue
		}
		if err := s.expireCheckout(ctx, investment.CheckoutSessionID); err != nil {
			if errors.Is(err, apperrors.ErrSessionNotFound) {
				continue
			}
			log.Printf("stale checkout expiry: investment %s: %v", investment.ID, err)
			continue
		}
		expired++
	}

	return expired, nil
}
