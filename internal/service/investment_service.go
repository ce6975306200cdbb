package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/api/request"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/apperrors"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/repository"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/workflow"
)

// InvestmentService handles investment-related business logic operations.
// It owns the transaction boundaries for investment creation and review so
// that capacity reservation, aggregate recomputation, and outbox writes
// commit or roll back as a unit.
type InvestmentService struct {
	db             *sql.DB
	investmentRepo *repository.InvestmentRepository
	roundRepo      *repository.RoundRepository
	pitchRepo      *repository.PitchRepository
	profileRepo    *repository.ProfileRepository
	notifier       *Notifier
}

// NewInvestmentService creates a new InvestmentService with the provided dependencies.
func NewInvestmentService(
	db *sql.DB,
	investmentRepo *repository.InvestmentRepository,
	roundRepo *repository.RoundRepository,
	pitchRepo *repository.PitchRepository,
	profileRepo *repository.ProfileRepository,
	notifier *Notifier,
) *InvestmentService {
	return &InvestmentService{
		db:             db,
		investmentRepo: investmentRepo,
		roundRepo:      roundRepo,
		pitchRepo:      pitchRepo,
		profileRepo:    profileRepo,
		notifier:       notifier,
	}
}

// CreateInvestment creates a new investment against the pitch's open funding
// round.
//
// Preconditions checked before any mutation:
//   - the pitch exists and is active
//   - the pitch has an open round
//   - the investor has a profile
//   - the amount falls within the round's ticket bounds
//   - equity rules per investment type
//
// Effects, in one transaction: the investment row is inserted in status
// pending, round capacity is reserved with a conditional update, the round's
// distinct investor count and the pitch's aggregate metrics are recomputed,
// and notification side effects are enqueued. When the conditional capacity
// update matches no row the creation fails with fully-subscribed or
// capacity-exceeded and nothing is written.
func (s *InvestmentService) CreateInvestment(ctx context.Context, req request.CreateInvestmentRequest) (*model.Investment, error) {
	pitch, err := s.pitchRepo.GetPitchOnID(ctx, nil, req.PitchID)
	if err != nil {
		return nil, err
	}
	if pitch.Status != model.PitchStatusActive {
		return nil, fmt.Errorf("%w: pitch is %s", apperrors.ErrPitchNotActive, pitch.Status)
	}

	round, err := s.roundRepo.GetOpenRound(ctx, nil, pitch.ID)
	if err != nil {
		return nil, err
	}

	investor, err := s.profileRepo.GetProfileOnUserID(req.InvestorUserID)
	if err != nil {
		return nil, err
	}

	pitcher, err := s.profileRepo.GetProfileOnID(pitch.CreatorID)
	if err != nil {
		return nil, err
	}

	if req.Amount < round.MinimumTicket || req.Amount > round.MaximumTicket {
		return nil, fmt.Errorf("%w: amount %.2f not in [%.2f, %.2f]",
			apperrors.ErrAmountOutOfRange, req.Amount, round.MinimumTicket, round.MaximumTicket)
	}

	if req.InvestmentType == model.InvestmentTypeEquity {
		if req.Equity <= 0 {
			return nil, apperrors.ErrEquityRequired
		}
	} else if req.Equity != 0 {
		return nil, apperrors.ErrEquityNotAllowed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToCreateInvestment, err)
	}
	defer tx.Rollback()

	reserved, err := s.roundRepo.ReserveCapacity(ctx, tx, round.ID, req.Amount)
	if err != nil {
		return nil, err
	}
	if !reserved {
		// Distinguish a full round from one with insufficient headroom.
		current, err := s.roundRepo.GetRoundOnID(ctx, tx, round.ID)
		if err != nil {
			return nil, err
		}
		if current.CurrentAmount >= current.TargetAmount {
			return nil, apperrors.ErrRoundFullySubscribed
		}
		return nil, fmt.Errorf("%w: %.2f remaining",
			apperrors.ErrRoundCapacityExceeded, current.TargetAmount-current.CurrentAmount)
	}

	investment := &model.Investment{
		ID:             uuid.New().String(),
		PitchID:        pitch.ID,
		RoundID:        round.ID,
		InvestorID:     investor.ID,
		InvestorUserID: investor.UserID,
		Amount:         req.Amount,
		InvestmentType: req.InvestmentType,
		Equity:         req.Equity,
		Status:         model.InvestmentStatusPending,
		RiskTolerance:  req.RiskTolerance,
		DueDiligence: model.DueDiligence{
			FinancialsReviewed: req.FinancialsReviewed,
			LegalReviewed:      req.LegalReviewed,
			MarketReviewed:     req.MarketReviewed,
			TeamReviewed:       req.TeamReviewed,
		},
		Compliance: model.Compliance{
			AccreditedInvestor: req.AccreditedInvestor,
			TermsAccepted:      req.TermsAccepted,
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.investmentRepo.InsertInvestment(ctx, tx, investment); err != nil {
		return nil, err
	}

	if err := s.refreshRoundAndMetrics(ctx, tx, pitch.ID, round.ID); err != nil {
		return nil, err
	}

	if err := s.enqueueCreationEffects(ctx, tx, investment, pitch, investor, pitcher); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToCreateInvestment, err)
	}

	return investment, nil
}

// enqueueCreationEffects writes the outbox emails and in-app notifications
// triggered by a new investment.
func (s *InvestmentService) enqueueCreationEffects(ctx context.Context, tx *sql.Tx, investment *model.Investment, pitch model.Pitch, investor, pitcher model.Profile) error {
	subject := fmt.Sprintf("New investment in %s", pitch.Title)
	body := fmt.Sprintf("%s committed %.2f (%s) to %s.",
		investor.Name, investment.Amount, investment.InvestmentType, pitch.Title)

	if err := s.notifier.EnqueueEmail(ctx, tx, pitcher.Email, subject, body); err != nil {
		return err
	}
	if err := s.notifier.EnqueueEmail(ctx, tx, investor.Email,
		fmt.Sprintf("Your investment in %s", pitch.Title),
		fmt.Sprintf("Your investment of %.2f in %s is awaiting pitcher review.", investment.Amount, pitch.Title)); err != nil {
		return err
	}
	if err := s.notifier.EnqueueAdminEmail(ctx, tx, subject, body); err != nil {
		return err
	}

	link := "/investments/" + investment.ID
	if err := s.notifier.PushNotification(ctx, tx, pitcher.UserID,
		model.NotificationInvestmentCreated, "New investment", body, link); err != nil {
		return err
	}
	if err := s.notifier.PushNotification(ctx, tx, investor.UserID,
		model.NotificationInvestmentCreated, "Investment submitted",
		fmt.Sprintf("Your investment in %s is awaiting review.", pitch.Title), link); err != nil {
		return err
	}
	return s.notifier.PushNotification(ctx, tx, pitcher.UserID,
		model.NotificationInvestmentReviewed, "Review requested",
		fmt.Sprintf("An investment in %s needs your review.", pitch.Title), link)
}

// ReviewInvestment applies a review action to an investment. The transition
// is validated against the workflow edge table and applied with a
// status-guarded update so a concurrent reviewer cannot traverse the same
// edge twice. When review data is supplied exactly one review note is
// appended. Rejecting or cancelling a counted investment releases its round
// reservation and recomputes the pitch metrics in the same transaction.
func (s *InvestmentService) ReviewInvestment(ctx context.Context, investmentID string, req request.ReviewInvestmentRequest) (*model.Investment, error) {
	investment, err := s.investmentRepo.GetInvestmentOnID(ctx, nil, investmentID)
	if err != nil {
		return nil, err
	}

	action := workflow.Action(req.Action)
	next, err := workflow.Next(investment.Status, action)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToUpdateInvestment, err)
	}
	defer tx.Rollback()

	moved, err := s.investmentRepo.UpdateStatus(ctx, tx, investment.ID, investment.Status, next)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, fmt.Errorf("%w: investment no longer in status %q",
			apperrors.ErrInvalidTransition, investment.Status)
	}

	if req.ReviewerID != "" {
		note := &model.InvestmentReviewNote{
			ID:           uuid.New().String(),
			InvestmentID: investment.ID,
			ReviewerID:   req.ReviewerID,
			ReviewerRole: req.ReviewerRole,
			Action:       req.Action,
			Note:         req.Note,
			CreatedAt:    time.Now(),
		}
		if err := s.investmentRepo.InsertReviewNote(ctx, tx, note); err != nil {
			return nil, err
		}
	}

	// Leaving the counted set frees the investment's share of the round.
	if model.CountedStatus(investment.Status) && !model.CountedStatus(next) {
		if err := s.roundRepo.ReleaseCapacity(ctx, tx, investment.RoundID, investment.Amount); err != nil {
			return nil, err
		}
		if err := s.refreshRoundAndMetrics(ctx, tx, investment.PitchID, investment.RoundID); err != nil {
			return nil, err
		}
	}

	if err := s.notifier.PushNotification(ctx, tx, investment.InvestorUserID,
		model.NotificationInvestmentReviewed, "Investment update",
		fmt.Sprintf("Your investment moved to %s.", next),
		"/investments/"+investment.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToUpdateInvestment, err)
	}

	investment.Status = next
	return &investment, nil
}

// GetInvestment retrieves a single investment with its review history.
func (s *InvestmentService) GetInvestment(ctx context.Context, investmentID string) (model.InvestmentResponse, error) {
	investment, err := s.investmentRepo.GetInvestmentOnID(ctx, nil, investmentID)
	if err != nil {
		return model.InvestmentResponse{}, err
	}

	pitch, err := s.pitchRepo.GetPitchOnID(ctx, nil, investment.PitchID)
	if err != nil {
		return model.InvestmentResponse{}, err
	}

	notes, err := s.investmentRepo.GetReviewNotes(investment.ID)
	if err != nil {
		return model.InvestmentResponse{}, err
	}

	return model.InvestmentResponse{
		Investment:  investment,
		PitchTitle:  pitch.Title,
		ReviewNotes: notes,
	}, nil
}

// GetInvestmentsForInvestor retrieves all investments made by the given user.
func (s *InvestmentService) GetInvestmentsForInvestor(userID string) ([]model.InvestmentResponse, error) {
	return s.investmentRepo.GetInvestmentsByInvestor(userID)
}

// refreshRoundAndMetrics recomputes the round's distinct investor count and
// the pitch's aggregate metrics from the counted investment set. Must run
// inside the transaction that changed the set.
func (s *InvestmentService) refreshRoundAndMetrics(ctx context.Context, tx *sql.Tx, pitchID, roundID string) error {
	investors, err := s.investmentRepo.CountDistinctInvestors(ctx, tx, roundID)
	if err != nil {
		return err
	}
	if err := s.roundRepo.SetNumberOfInvestors(ctx, tx, roundID, investors); err != nil {
		return err
	}

	counted, err := s.investmentRepo.GetCountedInvestments(ctx, tx, roundID)
	if err != nil {
		return err
	}

	return s.pitchRepo.UpdatePitchMetrics(ctx, tx, pitchID, computeMetrics(counted))
}
