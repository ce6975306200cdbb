package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/api/request"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/apperrors"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/repository"
)

// batchReviewConcurrency bounds how many pitches a batch review processes
// at once.
const batchReviewConcurrency = 4

// PitchService handles pitch-related business logic operations: CRUD,
// moderation, funding rounds, and the assembled detail view.
type PitchService struct {
	db             *sql.DB
	pitchRepo      *repository.PitchRepository
	roundRepo      *repository.RoundRepository
	investmentRepo *repository.InvestmentRepository
	profileRepo    *repository.ProfileRepository
	notifier       *Notifier
}

// NewPitchService creates a new PitchService with the provided dependencies.
func NewPitchService(
	db *sql.DB,
	pitchRepo *repository.PitchRepository,
	roundRepo *repository.RoundRepository,
	investmentRepo *repository.InvestmentRepository,
	profileRepo *repository.ProfileRepository,
	notifier *Notifier,
) *PitchService {
	return &PitchService{
		db:             db,
		pitchRepo:      pitchRepo,
		roundRepo:      roundRepo,
		investmentRepo: investmentRepo,
		profileRepo:    profileRepo,
		notifier:       notifier,
	}
}

// GetPitches retrieves pitches matching the filter.
func (s *PitchService) GetPitches(filter model.PitchFilter) ([]model.Pitch, error) {
	return s.pitchRepo.GetPitches(filter)
}

// GetPitchDetail assembles the full pitch view: the pitch row, its current
// open round, round history, embedded investment summaries, and moderation
// notes. Investment summaries are joined at read time from the standalone
// investment rows.
func (s *PitchService) GetPitchDetail(ctx context.Context, pitchID string) (model.PitchDetail, error) {
	pitch, err := s.pitchRepo.GetPitchOnID(ctx, nil, pitchID)
	if err != nil {
		return model.PitchDetail{}, err
	}

	detail := model.PitchDetail{Pitch: pitch}

	openRound, err := s.roundRepo.GetOpenRound(ctx, nil, pitch.ID)
	if err == nil {
		detail.CurrentRound = &openRound
	} else if !errors.Is(err, apperrors.ErrRoundNotOpen) {
		return model.PitchDetail{}, err
	}

	history, err := s.roundRepo.GetRoundsForPitch(pitch.ID)
	if err != nil {
		return model.PitchDetail{}, err
	}
	detail.RoundHistory = history

	summaries, err := s.investmentRepo.GetInvestmentSummaries(pitch.ID)
	if err != nil {
		return model.PitchDetail{}, err
	}
	detail.Investments = summaries

	notes, err := s.pitchRepo.GetReviewNotes(pitch.ID)
	if err != nil {
		return model.PitchDetail{}, err
	}
	detail.ReviewNotes = notes

	return detail, nil
}

// CreatePitch creates a new pitch in draft status for an existing pitcher
// profile.
func (s *PitchService) CreatePitch(ctx context.Context, req request.CreatePitchRequest) (*model.Pitch, error) {
	if _, err := s.profileRepo.GetProfileOnID(req.CreatorID); err != nil {
		return nil, err
	}

	pitch := &model.Pitch{
		ID:                 uuid.New().String(),
		CreatorID:          req.CreatorID,
		Title:              req.Title,
		CompanyName:        req.CompanyName,
		CompanyDescription: req.CompanyDescription,
		CategoryID:         req.CategoryID,
		Status:             model.PitchStatusDraft,
		FundingGoal:        req.FundingGoal,
		Valuation:          req.Valuation,
		Metrics:            model.PitchMetrics{EquityRemaining: EquityPool},
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}

	if err := s.pitchRepo.InsertPitch(ctx, pitch); err != nil {
		return nil, err
	}

	return pitch, nil
}

// UpdatePitch applies the provided fields to an existing pitch.
func (s *PitchService) UpdatePitch(ctx context.Context, pitchID string, req request.UpdatePitchRequest) (*model.Pitch, error) {
	pitch, err := s.pitchRepo.GetPitchOnID(ctx, nil, pitchID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		pitch.Title = *req.Title
	}
	if req.CompanyName != nil {
		pitch.CompanyName = *req.CompanyName
	}
	if req.CompanyDescription != nil {
		pitch.CompanyDescription = *req.CompanyDescription
	}
	if req.CategoryID != nil {
		pitch.CategoryID = *req.CategoryID
	}
	if req.FundingGoal != nil {
		pitch.FundingGoal = *req.FundingGoal
	}
	if req.Valuation != nil {
		pitch.Valuation = *req.Valuation
	}
	pitch.UpdatedAt = time.Now()

	if err := s.pitchRepo.UpdatePitch(ctx, &pitch); err != nil {
		return nil, err
	}

	return &pitch, nil
}

// DeletePitch removes a pitch and its dependent rows.
func (s *PitchService) DeletePitch(ctx context.Context, pitchID string) error {
	return s.pitchRepo.DeletePitch(ctx, pitchID)
}

// ReviewPitch moves a pitch to the requested moderation status, appends the
// reviewer's feedback to the pitch's review history, and enqueues a creator
// email plus an in-app notification, all in one transaction.
func (s *PitchService) ReviewPitch(ctx context.Context, pitchID string, req request.ReviewPitchRequest) (*model.Pitch, error) {
	pitch, err := s.pitchRepo.GetPitchOnID(ctx, nil, pitchID)
	if err != nil {
		return nil, err
	}

	creator, err := s.profileRepo.GetProfileOnID(pitch.CreatorID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToReviewPitch, err)
	}
	defer tx.Rollback()

	if err := s.pitchRepo.UpdatePitchStatus(ctx, tx, pitch.ID, req.Status); err != nil {
		return nil, err
	}

	note := &model.PitchReviewNote{
		ID:         uuid.New().String(),
		PitchID:    pitch.ID,
		ReviewerID: req.ReviewerID,
		Status:     req.Status,
		Feedback:   req.Feedback,
		CreatedAt:  time.Now(),
	}
	if err := s.pitchRepo.InsertReviewNote(ctx, tx, note); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Your pitch %q was moved to %s.", pitch.Title, req.Status)
	if req.Feedback != "" {
		message = fmt.Sprintf("%s Feedback: %s", message, req.Feedback)
	}

	if err := s.notifier.EnqueueEmail(ctx, tx, creator.Email,
		fmt.Sprintf("Pitch review: %s", pitch.Title), message); err != nil {
		return nil, err
	}
	if err := s.notifier.PushNotification(ctx, tx, creator.UserID,
		model.NotificationPitchReviewed, "Pitch reviewed", message,
		"/pitches/"+pitch.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToReviewPitch, err)
	}

	pitch.Status = req.Status
	return &pitch, nil
}

// BatchReview applies one moderation transition to every pitch in the
// request concurrently. Items succeed or fail independently; there is no
// rollback across items. The summary reports per-item outcomes plus counts.
func (s *PitchService) BatchReview(ctx context.Context, req request.BatchReviewPitchRequest) model.BatchReviewSummary {
	summary := model.BatchReviewSummary{
		Requested: len(req.PitchIDs),
		Results:   make([]model.BatchReviewResult, len(req.PitchIDs)),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchReviewConcurrency)

	for i, pitchID := range req.PitchIDs {
		g.Go(func() error {
			_, err := s.ReviewPitch(gctx, pitchID, request.ReviewPitchRequest{
				Status:     req.Status,
				ReviewerID: req.ReviewerID,
				Feedback:   req.Feedback,
			})

			result := model.BatchReviewResult{PitchID: pitchID, Success: err == nil}
			if err != nil {
				result.Error = err.Error()
			}

			mu.Lock()
			summary.Results[i] = result
			if err == nil {
				summary.Succeeded++
			} else {
				summary.Failed++
			}
			mu.Unlock()
			return nil
		})
	}

	g.Wait()
	return summary
}

// OpenRound opens a new funding round on a pitch. Any previous open round is
// closed into history in the same transaction, preserving the one-open-round
// invariant.
func (s *PitchService) OpenRound(ctx context.Context, pitchID string, req request.OpenRoundRequest) (*model.FundingRound, error) {
	pitch, err := s.pitchRepo.GetPitchOnID(ctx, nil, pitchID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToOpenRound, err)
	}
	defer tx.Rollback()

	if err := s.roundRepo.CloseOpenRounds(ctx, tx, pitch.ID); err != nil {
		return nil, err
	}

	number, err := s.roundRepo.NextRoundNumber(ctx, tx, pitch.ID)
	if err != nil {
		return nil, err
	}

	round := &model.FundingRound{
		ID:              uuid.New().String(),
		PitchID:         pitch.ID,
		RoundNumber:     number,
		Status:          model.RoundStatusOpen,
		TargetAmount:    req.TargetAmount,
		MinimumTicket:   req.MinimumTicket,
		MaximumTicket:   req.MaximumTicket,
		AvailableEquity: req.AvailableEquity,
		OpenedAt:        time.Now(),
	}

	if err := s.roundRepo.InsertRound(ctx, tx, round); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToOpenRound, err)
	}

	return round, nil
}

// CloseRound closes the pitch's open round, if any.
func (s *PitchService) CloseRound(ctx context.Context, pitchID string) error {
	if _, err := s.roundRepo.GetOpenRound(ctx, nil, pitchID); err != nil {
		return err
	}
	return s.roundRepo.CloseOpenRounds(ctx, nil, pitchID)
}
