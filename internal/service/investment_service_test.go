package service_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/api/request"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/apperrors"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/repository"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/testutil"
)

// TestInvestmentService_CreateInvestment tests investment creation against
// an open funding round.
//
// WHY: Creation is the money path. It must reserve round capacity atomically,
// keep the round's running totals consistent with the counted investment set,
// and reject out-of-range or over-capacity requests without mutating anything.
func TestInvestmentService_CreateInvestment(t *testing.T) {
	t.Run("creates pending investment and reserves capacity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)

		_, pitch, round := testutil.CreateActivePitchWithRound(t, db)
		investor := testutil.NewProfile().AsInvestor().Build(t, db)

		investment, err := svc.CreateInvestment(context.Background(), request.CreateInvestmentRequest{
			PitchID:        pitch.ID,
			InvestorUserID: investor.UserID,
			Amount:         25000,
			InvestmentType: model.InvestmentTypeEquity,
			Equity:         5,
			TermsAccepted:  true,
		})
		if err != nil {
			t.Fatalf("CreateInvestment() returned unexpected error: %v", err)
		}

		if investment.Status != model.InvestmentStatusPending {
			t.Errorf("Expected status pending, got %s", investment.Status)
		}

		roundRepo := repository.NewRoundRepository(db)
		updated, err := roundRepo.GetRoundOnID(context.Background(), nil, round.ID)
		if err != nil {
			t.Fatalf("Failed to reload round: %v", err)
		}

		if updated.CurrentAmount != 25000 {
			t.Errorf("Expected current amount 25000, got %.2f", updated.CurrentAmount)
		}
		if updated.NumberOfInvestors != 1 {
			t.Errorf("Expected 1 investor, got %d", updated.NumberOfInvestors)
		}

		pitchRepo := repository.NewPitchRepository(db)
		reloaded, err := pitchRepo.GetPitchOnID(context.Background(), nil, pitch.ID)
		if err != nil {
			t.Fatalf("Failed to reload pitch: %v", err)
		}

		if reloaded.Metrics.AverageInvestment != 25000 {
			t.Errorf("Expected average investment 25000, got %.2f", reloaded.Metrics.AverageInvestment)
		}
		if reloaded.Metrics.TotalEquityAllocated != 5 {
			t.Errorf("Expected total equity allocated 5, got %.2f", reloaded.Metrics.TotalEquityAllocated)
		}
		if reloaded.Metrics.EquityRemaining != 95 {
			t.Errorf("Expected equity remaining 95, got %.2f", reloaded.Metrics.EquityRemaining)
		}
	})

	t.Run("enqueues outbox emails and notifications on creation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)

		_, pitch, _ := testutil.CreateActivePitchWithRound(t, db)
		investor := testutil.NewProfile().AsInvestor().Build(t, db)

		_, err := svc.CreateInvestment(context.Background(), request.CreateInvestmentRequest{
			PitchID:        pitch.ID,
			InvestorUserID: investor.UserID,
			Amount:         5000,
			InvestmentType: model.InvestmentTypeSafe,
			TermsAccepted:  true,
		})
		if err != nil {
			t.Fatalf("CreateInvestment() returned unexpected error: %v", err)
		}

		var outboxCount int
		if err := db.QueryRow(`SELECT COUNT(*) FROM outbox WHERE status = 'pending'`).Scan(&outboxCount); err != nil {
			t.Fatalf("Failed to count outbox entries: %v", err)
		}
		if outboxCount != 3 {
			t.Errorf("Expected 3 pending outbox emails, got %d", outboxCount)
		}

		var notificationCount int
		if err := db.QueryRow(`SELECT COUNT(*) FROM notification`).Scan(&notificationCount); err != nil {
			t.Fatalf("Failed to count notifications: %v", err)
		}
		if notificationCount != 3 {
			t.Errorf("Expected 3 notifications, got %d", notificationCount)
		}
	})

	t.Run("rejects amount below minimum ticket without mutation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)

		_, pitch, round := testutil.CreateActivePitchWithRound(t, db)
		investor := testutil.NewProfile().AsInvestor().Build(t, db)

		_, err := svc.CreateInvestment(context.Background(), request.CreateInvestmentRequest{
			PitchID:        pitch.ID,
			InvestorUserID: investor.UserID,
			Amount:         500,
			InvestmentType: model.InvestmentTypeSafe,
			TermsAccepted:  true,
		})
		if !errors.Is(err, apperrors.ErrAmountOutOfRange) {
			t.Fatalf("Expected ErrAmountOutOfRange, got %v", err)
		}

		assertNoMutation(t, db, round.ID)
	})

	t.Run("rejects amount above maximum ticket without mutation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)

		_, pitch, round := testutil.CreateActivePitchWithRound(t, db)
		investor := testutil.NewProfile().AsInvestor().Build(t, db)

		_, err := svc.CreateInvestment(context.Background(), request.CreateInvestmentRequest{
			PitchID:        pitch.ID,
			InvestorUserID: investor.UserID,
			Amount:         60000,
			InvestmentType: model.InvestmentTypeSafe,
			TermsAccepted:  true,
		})
		if !errors.Is(err, apperrors.ErrAmountOutOfRange) {
			t.Fatalf("Expected ErrAmountOutOfRange, got %v", err)
		}

		assertNoMutation(t, db, round.ID)
	})

	t.Run("rejects fully subscribed round", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)

		pitcher := testutil.NewProfile().AsPitcher().Build(t, db)
		pitch := testutil.NewPitch(pitcher.ID).Build(t, db)
		round := testutil.NewRound(pitch.ID).WithCurrentAmount(100000).Build(t, db)
		investor := testutil.NewProfile().AsInvestor().Build(t, db)

		_, err := svc.CreateInvestment(context.Background(), request.CreateInvestmentRequest{
			PitchID:        pitch.ID,
			InvestorUserID: investor.UserID,
			Amount:         5000,
			InvestmentType: model.InvestmentTypeSafe,
			TermsAccepted:  true,
		})
		if !errors.Is(err, apperrors.ErrRoundFullySubscribed) {
			t.Fatalf("Expected ErrRoundFullySubscribed, got %v", err)
		}

		roundRepo := repository.NewRoundRepository(db)
		reloaded, _ := roundRepo.GetRoundOnID(context.Background(), nil, round.ID)
		if reloaded.CurrentAmount != 100000 {
			t.Errorf("Expected current amount unchanged at 100000, got %.2f", reloaded.CurrentAmount)
		}
	})

	t.Run("rejects capacity overshoot that passes the range check", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)

		// 25000 already subscribed; a 90000 follow-up fits the ticket range
		// on a larger round but overshoots the remaining capacity.
		pitcher := testutil.NewProfile().AsPitcher().Build(t, db)
		pitch := testutil.NewPitch(pitcher.ID).Build(t, db)
		round := testutil.NewRound(pitch.ID).
			WithTickets(1000, 90000).
			WithCurrentAmount(25000).
			Build(t, db)
		investor := testutil.NewProfile().AsInvestor().Build(t, db)

		_, err := svc.CreateInvestment(context.Background(), request.CreateInvestmentRequest{
			PitchID:        pitch.ID,
			InvestorUserID: investor.UserID,
			Amount:         90000,
			InvestmentType: model.InvestmentTypeSafe,
			TermsAccepted:  true,
		})
		if !errors.Is(err, apperrors.ErrRoundCapacityExceeded) {
			t.Fatalf("Expected ErrRoundCapacityExceeded, got %v", err)
		}

		roundRepo := repository.NewRoundRepository(db)
		reloaded, _ := roundRepo.GetRoundOnID(context.Background(), nil, round.ID)
		if reloaded.CurrentAmount != 25000 {
			t.Errorf("Expected current amount unchanged at 25000, got %.2f", reloaded.CurrentAmount)
		}
	})

	t.Run("rejects inactive pitch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)

		pitcher := testutil.NewProfile().AsPitcher().Build(t, db)
		pitch := testutil.NewPitch(pitcher.ID).WithStatus(model.PitchStatusPending).Build(t, db)
		testutil.NewRound(pitch.ID).Build(t, db)
		investor := testutil.NewProfile().AsInvestor().Build(t, db)

		_, err := svc.CreateInvestment(context.Background(), request.CreateInvestmentRequest{
			PitchID:        pitch.ID,
			InvestorUserID: investor.UserID,
			Amount:         5000,
			InvestmentType: model.InvestmentTypeSafe,
			TermsAccepted:  true,
		})
		if !errors.Is(err, apperrors.ErrPitchNotActive) {
			t.Fatalf("Expected ErrPitchNotActive, got %v", err)
		}
	})

	t.Run("rejects pitch without open round", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)

		pitcher := testutil.NewProfile().AsPitcher().Build(t, db)
		pitch := testutil.NewPitch(pitcher.ID).Build(t, db)
		testutil.NewRound(pitch.ID).Closed().Build(t, db)
		investor := testutil.NewProfile().AsInvestor().Build(t, db)

		_, err := svc.CreateInvestment(context.Background(), request.CreateInvestmentRequest{
			PitchID:        pitch.ID,
			InvestorUserID: investor.UserID,
			Amount:         5000,
			InvestmentType: model.InvestmentTypeSafe,
			TermsAccepted:  true,
		})
		if !errors.Is(err, apperrors.ErrRoundNotOpen) {
			t.Fatalf("Expected ErrRoundNotOpen, got %v", err)
		}
	})

	t.Run("enforces equity rules per investment type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)

		_, pitch, _ := testutil.CreateActivePitchWithRound(t, db)
		investor := testutil.NewProfile().AsInvestor().Build(t, db)

		_, err := svc.CreateInvestment(context.Background(), request.CreateInvestmentRequest{
			PitchID:        pitch.ID,
			InvestorUserID: investor.UserID,
			Amount:         5000,
			InvestmentType: model.InvestmentTypeEquity,
			Equity:         0,
			TermsAccepted:  true,
		})
		if !errors.Is(err, apperrors.ErrEquityRequired) {
			t.Fatalf("Expected ErrEquityRequired, got %v", err)
		}

		_, err = svc.CreateInvestment(context.Background(), request.CreateInvestmentRequest{
			PitchID:        pitch.ID,
			InvestorUserID: investor.UserID,
			Amount:         5000,
			InvestmentType: model.InvestmentTypeSafe,
			Equity:         3,
			TermsAccepted:  true,
		})
		if !errors.Is(err, apperrors.ErrEquityNotAllowed) {
			t.Fatalf("Expected ErrEquityNotAllowed, got %v", err)
		}
	})

	t.Run("counts distinct investors across multiple investments", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)

		_, pitch, round := testutil.CreateActivePitchWithRound(t, db)
		investor := testutil.NewProfile().AsInvestor().Build(t, db)
		other := testutil.NewProfile().AsInvestor().Build(t, db)

		for _, req := range []request.CreateInvestmentRequest{
			{PitchID: pitch.ID, InvestorUserID: investor.UserID, Amount: 5000, InvestmentType: model.InvestmentTypeSafe, TermsAccepted: true},
			{PitchID: pitch.ID, InvestorUserID: investor.UserID, Amount: 8000, InvestmentType: model.InvestmentTypeSafe, TermsAccepted: true},
			{PitchID: pitch.ID, InvestorUserID: other.UserID, Amount: 2000, InvestmentType: model.InvestmentTypeSafe, TermsAccepted: true},
		} {
			if _, err := svc.CreateInvestment(context.Background(), req); err != nil {
				t.Fatalf("CreateInvestment() returned unexpected error: %v", err)
			}
		}

		roundRepo := repository.NewRoundRepository(db)
		reloaded, _ := roundRepo.GetRoundOnID(context.Background(), nil, round.ID)

		if reloaded.CurrentAmount != 15000 {
			t.Errorf("Expected current amount 15000, got %.2f", reloaded.CurrentAmount)
		}
		if reloaded.NumberOfInvestors != 2 {
			t.Errorf("Expected 2 distinct investors, got %d", reloaded.NumberOfInvestors)
		}
	})

	t.Run("concurrent overshooting creations admit at most one", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)

		pitcher := testutil.NewProfile().AsPitcher().Build(t, db)
		pitch := testutil.NewPitch(pitcher.ID).Build(t, db)
		round := testutil.NewRound(pitch.ID).
			WithTarget(50000).
			WithTickets(1000, 40000).
			Build(t, db)
		a := testutil.NewProfile().AsInvestor().Build(t, db)
		b := testutil.NewProfile().AsInvestor().Build(t, db)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i, investor := range []model.Profile{a, b} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = svc.CreateInvestment(context.Background(), request.CreateInvestmentRequest{
					PitchID:        pitch.ID,
					InvestorUserID: investor.UserID,
					Amount:         30000,
					InvestmentType: model.InvestmentTypeSafe,
					TermsAccepted:  true,
				})
			}()
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
			}
		}
		if succeeded != 1 {
			t.Fatalf("Expected exactly 1 success, got %d (errors: %v)", succeeded, errs)
		}

		roundRepo := repository.NewRoundRepository(db)
		reloaded, _ := roundRepo.GetRoundOnID(context.Background(), nil, round.ID)
		if reloaded.CurrentAmount != 30000 {
			t.Errorf("Expected current amount 30000, got %.2f", reloaded.CurrentAmount)
		}
	})
}

// assertNoMutation verifies a rejected creation left no rows or totals behind.
func assertNoMutation(t *testing.T, db *sql.DB, roundID string) {
	t.Helper()

	var investments int
	if err := db.QueryRow(`SELECT COUNT(*) FROM investment`).Scan(&investments); err != nil {
		t.Fatalf("Failed to count investments: %v", err)
	}
	if investments != 0 {
		t.Errorf("Expected no investments, got %d", investments)
	}

	var current float64
	if err := db.QueryRow(`SELECT current_amount FROM funding_round WHERE id = ?`, roundID).Scan(&current); err != nil {
		t.Fatalf("Failed to read round: %v", err)
	}
	if current != 0 {
		t.Errorf("Expected current amount 0, got %.2f", current)
	}
}

// TestInvestmentService_ReviewInvestment tests the guarded review pipeline.
//
// WHY: Investments move through a fixed transition table. Reviews must refuse
// invalid edges, append exactly one note per reviewed transition, and release
// round capacity when an investment leaves the counted set.
func TestInvestmentService_ReviewInvestment(t *testing.T) {
	t.Run("pitcher approval moves pending to admin_review with one note", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)

		pitcher, pitch, round := testutil.CreateActivePitchWithRound(t, db)
		investor := testutil.NewProfile().AsInvestor().Build(t, db)
		investment := testutil.NewInvestment(pitch, round, investor).Build(t, db)

		updated, err := svc.ReviewInvestment(context.Background(), investment.ID, request.ReviewInvestmentRequest{
			Action:       "pitcher_approve",
			ReviewerID:   pitcher.UserID,
			ReviewerRole: model.RolePitcher,
			Note:         "Looks good",
		})
		if err != nil {
			t.Fatalf("ReviewInvestment() returned unexpected error: %v", err)
		}

		if updated.Status != model.InvestmentStatusAdminReview {
			t.Errorf("Expected status admin_review, got %s", updated.Status)
		}

		var notes int
		if err := db.QueryRow(`SELECT COUNT(*) FROM investment_review_note WHERE investment_id = ?`, investment.ID).Scan(&notes); err != nil {
			t.Fatalf("Failed to count review notes: %v", err)
		}
		if notes != 1 {
			t.Errorf("Expected exactly 1 review note, got %d", notes)
		}
	})

	t.Run("rejects invalid transition without mutation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)

		_, pitch, round := testutil.CreateActivePitchWithRound(t, db)
		investor := testutil.NewProfile().AsInvestor().Build(t, db)
		investment := testutil.NewInvestment(pitch, round, investor).Build(t, db)

		_, err := svc.ReviewInvestment(context.Background(), investment.ID, request.ReviewInvestmentRequest{
			Action:     "admin_approve",
			ReviewerID: "admin-1",
		})
		if !errors.Is(err, apperrors.ErrInvalidTransition) {
			t.Fatalf("Expected ErrInvalidTransition, got %v", err)
		}

		var status string
		if err := db.QueryRow(`SELECT status FROM investment WHERE id = ?`, investment.ID).Scan(&status); err != nil {
			t.Fatalf("Failed to read investment: %v", err)
		}
		if status != model.InvestmentStatusPending {
			t.Errorf("Expected status unchanged at pending, got %s", status)
		}

		var notes int
		if err := db.QueryRow(`SELECT COUNT(*) FROM investment_review_note`).Scan(&notes); err != nil {
			t.Fatalf("Failed to count review notes: %v", err)
		}
		if notes != 0 {
			t.Errorf("Expected no review notes, got %d", notes)
		}
	})

	t.Run("rejection releases reserved capacity and refreshes metrics", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)

		pitcher, pitch, _ := testutil.CreateActivePitchWithRound(t, db)
		investor := testutil.NewProfile().AsInvestor().Build(t, db)

		created, err := svc.CreateInvestment(context.Background(), request.CreateInvestmentRequest{
			PitchID:        pitch.ID,
			InvestorUserID: investor.UserID,
			Amount:         20000,
			InvestmentType: model.InvestmentTypeEquity,
			Equity:         4,
			TermsAccepted:  true,
		})
		if err != nil {
			t.Fatalf("CreateInvestment() returned unexpected error: %v", err)
		}

		if _, err := svc.ReviewInvestment(context.Background(), created.ID, request.ReviewInvestmentRequest{
			Action:       "pitcher_reject",
			ReviewerID:   pitcher.UserID,
			ReviewerRole: model.RolePitcher,
			Note:         "Not a fit",
		}); err != nil {
			t.Fatalf("ReviewInvestment() returned unexpected error: %v", err)
		}

		roundRepo := repository.NewRoundRepository(db)
		round, err := roundRepo.GetOpenRound(context.Background(), nil, pitch.ID)
		if err != nil {
			t.Fatalf("Failed to reload round: %v", err)
		}

		if round.CurrentAmount != 0 {
			t.Errorf("Expected capacity released to 0, got %.2f", round.CurrentAmount)
		}
		if round.NumberOfInvestors != 0 {
			t.Errorf("Expected 0 investors after rejection, got %d", round.NumberOfInvestors)
		}

		pitchRepo := repository.NewPitchRepository(db)
		reloaded, _ := pitchRepo.GetPitchOnID(context.Background(), nil, pitch.ID)
		if reloaded.Metrics.TotalEquityAllocated != 0 {
			t.Errorf("Expected equity allocation cleared, got %.2f", reloaded.Metrics.TotalEquityAllocated)
		}
		if reloaded.Metrics.EquityRemaining != 100 {
			t.Errorf("Expected full equity pool restored, got %.2f", reloaded.Metrics.EquityRemaining)
		}
	})

	t.Run("walks the full pipeline to payment_pending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)

		pitcher, pitch, round := testutil.CreateActivePitchWithRound(t, db)
		investor := testutil.NewProfile().AsInvestor().Build(t, db)
		investment := testutil.NewInvestment(pitch, round, investor).Build(t, db)

		steps := []struct {
			action string
			role   string
			want   string
		}{
			{"pitcher_approve", model.RolePitcher, model.InvestmentStatusAdminReview},
			{"admin_approve", "admin", model.InvestmentStatusPaymentPending},
		}

		for _, step := range steps {
			updated, err := svc.ReviewInvestment(context.Background(), investment.ID, request.ReviewInvestmentRequest{
				Action:       step.action,
				ReviewerID:   pitcher.UserID,
				ReviewerRole: step.role,
			})
			if err != nil {
				t.Fatalf("ReviewInvestment(%s) returned unexpected error: %v", step.action, err)
			}
			if updated.Status != step.want {
				t.Errorf("After %s expected status %s, got %s", step.action, step.want, updated.Status)
			}
		}

		var notes int
		if err := db.QueryRow(`SELECT COUNT(*) FROM investment_review_note WHERE investment_id = ?`, investment.ID).Scan(&notes); err != nil {
			t.Fatalf("Failed to count review notes: %v", err)
		}
		if notes != 2 {
			t.Errorf("Expected one note per reviewed transition (2), got %d", notes)
		}
	})

	t.Run("cancelling a counted investment releases its reservation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)

		_, pitch, _ := testutil.CreateActivePitchWithRound(t, db)
		investor := testutil.NewProfile().AsInvestor().Build(t, db)

		created, err := svc.CreateInvestment(context.Background(), request.CreateInvestmentRequest{
			PitchID:        pitch.ID,
			InvestorUserID: investor.UserID,
			Amount:         10000,
			InvestmentType: model.InvestmentTypeSafe,
			TermsAccepted:  true,
		})
		if err != nil {
			t.Fatalf("CreateInvestment() returned unexpected error: %v", err)
		}

		if _, err := svc.ReviewInvestment(context.Background(), created.ID, request.ReviewInvestmentRequest{
			Action:     "cancel",
			ReviewerID: investor.UserID,
		}); err != nil {
			t.Fatalf("ReviewInvestment(cancel) returned unexpected error: %v", err)
		}

		var current float64
		if err := db.QueryRow(`SELECT current_amount FROM funding_round WHERE pitch_id = ?`, pitch.ID).Scan(&current); err != nil {
			t.Fatalf("Failed to read round: %v", err)
		}
		if current != 0 {
			t.Errorf("Expected capacity released to 0, got %.2f", current)
		}
	})
}
