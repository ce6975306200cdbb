package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/api/request"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/testutil"
)

// TestInvestmentHandler_CreateInvestment tests the investment creation endpoint.
//
// WHY: The handler is the contract boundary. Validation failures must come
// back as 400 with field detail, business rejections as 422, capacity
// conflicts as 409, and a valid request as 201 with the created investment.
func TestInvestmentHandler_CreateInvestment(t *testing.T) {
	setupHandler := func(t *testing.T) (*InvestmentHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return NewInvestmentHandler(testutil.NewTestInvestmentService(t, db)), db
	}

	t.Run("creates investment and returns 201", func(t *testing.T) {
		handler, db := setupHandler(t)

		_, pitch, _ := testutil.CreateActivePitchWithRound(t, db)
		investor := testutil.NewProfile().AsInvestor().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/investment", request.CreateInvestmentRequest{
			PitchID:        pitch.ID,
			InvestorUserID: investor.UserID,
			Amount:         5000,
			InvestmentType: model.InvestmentTypeSafe,
			TermsAccepted:  true,
		}, nil)
		w := httptest.NewRecorder()

		handler.CreateInvestment(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var investment model.Investment
		json.NewDecoder(w.Body).Decode(&investment) //nolint:errcheck
		if investment.Status != model.InvestmentStatusPending {
			t.Errorf("Expected status pending, got %s", investment.Status)
		}
		if investment.PitchID != pitch.ID {
			t.Errorf("Expected pitch %s, got %s", pitch.ID, investment.PitchID)
		}
	})

	t.Run("returns 400 for malformed JSON", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/investment", strings.NewReader("{not json"))
		w := httptest.NewRecorder()

		handler.CreateInvestment(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("returns 400 for validation failure", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/investment", request.CreateInvestmentRequest{
			PitchID:        "not-a-uuid",
			InvestorUserID: "",
			Amount:         -5,
		}, nil)
		w := httptest.NewRecorder()

		handler.CreateInvestment(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("returns 404 for unknown pitch", func(t *testing.T) {
		handler, db := setupHandler(t)

		investor := testutil.NewProfile().AsInvestor().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/investment", request.CreateInvestmentRequest{
			PitchID:        testutil.MakeID(),
			InvestorUserID: investor.UserID,
			Amount:         5000,
			InvestmentType: model.InvestmentTypeSafe,
			TermsAccepted:  true,
		}, nil)
		w := httptest.NewRecorder()

		handler.CreateInvestment(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})

	t.Run("returns 409 when round is fully subscribed", func(t *testing.T) {
		handler, db := setupHandler(t)

		pitcher := testutil.NewProfile().AsPitcher().Build(t, db)
		pitch := testutil.NewPitch(pitcher.ID).Build(t, db)
		testutil.NewRound(pitch.ID).WithCurrentAmount(100000).Build(t, db)
		investor := testutil.NewProfile().AsInvestor().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/investment", request.CreateInvestmentRequest{
			PitchID:        pitch.ID,
			InvestorUserID: investor.UserID,
			Amount:         5000,
			InvestmentType: model.InvestmentTypeSafe,
			TermsAccepted:  true,
		}, nil)
		w := httptest.NewRecorder()

		handler.CreateInvestment(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected status 409, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 422 for out-of-range amount", func(t *testing.T) {
		handler, db := setupHandler(t)

		_, pitch, _ := testutil.CreateActivePitchWithRound(t, db)
		investor := testutil.NewProfile().AsInvestor().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/investment", request.CreateInvestmentRequest{
			PitchID:        pitch.ID,
			InvestorUserID: investor.UserID,
			Amount:         999999,
			InvestmentType: model.InvestmentTypeSafe,
			TermsAccepted:  true,
		}, nil)
		w := httptest.NewRecorder()

		handler.CreateInvestment(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("Expected status 422, got %d: %s", w.Code, w.Body.String())
		}
	})
}

// TestInvestmentHandler_GetInvestment tests single investment retrieval.
func TestInvestmentHandler_GetInvestment(t *testing.T) {
	setupHandler := func(t *testing.T) (*InvestmentHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return NewInvestmentHandler(testutil.NewTestInvestmentService(t, db)), db
	}

	t.Run("returns investment with pitch title", func(t *testing.T) {
		handler, db := setupHandler(t)

		_, pitch, round := testutil.CreateActivePitchWithRound(t, db)
		investor := testutil.NewProfile().AsInvestor().Build(t, db)
		investment := testutil.NewInvestment(pitch, round, investor).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/investment/"+investment.ID, map[string]string{"uuid": investment.ID})
		w := httptest.NewRecorder()

		handler.GetInvestment(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp model.InvestmentResponse
		json.NewDecoder(w.Body).Decode(&resp) //nolint:errcheck
		if resp.ID != investment.ID {
			t.Errorf("Expected investment %s, got %s", investment.ID, resp.ID)
		}
		if resp.PitchTitle != pitch.Title {
			t.Errorf("Expected pitch title %q, got %q", pitch.Title, resp.PitchTitle)
		}
	})

	t.Run("returns 404 for unknown investment", func(t *testing.T) {
		handler, _ := setupHandler(t)

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/investment/"+id, map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.GetInvestment(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

// TestInvestmentHandler_InvestmentsPerInvestor tests the per-investor listing.
func TestInvestmentHandler_InvestmentsPerInvestor(t *testing.T) {
	t.Run("returns only the user's investments", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewInvestmentHandler(testutil.NewTestInvestmentService(t, db))

		_, pitch, round := testutil.CreateActivePitchWithRound(t, db)
		mine := testutil.NewProfile().AsInvestor().Build(t, db)
		other := testutil.NewProfile().AsInvestor().Build(t, db)
		testutil.NewInvestment(pitch, round, mine).Build(t, db)
		testutil.NewInvestment(pitch, round, mine).WithAmount(2000).Build(t, db)
		testutil.NewInvestment(pitch, round, other).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/investment/investor/"+mine.UserID, map[string]string{"userId": mine.UserID})
		w := httptest.NewRecorder()

		handler.InvestmentsPerInvestor(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var investments []model.InvestmentResponse
		json.NewDecoder(w.Body).Decode(&investments) //nolint:errcheck
		if len(investments) != 2 {
			t.Errorf("Expected 2 investments, got %d", len(investments))
		}
	})
}

// TestInvestmentHandler_ReviewInvestment tests the review endpoint.
func TestInvestmentHandler_ReviewInvestment(t *testing.T) {
	setupHandler := func(t *testing.T) (*InvestmentHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return NewInvestmentHandler(testutil.NewTestInvestmentService(t, db)), db
	}

	t.Run("applies valid action and returns 200", func(t *testing.T) {
		handler, db := setupHandler(t)

		pitcher, pitch, round := testutil.CreateActivePitchWithRound(t, db)
		investor := testutil.NewProfile().AsInvestor().Build(t, db)
		investment := testutil.NewInvestment(pitch, round, investor).Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost,
			"/api/investment/"+investment.ID+"/review",
			request.ReviewInvestmentRequest{
				Action:       "pitcher_approve",
				ReviewerID:   pitcher.UserID,
				ReviewerRole: model.RolePitcher,
			},
			map[string]string{"uuid": investment.ID})
		w := httptest.NewRecorder()

		handler.ReviewInvestment(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var updated model.Investment
		json.NewDecoder(w.Body).Decode(&updated) //nolint:errcheck
		if updated.Status != model.InvestmentStatusAdminReview {
			t.Errorf("Expected status admin_review, got %s", updated.Status)
		}
	})

	t.Run("returns 409 for invalid transition", func(t *testing.T) {
		handler, db := setupHandler(t)

		_, pitch, round := testutil.CreateActivePitchWithRound(t, db)
		investor := testutil.NewProfile().AsInvestor().Build(t, db)
		investment := testutil.NewInvestment(pitch, round, investor).Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost,
			"/api/investment/"+investment.ID+"/review",
			request.ReviewInvestmentRequest{Action: "admin_approve", ReviewerID: "admin-1"},
			map[string]string{"uuid": investment.ID})
		w := httptest.NewRecorder()

		handler.ReviewInvestment(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected status 409, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for unknown action", func(t *testing.T) {
		handler, db := setupHandler(t)

		_, pitch, round := testutil.CreateActivePitchWithRound(t, db)
		investor := testutil.NewProfile().AsInvestor().Build(t, db)
		investment := testutil.NewInvestment(pitch, round, investor).Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost,
			"/api/investment/"+investment.ID+"/review",
			request.ReviewInvestmentRequest{Action: "promote", ReviewerID: "admin-1"},
			map[string]string{"uuid": investment.ID})
		w := httptest.NewRecorder()

		handler.ReviewInvestment(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}
