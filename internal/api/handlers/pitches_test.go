package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/api/request"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/testutil"
)

func setupPitchHandler(t *testing.T) (*PitchHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewPitchHandler(testutil.NewTestPitchService(t, db)), db
}

// TestPitchHandler_Pitches tests the pitch listing endpoint.
func TestPitchHandler_Pitches(t *testing.T) {
	t.Run("filters by status", func(t *testing.T) {
		handler, db := setupPitchHandler(t)

		pitcher := testutil.NewProfile().AsPitcher().Build(t, db)
		testutil.NewPitch(pitcher.ID).Build(t, db)
		testutil.NewPitch(pitcher.ID).WithStatus(model.PitchStatusDraft).Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/pitch",
			map[string]string{"status": model.PitchStatusActive})
		w := httptest.NewRecorder()

		handler.Pitches(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var pitches []model.Pitch
		json.NewDecoder(w.Body).Decode(&pitches) //nolint:errcheck
		if len(pitches) != 1 {
			t.Fatalf("Expected 1 active pitch, got %d", len(pitches))
		}
		if pitches[0].Status != model.PitchStatusActive {
			t.Errorf("Expected active pitch, got %s", pitches[0].Status)
		}
	})

	t.Run("returns empty array when nothing matches", func(t *testing.T) {
		handler, _ := setupPitchHandler(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/pitch",
			map[string]string{"status": model.PitchStatusArchived})
		w := httptest.NewRecorder()

		handler.Pitches(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var pitches []model.Pitch
		json.NewDecoder(w.Body).Decode(&pitches) //nolint:errcheck
		if len(pitches) != 0 {
			t.Errorf("Expected empty result, got %d pitches", len(pitches))
		}
	})
}

// TestPitchHandler_GetPitch tests the assembled detail endpoint.
func TestPitchHandler_GetPitch(t *testing.T) {
	t.Run("returns detail with current round", func(t *testing.T) {
		handler, db := setupPitchHandler(t)

		_, pitch, round := testutil.CreateActivePitchWithRound(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/pitch/"+pitch.ID, map[string]string{"uuid": pitch.ID})
		w := httptest.NewRecorder()

		handler.GetPitch(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var detail model.PitchDetail
		json.NewDecoder(w.Body).Decode(&detail) //nolint:errcheck
		if detail.ID != pitch.ID {
			t.Errorf("Expected pitch %s, got %s", pitch.ID, detail.ID)
		}
		if detail.CurrentRound == nil || detail.CurrentRound.ID != round.ID {
			t.Errorf("Expected current round %s in detail", round.ID)
		}
	})

	t.Run("returns 404 for unknown pitch", func(t *testing.T) {
		handler, _ := setupPitchHandler(t)

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/pitch/"+id, map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.GetPitch(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

// TestPitchHandler_BatchReviewPitches tests the admin batch moderation endpoint.
func TestPitchHandler_BatchReviewPitches(t *testing.T) {
	t.Run("returns summary with per-item results", func(t *testing.T) {
		handler, db := setupPitchHandler(t)

		pitcher := testutil.NewProfile().AsPitcher().Build(t, db)
		a := testutil.NewPitch(pitcher.ID).WithStatus(model.PitchStatusPending).Build(t, db)
		b := testutil.NewPitch(pitcher.ID).WithStatus(model.PitchStatusPending).Build(t, db)
		missing := testutil.MakeID()

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/pitch/batch-review",
			request.BatchReviewPitchRequest{
				PitchIDs:   []string{a.ID, b.ID, missing},
				Status:     model.PitchStatusActive,
				ReviewerID: "admin-1",
			}, nil)
		w := httptest.NewRecorder()

		handler.BatchReviewPitches(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var summary model.BatchReviewSummary
		json.NewDecoder(w.Body).Decode(&summary) //nolint:errcheck
		if summary.Requested != 3 || summary.Succeeded != 2 || summary.Failed != 1 {
			t.Errorf("Expected 3/2/1, got %d/%d/%d", summary.Requested, summary.Succeeded, summary.Failed)
		}
	})

	t.Run("returns 400 for empty pitch list", func(t *testing.T) {
		handler, _ := setupPitchHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/pitch/batch-review",
			request.BatchReviewPitchRequest{
				PitchIDs:   []string{},
				Status:     model.PitchStatusActive,
				ReviewerID: "admin-1",
			}, nil)
		w := httptest.NewRecorder()

		handler.BatchReviewPitches(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

// TestPitchHandler_OpenRound tests the round opening endpoint.
func TestPitchHandler_OpenRound(t *testing.T) {
	t.Run("opens round and returns 201", func(t *testing.T) {
		handler, db := setupPitchHandler(t)

		pitcher := testutil.NewProfile().AsPitcher().Build(t, db)
		pitch := testutil.NewPitch(pitcher.ID).Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost,
			"/api/pitch/"+pitch.ID+"/round",
			request.OpenRoundRequest{
				TargetAmount:    100000,
				MinimumTicket:   1000,
				MaximumTicket:   50000,
				AvailableEquity: 20,
			},
			map[string]string{"uuid": pitch.ID})
		w := httptest.NewRecorder()

		handler.OpenRound(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var round model.FundingRound
		json.NewDecoder(w.Body).Decode(&round) //nolint:errcheck
		if round.Status != model.RoundStatusOpen {
			t.Errorf("Expected open round, got %s", round.Status)
		}
	})

	t.Run("returns 400 when tickets are inconsistent", func(t *testing.T) {
		handler, db := setupPitchHandler(t)

		pitcher := testutil.NewProfile().AsPitcher().Build(t, db)
		pitch := testutil.NewPitch(pitcher.ID).Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost,
			"/api/pitch/"+pitch.ID+"/round",
			request.OpenRoundRequest{
				TargetAmount:    100000,
				MinimumTicket:   50000,
				MaximumTicket:   1000,
				AvailableEquity: 20,
			},
			map[string]string{"uuid": pitch.ID})
		w := httptest.NewRecorder()

		handler.OpenRound(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}
