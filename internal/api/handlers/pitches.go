package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/api/request"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/api/response"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/apperrors"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/service"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/validation"
)

// PitchHandler handles HTTP requests for pitch endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the pitchService.
type PitchHandler struct {
	pitchService *service.PitchService
}

// NewPitchHandler creates a new PitchHandler with the provided service dependency.
func NewPitchHandler(pitchService *service.PitchService) *PitchHandler {
	return &PitchHandler{
		pitchService: pitchService,
	}
}

// Pitches handles GET requests to retrieve pitches, optionally filtered by
// status, category, or creator query parameters.
//
// Endpoint: GET /api/pitch
// Response: 200 OK with array of Pitch
// Error: 500 Internal Server Error if retrieval fails
func (h *PitchHandler) Pitches(w http.ResponseWriter, r *http.Request) {
	filter := model.PitchFilter{
		Status:     r.URL.Query().Get("status"),
		CategoryID: r.URL.Query().Get("categoryId"),
		CreatorID:  r.URL.Query().Get("creatorId"),
	}

	pitches, err := h.pitchService.GetPitches(filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePitches.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, pitches)
}

// GetPitch handles GET requests to retrieve the full pitch view: the pitch,
// its current and historical rounds, embedded investment summaries, and
// moderation notes.
//
// Endpoint: GET /api/pitch/{uuid}
// Response: 200 OK with PitchDetail
// Error: 400 Bad Request if pitch ID is invalid (validated by middleware)
// Error: 404 Not Found if pitch not found
// Error: 500 Internal Server Error if retrieval fails
func (h *PitchHandler) GetPitch(w http.ResponseWriter, r *http.Request) {
	pitchID := chi.URLParam(r, "uuid")

	detail, err := h.pitchService.GetPitchDetail(r.Context(), pitchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPitchNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPitchNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePitch.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, detail)
}

// CreatePitch handles POST requests to create a new pitch in draft status.
//
// Endpoint: POST /api/pitch
// Request Body: CreatePitchRequest
// Response: 201 Created with Pitch
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the creator profile does not exist
// Error: 500 Internal Server Error if creation fails
func (h *PitchHandler) CreatePitch(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreatePitchRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreatePitch(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	pitch, err := h.pitchService.CreatePitch(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrProfileNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCreatePitch.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, pitch)
}

// UpdatePitch handles PUT requests to update an existing pitch.
//
// Endpoint: PUT /api/pitch/{uuid}
// Request Body: UpdatePitchRequest (all fields optional)
// Response: 200 OK with updated Pitch
// Error: 400 Bad Request if pitch ID is invalid (validated by middleware)
// Error: 404 Not Found if pitch not found
// Error: 500 Internal Server Error if update fails
func (h *PitchHandler) UpdatePitch(w http.ResponseWriter, r *http.Request) {
	pitchID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdatePitchRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	pitch, err := h.pitchService.UpdatePitch(r.Context(), pitchID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrPitchNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPitchNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdatePitch.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, pitch)
}

// DeletePitch handles DELETE requests to remove a pitch.
//
// Endpoint: DELETE /api/pitch/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if pitch ID is invalid (validated by middleware)
// Error: 404 Not Found if pitch not found
// Error: 500 Internal Server Error if deletion fails
func (h *PitchHandler) DeletePitch(w http.ResponseWriter, r *http.Request) {
	pitchID := chi.URLParam(r, "uuid")

	if err := h.pitchService.DeletePitch(r.Context(), pitchID); err != nil {
		if errors.Is(err, apperrors.ErrPitchNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPitchNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToDeletePitch.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// ReviewPitch handles POST requests to apply a moderation transition to a
// pitch, appending optional feedback to its review history.
//
// Endpoint: POST /api/pitch/{uuid}/review
// Request Body: ReviewPitchRequest (status, reviewerId, feedback)
// Response: 200 OK with updated Pitch
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if pitch not found
// Error: 500 Internal Server Error if review fails
func (h *PitchHandler) ReviewPitch(w http.ResponseWriter, r *http.Request) {
	pitchID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.ReviewPitchRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateReviewPitch(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	pitch, err := h.pitchService.ReviewPitch(r.Context(), pitchID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrPitchNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPitchNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToReviewPitch.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, pitch)
}

// BatchReviewPitches handles POST requests to apply one moderation
// transition to many pitches concurrently. Items succeed or fail
// independently; the response reports per-item outcomes.
//
// Endpoint: POST /api/pitch/batch-review
// Request Body: BatchReviewPitchRequest (pitchIds, status, reviewerId, feedback)
// Response: 200 OK with BatchReviewSummary
// Error: 400 Bad Request if validation fails or request body is invalid
func (h *PitchHandler) BatchReviewPitches(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.BatchReviewPitchRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateBatchReviewPitch(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	summary := h.pitchService.BatchReview(r.Context(), req)
	response.RespondJSON(w, http.StatusOK, summary)
}

// OpenRound handles POST requests to open a new funding round on a pitch.
// Any previous open round is closed into history.
//
// Endpoint: POST /api/pitch/{uuid}/round
// Request Body: OpenRoundRequest (targetAmount, minimumTicket, maximumTicket, availableEquity)
// Response: 201 Created with FundingRound
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if pitch not found
// Error: 500 Internal Server Error if opening fails
func (h *PitchHandler) OpenRound(w http.ResponseWriter, r *http.Request) {
	pitchID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.OpenRoundRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateOpenRound(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	round, err := h.pitchService.OpenRound(r.Context(), pitchID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrPitchNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPitchNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToOpenRound.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, round)
}

// CloseRound handles POST requests to close a pitch's open funding round.
//
// Endpoint: POST /api/pitch/{uuid}/round/close
// Response: 204 No Content on successful close
// Error: 404 Not Found if pitch has no open round
// Error: 500 Internal Server Error if closing fails
func (h *PitchHandler) CloseRound(w http.ResponseWriter, r *http.Request) {
	pitchID := chi.URLParam(r, "uuid")

	if err := h.pitchService.CloseRound(r.Context(), pitchID); err != nil {
		if errors.Is(err, apperrors.ErrRoundNotOpen) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrRoundNotOpen.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCloseRound.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
