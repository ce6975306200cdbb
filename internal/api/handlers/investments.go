package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/api/request"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/api/response"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/apperrors"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/service"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/validation"
)

// InvestmentHandler handles HTTP requests for investment endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the investmentService.
type InvestmentHandler struct {
	investmentService *service.InvestmentService
}

// NewInvestmentHandler creates a new InvestmentHandler with the provided service dependency.
func NewInvestmentHandler(investmentService *service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{
		investmentService: investmentService,
	}
}

// CreateInvestment handles POST requests to create a new investment against
// a pitch's open funding round.
//
// Endpoint: POST /api/investment
// Request Body: CreateInvestmentRequest
// Response: 201 Created with Investment
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if pitch or investor profile not found
// Error: 409 Conflict if the round is fully subscribed or lacks capacity
// Error: 422 Unprocessable Entity if a business rule rejects the investment
// Error: 500 Internal Server Error if creation fails
func (h *InvestmentHandler) CreateInvestment(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateInvestmentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateInvestment(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	investment, err := h.investmentService.CreateInvestment(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrPitchNotFound), errors.Is(err, apperrors.ErrProfileNotFound):
			response.RespondError(w, http.StatusNotFound, "not found", err.Error())
		case errors.Is(err, apperrors.ErrRoundFullySubscribed), errors.Is(err, apperrors.ErrRoundCapacityExceeded):
			response.RespondError(w, http.StatusConflict, "round capacity", err.Error())
		case errors.Is(err, apperrors.ErrPitchNotActive),
			errors.Is(err, apperrors.ErrRoundNotOpen),
			errors.Is(err, apperrors.ErrAmountOutOfRange),
			errors.Is(err, apperrors.ErrEquityRequired),
			errors.Is(err, apperrors.ErrEquityNotAllowed):
			response.RespondError(w, http.StatusUnprocessableEntity, "investment rejected", err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCreateInvestment.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, investment)
}

// GetInvestment handles GET requests to retrieve a single investment with
// its review history.
//
// Endpoint: GET /api/investment/{uuid}
// Response: 200 OK with InvestmentResponse
// Error: 400 Bad Request if investment ID is invalid (validated by middleware)
// Error: 404 Not Found if investment not found
// Error: 500 Internal Server Error if retrieval fails
func (h *InvestmentHandler) GetInvestment(w http.ResponseWriter, r *http.Request) {
	investmentID := chi.URLParam(r, "uuid")

	investment, err := h.investmentService.GetInvestment(r.Context(), investmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestmentNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestmentNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveInvestment.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, investment)
}

// InvestmentsPerInvestor handles GET requests to retrieve all investments
// made by a user.
//
// Endpoint: GET /api/investment/investor/{userId}
// Response: 200 OK with array of InvestmentResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *InvestmentHandler) InvestmentsPerInvestor(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	investments, err := h.investmentService.GetInvestmentsForInvestor(userID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveInvestments.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, investments)
}

// ReviewInvestment handles POST requests to apply a review action to an
// investment. The action must be a valid edge from the investment's current
// status.
//
// Endpoint: POST /api/investment/{uuid}/review
// Request Body: ReviewInvestmentRequest (action, reviewerId, reviewerRole, note)
// Response: 200 OK with updated Investment
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if investment not found
// Error: 409 Conflict if the action is not valid in the current status
// Error: 500 Internal Server Error if the review fails
func (h *InvestmentHandler) ReviewInvestment(w http.ResponseWriter, r *http.Request) {
	investmentID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.ReviewInvestmentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateReviewInvestment(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	investment, err := h.investmentService.ReviewInvestment(r.Context(), investmentID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvestmentNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestmentNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrInvalidTransition):
			response.RespondError(w, http.StatusConflict, apperrors.ErrInvalidTransition.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdateInvestment.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, investment)
}
