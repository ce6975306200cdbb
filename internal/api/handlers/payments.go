package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/api/request"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/api/response"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/apperrors"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/payment"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/service"
)

// PaymentHandler handles HTTP requests for the payment bridge: checkout
// session creation and the provider webhook.
type PaymentHandler struct {
	paymentService *service.PaymentService
	webhookSecret  string
}

// NewPaymentHandler creates a new PaymentHandler with the provided service dependency.
func NewPaymentHandler(paymentService *service.PaymentService, webhookSecret string) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		webhookSecret:  webhookSecret,
	}
}

// CreateCheckout handles POST requests to start checkout for an investment
// in payment_pending.
//
// Endpoint: POST /api/investment/{uuid}/checkout
// Request Body: CheckoutRequest (successUrl, cancelUrl, both optional)
// Response: 201 Created with payment.Session (id and redirect url)
// Error: 400 Bad Request if request body is invalid
// Error: 404 Not Found if investment not found
// Error: 409 Conflict if the investment is not awaiting payment
// Error: 502 Bad Gateway if the checkout provider call fails
func (h *PaymentHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	investmentID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.CheckoutRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	session, err := h.paymentService.CreateCheckoutSession(r.Context(), investmentID, req.SuccessURL, req.CancelURL)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvestmentNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestmentNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrInvalidTransition):
			response.RespondError(w, http.StatusConflict, apperrors.ErrInvalidTransition.Error(), err.Error())
		case errors.Is(err, apperrors.ErrFailedToCreateSession):
			response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToCreateSession.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCreateSession.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, session)
}

// Webhook handles POST requests from the checkout provider. The body is
// verified against the shared webhook secret before any processing.
// Completion events are applied idempotently: a duplicate delivery is
// acknowledged with 200 and no effect.
//
// Endpoint: POST /api/payment/webhook
// Response: 200 OK on applied or duplicate events
// Error: 400 Bad Request if the payload cannot be parsed
// Error: 401 Unauthorized if the signature does not match
// Error: 404 Not Found if the session is unknown
// Error: 500 Internal Server Error if processing fails
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := payment.VerifySignature(body, r.Header.Get(payment.SignatureHeader), h.webhookSecret); err != nil {
		response.RespondError(w, http.StatusUnauthorized, "webhook verification failed", err.Error())
		return
	}

	event, err := payment.ParseWebhook(body)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid webhook payload", err.Error())
		return
	}

	if err := h.paymentService.HandleWebhook(r.Context(), event); err != nil {
		if errors.Is(err, apperrors.ErrSessionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSessionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToProcessWebhook.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
