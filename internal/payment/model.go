package payment

import "time"

// SessionRequest describes a checkout session to be created with the
// provider. AmountMinor is the charge amount in minor units (cents).
type SessionRequest struct {
	AmountMinor  int64             `json:"amount"`
	Currency     string            `json:"currency"`
	SuccessURL   string            `json:"success_url"`
	CancelURL    string            `json:"cancel_url"`
	CustomerRef  string            `json:"customer_ref,omitempty"`
	Metadata     map[string]string `json:"metadata"`
}

// Session is the provider's handle for a created checkout session.
// URL is where the investor completes payment.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Webhook event types delivered by the provider.
const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventCheckoutExpired   = "checkout.session.expired"
)

// WebhookEvent is a payment event delivered by the provider's webhook.
// PaymentReference carries the provider's charge identifier on completion.
type WebhookEvent struct {
	Type             string    `json:"type"`
	SessionID        string    `json:"session_id"`
	PaymentReference string    `json:"payment_reference,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

type sessionResponse struct {
	Session Session `json:"session"`
	Error   *string `json:"error"`
}
