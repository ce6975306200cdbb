package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client defines the interface for creating checkout sessions with the
// payment provider. This interface enables dependency injection and testing
// with mock implementations.
type Client interface {
	CreateSession(ctx context.Context, req SessionRequest) (Session, error)
}

// CheckoutClient provides methods for calling the payment provider's
// checkout API. It wraps an HTTP client and carries the account secret key.
type CheckoutClient struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
}

// NewCheckoutClient creates a new checkout client with default HTTP settings.
//
// Returns:
//   - *CheckoutClient: A new client instance ready for use
func NewCheckoutClient(baseURL, secretKey string) *CheckoutClient {
	return &CheckoutClient{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		secretKey:  secretKey,
	}
}

// CreateSession creates a checkout session keyed by the metadata the caller
// supplies (investment/pitch/investor IDs) so the webhook can be reconciled
// back to the investment.
func (c *CheckoutClient) CreateSession(ctx context.Context, sessionReq SessionRequest) (Session, error) {
	if sessionReq.AmountMinor <= 0 {
		return Session{}, fmt.Errorf("amount must be positive")
	}

	payload, err := json.Marshal(sessionReq)
	if err != nil {
		return Session{}, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/checkout/sessions", bytes.NewReader(payload))
	if err != nil {
		return Session{}, err
	}

	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Session{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Session{}, err
	}

	var response sessionResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return Session{}, err
	}

	if response.Error != nil {
		return Session{}, fmt.Errorf("checkout provider error: %s", *response.Error)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Session{}, fmt.Errorf("checkout provider returned status %d", resp.StatusCode)
	}

	if response.Session.ID == "" {
		return Session{}, fmt.Errorf("checkout provider returned no session")
	}

	return response.Session, nil
}

// ParseWebhook decodes a webhook delivery body into a WebhookEvent.
// Signature verification happens at the HTTP layer before parsing.
func ParseWebhook(body []byte) (WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return WebhookEvent{}, fmt.Errorf("failed to parse webhook payload: %w", err)
	}

	if event.Type == "" || event.SessionID == "" {
		return WebhookEvent{}, fmt.Errorf("webhook payload missing type or session_id")
	}

	return event, nil
}
