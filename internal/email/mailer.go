package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Message is a single outbound email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	From    string `json:"from,omitempty"`
}

// Mailer defines the interface for delivering email through the mail
// provider. This interface enables dependency injection and testing with
// mock implementations.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// APIMailer provides methods for delivering mail through an HTTP mail API.
// It wraps an HTTP client and carries the provider credentials.
type APIMailer struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	fromAddress string
}

// NewAPIMailer creates a new mail client with default HTTP settings.
//
// Returns:
//   - *APIMailer: A new client instance ready for use
func NewAPIMailer(baseURL, apiKey, fromAddress string) *APIMailer {
	return &APIMailer{
		httpClient:  &http.Client{},
		baseURL:     baseURL,
		apiKey:      apiKey,
		fromAddress: fromAddress,
	}
}

// Send delivers a single message. The configured from address is applied
// when the message does not set one.
func (m *APIMailer) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("message has no recipient")
	}
	if msg.From == "" {
		msg.From = m.fromAddress
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", m.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mail provider returned status %d: %s", resp.StatusCode, string(data))
	}

	return nil
}
