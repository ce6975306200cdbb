package testutil

import (
	"context"
	"sync"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/email"
)

// MockMailer is a mock implementation of email.Mailer for testing. It
// records delivered messages instead of calling a mail provider. Safe for
// concurrent use since the outbox dispatcher delivers from multiple
// goroutines.
type MockMailer struct {
	mu sync.Mutex
	// Sent records every message delivered
	Sent []email.Message
	// MockError is the error to return from Send
	MockError error
}

// NewMockMailer creates a new mock mailer that accepts all messages.
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

// Send records the message and returns the configured error.
func (m *MockMailer) Send(_ context.Context, msg email.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.MockError != nil {
		return m.MockError
	}
	m.Sent = append(m.Sent, msg)
	return nil
}

// SentCount returns how many messages were delivered.
func (m *MockMailer) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

// WithError configures the mock to fail deliveries with the specified error.
func (m *MockMailer) WithError(err error) *MockMailer {
	m.MockError = err
	return m
}
