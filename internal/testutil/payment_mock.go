package testutil

import (
	"context"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/payment"
)

// MockPaymentClient is a mock implementation of payment.Client for testing.
// It returns a predefined session instead of calling the checkout provider.
type MockPaymentClient struct {
	// MockSession is the session to return from CreateSession
	MockSession payment.Session
	// MockError is the error to return from CreateSession
	MockError error
	// Requests records every session request received
	Requests []payment.SessionRequest
}

// NewMockPaymentClient creates a new mock payment client returning a fixed
// test session.
func NewMockPaymentClient() *MockPaymentClient {
	return &MockPaymentClient{
		MockSession: payment.Session{
			ID:  "cs_test_" + randomAlphanumeric(12),
			URL: "https://checkout.test.local/session",
		},
	}
}

// CreateSession records the request and returns the configured session or error.
func (m *MockPaymentClient) CreateSession(_ context.Context, req payment.SessionRequest) (payment.Session, error) {
	m.Requests = append(m.Requests, req)
	if m.MockError != nil {
		return payment.Session{}, m.MockError
	}
	return m.MockSession, nil
}

// WithError configures the mock to return the specified error.
func (m *MockPaymentClient) WithError(err error) *MockPaymentClient {
	m.MockError = err
	return m
}
