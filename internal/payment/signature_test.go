package payment

import "testing"

// TestVerifySignature tests webhook signature verification.
//
// WHY: The webhook endpoint is public; the HMAC signature is the only
// authentication. Verification must reject tampered bodies, wrong secrets,
// and missing headers.
func TestVerifySignature(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"type":"checkout.session.completed","session_id":"cs_1"}`)

	t.Run("accepts a signature produced by Sign", func(t *testing.T) {
		if err := VerifySignature(body, Sign(body, secret), secret); err != nil {
			t.Errorf("Expected valid signature to verify, got %v", err)
		}
	})

	t.Run("rejects a tampered body", func(t *testing.T) {
		signature := Sign(body, secret)
		tampered := []byte(`{"type":"checkout.session.completed","session_id":"cs_2"}`)

		if err := VerifySignature(tampered, signature, secret); err == nil {
			t.Error("Expected tampered body to fail verification")
		}
	})

	t.Run("rejects a signature from the wrong secret", func(t *testing.T) {
		if err := VerifySignature(body, Sign(body, "other-secret"), secret); err == nil {
			t.Error("Expected wrong-secret signature to fail verification")
		}
	})

	t.Run("rejects an empty signature", func(t *testing.T) {
		if err := VerifySignature(body, "", secret); err == nil {
			t.Error("Expected empty signature to fail verification")
		}
	})
}

// TestParseWebhook tests webhook payload decoding.
func TestParseWebhook(t *testing.T) {
	t.Run("parses a complete event", func(t *testing.T) {
		event, err := ParseWebhook([]byte(`{
			"type": "checkout.session.completed",
			"session_id": "cs_123",
			"payment_reference": "py_456"
		}`))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if event.Type != EventCheckoutCompleted {
			t.Errorf("Expected completion event, got %s", event.Type)
		}
		if event.SessionID != "cs_123" {
			t.Errorf("Expected session cs_123, got %s", event.SessionID)
		}
		if event.PaymentReference != "py_456" {
			t.Errorf("Expected reference py_456, got %s", event.PaymentReference)
		}
	})

	t.Run("rejects payload without a session id", func(t *testing.T) {
		if _, err := ParseWebhook([]byte(`{"type": "checkout.session.completed"}`)); err == nil {
			t.Error("Expected error for missing session_id")
		}
	})

	t.Run("rejects payload without a type", func(t *testing.T) {
		if _, err := ParseWebhook([]byte(`{"session_id": "cs_123"}`)); err == nil {
			t.Error("Expected error for missing type")
		}
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		if _, err := ParseWebhook([]byte(`{not json`)); err == nil {
			t.Error("Expected error for malformed JSON")
		}
	})
}
