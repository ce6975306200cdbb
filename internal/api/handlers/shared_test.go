package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
)

// TestParseJSON tests the parseJSON helper function.
// This is an internal test (package handlers, not handlers_test) because
// parseJSON is unexported.
func TestParseJSON(t *testing.T) {
	type payload struct {
		Name  string  `json:"name"`
		Count int     `json:"count"`
		Score float64 `json:"score"`
	}

	t.Run("decodes valid JSON into the target type", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/test",
			strings.NewReader(`{"name": "test", "count": 3, "score": 1.5}`))

		result, err := parseJSON[payload](req)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if result.Name != "test" {
			t.Errorf("Expected name 'test', got '%s'", result.Name)
		}
		if result.Count != 3 {
			t.Errorf("Expected count 3, got %d", result.Count)
		}
		if result.Score != 1.5 {
			t.Errorf("Expected score 1.5, got %f", result.Score)
		}
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/test", strings.NewReader(`{not json`))

		if _, err := parseJSON[payload](req); err == nil {
			t.Error("Expected error for malformed JSON")
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/test",
			strings.NewReader(`{"name": "test", "unexpected": true}`))

		if _, err := parseJSON[payload](req); err == nil {
			t.Error("Expected error for unknown field")
		}
	})

	t.Run("rejects type mismatches", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/test",
			strings.NewReader(`{"count": "three"}`))

		if _, err := parseJSON[payload](req); err == nil {
			t.Error("Expected error for type mismatch")
		}
	})
}
