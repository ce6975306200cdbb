package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"os"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/api/response"
)

// TimeTokenTTL is how long a generated time token stays valid.
const TimeTokenTTL = 30 * time.Second

// fernetKey derives a fernet key from the shared API key so both sides can
// mint and verify time tokens without a second secret.
func fernetKey(apiKey string) *fernet.Key {
	sum := sha256.Sum256([]byte(apiKey))
	key := fernet.Key(sum)
	return &key
}

// GenerateTimeToken mints a short-lived fernet token bound to the API key.
// Internal callers send it in the X-Time-Token header alongside X-API-Key,
// which stops captured requests from being replayed after the TTL.
func GenerateTimeToken(apiKey string) string {
	token, err := fernet.EncryptAndSign([]byte(time.Now().UTC().Format(time.RFC3339)), fernetKey(apiKey))
	if err != nil {
		return ""
	}
	return string(token)
}

// APIKeyMiddleware guards internal routes. Requests must carry the
// configured API key in X-API-Key and a fresh time token in X-Time-Token.
// The expected key is read from the INTERNAL_API_KEY environment variable
// per request so tests and rotations take effect without a restart.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expectedKey := os.Getenv("INTERNAL_API_KEY")
		if expectedKey == "" {
			response.RespondError(w, http.StatusInternalServerError, "internal configuration error", "Authentication not loaded")
			return
		}

		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}

		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(expectedKey)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		timeToken := r.Header.Get("X-Time-Token")
		if timeToken == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing Time token")
			return
		}

		msg := fernet.VerifyAndDecrypt([]byte(timeToken), TimeTokenTTL, []*fernet.Key{fernetKey(expectedKey)})
		if msg == nil {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Time token is invalid or expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}
