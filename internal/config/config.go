package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Payment  PaymentConfig
	Mail     MailConfig
	Outbox   OutboxConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// PaymentConfig holds checkout-provider configuration.
// SecretKey authenticates session-creation calls; WebhookSecret is the shared
// secret the provider sends back in the webhook signature header.
type PaymentConfig struct {
	APIURL        string
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
}

// MailConfig holds the transactional mail API configuration.
type MailConfig struct {
	APIURL      string
	APIKey      string
	FromAddress string
	AdminEmail  string
}

// OutboxConfig holds outbox dispatcher tuning.
type OutboxConfig struct {
	Schedule    string // cron expression for the dispatch job
	BatchSize   int
	MaxAttempts int
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/pitch_marketplace.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Payment: PaymentConfig{
			APIURL:        getEnv("PAYMENT_API_URL", "https://api.checkout.example.com/v1"),
			SecretKey:     getEnv("PAYMENT_SECRET_KEY", ""),
			WebhookSecret: getEnv("PAYMENT_WEBHOOK_SECRET", ""),
			SuccessURL:    getEnv("PAYMENT_SUCCESS_URL", "http://localhost:3000/invest/success"),
			CancelURL:     getEnv("PAYMENT_CANCEL_URL", "http://localhost:3000/invest/cancelled"),
		},
		Mail: MailConfig{
			APIURL:      getEnv("MAIL_API_URL", "https://api.mail.example.com/v1/send"),
			APIKey:      getEnv("MAIL_API_KEY", ""),
			FromAddress: getEnv("MAIL_FROM", "no-reply@launchpitch.io"),
			AdminEmail:  getEnv("ADMIN_EMAIL", "admin@launchpitch.io"),
		},
		Outbox: OutboxConfig{
			Schedule:    getEnv("OUTBOX_SCHEDULE", "* * * * *"),
			BatchSize:   50,
			MaxAttempts: 5,
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
