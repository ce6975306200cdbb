package model

import "time"

// Notification types.
const (
	NotificationInvestmentCreated  = "investment_created"
	NotificationInvestmentReviewed = "investment_reviewed"
	NotificationInvestmentComplete = "investment_completed"
	NotificationPitchReviewed      = "pitch_reviewed"
)

// Notification represents a per-user in-app message record created as a side
// effect of state transitions. It never mutates its source entity.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      string    `json:"link,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Category represents a flat taxonomy entry used for filter UI.
type Category struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`
}
