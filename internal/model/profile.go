package model

import "time"

// Profile roles.
const (
	RolePitcher  = "pitcher"
	RoleInvestor = "investor"
)

// Profile represents a user's role-specific profile. UserID is the opaque
// identity string supplied by the external authentication provider; the
// service never issues or validates credentials itself.
type Profile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Firm      string    `json:"firm,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
