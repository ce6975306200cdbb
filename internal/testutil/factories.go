package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
)

// ProfileBuilder provides a fluent interface for creating test profiles.
//
// Example usage:
//
//	// Simple creation with defaults
//	profile := testutil.NewProfile().Build(t, db)
//
//	// Customized profile
//	profile := testutil.NewProfile().
//	    AsPitcher().
//	    WithName("Ada").
//	    Build(t, db)
type ProfileBuilder struct {
	ID     string
	UserID string
	Email  string
	Role   string
	Name   string
	Firm   string
}

// NewProfile creates a ProfileBuilder with sensible defaults.
func NewProfile() *ProfileBuilder {
	suffix := randomAlphanumeric(6)
	return &ProfileBuilder{
		ID:     MakeID(),
		UserID: "user-" + suffix,
		Email:  "test-" + suffix + "@example.com",
		Role:   model.RoleInvestor,
		Name:   "Test User " + suffix,
	}
}

// WithID sets a custom ID.
func (b *ProfileBuilder) WithID(id string) *ProfileBuilder {
	b.ID = id
	return b
}

// WithUserID sets a custom external identity string.
func (b *ProfileBuilder) WithUserID(userID string) *ProfileBuilder {
	b.UserID = userID
	return b
}

// WithEmail sets a custom email.
func (b *ProfileBuilder) WithEmail(email string) *ProfileBuilder {
	b.Email = email
	return b
}

// WithName sets a custom display name.
func (b *ProfileBuilder) WithName(name string) *ProfileBuilder {
	b.Name = name
	return b
}

// AsPitcher marks the profile as a pitcher.
func (b *ProfileBuilder) AsPitcher() *ProfileBuilder {
	b.Role = model.RolePitcher
	return b
}

// AsInvestor marks the profile as an investor.
func (b *ProfileBuilder) AsInvestor() *ProfileBuilder {
	b.Role = model.RoleInvestor
	return b
}

// Build creates the profile in the database and returns it.
func (b *ProfileBuilder) Build(t *testing.T, db *sql.DB) model.Profile {
	t.Helper()

	query := `
		INSERT INTO profile (id, user_id, email, role, name, firm)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.UserID, b.Email, b.Role, b.Name, b.Firm)
	if err != nil {
		t.Fatalf("Failed to create test profile: %v", err)
	}

	return model.Profile{
		ID:     b.ID,
		UserID: b.UserID,
		Email:  b.Email,
		Role:   b.Role,
		Name:   b.Name,
		Firm:   b.Firm,
	}
}

// PitchBuilder provides a fluent interface for creating test pitches.
type PitchBuilder struct {
	ID          string
	CreatorID   string
	Title       string
	CompanyName string
	CategoryID  string
	Status      string
}

// NewPitch creates a PitchBuilder with sensible defaults. The creator must
// already exist.
func NewPitch(creatorID string) *PitchBuilder {
	suffix := randomAlphanumeric(6)
	return &PitchBuilder{
		ID:          MakeID(),
		CreatorID:   creatorID,
		Title:       "Test Pitch " + suffix,
		CompanyName: "Test Company " + suffix,
		Status:      model.PitchStatusActive,
	}
}

// WithID sets a custom ID.
func (b *PitchBuilder) WithID(id string) *PitchBuilder {
	b.ID = id
	return b
}

// WithTitle sets a custom title.
func (b *PitchBuilder) WithTitle(title string) *PitchBuilder {
	b.Title = title
	return b
}

// WithStatus sets a custom status.
func (b *PitchBuilder) WithStatus(status string) *PitchBuilder {
	b.Status = status
	return b
}

// WithCategory sets the category.
func (b *PitchBuilder) WithCategory(categoryID string) *PitchBuilder {
	b.CategoryID = categoryID
	return b
}

// Build creates the pitch in the database and returns it.
func (b *PitchBuilder) Build(t *testing.T, db *sql.DB) model.Pitch {
	t.Helper()

	var categoryID interface{}
	if b.CategoryID != "" {
		categoryID = b.CategoryID
	}

	query := `
		INSERT INTO pitch (id, creator_id, title, company_name, company_description,
			category_id, status, funding_goal, valuation, equity_remaining)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.CreatorID, b.Title, b.CompanyName,
		"Test description", categoryID, b.Status, "1M", "10M", 100.0)
	if err != nil {
		t.Fatalf("Failed to create test pitch: %v", err)
	}

	return model.Pitch{
		ID:          b.ID,
		CreatorID:   b.CreatorID,
		Title:       b.Title,
		CompanyName: b.CompanyName,
		CategoryID:  b.CategoryID,
		Status:      b.Status,
		FundingGoal: "1M",
		Valuation:   "10M",
		Metrics:     model.PitchMetrics{EquityRemaining: 100},
	}
}

// RoundBuilder provides a fluent interface for creating test funding rounds.
type RoundBuilder struct {
	ID              string
	PitchID         string
	RoundNumber     int
	Status          string
	TargetAmount    float64
	MinimumTicket   float64
	MaximumTicket   float64
	CurrentAmount   float64
	AvailableEquity float64
}

// NewRound creates a RoundBuilder with sensible defaults: an open round
// targeting 100000 with tickets between 1000 and 50000. The pitch must
// already exist.
func NewRound(pitchID string) *RoundBuilder {
	return &RoundBuilder{
		ID:              MakeID(),
		PitchID:         pitchID,
		RoundNumber:     1,
		Status:          model.RoundStatusOpen,
		TargetAmount:    100000,
		MinimumTicket:   1000,
		MaximumTicket:   50000,
		AvailableEquity: 20,
	}
}

// WithID sets a custom ID.
func (b *RoundBuilder) WithID(id string) *RoundBuilder {
	b.ID = id
	return b
}

// WithTarget sets the target amount.
func (b *RoundBuilder) WithTarget(target float64) *RoundBuilder {
	b.TargetAmount = target
	return b
}

// WithTickets sets the minimum and maximum ticket sizes.
func (b *RoundBuilder) WithTickets(minTicket, maxTicket float64) *RoundBuilder {
	b.MinimumTicket = minTicket
	b.MaximumTicket = maxTicket
	return b
}

// WithCurrentAmount sets the already-subscribed amount.
func (b *RoundBuilder) WithCurrentAmount(amount float64) *RoundBuilder {
	b.CurrentAmount = amount
	return b
}

// WithRoundNumber sets the round number.
func (b *RoundBuilder) WithRoundNumber(number int) *RoundBuilder {
	b.RoundNumber = number
	return b
}

// Closed marks the round as closed.
func (b *RoundBuilder) Closed() *RoundBuilder {
	b.Status = model.RoundStatusClosed
	return b
}

// Build creates the round in the database and returns it.
func (b *RoundBuilder) Build(t *testing.T, db *sql.DB) model.FundingRound {
	t.Helper()

	query := `
		INSERT INTO funding_round (id, pitch_id, round_number, status, target_amount,
			minimum_ticket, maximum_ticket, current_amount, number_of_investors, available_equity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, ?)
	`

	_, err := db.Exec(query, b.ID, b.PitchID, b.RoundNumber, b.Status, b.TargetAmount,
		b.MinimumTicket, b.MaximumTicket, b.CurrentAmount, b.AvailableEquity)
	if err != nil {
		t.Fatalf("Failed to create test funding round: %v", err)
	}

	return model.FundingRound{
		ID:              b.ID,
		PitchID:         b.PitchID,
		RoundNumber:     b.RoundNumber,
		Status:          b.Status,
		TargetAmount:    b.TargetAmount,
		MinimumTicket:   b.MinimumTicket,
		MaximumTicket:   b.MaximumTicket,
		CurrentAmount:   b.CurrentAmount,
		AvailableEquity: b.AvailableEquity,
	}
}

// InvestmentBuilder provides a fluent interface for creating test investments.
type InvestmentBuilder struct {
	ID             string
	PitchID        string
	RoundID        string
	InvestorID     string
	InvestorUserID string
	Amount         float64
	InvestmentType string
	Equity         float64
	Status         string
	SessionID      string
}

// NewInvestment creates an InvestmentBuilder with sensible defaults: a
// pending non-equity investment of 5000. Pitch, round, and investor must
// already exist.
func NewInvestment(pitch model.Pitch, round model.FundingRound, investor model.Profile) *InvestmentBuilder {
	return &InvestmentBuilder{
		ID:             MakeID(),
		PitchID:        pitch.ID,
		RoundID:        round.ID,
		InvestorID:     investor.ID,
		InvestorUserID: investor.UserID,
		Amount:         5000,
		InvestmentType: model.InvestmentTypeSafe,
		Status:         model.InvestmentStatusPending,
	}
}

// WithAmount sets the amount.
func (b *InvestmentBuilder) WithAmount(amount float64) *InvestmentBuilder {
	b.Amount = amount
	return b
}

// WithEquity sets the type to equity with the given stake.
func (b *InvestmentBuilder) WithEquity(equity float64) *InvestmentBuilder {
	b.InvestmentType = model.InvestmentTypeEquity
	b.Equity = equity
	return b
}

// WithStatus sets a custom status.
func (b *InvestmentBuilder) WithStatus(status string) *InvestmentBuilder {
	b.Status = status
	return b
}

// WithSession sets the checkout session id.
func (b *InvestmentBuilder) WithSession(sessionID string) *InvestmentBuilder {
	b.SessionID = sessionID
	return b
}

// Build creates the investment in the database and returns it.
func (b *InvestmentBuilder) Build(t *testing.T, db *sql.DB) model.Investment {
	t.Helper()

	var sessionID interface{}
	if b.SessionID != "" {
		sessionID = b.SessionID
	}

	query := `
		INSERT INTO investment (id, pitch_id, round_id, investor_id, investor_user_id,
			amount, investment_type, equity, status, checkout_session_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC().Format("2006-01-02 15:04:05")
	_, err := db.Exec(query, b.ID, b.PitchID, b.RoundID, b.InvestorID, b.InvestorUserID,
		b.Amount, b.InvestmentType, b.Equity, b.Status, sessionID, now, now)
	if err != nil {
		t.Fatalf("Failed to create test investment: %v", err)
	}

	return model.Investment{
		ID:                b.ID,
		PitchID:           b.PitchID,
		RoundID:           b.RoundID,
		InvestorID:        b.InvestorID,
		InvestorUserID:    b.InvestorUserID,
		Amount:            b.Amount,
		InvestmentType:    b.InvestmentType,
		Equity:            b.Equity,
		Status:            b.Status,
		CheckoutSessionID: b.SessionID,
	}
}

// Convenience functions

// CreateCategory creates a category with the given type and name.
func CreateCategory(t *testing.T, db *sql.DB, categoryType, name string) model.Category {
	t.Helper()

	category := model.Category{
		ID:   MakeID(),
		Type: categoryType,
		Name: name,
	}

	_, err := db.Exec(`INSERT INTO category (id, type, name) VALUES (?, ?, ?)`,
		category.ID, category.Type, category.Name)
	if err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}

	return category
}

// CreateActivePitchWithRound creates a pitcher profile, an active pitch, and
// an open round in one call. Returns all three.
func CreateActivePitchWithRound(t *testing.T, db *sql.DB) (model.Profile, model.Pitch, model.FundingRound) {
	t.Helper()

	pitcher := NewProfile().AsPitcher().Build(t, db)
	pitch := NewPitch(pitcher.ID).Build(t, db)
	round := NewRound(pitch.ID).Build(t, db)

	return pitcher, pitch, round
}
