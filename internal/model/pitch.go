package model

import "time"

// Pitch statuses.
const (
	PitchStatusDraft    = "draft"
	PitchStatusPending  = "pending"
	PitchStatusActive   = "active"
	PitchStatusRejected = "rejected"
	PitchStatusArchived = "archived"
)

// Pitch represents a fundraising campaign from the database
type Pitch struct {
	ID                 string       `json:"id"`
	CreatorID          string       `json:"creatorId"`
	Title              string       `json:"title"`
	CompanyName        string       `json:"companyName"`
	CompanyDescription string       `json:"companyDescription"`
	CategoryID         string       `json:"categoryId,omitempty"`
	Status             string       `json:"status"`
	FundingGoal        string       `json:"fundingGoal"`
	FundingRaised      float64      `json:"fundingRaised"`
	Valuation          string       `json:"valuation"`
	Metrics            PitchMetrics `json:"metrics"`
	CreatedAt          time.Time    `json:"createdAt,omitempty"`
	UpdatedAt          time.Time    `json:"updatedAt,omitempty"`
}

// PitchMetrics holds the aggregate investment figures recomputed on every
// change to the pitch's counted investment set. EquityRemaining assumes a
// fixed 100-unit pool.
type PitchMetrics struct {
	AverageInvestment        float64 `json:"averageInvestment"`
	LargestInvestment        float64 `json:"largestInvestment"`
	SmallestInvestment       float64 `json:"smallestInvestment"`
	TotalEquityAllocated     float64 `json:"totalEquityAllocated"`
	EquityRemaining          float64 `json:"equityRemaining"`
	AverageEquityPerInvestor float64 `json:"averageEquityPerInvestor"`
}

// PitchFilter for querying pitches
type PitchFilter struct {
	Status     string
	CategoryID string
	CreatorID  string
}

// PitchReviewNote represents one entry in a pitch's moderation history.
type PitchReviewNote struct {
	ID         string    `json:"id"`
	PitchID    string    `json:"pitchId"`
	ReviewerID string    `json:"reviewerId"`
	Status     string    `json:"status"`
	Feedback   string    `json:"feedback,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PitchDetail is the full pitch view returned by the detail endpoint.
// Investments are embedded via a read-time join; the standalone investment
// rows remain the single source of truth.
type PitchDetail struct {
	Pitch
	CurrentRound *FundingRound       `json:"currentRound,omitempty"`
	RoundHistory []FundingRound      `json:"roundHistory,omitempty"`
	Investments  []InvestmentSummary `json:"investments"`
	ReviewNotes  []PitchReviewNote   `json:"reviewNotes,omitempty"`
}

// BatchReviewResult reports the outcome of one item in a batch review.
type BatchReviewResult struct {
	PitchID string `json:"pitchId"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// BatchReviewSummary aggregates per-item batch review outcomes.
type BatchReviewSummary struct {
	Requested int                 `json:"requested"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
	Results   []BatchReviewResult `json:"results"`
}
