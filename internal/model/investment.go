package model

import "time"

// Investment statuses. Pending means awaiting pitcher review; admin_review
// means the pitcher approved and the investment awaits admin sign-off.
const (
	InvestmentStatusPending           = "pending"
	InvestmentStatusAdminReview       = "admin_review"
	InvestmentStatusPaymentPending    = "payment_pending"
	InvestmentStatusPaymentProcessing = "payment_processing"
	InvestmentStatusCompleted         = "completed"
	InvestmentStatusPitcherRejected   = "pitcher_rejected"
	InvestmentStatusRejected          = "rejected"
	InvestmentStatusCancelled         = "cancelled"
)

// Investment types.
const (
	InvestmentTypeEquity      = "equity"
	InvestmentTypeConvertible = "convertible"
	InvestmentTypeSafe        = "safe"
	InvestmentTypeDebt        = "debt"
)

// Investment represents a single investor's funding request against one
// pitch's funding round. This row is the single source of truth for the
// investment; pitch views embed summaries of it at read time.
type Investment struct {
	ID                string        `json:"id"`
	PitchID           string        `json:"pitchId"`
	RoundID           string        `json:"roundId"`
	InvestorID        string        `json:"investorId"`
	InvestorUserID    string        `json:"investorUserId"`
	Amount            float64       `json:"amount"`
	InvestmentType    string        `json:"investmentType"`
	Equity            float64       `json:"equity"`
	Status            string        `json:"status"`
	RiskTolerance     string        `json:"riskTolerance,omitempty"`
	DueDiligence      DueDiligence  `json:"dueDiligence"`
	Compliance        Compliance    `json:"compliance"`
	CheckoutSessionID string        `json:"checkoutSessionId,omitempty"`
	PaymentReference  string        `json:"paymentReference,omitempty"`
	PaidAt            *time.Time    `json:"paidAt,omitempty"`
	CreatedAt         time.Time     `json:"createdAt,omitempty"`
	UpdatedAt         time.Time     `json:"updatedAt,omitempty"`
}

// DueDiligence tracks which review areas the investor has completed
// before committing.
type DueDiligence struct {
	FinancialsReviewed bool `json:"financialsReviewed"`
	LegalReviewed      bool `json:"legalReviewed"`
	MarketReviewed     bool `json:"marketReviewed"`
	TeamReviewed       bool `json:"teamReviewed"`
}

// Compliance tracks regulatory acknowledgements made on submission.
type Compliance struct {
	AccreditedInvestor bool `json:"accreditedInvestor"`
	TermsAccepted      bool `json:"termsAccepted"`
}

// InvestmentSummary is the embedded investment view returned inside a pitch,
// enriched with the investor's display name.
type InvestmentSummary struct {
	ID             string    `json:"id"`
	InvestorID     string    `json:"investorId"`
	InvestorName   string    `json:"investorName"`
	Amount         float64   `json:"amount"`
	InvestmentType string    `json:"investmentType"`
	Equity         float64   `json:"equity"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

// InvestmentReviewNote represents one entry in an investment's review history.
// Exactly one note is appended per transition that supplies review data.
type InvestmentReviewNote struct {
	ID           string    `json:"id"`
	InvestmentID string    `json:"investmentId"`
	ReviewerID   string    `json:"reviewerId"`
	ReviewerRole string    `json:"reviewerRole"`
	Action       string    `json:"action"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// InvestmentResponse represents an investment with enriched data for API
// responses. Includes pitch title and review history.
type InvestmentResponse struct {
	Investment
	PitchTitle  string                 `json:"pitchTitle"`
	ReviewNotes []InvestmentReviewNote `json:"reviewNotes,omitempty"`
}

// CountedStatus reports whether an investment in the given status counts
// toward round capacity and investor totals.
func CountedStatus(status string) bool {
	switch status {
	case InvestmentStatusPitcherRejected, InvestmentStatusRejected, InvestmentStatusCancelled:
		return false
	}
	return true
}
