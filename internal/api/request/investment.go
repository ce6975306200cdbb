package request

type CreateInvestmentRequest struct {
	PitchID            string  `json:"pitchId"`
	InvestorUserID     string  `json:"investorUserId"`
	Amount             float64 `json:"amount"`
	InvestmentType     string  `json:"investmentType"`
	Equity             float64 `json:"equity"`
	RiskTolerance      string  `json:"riskTolerance"`
	FinancialsReviewed bool    `json:"financialsReviewed"`
	LegalReviewed      bool    `json:"legalReviewed"`
	MarketReviewed     bool    `json:"marketReviewed"`
	TeamReviewed       bool    `json:"teamReviewed"`
	AccreditedInvestor bool    `json:"accreditedInvestor"`
	TermsAccepted      bool    `json:"termsAccepted"`
}

type ReviewInvestmentRequest struct {
	Action       string `json:"action"`
	ReviewerID   string `json:"reviewerId"`
	ReviewerRole string `json:"reviewerRole"`
	Note         string `json:"note,omitempty"`
}

type CheckoutRequest struct {
	SuccessURL string `json:"successUrl,omitempty"`
	CancelURL  string `json:"cancelUrl,omitempty"`
}
