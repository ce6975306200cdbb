package request

type CreatePitchRequest struct {
	CreatorID          string `json:"creatorId"`
	Title              string `json:"title"`
	CompanyName        string `json:"companyName"`
	CompanyDescription string `json:"companyDescription"`
	CategoryID         string `json:"categoryId"`
	FundingGoal        string `json:"fundingGoal"`
	Valuation          string `json:"valuation"`
}

type UpdatePitchRequest struct {
	Title              *string `json:"title,omitempty"`
	CompanyName        *string `json:"companyName,omitempty"`
	CompanyDescription *string `json:"companyDescription,omitempty"`
	CategoryID         *string `json:"categoryId,omitempty"`
	FundingGoal        *string `json:"fundingGoal,omitempty"`
	Valuation          *string `json:"valuation,omitempty"`
}

type ReviewPitchRequest struct {
	Status     string `json:"status"`
	ReviewerID string `json:"reviewerId"`
	Feedback   string `json:"feedback,omitempty"`
}

type BatchReviewPitchRequest struct {
	PitchIDs   []string `json:"pitchIds"`
	Status     string   `json:"status"`
	ReviewerID string   `json:"reviewerId"`
	Feedback   string   `json:"feedback,omitempty"`
}

type OpenRoundRequest struct {
	TargetAmount    float64 `json:"targetAmount"`
	MinimumTicket   float64 `json:"minimumTicket"`
	MaximumTicket   float64 `json:"maximumTicket"`
	AvailableEquity float64 `json:"availableEquity"`
}
