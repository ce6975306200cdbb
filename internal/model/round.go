package model

import "time"

// Funding round statuses.
const (
	RoundStatusOpen   = "open"
	RoundStatusClosed = "closed"
)

// FundingRound represents a subscription window on a pitch with a target
// amount and per-investor ticket-size bounds. CurrentAmount equals the sum of
// amounts over the round's counted investments; NumberOfInvestors equals the
// count of distinct investors holding a counted investment.
type FundingRound struct {
	ID                string     `json:"id"`
	PitchID           string     `json:"pitchId"`
	RoundNumber       int        `json:"roundNumber"`
	Status            string     `json:"status"`
	TargetAmount      float64    `json:"targetAmount"`
	MinimumTicket     float64    `json:"minimumTicket"`
	MaximumTicket     float64    `json:"maximumTicket"`
	CurrentAmount     float64    `json:"currentAmount"`
	NumberOfInvestors int        `json:"numberOfInvestors"`
	AvailableEquity   float64    `json:"availableEquity"`
	OpenedAt          time.Time  `json:"openedAt,omitempty"`
	ClosedAt          *time.Time `json:"closedAt,omitempty"`
}
