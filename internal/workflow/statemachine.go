// Package workflow defines the investment review pipeline as an explicit
// finite-state machine. Every mutation of an investment's status goes through
// Next, so callers cannot move a record along an edge that does not exist.
package workflow

import (
	"fmt"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/apperrors"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
)

// Action identifies a transition request against an investment.
type Action string

// Actions on an investment.
const (
	ActionPitcherApprove  Action = "pitcher_approve"
	ActionPitcherReject   Action = "pitcher_reject"
	ActionAdminApprove    Action = "admin_approve"
	ActionAdminReject     Action = "admin_reject"
	ActionStartCheckout   Action = "start_checkout"
	ActionExpireCheckout  Action = "expire_checkout"
	ActionCompletePayment Action = "complete_payment"
	ActionCancel          Action = "cancel"
)

// transitions is the full edge table: current status x action -> next status.
// A missing entry means the action is invalid in that status.
var transitions = map[string]map[Action]string{
	model.InvestmentStatusPending: {
		ActionPitcherApprove: model.InvestmentStatusAdminReview,
		ActionPitcherReject:  model.InvestmentStatusPitcherRejected,
		ActionCancel:         model.InvestmentStatusCancelled,
	},
	model.InvestmentStatusAdminReview: {
		ActionAdminApprove: model.InvestmentStatusPaymentPending,
		ActionAdminReject:  model.InvestmentStatusRejected,
		ActionCancel:       model.InvestmentStatusCancelled,
	},
	model.InvestmentStatusPaymentPending: {
		ActionStartCheckout: model.InvestmentStatusPaymentProcessing,
		ActionCancel:        model.InvestmentStatusCancelled,
	},
	model.InvestmentStatusPaymentProcessing: {
		ActionCompletePayment: model.InvestmentStatusCompleted,
		ActionExpireCheckout:  model.InvestmentStatusPaymentPending,
	},
}

// Next returns the status an investment moves to when the action is applied
// in the current status. Returns ErrInvalidTransition when the edge does not
// exist, including for terminal statuses.
func Next(current string, action Action) (string, error) {
	edges, ok := transitions[current]
	if !ok {
		return "", fmt.Errorf("%w: no actions from status %q", apperrors.ErrInvalidTransition, current)
	}

	next, ok := edges[action]
	if !ok {
		return "", fmt.Errorf("%w: action %q not valid in status %q", apperrors.ErrInvalidTransition, action, current)
	}

	return next, nil
}

// Terminal reports whether a status has no outgoing edges.
func Terminal(status string) bool {
	return len(transitions[status]) == 0
}
