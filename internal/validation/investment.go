package validation

import (
	"fmt"
	"strings"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/api/request"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
)

// ValidInvestmentType contains the allowed investment type values.
var ValidInvestmentType = map[string]bool{
	model.InvestmentTypeEquity: true, model.InvestmentTypeConvertible: true,
	model.InvestmentTypeSafe: true, model.InvestmentTypeDebt: true,
}

// ValidReviewAction contains the allowed review action values.
var ValidReviewAction = map[string]bool{
	"pitcher_approve": true, "pitcher_reject": true,
	"admin_approve": true, "admin_reject": true,
	"cancel": true,
}

// ValidateCreateInvestment validates an investment creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - pitchId: Must be a valid UUID
//   - investorUserId: Must be non-empty (opaque external identity)
//   - amount: Must be positive
//   - investmentType: Must be one of: equity, convertible, safe, debt
//   - equity: Must be positive for equity type, zero otherwise
//   - termsAccepted: Must be true
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateInvestment(req request.CreateInvestmentRequest) error {
	errors := make(map[string]string)

	pitchErr := ValidateUUID(req.PitchID)
	if pitchErr != nil {
		return pitchErr
	}

	if strings.TrimSpace(req.InvestorUserID) == "" {
		errors["investorUserId"] = "investorUserId is required"
	}

	if req.Amount <= 0.0 {
		errors["amount"] = "amount must be positive"
	}

	if strings.TrimSpace(req.InvestmentType) == "" {
		errors["investmentType"] = "investmentType is required"
	} else if !ValidInvestmentType[req.InvestmentType] {
		errors["investmentType"] = fmt.Sprintf("invalid type: %s", req.InvestmentType)
	}

	if req.InvestmentType == model.InvestmentTypeEquity {
		if req.Equity <= 0.0 {
			errors["equity"] = "equity must be positive for equity investments"
		}
	} else if req.Equity != 0.0 {
		errors["equity"] = "equity is only allowed for equity investments"
	}

	if !req.TermsAccepted {
		errors["termsAccepted"] = "terms must be accepted"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateReviewInvestment validates an investment review request.
//
// Required fields:
//   - action: Must be one of: pitcher_approve, pitcher_reject, admin_approve,
//     admin_reject, cancel
//   - reviewerId: Must be non-empty
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateReviewInvestment(req request.ReviewInvestmentRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Action) == "" {
		errors["action"] = "action is required"
	} else if !ValidReviewAction[req.Action] {
		errors["action"] = fmt.Sprintf("invalid action: %s", req.Action)
	}

	if strings.TrimSpace(req.ReviewerID) == "" {
		errors["reviewerId"] = "reviewerId is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
