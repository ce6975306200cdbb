package validation

import (
	"fmt"
	"strings"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/api/request"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
)

// ValidPitchStatus contains the allowed pitch status values.
var ValidPitchStatus = map[string]bool{
	model.PitchStatusDraft: true, model.PitchStatusPending: true,
	model.PitchStatusActive: true, model.PitchStatusRejected: true,
	model.PitchStatusArchived: true,
}

// ValidateCreatePitch validates a pitch creation request.
//
// Required fields:
//   - creatorId: Must be a valid UUID
//   - title: Must be non-empty
//   - companyName: Must be non-empty
//   - categoryId: Must be a valid UUID if provided
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreatePitch(req request.CreatePitchRequest) error {
	errors := make(map[string]string)

	creatorErr := ValidateUUID(req.CreatorID)
	if creatorErr != nil {
		return creatorErr
	}

	if strings.TrimSpace(req.Title) == "" {
		errors["title"] = "title is required"
	}

	if strings.TrimSpace(req.CompanyName) == "" {
		errors["companyName"] = "companyName is required"
	}

	if req.CategoryID != "" {
		if err := ValidateUUID(req.CategoryID); err != nil {
			errors["categoryId"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateReviewPitch validates a pitch review request.
//
// Required fields:
//   - status: Must be one of: draft, pending, active, rejected, archived
//   - reviewerId: Must be non-empty
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateReviewPitch(req request.ReviewPitchRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Status) == "" {
		errors["status"] = "status is required"
	} else if !ValidPitchStatus[req.Status] {
		errors["status"] = fmt.Sprintf("invalid status: %s", req.Status)
	}

	if strings.TrimSpace(req.ReviewerID) == "" {
		errors["reviewerId"] = "reviewerId is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateBatchReviewPitch validates a batch pitch review request.
// Applies the same status and reviewer checks as single review, plus
// requires at least one valid pitch UUID.
func ValidateBatchReviewPitch(req request.BatchReviewPitchRequest) error {
	if err := ValidateUUIDs(req.PitchIDs); err != nil {
		return err
	}

	return ValidateReviewPitch(request.ReviewPitchRequest{
		Status:     req.Status,
		ReviewerID: req.ReviewerID,
		Feedback:   req.Feedback,
	})
}

// ValidateOpenRound validates a round opening request.
//
// Constraints:
//   - targetAmount: Must be positive
//   - minimumTicket: Must be positive and not exceed maximumTicket
//   - maximumTicket: Must not exceed targetAmount
//   - availableEquity: Must be between 0 and 100
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateOpenRound(req request.OpenRoundRequest) error {
	errors := make(map[string]string)

	if req.TargetAmount <= 0.0 {
		errors["targetAmount"] = "targetAmount must be positive"
	}

	if req.MinimumTicket <= 0.0 {
		errors["minimumTicket"] = "minimumTicket must be positive"
	} else if req.MinimumTicket > req.MaximumTicket {
		errors["minimumTicket"] = "minimumTicket cannot exceed maximumTicket"
	}

	if req.MaximumTicket > req.TargetAmount {
		errors["maximumTicket"] = "maximumTicket cannot exceed targetAmount"
	}

	if req.AvailableEquity < 0.0 || req.AvailableEquity > 100.0 {
		errors["availableEquity"] = "availableEquity must be between 0 and 100"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
