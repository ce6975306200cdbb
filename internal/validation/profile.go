package validation

import (
	"fmt"
	"strings"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/api/request"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
)

// ValidProfileRole contains the allowed profile role values.
var ValidProfileRole = map[string]bool{
	model.RolePitcher: true, model.RoleInvestor: true,
}

// ValidateCreateProfile validates a profile creation request.
//
// Required fields:
//   - userId: Must be non-empty (opaque external identity)
//   - email: Must be non-empty and contain an @
//   - role: Must be one of: pitcher, investor
//   - name: Must be non-empty
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateProfile(req request.CreateProfileRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.UserID) == "" {
		errors["userId"] = "userId is required"
	}

	if strings.TrimSpace(req.Email) == "" {
		errors["email"] = "email is required"
	} else if !strings.Contains(req.Email, "@") {
		errors["email"] = fmt.Sprintf("invalid email: %s", req.Email)
	}

	if strings.TrimSpace(req.Role) == "" {
		errors["role"] = "role is required"
	} else if !ValidProfileRole[req.Role] {
		errors["role"] = fmt.Sprintf("invalid role: %s", req.Role)
	}

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateProfile validates a profile update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateProfile(req request.UpdateProfileRequest) error {
	errors := make(map[string]string)

	if req.Email != nil {
		if strings.TrimSpace(*req.Email) == "" {
			errors["email"] = "email is required"
		} else if !strings.Contains(*req.Email, "@") {
			errors["email"] = fmt.Sprintf("invalid email: %s", *req.Email)
		}
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			errors["name"] = "name is required"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
