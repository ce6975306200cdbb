package validation

import (
	"strings"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/api/request"
)

// ValidateCreateCategory validates a category creation request.
func ValidateCreateCategory(req request.CreateCategoryRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	}

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
