package validation

import (
	"strings"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/request"
)

func ValidateCreateContact(req request.CreateContactRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 120 {
		errors["name"] = "name must be 120 characters or less"
	}
	if req.Email != nil && *req.Email != "" && !emailPattern.MatchString(*req.Email) {
		errors["email"] = "email is not valid"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateContact(req request.UpdateContactRequest) error {
	errors := make(map[string]string)

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			errors["name"] = "name cannot be empty"
		} else if len(*req.Name) > 120 {
			errors["name"] = "name must be 120 characters or less"
		}
	}
	if req.Email != nil && *req.Email != "" && !emailPattern.MatchString(*req.Email) {
		errors["email"] = "email is not valid"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
