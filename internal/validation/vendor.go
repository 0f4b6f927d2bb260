package validation

import (
	"strings"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/request"
)

func ValidateCreateVendor(req request.CreateVendorRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}
	if strings.TrimSpace(req.Trade) == "" {
		errors["trade"] = "trade is required"
	}
	if req.Email != nil && *req.Email != "" && !emailPattern.MatchString(*req.Email) {
		errors["email"] = "email is not valid"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateVendor(req request.UpdateVendorRequest) error {
	errors := make(map[string]string)

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name cannot be empty"
	}
	if req.Trade != nil && strings.TrimSpace(*req.Trade) == "" {
		errors["trade"] = "trade cannot be empty"
	}
	if req.Email != nil && *req.Email != "" && !emailPattern.MatchString(*req.Email) {
		errors["email"] = "email is not valid"
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		errors["rating"] = "rating must be between 1 and 5"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
