package validation

import (
	"fmt"
	"strings"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/request"
)

type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}

func ValidateCreateProperty(req request.CreatePropertyRequest) error {
	errors := make(map[string]string)

	// Required fields
	if strings.TrimSpace(req.Address) == "" {
		errors["address"] = "address is required"
	} else if len(req.Address) > 200 {
		errors["address"] = "address must be 200 characters or less"
	}
	if strings.TrimSpace(req.City) == "" {
		errors["city"] = "city is required"
	}
	if strings.TrimSpace(req.State) == "" {
		errors["state"] = "state is required"
	}

	// Optional but has constraints
	if req.Bedrooms < 0 {
		errors["bedrooms"] = "bedrooms cannot be negative"
	}
	if req.Bathrooms < 0 {
		errors["bathrooms"] = "bathrooms cannot be negative"
	}
	if req.SquareFeet < 0 {
		errors["squareFeet"] = "squareFeet cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateProperty(req request.UpdatePropertyRequest) error {
	errors := make(map[string]string)

	// Only validate provided fields
	if req.Address != nil {
		if strings.TrimSpace(*req.Address) == "" {
			errors["address"] = "address cannot be empty"
		} else if len(*req.Address) > 200 {
			errors["address"] = "address must be 200 characters or less"
		}
	}
	if req.Bedrooms != nil && *req.Bedrooms < 0 {
		errors["bedrooms"] = "bedrooms cannot be negative"
	}
	if req.Bathrooms != nil && *req.Bathrooms < 0 {
		errors["bathrooms"] = "bathrooms cannot be negative"
	}
	if req.SquareFeet != nil && *req.SquareFeet < 0 {
		errors["squareFeet"] = "squareFeet cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
