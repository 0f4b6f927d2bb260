package validation

import (
	"strings"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/request"
)

func ValidateRunSkipTrace(req request.RunSkipTraceRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Address) == "" {
		errors["address"] = "address is required"
	} else if len(req.Address) > 200 {
		errors["address"] = "address must be 200 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
