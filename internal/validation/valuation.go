package validation

import (
	"time"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/request"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/model"
)

func ValidateCreateValuation(req request.CreateValuationRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.PropertyID); err != nil {
		errors["propertyId"] = "valid property ID is required"
	}
	if req.EstimatedValue <= 0 {
		errors["estimatedValue"] = "estimatedValue must be positive"
	}
	if _, err := time.Parse("2006-01-02", req.ValuationDate); err != nil {
		errors["valuationDate"] = "valuationDate must be YYYY-MM-DD"
	}

	valid := false
	for _, s := range model.ValuationSources {
		if s == req.Source {
			valid = true
			break
		}
	}
	if !valid {
		errors["source"] = "source is not a recognized valuation source"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
