package validation

import (
	"strings"
	"time"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/request"
)

func ValidateCreateEntry(req request.CreateEntryRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.PropertyID); err != nil {
		errors["propertyId"] = "valid property ID is required"
	}
	if _, err := time.Parse("2006-01-02", req.AcquisitionDate); err != nil {
		errors["acquisitionDate"] = "acquisitionDate must be YYYY-MM-DD"
	}
	if req.AcquisitionPrice < 0 {
		errors["acquisitionPrice"] = "acquisitionPrice cannot be negative"
	}
	if req.MonthlyRent < 0 {
		errors["monthlyRent"] = "monthlyRent cannot be negative"
	}
	if req.MonthlyExpenses < 0 {
		errors["monthlyExpenses"] = "monthlyExpenses cannot be negative"
	}
	if req.OwnershipPercentage != nil && (*req.OwnershipPercentage <= 0 || *req.OwnershipPercentage > 100) {
		errors["ownershipPercentage"] = "ownershipPercentage must be between 0 and 100"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateEntry(req request.UpdateEntryRequest) error {
	errors := make(map[string]string)

	if req.AcquisitionDate != nil {
		if _, err := time.Parse("2006-01-02", *req.AcquisitionDate); err != nil {
			errors["acquisitionDate"] = "acquisitionDate must be YYYY-MM-DD"
		}
	}
	if req.AcquisitionPrice != nil && *req.AcquisitionPrice < 0 {
		errors["acquisitionPrice"] = "acquisitionPrice cannot be negative"
	}
	if req.MonthlyRent != nil && *req.MonthlyRent < 0 {
		errors["monthlyRent"] = "monthlyRent cannot be negative"
	}
	if req.MonthlyExpenses != nil && *req.MonthlyExpenses < 0 {
		errors["monthlyExpenses"] = "monthlyExpenses cannot be negative"
	}
	if req.OwnershipPercentage != nil && (*req.OwnershipPercentage <= 0 || *req.OwnershipPercentage > 100) {
		errors["ownershipPercentage"] = "ownershipPercentage must be between 0 and 100"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateMonthlyRecord checks the month format and that no expense bucket is
// negative. Rent of zero is fine (vacancy months are real data).
func ValidateMonthlyRecord(req request.UpsertMonthlyRecordRequest) error {
	errors := make(map[string]string)

	month := strings.TrimSpace(req.Month)
	if _, err := time.Parse("2006-01", month); err != nil {
		if _, err := time.Parse("2006-01-02", month); err != nil {
			errors["month"] = "month must be YYYY-MM or YYYY-MM-DD"
		}
	}
	if req.RentCollected < 0 {
		errors["rentCollected"] = "rentCollected cannot be negative"
	}
	for field, v := range map[string]float64{
		"maintenance": req.Maintenance,
		"taxes":       req.Taxes,
		"insurance":   req.Insurance,
		"utilities":   req.Utilities,
		"management":  req.Management,
		"hoa":         req.HOA,
		"other":       req.Other,
	} {
		if v < 0 {
			errors[field] = field + " cannot be negative"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateCreateMortgage(req request.CreateMortgageRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Lender) == "" {
		errors["lender"] = "lender is required"
	}
	if req.OriginalBalance < 0 {
		errors["originalBalance"] = "originalBalance cannot be negative"
	}
	if req.CurrentBalance < 0 {
		errors["currentBalance"] = "currentBalance cannot be negative"
	}
	if req.CurrentBalance > req.OriginalBalance {
		errors["currentBalance"] = "currentBalance cannot exceed originalBalance"
	}
	if req.InterestRate < 0 || req.InterestRate > 1 {
		errors["interestRate"] = "interestRate must be an annual fraction between 0 and 1"
	}
	if req.MonthlyPayment < 0 {
		errors["monthlyPayment"] = "monthlyPayment cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
