package validation

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/request"
)

func ValidateCreateDeposit(req request.CreateDepositRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.PropertyID); err != nil {
		errors["propertyId"] = "valid property ID is required"
	}
	if strings.TrimSpace(req.TenantName) == "" {
		errors["tenantName"] = "tenantName is required"
	}
	if amount, err := decimal.NewFromString(req.Amount); err != nil {
		errors["amount"] = "amount must be a decimal string"
	} else if amount.IsNegative() || amount.IsZero() {
		errors["amount"] = "amount must be positive"
	}
	if _, err := time.Parse("2006-01-02", req.ReceivedAt); err != nil {
		errors["receivedAt"] = "receivedAt must be YYYY-MM-DD"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateDepositCharge(req request.CreateDepositChargeRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Description) == "" {
		errors["description"] = "description is required"
	}
	if amount, err := decimal.NewFromString(req.Amount); err != nil {
		errors["amount"] = "amount must be a decimal string"
	} else if amount.IsNegative() || amount.IsZero() {
		errors["amount"] = "amount must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
