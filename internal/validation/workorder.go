package validation

import (
	"strings"
	"time"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/request"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/model"
)

func ValidateCreateWorkOrder(req request.CreateWorkOrderRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.PropertyID); err != nil {
		errors["propertyId"] = "valid property ID is required"
	}
	if req.VendorID != nil {
		if err := ValidateUUID(*req.VendorID); err != nil {
			errors["vendorId"] = "vendorId must be a valid UUID"
		}
	}
	if strings.TrimSpace(req.Title) == "" {
		errors["title"] = "title is required"
	} else if len(req.Title) > 200 {
		errors["title"] = "title must be 200 characters or less"
	}
	if !isWorkOrderPriority(req.Priority) {
		errors["priority"] = "priority must be one of low, medium, high, urgent"
	}
	if req.EstimatedCost != nil && *req.EstimatedCost < 0 {
		errors["estimatedCost"] = "estimatedCost cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateWorkOrder(req request.UpdateWorkOrderRequest) error {
	errors := make(map[string]string)

	if req.VendorID != nil && *req.VendorID != "" {
		if err := ValidateUUID(*req.VendorID); err != nil {
			errors["vendorId"] = "vendorId must be a valid UUID"
		}
	}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			errors["title"] = "title cannot be empty"
		} else if len(*req.Title) > 200 {
			errors["title"] = "title must be 200 characters or less"
		}
	}
	if req.Priority != nil && !isWorkOrderPriority(*req.Priority) {
		errors["priority"] = "priority must be one of low, medium, high, urgent"
	}
	if req.EstimatedCost != nil && *req.EstimatedCost < 0 {
		errors["estimatedCost"] = "estimatedCost cannot be negative"
	}
	if req.ActualCost != nil && *req.ActualCost < 0 {
		errors["actualCost"] = "actualCost cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateWorkOrderStatus(req request.UpdateWorkOrderStatusRequest) error {
	errors := make(map[string]string)

	valid := false
	for _, s := range model.WorkOrderStatuses {
		if s == req.Status {
			valid = true
			break
		}
	}
	if !valid {
		errors["status"] = "status is not a recognized work order status"
	}
	if req.ActualCost != nil && *req.ActualCost < 0 {
		errors["actualCost"] = "actualCost cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateCreateTurnover(req request.CreateTurnoverRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.PropertyID); err != nil {
		errors["propertyId"] = "valid property ID is required"
	}
	if _, err := time.Parse("2006-01-02", req.NoticeDate); err != nil {
		errors["noticeDate"] = "noticeDate must be YYYY-MM-DD"
	}
	if req.PreviousRent != nil && *req.PreviousRent < 0 {
		errors["previousRent"] = "previousRent cannot be negative"
	}
	if req.MakeReadyBudget != nil && *req.MakeReadyBudget < 0 {
		errors["makeReadyBudget"] = "makeReadyBudget cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateAdvanceTurnover(req request.AdvanceTurnoverRequest) error {
	errors := make(map[string]string)

	if req.Date != nil {
		if _, err := time.Parse("2006-01-02", *req.Date); err != nil {
			errors["date"] = "date must be YYYY-MM-DD"
		}
	}
	if req.NewRent != nil && *req.NewRent < 0 {
		errors["newRent"] = "newRent cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func isWorkOrderPriority(priority string) bool {
	for _, p := range model.WorkOrderPriorities {
		if p == priority {
			return true
		}
	}
	return false
}
