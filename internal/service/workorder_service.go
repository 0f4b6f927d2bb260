package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/request"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/apperrors"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/model"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/repository"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/validation"
)

// WorkOrderService handles maintenance work order business logic operations.
type WorkOrderService struct {
	workOrderRepo *repository.WorkOrderRepository
	propertyRepo  *repository.PropertyRepository
	vendorRepo    *repository.VendorRepository
}

// NewWorkOrderService creates a new WorkOrderService with the provided repository dependencies.
func NewWorkOrderService(
	workOrderRepo *repository.WorkOrderRepository,
	propertyRepo *repository.PropertyRepository,
	vendorRepo *repository.VendorRepository,
) *WorkOrderService {
	return &WorkOrderService{
		workOrderRepo: workOrderRepo,
		propertyRepo:  propertyRepo,
		vendorRepo:    vendorRepo,
	}
}

// GetWorkOrders retrieves a user's work orders, optionally narrowed by
// property or status.
func (s *WorkOrderService) GetWorkOrders(userID, propertyID, status string) ([]model.WorkOrder, error) {
	if status != "" && !slices.Contains(model.WorkOrderStatuses, status) {
		return nil, apperrors.ErrInvalidStatus
	}
	return s.workOrderRepo.GetWorkOrders(model.WorkOrderFilter{
		UserID:     userID,
		PropertyID: propertyID,
		Status:     status,
	})
}

// GetWorkOrder retrieves a single work order by its ID. Orders outside the
// user's account are reported as not found.
func (s *WorkOrderService) GetWorkOrder(userID, workOrderID string) (model.WorkOrder, error) {
	order, err := s.workOrderRepo.GetWorkOrderOnID(workOrderID)
	if err != nil {
		return model.WorkOrder{}, err
	}
	if order.UserID != userID {
		return model.WorkOrder{}, apperrors.ErrWorkOrderNotFound
	}
	return order, nil
}

// CreateWorkOrder opens a new work order against a property. Assigning a
// vendor at creation moves the order straight to assigned.
func (s *WorkOrderService) CreateWorkOrder(ctx context.Context, userID string, req request.CreateWorkOrderRequest) (*model.WorkOrder, error) {
	property, err := s.propertyRepo.GetPropertyOnID(req.PropertyID)
	if err != nil {
		return nil, err
	}
	if property.UserID != userID {
		return nil, apperrors.ErrPropertyNotFound
	}

	priority := req.Priority
	if priority == "" {
		priority = model.WorkOrderPriorityMedium
	}
	if !slices.Contains(model.WorkOrderPriorities, priority) {
		return nil, apperrors.ErrInvalidPriority
	}

	order := model.WorkOrder{
		UserID:        userID,
		PropertyID:    req.PropertyID,
		Title:         validation.SanitizeText(req.Title),
		Description:   validation.SanitizeTextPtr(req.Description),
		Status:        model.WorkOrderStatusOpen,
		Priority:      priority,
		EstimatedCost: req.EstimatedCost,
	}

	if req.VendorID != nil {
		if err := s.checkVendor(userID, *req.VendorID); err != nil {
			return nil, err
		}
		order.VendorID = req.VendorID
		order.Status = model.WorkOrderStatusAssigned
	}

	created, err := s.workOrderRepo.InsertWorkOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to create work order: %w", err)
	}

	return &created, nil
}

// UpdateWorkOrder updates an existing work order with the provided fields.
// Only provided fields in the request are updated; omitted fields remain unchanged.
// Assigning a vendor to an open order moves it to assigned.
func (s *WorkOrderService) UpdateWorkOrder(ctx context.Context, userID, id string, req request.UpdateWorkOrderRequest) (*model.WorkOrder, error) {
	order, err := s.GetWorkOrder(userID, id)
	if err != nil {
		return nil, err
	}
	if req.VendorID != nil {
		if err := s.checkVendor(userID, *req.VendorID); err != nil {
			return nil, err
		}
		order.VendorID = req.VendorID
		if order.Status == model.WorkOrderStatusOpen {
			order.Status = model.WorkOrderStatusAssigned
		}
	}
	if req.Title != nil {
		order.Title = validation.SanitizeText(*req.Title)
	}
	if req.Description != nil {
		order.Description = validation.SanitizeTextPtr(req.Description)
	}
	if req.Priority != nil {
		if !slices.Contains(model.WorkOrderPriorities, *req.Priority) {
			return nil, apperrors.ErrInvalidPriority
		}
		order.Priority = *req.Priority
	}
	if req.EstimatedCost != nil {
		order.EstimatedCost = req.EstimatedCost
	}
	if req.ActualCost != nil {
		order.ActualCost = req.ActualCost
	}

	if err := s.workOrderRepo.UpdateWorkOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update work order: %w", err)
	}

	return &order, nil
}

// UpdateStatus moves a work order through its lifecycle. Terminal orders
// (completed, cancelled) cannot move again. Completing an order stamps
// CompletedAt and accepts an actual cost in the same call.
func (s *WorkOrderService) UpdateStatus(ctx context.Context, userID, id string, req request.UpdateWorkOrderStatusRequest) (*model.WorkOrder, error) {
	if !slices.Contains(model.WorkOrderStatuses, req.Status) {
		return nil, apperrors.ErrInvalidStatus
	}

	order, err := s.GetWorkOrder(userID, id)
	if err != nil {
		return nil, err
	}

	if order.Status == model.WorkOrderStatusCompleted || order.Status == model.WorkOrderStatusCancelled {
		return nil, apperrors.ErrInvalidStageTransition
	}

	order.Status = req.Status
	if req.Status == model.WorkOrderStatusCompleted {
		now := time.Now().UTC()
		order.CompletedAt = &now
		if req.ActualCost != nil {
			order.ActualCost = req.ActualCost
		}
	}

	if err := s.workOrderRepo.UpdateWorkOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update work order status: %w", err)
	}

	return &order, nil
}

// DeleteWorkOrder removes a work order.
func (s *WorkOrderService) DeleteWorkOrder(ctx context.Context, userID, id string) error {
	if _, err := s.GetWorkOrder(userID, id); err != nil {
		return err
	}
	return s.workOrderRepo.DeleteWorkOrder(ctx, id)
}

// checkVendor verifies the vendor exists within the user's account.
func (s *WorkOrderService) checkVendor(userID, vendorID string) error {
	vendor, err := s.vendorRepo.GetVendorOnID(vendorID)
	if err != nil {
		return err
	}
	if vendor.UserID != userID {
		return apperrors.ErrVendorNotFound
	}
	return nil
}
