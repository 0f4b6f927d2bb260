package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/request"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/response"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/apperrors"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/auth"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/service"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/validation"
)

// WorkOrderHandler handles HTTP requests for maintenance work order endpoints.
type WorkOrderHandler struct {
	workOrderService *service.WorkOrderService
}

// NewWorkOrderHandler creates a new WorkOrderHandler with the provided service dependency.
func NewWorkOrderHandler(workOrderService *service.WorkOrderService) *WorkOrderHandler {
	return &WorkOrderHandler{
		workOrderService: workOrderService,
	}
}

// WorkOrders handles GET requests to list the account's work orders,
// optionally narrowed by property or status.
//
// Endpoint: GET /api/workorders?property_id={uuid}&status=open
// Response: 200 OK with array of WorkOrder
// Error: 400 Bad Request if the status filter is not a recognized status
// Error: 500 Internal Server Error if retrieval fails
func (h *WorkOrderHandler) WorkOrders(w http.ResponseWriter, r *http.Request) {
	propertyID := r.URL.Query().Get("property_id")
	status := r.URL.Query().Get("status")

	orders, err := h.workOrderService.GetWorkOrders(auth.AccountIDFromContext(r.Context()), propertyID, status)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidStatus) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidStatus.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve work orders", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, orders)
}

// GetWorkOrder handles GET requests to retrieve a single work order.
//
// Endpoint: GET /api/workorders/{uuid}
// Response: 200 OK with WorkOrder
// Error: 404 Not Found if the work order does not exist in the account
// Error: 500 Internal Server Error if retrieval fails
func (h *WorkOrderHandler) GetWorkOrder(w http.ResponseWriter, r *http.Request) {
	workOrderID := chi.URLParam(r, "uuid")

	order, err := h.workOrderService.GetWorkOrder(auth.AccountIDFromContext(r.Context()), workOrderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrWorkOrderNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrWorkOrderNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve work order", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, order)
}

// CreateWorkOrder handles POST requests to open a work order against a
// property. Assigning a vendor at creation moves the order straight to
// assigned.
//
// Endpoint: POST /api/workorders
// Request Body: CreateWorkOrderRequest (propertyId, title, priority; vendorId optional)
// Response: 201 Created with WorkOrder
// Error: 400 Bad Request if validation fails or the priority is not recognized
// Error: 404 Not Found if the property or vendor does not exist in the account
// Error: 500 Internal Server Error if creation fails
func (h *WorkOrderHandler) CreateWorkOrder(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateWorkOrderRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateWorkOrder(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	order, err := h.workOrderService.CreateWorkOrder(r.Context(), auth.AccountIDFromContext(r.Context()), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrPropertyNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPropertyNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrVendorNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrVendorNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrInvalidPriority):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidPriority.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to create work order", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, order)
}

// UpdateWorkOrder handles PUT requests to update an existing work order.
//
// Endpoint: PUT /api/workorders/{uuid}
// Request Body: UpdateWorkOrderRequest (all fields optional)
// Response: 200 OK with updated WorkOrder
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the work order or vendor does not exist in the account
// Error: 500 Internal Server Error if update fails
func (h *WorkOrderHandler) UpdateWorkOrder(w http.ResponseWriter, r *http.Request) {
	workOrderID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateWorkOrderRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateWorkOrder(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	order, err := h.workOrderService.UpdateWorkOrder(r.Context(), auth.AccountIDFromContext(r.Context()), workOrderID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrWorkOrderNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrWorkOrderNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrVendorNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrVendorNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrInvalidPriority):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidPriority.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to update work order", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, order)
}

// UpdateStatus handles PATCH requests to move a work order through its
// lifecycle. Completed and cancelled orders cannot move again.
//
// Endpoint: PATCH /api/workorders/{uuid}/status
// Request Body: UpdateWorkOrderStatusRequest (status; actualCost optional)
// Response: 200 OK with updated WorkOrder
// Error: 400 Bad Request if the status is not recognized
// Error: 404 Not Found if the work order does not exist in the account
// Error: 409 Conflict if the order is already in a terminal status
// Error: 500 Internal Server Error if update fails
func (h *WorkOrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	workOrderID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateWorkOrderStatusRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateWorkOrderStatus(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	order, err := h.workOrderService.UpdateStatus(r.Context(), auth.AccountIDFromContext(r.Context()), workOrderID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrWorkOrderNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrWorkOrderNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrInvalidStageTransition):
			response.RespondError(w, http.StatusConflict, "work order is already closed", err.Error())
		case errors.Is(err, apperrors.ErrInvalidStatus):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidStatus.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to update work order status", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, order)
}

// DeleteWorkOrder handles DELETE requests to remove a work order.
//
// Endpoint: DELETE /api/workorders/{uuid}
// Response: 204 No Content on success
// Error: 404 Not Found if the work order does not exist in the account
// Error: 500 Internal Server Error if deletion fails
func (h *WorkOrderHandler) DeleteWorkOrder(w http.ResponseWriter, r *http.Request) {
	workOrderID := chi.URLParam(r, "uuid")

	err := h.workOrderService.DeleteWorkOrder(r.Context(), auth.AccountIDFromContext(r.Context()), workOrderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrWorkOrderNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrWorkOrderNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete work order", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
