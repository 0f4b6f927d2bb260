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

// ValuationHandler handles HTTP requests for property valuation endpoints.
type ValuationHandler struct {
	valuationService *service.ValuationService
}

// NewValuationHandler creates a new ValuationHandler with the provided service dependency.
func NewValuationHandler(valuationService *service.ValuationService) *ValuationHandler {
	return &ValuationHandler{
		valuationService: valuationService,
	}
}

// PropertyValuations handles GET requests to list a property's valuations,
// oldest first.
//
// Endpoint: GET /api/properties/{uuid}/valuations
// Response: 200 OK with array of Valuation
// Error: 404 Not Found if the property does not exist in the account
// Error: 500 Internal Server Error if retrieval fails
func (h *ValuationHandler) PropertyValuations(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "uuid")

	valuations, err := h.valuationService.GetValuations(auth.AccountIDFromContext(r.Context()), propertyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPropertyNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPropertyNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveValuations.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, valuations)
}

// CreateValuation handles POST requests to record a valuation for a property.
// The property in the URL wins over any propertyId in the body.
//
// Endpoint: POST /api/properties/{uuid}/valuations
// Request Body: CreateValuationRequest (estimatedValue, valuationDate, source)
// Response: 201 Created with Valuation
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the property does not exist in the account
// Error: 500 Internal Server Error if creation fails
func (h *ValuationHandler) CreateValuation(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateValuationRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	req.PropertyID = chi.URLParam(r, "uuid")

	if err := validation.ValidateCreateValuation(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	valuation, err := h.valuationService.CreateValuation(r.Context(), auth.AccountIDFromContext(r.Context()), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrPropertyNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPropertyNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create valuation", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, valuation)
}

// DeleteValuation handles DELETE requests to remove a valuation.
//
// Endpoint: DELETE /api/valuations/{uuid}
// Response: 204 No Content on success
// Error: 404 Not Found if the valuation does not exist in the account
// Error: 500 Internal Server Error if deletion fails
func (h *ValuationHandler) DeleteValuation(w http.ResponseWriter, r *http.Request) {
	valuationID := chi.URLParam(r, "uuid")

	err := h.valuationService.DeleteValuation(r.Context(), auth.AccountIDFromContext(r.Context()), valuationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValuationNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrValuationNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete valuation", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// RefreshEstimates handles POST requests to pull fresh automated estimates
// for every active property in the account. Partial failures are reported in
// the result rather than failing the whole run.
//
// Endpoint: POST /api/valuations/refresh
// Response: 200 OK with RefreshResult (refreshed, failed, errors)
// Error: 500 Internal Server Error if the refresh cannot run at all
func (h *ValuationHandler) RefreshEstimates(w http.ResponseWriter, r *http.Request) {
	result, err := h.valuationService.RefreshEstimates(r.Context(), auth.AccountIDFromContext(r.Context()))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefreshValuations.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
