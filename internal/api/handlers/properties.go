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

// PropertyHandler handles HTTP requests for property endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the propertyService.
type PropertyHandler struct {
	propertyService *service.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler with the provided service dependency.
func NewPropertyHandler(propertyService *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
	}
}

// Properties handles GET requests to list the account's properties.
// Retired properties are included when include_retired=true.
//
// Endpoint: GET /api/properties
// Response: 200 OK with array of Property
// Error: 500 Internal Server Error if retrieval fails
func (h *PropertyHandler) Properties(w http.ResponseWriter, r *http.Request) {
	includeRetired := r.URL.Query().Get("include_retired") == "true"

	properties, err := h.propertyService.GetProperties(auth.AccountIDFromContext(r.Context()), includeRetired)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveProperties.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, properties)
}

// GetProperty handles GET requests to retrieve a single property.
//
// Endpoint: GET /api/properties/{uuid}
// Response: 200 OK with Property
// Error: 404 Not Found if the property does not exist in the account
// Error: 500 Internal Server Error if retrieval fails
func (h *PropertyHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "uuid")

	property, err := h.propertyService.GetProperty(auth.AccountIDFromContext(r.Context()), propertyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPropertyNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPropertyNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveProperty.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, property)
}

// CreateProperty handles POST requests to create a new property.
//
// Endpoint: POST /api/properties
// Request Body: CreatePropertyRequest (address, city, state, zip, propertyType, ...)
// Response: 201 Created with Property
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreatePropertyRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateProperty(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	property, err := h.propertyService.CreateProperty(r.Context(), auth.AccountIDFromContext(r.Context()), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create property", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, property)
}

// UpdateProperty handles PUT requests to update an existing property.
//
// Endpoint: PUT /api/properties/{uuid}
// Request Body: UpdatePropertyRequest (all fields optional)
// Response: 200 OK with updated Property
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the property does not exist in the account
// Error: 500 Internal Server Error if update fails
func (h *PropertyHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdatePropertyRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateProperty(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	property, err := h.propertyService.UpdateProperty(r.Context(), auth.AccountIDFromContext(r.Context()), propertyID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrPropertyNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPropertyNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update property", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, property)
}

// RetireProperty handles POST requests to retire a property. Retiring is
// idempotent; retiring an already retired property succeeds.
//
// Endpoint: POST /api/properties/{uuid}/retire
// Response: 204 No Content on success
// Error: 404 Not Found if the property does not exist in the account
// Error: 500 Internal Server Error if the update fails
func (h *PropertyHandler) RetireProperty(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "uuid")

	err := h.propertyService.RetireProperty(r.Context(), auth.AccountIDFromContext(r.Context()), propertyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPropertyNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPropertyNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retire property", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
