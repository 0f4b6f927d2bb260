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

// VendorHandler handles HTTP requests for vendor endpoints.
type VendorHandler struct {
	vendorService *service.VendorService
}

// NewVendorHandler creates a new VendorHandler with the provided service dependency.
func NewVendorHandler(vendorService *service.VendorService) *VendorHandler {
	return &VendorHandler{
		vendorService: vendorService,
	}
}

// Vendors handles GET requests to list the account's vendors, optionally
// filtered by trade.
//
// Endpoint: GET /api/vendors?trade=plumbing
// Response: 200 OK with array of Vendor
// Error: 500 Internal Server Error if retrieval fails
func (h *VendorHandler) Vendors(w http.ResponseWriter, r *http.Request) {
	trade := r.URL.Query().Get("trade")

	vendors, err := h.vendorService.GetVendors(auth.AccountIDFromContext(r.Context()), trade)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve vendors", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, vendors)
}

// GetVendor handles GET requests to retrieve a single vendor.
//
// Endpoint: GET /api/vendors/{uuid}
// Response: 200 OK with Vendor
// Error: 404 Not Found if the vendor does not exist in the account
// Error: 500 Internal Server Error if retrieval fails
func (h *VendorHandler) GetVendor(w http.ResponseWriter, r *http.Request) {
	vendorID := chi.URLParam(r, "uuid")

	vendor, err := h.vendorService.GetVendor(auth.AccountIDFromContext(r.Context()), vendorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrVendorNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrVendorNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve vendor", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, vendor)
}

// CreateVendor handles POST requests to create a new vendor.
//
// Endpoint: POST /api/vendors
// Request Body: CreateVendorRequest (name, trade; phone, email, notes optional)
// Response: 201 Created with Vendor
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *VendorHandler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateVendorRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateVendor(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	vendor, err := h.vendorService.CreateVendor(r.Context(), auth.AccountIDFromContext(r.Context()), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create vendor", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, vendor)
}

// UpdateVendor handles PUT requests to update an existing vendor, including
// its rolling rating.
//
// Endpoint: PUT /api/vendors/{uuid}
// Request Body: UpdateVendorRequest (all fields optional; rating 1-5)
// Response: 200 OK with updated Vendor
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the vendor does not exist in the account
// Error: 500 Internal Server Error if update fails
func (h *VendorHandler) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	vendorID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateVendorRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateVendor(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	vendor, err := h.vendorService.UpdateVendor(r.Context(), auth.AccountIDFromContext(r.Context()), vendorID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrVendorNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrVendorNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update vendor", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, vendor)
}

// DeleteVendor handles DELETE requests to remove a vendor.
//
// Endpoint: DELETE /api/vendors/{uuid}
// Response: 204 No Content on success
// Error: 404 Not Found if the vendor does not exist in the account
// Error: 500 Internal Server Error if deletion fails
func (h *VendorHandler) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	vendorID := chi.URLParam(r, "uuid")

	err := h.vendorService.DeleteVendor(r.Context(), auth.AccountIDFromContext(r.Context()), vendorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrVendorNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrVendorNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete vendor", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
