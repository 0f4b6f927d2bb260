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

// DepositHandler handles HTTP requests for security deposit endpoints.
type DepositHandler struct {
	depositService *service.DepositService
}

// NewDepositHandler creates a new DepositHandler with the provided service dependency.
func NewDepositHandler(depositService *service.DepositService) *DepositHandler {
	return &DepositHandler{
		depositService: depositService,
	}
}

// Deposits handles GET requests to list the account's deposits, newest first.
//
// Endpoint: GET /api/deposits
// Response: 200 OK with array of Deposit
// Error: 500 Internal Server Error if retrieval fails
func (h *DepositHandler) Deposits(w http.ResponseWriter, r *http.Request) {
	deposits, err := h.depositService.GetDeposits(auth.AccountIDFromContext(r.Context()))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve deposits", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, deposits)
}

// GetDeposit handles GET requests to retrieve a single deposit.
//
// Endpoint: GET /api/deposits/{uuid}
// Response: 200 OK with Deposit
// Error: 404 Not Found if the deposit does not exist in the account
// Error: 500 Internal Server Error if retrieval fails
func (h *DepositHandler) GetDeposit(w http.ResponseWriter, r *http.Request) {
	depositID := chi.URLParam(r, "uuid")

	deposit, err := h.depositService.GetDeposit(auth.AccountIDFromContext(r.Context()), depositID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDepositNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrDepositNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve deposit", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, deposit)
}

// CreateDeposit handles POST requests to record a security deposit received
// for a property. Amounts travel as decimal strings.
//
// Endpoint: POST /api/deposits
// Request Body: CreateDepositRequest (propertyId, tenantName, amount, receivedAt)
// Response: 201 Created with Deposit
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the property does not exist in the account
// Error: 500 Internal Server Error if creation fails
func (h *DepositHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateDepositRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateDeposit(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	deposit, err := h.depositService.CreateDeposit(r.Context(), auth.AccountIDFromContext(r.Context()), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrPropertyNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPropertyNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrNegativeAmount):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrNegativeAmount.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to create deposit", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, deposit)
}

// Charges handles GET requests to list the charges claimed against a deposit.
//
// Endpoint: GET /api/deposits/{uuid}/charges
// Response: 200 OK with array of DepositCharge
// Error: 404 Not Found if the deposit does not exist in the account
// Error: 500 Internal Server Error if retrieval fails
func (h *DepositHandler) Charges(w http.ResponseWriter, r *http.Request) {
	depositID := chi.URLParam(r, "uuid")

	charges, err := h.depositService.GetCharges(auth.AccountIDFromContext(r.Context()), depositID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDepositNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrDepositNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve deposit charges", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, charges)
}

// AddCharge handles POST requests to claim a deduction against a held
// deposit.
//
// Endpoint: POST /api/deposits/{uuid}/charges
// Request Body: CreateDepositChargeRequest (description, amount)
// Response: 201 Created with DepositCharge
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the deposit does not exist in the account
// Error: 409 Conflict if the deposit is already settled
// Error: 500 Internal Server Error if the write fails
func (h *DepositHandler) AddCharge(w http.ResponseWriter, r *http.Request) {
	depositID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.CreateDepositChargeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateDepositCharge(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	charge, err := h.depositService.AddCharge(r.Context(), auth.AccountIDFromContext(r.Context()), depositID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDepositNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrDepositNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrDepositAlreadySettled):
			response.RespondError(w, http.StatusConflict, apperrors.ErrDepositAlreadySettled.Error(), err.Error())
		case errors.Is(err, apperrors.ErrNegativeAmount):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrNegativeAmount.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to add deposit charge", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, charge)
}

// PreviewSettlement handles GET requests to compute the settlement split
// without closing the deposit.
//
// Endpoint: GET /api/deposits/{uuid}/settlement/preview
// Response: 200 OK with DepositSettlement
// Error: 404 Not Found if the deposit does not exist in the account
// Error: 500 Internal Server Error if the computation fails
func (h *DepositHandler) PreviewSettlement(w http.ResponseWriter, r *http.Request) {
	depositID := chi.URLParam(r, "uuid")

	settlement, err := h.depositService.PreviewSettlement(auth.AccountIDFromContext(r.Context()), depositID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDepositNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrDepositNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSettlement.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, settlement)
}

// Settle handles POST requests to close a deposit with its final settlement
// split. Settling twice is rejected.
//
// Endpoint: POST /api/deposits/{uuid}/settle
// Response: 200 OK with DepositSettlement
// Error: 404 Not Found if the deposit does not exist in the account
// Error: 409 Conflict if the deposit is already settled
// Error: 500 Internal Server Error if the settlement cannot be recorded
func (h *DepositHandler) Settle(w http.ResponseWriter, r *http.Request) {
	depositID := chi.URLParam(r, "uuid")

	settlement, err := h.depositService.Settle(r.Context(), auth.AccountIDFromContext(r.Context()), depositID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDepositNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrDepositNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrDepositAlreadySettled):
			response.RespondError(w, http.StatusConflict, apperrors.ErrDepositAlreadySettled.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to settle deposit", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, settlement)
}
