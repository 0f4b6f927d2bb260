package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/request"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/response"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/apperrors"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/auth"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/service"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/validation"
)

// PortfolioHandler handles HTTP requests for portfolio entries, their monthly
// records, and their mortgages.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Entries handles GET requests to list the account's portfolio entries in
// acquisition order. Deactivated entries are included when
// include_inactive=true.
//
// Endpoint: GET /api/portfolio/entries
// Response: 200 OK with array of PortfolioEntry
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Entries(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	entries, err := h.portfolioService.GetEntries(auth.AccountIDFromContext(r.Context()), includeInactive)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveEntries.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, entries)
}

// GetEntry handles GET requests to retrieve a single portfolio entry.
//
// Endpoint: GET /api/portfolio/entries/{uuid}
// Response: 200 OK with PortfolioEntry
// Error: 404 Not Found if the entry does not exist in the account
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "uuid")

	entry, err := h.portfolioService.GetEntry(auth.AccountIDFromContext(r.Context()), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrEntryNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrEntryNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveEntries.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, entry)
}

// CreateEntry handles POST requests to add a property to the portfolio.
//
// Endpoint: POST /api/portfolio/entries
// Request Body: CreateEntryRequest (propertyId, acquisitionDate, acquisitionPrice, ...)
// Response: 201 Created with PortfolioEntry
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the property does not exist in the account
// Error: 409 Conflict if the property already has an active entry
// Error: 500 Internal Server Error if creation fails
func (h *PortfolioHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateEntryRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateEntry(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	entry, err := h.portfolioService.CreateEntry(r.Context(), auth.AccountIDFromContext(r.Context()), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrPropertyNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPropertyNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrDuplicateEntry):
			response.RespondError(w, http.StatusConflict, "property already has an active portfolio entry", err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to create portfolio entry", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, entry)
}

// UpdateEntry handles PUT requests to update an existing portfolio entry.
//
// Endpoint: PUT /api/portfolio/entries/{uuid}
// Request Body: UpdateEntryRequest (all fields optional)
// Response: 200 OK with updated PortfolioEntry
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the entry does not exist in the account
// Error: 500 Internal Server Error if update fails
func (h *PortfolioHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateEntryRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateEntry(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	entry, err := h.portfolioService.UpdateEntry(r.Context(), auth.AccountIDFromContext(r.Context()), entryID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrEntryNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrEntryNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update portfolio entry", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, entry)
}

// DeactivateEntry handles DELETE requests to deactivate an entry after a
// sale. Records and mortgages are kept for history.
//
// Endpoint: DELETE /api/portfolio/entries/{uuid}
// Response: 204 No Content on success
// Error: 404 Not Found if the entry does not exist in the account
// Error: 500 Internal Server Error if deactivation fails
func (h *PortfolioHandler) DeactivateEntry(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "uuid")

	err := h.portfolioService.DeactivateEntry(r.Context(), auth.AccountIDFromContext(r.Context()), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrEntryNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrEntryNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to deactivate portfolio entry", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// MonthlyRecords handles GET requests to list an entry's monthly records,
// oldest first.
//
// Endpoint: GET /api/portfolio/entries/{uuid}/records
// Response: 200 OK with array of MonthlyRecord
// Error: 404 Not Found if the entry does not exist in the account
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) MonthlyRecords(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "uuid")

	records, err := h.portfolioService.GetMonthlyRecords(auth.AccountIDFromContext(r.Context()), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrEntryNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrEntryNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveRecords.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, records)
}

// UpsertMonthlyRecord handles PUT requests to create or replace the record
// for one month of an entry. Re-submitting a month overwrites the previous
// figures.
//
// Endpoint: PUT /api/portfolio/entries/{uuid}/records
// Request Body: UpsertMonthlyRecordRequest (month, rentCollected, expense buckets)
// Response: 200 OK with MonthlyRecord
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the entry does not exist in the account
// Error: 500 Internal Server Error if the write fails
func (h *PortfolioHandler) UpsertMonthlyRecord(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpsertMonthlyRecordRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateMonthlyRecord(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	record, err := h.portfolioService.UpsertMonthlyRecord(r.Context(), auth.AccountIDFromContext(r.Context()), entryID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrEntryNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrEntryNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to save monthly record", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, record)
}

// DeleteMonthlyRecord handles DELETE requests to remove the record for one
// month of an entry. The month segment accepts YYYY-MM or YYYY-MM-DD.
//
// Endpoint: DELETE /api/portfolio/entries/{uuid}/records/{month}
// Response: 204 No Content on success
// Error: 400 Bad Request if the month segment is malformed
// Error: 404 Not Found if the entry or record does not exist in the account
// Error: 500 Internal Server Error if deletion fails
func (h *PortfolioHandler) DeleteMonthlyRecord(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "uuid")
	month := chi.URLParam(r, "month")

	if !validMonth(month) {
		response.RespondError(w, http.StatusBadRequest, "validation failed", "month must be YYYY-MM or YYYY-MM-DD")
		return
	}

	err := h.portfolioService.DeleteMonthlyRecord(r.Context(), auth.AccountIDFromContext(r.Context()), entryID, month)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrEntryNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrEntryNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrMonthlyRecordNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrMonthlyRecordNotFound.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to delete monthly record", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Mortgages handles GET requests to list an entry's mortgages, primary first.
//
// Endpoint: GET /api/portfolio/entries/{uuid}/mortgages
// Response: 200 OK with array of Mortgage
// Error: 404 Not Found if the entry does not exist in the account
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Mortgages(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "uuid")

	mortgages, err := h.portfolioService.GetMortgages(auth.AccountIDFromContext(r.Context()), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrEntryNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrEntryNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveMortgages.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, mortgages)
}

// CreateMortgage handles POST requests to add a mortgage to an entry. A new
// primary mortgage demotes the existing primary.
//
// Endpoint: POST /api/portfolio/entries/{uuid}/mortgages
// Request Body: CreateMortgageRequest (lender, balances, interestRate, monthlyPayment, isPrimary)
// Response: 201 Created with Mortgage
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the entry does not exist in the account
// Error: 500 Internal Server Error if creation fails
func (h *PortfolioHandler) CreateMortgage(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.CreateMortgageRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateMortgage(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	mortgage, err := h.portfolioService.CreateMortgage(r.Context(), auth.AccountIDFromContext(r.Context()), entryID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrEntryNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrEntryNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create mortgage", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, mortgage)
}

// UpdateMortgage handles PUT requests to update an existing mortgage.
// Promoting to primary demotes the current primary.
//
// Endpoint: PUT /api/mortgages/{uuid}
// Request Body: UpdateMortgageRequest (all fields optional)
// Response: 200 OK with updated Mortgage
// Error: 400 Bad Request if the body is invalid or the balance would exceed the original
// Error: 404 Not Found if the mortgage does not exist in the account
// Error: 500 Internal Server Error if update fails
func (h *PortfolioHandler) UpdateMortgage(w http.ResponseWriter, r *http.Request) {
	mortgageID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateMortgageRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	mortgage, err := h.portfolioService.UpdateMortgage(r.Context(), auth.AccountIDFromContext(r.Context()), mortgageID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrMortgageNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrMortgageNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrBalanceExceedsOriginal):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrBalanceExceedsOriginal.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to update mortgage", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, mortgage)
}

// DeleteMortgage handles DELETE requests to remove a mortgage.
//
// Endpoint: DELETE /api/mortgages/{uuid}
// Response: 204 No Content on success
// Error: 404 Not Found if the mortgage does not exist in the account
// Error: 500 Internal Server Error if deletion fails
func (h *PortfolioHandler) DeleteMortgage(w http.ResponseWriter, r *http.Request) {
	mortgageID := chi.URLParam(r, "uuid")

	err := h.portfolioService.DeleteMortgage(r.Context(), auth.AccountIDFromContext(r.Context()), mortgageID)
	if err != nil {
		if errors.Is(err, apperrors.ErrMortgageNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrMortgageNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete mortgage", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// validMonth reports whether s parses as YYYY-MM or YYYY-MM-DD.
func validMonth(s string) bool {
	if _, err := time.Parse("2006-01", s); err == nil {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
