package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/request"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/response"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/apperrors"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/auth"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/model"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/service"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/validation"
)

// SkipTraceHandler handles HTTP requests for owner lookup endpoints.
type SkipTraceHandler struct {
	skipTraceService *service.SkipTraceService
}

// NewSkipTraceHandler creates a new SkipTraceHandler with the provided service dependency.
func NewSkipTraceHandler(skipTraceService *service.SkipTraceService) *SkipTraceHandler {
	return &SkipTraceHandler{
		skipTraceService: skipTraceService,
	}
}

// SkipTraceResponse pairs a stored lookup with its decrypted contact data.
// Contacts is nil for pending and failed lookups.
type SkipTraceResponse struct {
	Result   model.SkipTraceResult   `json:"result"`
	Contacts *model.SkipTracePayload `json:"contacts,omitempty"`
}

// SkipTraces handles GET requests to list the account's lookup history,
// newest first. Encrypted payloads are never included in listings.
//
// Endpoint: GET /api/skiptraces
// Response: 200 OK with array of SkipTraceResult
// Error: 500 Internal Server Error if retrieval fails
func (h *SkipTraceHandler) SkipTraces(w http.ResponseWriter, r *http.Request) {
	results, err := h.skipTraceService.GetSkipTraces(auth.AccountIDFromContext(r.Context()))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve skip traces", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, results)
}

// GetSkipTrace handles GET requests to retrieve one lookup with its
// decrypted contact data.
//
// Endpoint: GET /api/skiptraces/{uuid}
// Response: 200 OK with SkipTraceResponse
// Error: 404 Not Found if the result does not exist in the account
// Error: 500 Internal Server Error if retrieval or decryption fails
func (h *SkipTraceHandler) GetSkipTrace(w http.ResponseWriter, r *http.Request) {
	skipTraceID := chi.URLParam(r, "uuid")

	result, contacts, err := h.skipTraceService.GetSkipTrace(auth.AccountIDFromContext(r.Context()), skipTraceID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrSkipTraceNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSkipTraceNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrFailedToDecryptSkipTrace):
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToDecryptSkipTrace.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to retrieve skip trace", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, SkipTraceResponse{
		Result:   result,
		Contacts: contacts,
	})
}

// Run handles POST requests to perform an owner lookup for an address.
// Provider failures still return 201: the stored row's status records the
// failed attempt.
//
// Endpoint: POST /api/skiptraces/run
// Request Body: RunSkipTraceRequest (address; ownerName optional)
// Response: 201 Created with SkipTraceResult
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the lookup cannot be stored
func (h *SkipTraceHandler) Run(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.RunSkipTraceRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateRunSkipTrace(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.skipTraceService.Run(r.Context(), auth.AccountIDFromContext(r.Context()), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRunSkipTrace.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, result)
}
