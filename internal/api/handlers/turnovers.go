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

// TurnoverHandler handles HTTP requests for tenant turnover endpoints.
type TurnoverHandler struct {
	turnoverService *service.TurnoverService
}

// NewTurnoverHandler creates a new TurnoverHandler with the provided service dependency.
func NewTurnoverHandler(turnoverService *service.TurnoverService) *TurnoverHandler {
	return &TurnoverHandler{
		turnoverService: turnoverService,
	}
}

// Turnovers handles GET requests to list the account's turnovers, optionally
// narrowed to one property.
//
// Endpoint: GET /api/turnovers?property_id={uuid}
// Response: 200 OK with array of Turnover
// Error: 500 Internal Server Error if retrieval fails
func (h *TurnoverHandler) Turnovers(w http.ResponseWriter, r *http.Request) {
	propertyID := r.URL.Query().Get("property_id")

	turnovers, err := h.turnoverService.GetTurnovers(auth.AccountIDFromContext(r.Context()), propertyID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve turnovers", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, turnovers)
}

// GetTurnover handles GET requests to retrieve a single turnover.
//
// Endpoint: GET /api/turnovers/{uuid}
// Response: 200 OK with Turnover
// Error: 404 Not Found if the turnover does not exist in the account
// Error: 500 Internal Server Error if retrieval fails
func (h *TurnoverHandler) GetTurnover(w http.ResponseWriter, r *http.Request) {
	turnoverID := chi.URLParam(r, "uuid")

	turnover, err := h.turnoverService.GetTurnover(auth.AccountIDFromContext(r.Context()), turnoverID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTurnoverNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTurnoverNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve turnover", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, turnover)
}

// CreateTurnover handles POST requests to open a turnover at the notice stage.
//
// Endpoint: POST /api/turnovers
// Request Body: CreateTurnoverRequest (propertyId, noticeDate; previousRent, makeReadyBudget, notes optional)
// Response: 201 Created with Turnover
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the property does not exist in the account
// Error: 500 Internal Server Error if creation fails
func (h *TurnoverHandler) CreateTurnover(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTurnoverRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTurnover(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	turnover, err := h.turnoverService.CreateTurnover(r.Context(), auth.AccountIDFromContext(r.Context()), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrPropertyNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPropertyNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create turnover", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, turnover)
}

// AdvanceTurnover handles POST requests to move a turnover to its next stage.
// The optional date stamps the stage being entered and newRent applies when
// entering leased.
//
// Endpoint: POST /api/turnovers/{uuid}/advance
// Request Body: AdvanceTurnoverRequest (date, newRent, notes all optional)
// Response: 200 OK with advanced Turnover
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the turnover does not exist in the account
// Error: 409 Conflict if the turnover is already leased
// Error: 500 Internal Server Error if the update fails
func (h *TurnoverHandler) AdvanceTurnover(w http.ResponseWriter, r *http.Request) {
	turnoverID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.AdvanceTurnoverRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateAdvanceTurnover(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	turnover, err := h.turnoverService.AdvanceTurnover(r.Context(), auth.AccountIDFromContext(r.Context()), turnoverID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrTurnoverNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTurnoverNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrInvalidStageTransition):
			response.RespondError(w, http.StatusConflict, "turnover is already leased", err.Error())
		case errors.Is(err, apperrors.ErrInvalidStage):
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrInvalidStage.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to advance turnover", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, turnover)
}
