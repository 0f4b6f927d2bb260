package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/response"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/apperrors"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/auth"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/service"
)

// defaultProjectionMonths is the horizon used when a projection request does
// not name one. maxProjectionMonths caps the horizon at 50 years; beyond
// that the compounding assumptions stop meaning anything.
const (
	defaultProjectionMonths = 60
	maxProjectionMonths     = 600
)

// PerformanceHandler handles HTTP requests for performance snapshot,
// projection, and benchmark endpoints.
type PerformanceHandler struct {
	performanceService *service.PerformanceService
}

// NewPerformanceHandler creates a new PerformanceHandler with the provided service dependency.
func NewPerformanceHandler(performanceService *service.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{
		performanceService: performanceService,
	}
}

// EntryPerformance handles GET requests for a single entry's performance
// snapshot, computed as of now.
//
// Endpoint: GET /api/portfolio/entries/{uuid}/performance
// Response: 200 OK with PerformanceSnapshot
// Error: 404 Not Found if the entry does not exist in the account
// Error: 500 Internal Server Error if the computation fails
func (h *PerformanceHandler) EntryPerformance(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "uuid")

	snapshot, err := h.performanceService.GetEntryPerformance(auth.AccountIDFromContext(r.Context()), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrEntryNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrEntryNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputePerformance.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}

// PortfolioPerformance handles GET requests for snapshots of every active
// entry in the account, in acquisition order.
//
// Endpoint: GET /api/portfolio/performance
// Response: 200 OK with array of PerformanceSnapshot
// Error: 500 Internal Server Error if the computation fails
func (h *PerformanceHandler) PortfolioPerformance(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.performanceService.GetPortfolioPerformance(auth.AccountIDFromContext(r.Context()))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputePerformance.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshots)
}

// EntryProjection handles GET requests for a forward equity projection over
// an arbitrary horizon. The months query parameter defaults to 60 and is
// capped at 600.
//
// Endpoint: GET /api/portfolio/entries/{uuid}/projection?months=120
// Response: 200 OK with EquityProjection
// Error: 400 Bad Request if months is not a positive integer within the cap
// Error: 404 Not Found if the entry does not exist in the account
// Error: 500 Internal Server Error if the computation fails
func (h *PerformanceHandler) EntryProjection(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "uuid")

	months := defaultProjectionMonths
	if raw := r.URL.Query().Get("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxProjectionMonths {
			response.RespondError(w, http.StatusBadRequest, "validation failed",
				"months must be an integer between 1 and 600")
			return
		}
		months = parsed
	}

	projection, err := h.performanceService.ProjectEntryEquity(auth.AccountIDFromContext(r.Context()), entryID, months)
	if err != nil {
		if errors.Is(err, apperrors.ErrEntryNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrEntryNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputePerformance.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, projection)
}

// Benchmark handles GET requests comparing the account's portfolio against
// the configured market benchmark.
//
// Endpoint: GET /api/portfolio/benchmark
// Response: 200 OK with Benchmark
// Error: 500 Internal Server Error if the computation fails
func (h *PerformanceHandler) Benchmark(w http.ResponseWriter, r *http.Request) {
	benchmark, err := h.performanceService.GetBenchmark(auth.AccountIDFromContext(r.Context()))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeBenchmark.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, benchmark)
}
