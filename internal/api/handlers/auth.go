package handlers

import (
	"errors"
	"net/http"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/request"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/response"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/apperrors"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/auth"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/service"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/validation"
)

// AuthHandler handles HTTP requests for registration, login, and the
// current-user endpoint. It serves as the HTTP layer adapter, parsing
// requests and delegating business logic to the teamService.
type AuthHandler struct {
	teamService *service.TeamService
}

// NewAuthHandler creates a new AuthHandler with the provided service dependency.
func NewAuthHandler(teamService *service.TeamService) *AuthHandler {
	return &AuthHandler{
		teamService: teamService,
	}
}

// Register handles POST requests to create a new account.
//
// Endpoint: POST /api/auth/register
// Request Body: RegisterRequest (email, name, password)
// Response: 201 Created with Session (user, token, expiry)
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if the email already has an account
// Error: 500 Internal Server Error if registration fails
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.RegisterRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateRegister(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	session, err := h.teamService.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailTaken) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrEmailTaken.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to register", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, session)
}

// Login handles POST requests to authenticate an existing account.
//
// Endpoint: POST /api/auth/login
// Request Body: LoginRequest (email, password)
// Response: 200 OK with Session (user, token, expiry)
// Error: 400 Bad Request if the request body is invalid
// Error: 401 Unauthorized if the credentials do not match
// Error: 500 Internal Server Error if login fails
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LoginRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateLogin(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	session, err := h.teamService.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			response.RespondError(w, http.StatusUnauthorized, apperrors.ErrInvalidCredentials.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to log in", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, session)
}

// MeResponse describes the authenticated user and the account scope the
// token operates on.
type MeResponse struct {
	User      any    `json:"user"`
	AccountID string `json:"account_id"`
	Role      string `json:"role"`
}

// Me handles GET requests for the authenticated user's own profile.
//
// Endpoint: GET /api/auth/me
// Response: 200 OK with MeResponse
// Error: 500 Internal Server Error if the lookup fails
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.teamService.GetUser(auth.UserIDFromContext(ctx))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to load user", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, MeResponse{
		User:      user,
		AccountID: auth.AccountIDFromContext(ctx),
		Role:      auth.RoleFromContext(ctx),
	})
}
