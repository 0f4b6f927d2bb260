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
)

// TeamHandler handles HTTP requests for team membership endpoints. Routes
// using it are gated to the account owner by the router.
type TeamHandler struct {
	teamService *service.TeamService
}

// NewTeamHandler creates a new TeamHandler with the provided service dependency.
func NewTeamHandler(teamService *service.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// Members handles GET requests to list the account's team members,
// including invitations not yet accepted.
//
// Endpoint: GET /api/team/members
// Response: 200 OK with array of TeamMember
// Error: 500 Internal Server Error if retrieval fails
func (h *TeamHandler) Members(w http.ResponseWriter, r *http.Request) {
	members, err := h.teamService.GetTeamMembers(auth.AccountIDFromContext(r.Context()))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve team members", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, members)
}

// Invite handles POST requests to invite a user into the account.
//
// Endpoint: POST /api/team/members
// Request Body: InviteTeamMemberRequest (email, role)
// Response: 201 Created with TeamMember
// Error: 400 Bad Request if the request body or role is invalid
// Error: 409 Conflict if the email is already on the team
// Error: 500 Internal Server Error if the invite fails
func (h *TeamHandler) Invite(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.InviteTeamMemberRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	member, err := h.teamService.InviteTeamMember(r.Context(), auth.AccountIDFromContext(r.Context()), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidRole), errors.Is(err, apperrors.ErrInvalidEmail):
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		case errors.Is(err, apperrors.ErrDuplicateEntry):
			response.RespondError(w, http.StatusConflict, "already a team member", err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to invite team member", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, member)
}

// Remove handles DELETE requests to drop a member (or pending invite) from
// the account.
//
// Endpoint: DELETE /api/team/members/{uuid}
// Response: 204 No Content on successful removal
// Error: 404 Not Found if the member is not on the team
// Error: 500 Internal Server Error if removal fails
func (h *TeamHandler) Remove(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "uuid")

	err := h.teamService.RemoveTeamMember(r.Context(), auth.AccountIDFromContext(r.Context()), memberID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTeamMemberNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTeamMemberNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to remove team member", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
