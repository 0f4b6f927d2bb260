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

// ContactHandler handles HTTP requests for contact endpoints.
type ContactHandler struct {
	contactService *service.ContactService
}

// NewContactHandler creates a new ContactHandler with the provided service dependency.
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// Contacts handles GET requests to list the account's contacts. The module
// query parameter filters by originating module and search matches name
// substrings case-insensitively.
//
// Endpoint: GET /api/contacts?module=deals&search=smith
// Response: 200 OK with array of Contact
// Error: 500 Internal Server Error if retrieval fails
func (h *ContactHandler) Contacts(w http.ResponseWriter, r *http.Request) {
	var module *string
	if raw := r.URL.Query().Get("module"); raw != "" {
		module = &raw
	}
	search := r.URL.Query().Get("search")

	contacts, err := h.contactService.GetContacts(auth.AccountIDFromContext(r.Context()), module, search)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve contacts", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, contacts)
}

// GetContact handles GET requests to retrieve a single contact.
//
// Endpoint: GET /api/contacts/{uuid}
// Response: 200 OK with Contact
// Error: 404 Not Found if the contact does not exist in the account
// Error: 500 Internal Server Error if retrieval fails
func (h *ContactHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "uuid")

	contact, err := h.contactService.GetContact(auth.AccountIDFromContext(r.Context()), contactID)
	if err != nil {
		if errors.Is(err, apperrors.ErrContactNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrContactNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve contact", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, contact)
}

// CreateContact handles POST requests to create a new contact.
//
// Endpoint: POST /api/contacts
// Request Body: CreateContactRequest (name; phone, email, module, notes optional)
// Response: 201 Created with Contact
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *ContactHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateContactRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateContact(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	contact, err := h.contactService.CreateContact(r.Context(), auth.AccountIDFromContext(r.Context()), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create contact", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, contact)
}

// UpdateContact handles PUT requests to update an existing contact.
//
// Endpoint: PUT /api/contacts/{uuid}
// Request Body: UpdateContactRequest (all fields optional)
// Response: 200 OK with updated Contact
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the contact does not exist in the account
// Error: 500 Internal Server Error if update fails
func (h *ContactHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateContactRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateContact(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	contact, err := h.contactService.UpdateContact(r.Context(), auth.AccountIDFromContext(r.Context()), contactID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrContactNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrContactNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update contact", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, contact)
}

// DeleteContact handles DELETE requests to remove a contact.
//
// Endpoint: DELETE /api/contacts/{uuid}
// Response: 204 No Content on success
// Error: 404 Not Found if the contact does not exist in the account
// Error: 500 Internal Server Error if deletion fails
func (h *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "uuid")

	err := h.contactService.DeleteContact(r.Context(), auth.AccountIDFromContext(r.Context()), contactID)
	if err != nil {
		if errors.Is(err, apperrors.ErrContactNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrContactNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete contact", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
