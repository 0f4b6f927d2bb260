package service

import (
	"context"
	"fmt"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/request"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/apperrors"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/model"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/repository"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/validation"
)

// ContactService handles contact-related business logic operations.
type ContactService struct {
	contactRepo *repository.ContactRepository
}

// NewContactService creates a new ContactService with the provided repository dependencies.
func NewContactService(contactRepo *repository.ContactRepository) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
	}
}

// GetContacts retrieves a user's contacts, optionally narrowed to one module
// scope or a name search.
func (s *ContactService) GetContacts(userID string, module *string, search string) ([]model.Contact, error) {
	return s.contactRepo.GetContacts(model.ContactFilter{
		UserID: userID,
		Module: module,
		Search: validation.SanitizeText(search),
	})
}

// GetContact retrieves a single contact by its ID. Contacts outside the
// user's account are reported as not found.
func (s *ContactService) GetContact(userID, contactID string) (model.Contact, error) {
	contact, err := s.contactRepo.GetContactOnID(contactID)
	if err != nil {
		return model.Contact{}, err
	}
	if contact.UserID != userID {
		return model.Contact{}, apperrors.ErrContactNotFound
	}
	return contact, nil
}

// CreateContact creates a new contact for the user.
func (s *ContactService) CreateContact(ctx context.Context, userID string, req request.CreateContactRequest) (*model.Contact, error) {
	contact := model.Contact{
		UserID: userID,
		Name:   validation.SanitizeText(req.Name),
		Phone:  validation.SanitizeTextPtr(req.Phone),
		Email:  validation.SanitizeTextPtr(req.Email),
		Module: req.Module,
		Notes:  validation.SanitizeTextPtr(req.Notes),
	}

	created, err := s.contactRepo.InsertContact(ctx, contact)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return &created, nil
}

// UpdateContact updates an existing contact with the provided fields.
// Only provided fields in the request are updated; omitted fields remain unchanged.
func (s *ContactService) UpdateContact(ctx context.Context, userID, id string, req request.UpdateContactRequest) (*model.Contact, error) {
	contact, err := s.GetContact(userID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		contact.Name = validation.SanitizeText(*req.Name)
	}
	if req.Phone != nil {
		contact.Phone = validation.SanitizeTextPtr(req.Phone)
	}
	if req.Email != nil {
		contact.Email = validation.SanitizeTextPtr(req.Email)
	}
	if req.Module != nil {
		contact.Module = req.Module
	}
	if req.Notes != nil {
		contact.Notes = validation.SanitizeTextPtr(req.Notes)
	}

	if err := s.contactRepo.UpdateContact(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	return &contact, nil
}

// DeleteContact removes a contact.
func (s *ContactService) DeleteContact(ctx context.Context, userID, id string) error {
	if _, err := s.GetContact(userID, id); err != nil {
		return err
	}
	return s.contactRepo.DeleteContact(ctx, id)
}
