package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/request"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/apperrors"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/model"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/repository"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/validation"
)

// PropertyService handles property-related business logic operations.
type PropertyService struct {
	propertyRepo *repository.PropertyRepository
}

// NewPropertyService creates a new PropertyService with the provided repository dependencies.
func NewPropertyService(propertyRepo *repository.PropertyRepository) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
	}
}

// GetProperties retrieves a user's properties. Retired properties are
// excluded unless includeRetired is set.
func (s *PropertyService) GetProperties(userID string, includeRetired bool) ([]model.Property, error) {
	return s.propertyRepo.GetProperties(model.PropertyFilter{
		UserID:         userID,
		IncludeRetired: includeRetired,
	})
}

// GetProperty retrieves a single property by its ID. Properties outside the
// user's account are reported as not found.
func (s *PropertyService) GetProperty(userID, propertyID string) (model.Property, error) {
	property, err := s.propertyRepo.GetPropertyOnID(propertyID)
	if err != nil {
		return model.Property{}, err
	}
	if property.UserID != userID {
		return model.Property{}, apperrors.ErrPropertyNotFound
	}
	return property, nil
}

// CreateProperty creates a new property for the user.
// Free-text fields are sanitized before storage.
func (s *PropertyService) CreateProperty(ctx context.Context, userID string, req request.CreatePropertyRequest) (*model.Property, error) {
	property := model.Property{
		ID:           uuid.New().String(),
		UserID:       userID,
		Address:      validation.SanitizeText(req.Address),
		City:         validation.SanitizeText(req.City),
		State:        validation.SanitizeText(req.State),
		Zip:          validation.SanitizeText(req.Zip),
		PropertyType: validation.SanitizeText(req.PropertyType),
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		SquareFeet:   req.SquareFeet,
		YearBuilt:    req.YearBuilt,
		Status:       model.PropertyStatusActive,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.propertyRepo.InsertProperty(ctx, property)
	if err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	return &created, nil
}

// UpdateProperty updates an existing property with the provided fields.
// Only provided fields in the request are updated; omitted fields remain unchanged.
func (s *PropertyService) UpdateProperty(ctx context.Context, userID, id string, req request.UpdatePropertyRequest) (*model.Property, error) {
	property, err := s.GetProperty(userID, id)
	if err != nil {
		return nil, err
	}
	if req.Address != nil {
		property.Address = validation.SanitizeText(*req.Address)
	}
	if req.City != nil {
		property.City = validation.SanitizeText(*req.City)
	}
	if req.State != nil {
		property.State = validation.SanitizeText(*req.State)
	}
	if req.Zip != nil {
		property.Zip = validation.SanitizeText(*req.Zip)
	}
	if req.PropertyType != nil {
		property.PropertyType = validation.SanitizeText(*req.PropertyType)
	}
	if req.Bedrooms != nil {
		property.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		property.Bathrooms = *req.Bathrooms
	}
	if req.SquareFeet != nil {
		property.SquareFeet = *req.SquareFeet
	}
	if req.YearBuilt != nil {
		property.YearBuilt = *req.YearBuilt
	}
	if req.Status != nil {
		property.Status = *req.Status
	}

	if err := s.propertyRepo.UpdateProperty(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}

	return &property, nil
}

// RetireProperty marks a property as retired. Retired properties drop out of
// default listings but keep their history; there is no hard delete so
// portfolio entries and valuations stay resolvable.
func (s *PropertyService) RetireProperty(ctx context.Context, userID, id string) error {
	property, err := s.GetProperty(userID, id)
	if err != nil {
		return err
	}

	if property.Status == model.PropertyStatusRetired {
		return nil
	}

	property.Status = model.PropertyStatusRetired
	if err := s.propertyRepo.UpdateProperty(ctx, property); err != nil {
		return fmt.Errorf("failed to retire property: %w", err)
	}

	return nil
}
