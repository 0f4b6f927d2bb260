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

// VendorService handles vendor-related business logic operations.
type VendorService struct {
	vendorRepo *repository.VendorRepository
}

// NewVendorService creates a new VendorService with the provided repository dependencies.
func NewVendorService(vendorRepo *repository.VendorRepository) *VendorService {
	return &VendorService{
		vendorRepo: vendorRepo,
	}
}

// GetVendors retrieves a user's vendors, optionally filtered by trade.
func (s *VendorService) GetVendors(userID, trade string) ([]model.Vendor, error) {
	return s.vendorRepo.GetVendors(userID, validation.SanitizeText(trade))
}

// GetVendor retrieves a single vendor by its ID. Vendors outside the user's
// account are reported as not found.
func (s *VendorService) GetVendor(userID, vendorID string) (model.Vendor, error) {
	vendor, err := s.vendorRepo.GetVendorOnID(vendorID)
	if err != nil {
		return model.Vendor{}, err
	}
	if vendor.UserID != userID {
		return model.Vendor{}, apperrors.ErrVendorNotFound
	}
	return vendor, nil
}

// CreateVendor creates a new vendor for the user.
func (s *VendorService) CreateVendor(ctx context.Context, userID string, req request.CreateVendorRequest) (*model.Vendor, error) {
	vendor := model.Vendor{
		UserID: userID,
		Name:   validation.SanitizeText(req.Name),
		Trade:  validation.SanitizeText(req.Trade),
		Phone:  validation.SanitizeTextPtr(req.Phone),
		Email:  validation.SanitizeTextPtr(req.Email),
		Notes:  validation.SanitizeTextPtr(req.Notes),
	}

	created, err := s.vendorRepo.InsertVendor(ctx, vendor)
	if err != nil {
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}

	return &created, nil
}

// UpdateVendor updates an existing vendor with the provided fields.
// Only provided fields in the request are updated; omitted fields remain unchanged.
// Ratings are clamped to the 1-5 scale.
func (s *VendorService) UpdateVendor(ctx context.Context, userID, id string, req request.UpdateVendorRequest) (*model.Vendor, error) {
	vendor, err := s.GetVendor(userID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		vendor.Name = validation.SanitizeText(*req.Name)
	}
	if req.Trade != nil {
		vendor.Trade = validation.SanitizeText(*req.Trade)
	}
	if req.Phone != nil {
		vendor.Phone = validation.SanitizeTextPtr(req.Phone)
	}
	if req.Email != nil {
		vendor.Email = validation.SanitizeTextPtr(req.Email)
	}
	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, apperrors.ErrInvalidRating
		}
		vendor.Rating = req.Rating
	}
	if req.Notes != nil {
		vendor.Notes = validation.SanitizeTextPtr(req.Notes)
	}

	if err := s.vendorRepo.UpdateVendor(ctx, vendor); err != nil {
		return nil, fmt.Errorf("failed to update vendor: %w", err)
	}

	return &vendor, nil
}

// DeleteVendor removes a vendor. Work orders that referenced the vendor keep
// their vendor_id cleared by the schema's ON DELETE SET NULL.
func (s *VendorService) DeleteVendor(ctx context.Context, userID, id string) error {
	if _, err := s.GetVendor(userID, id); err != nil {
		return err
	}
	return s.vendorRepo.DeleteVendor(ctx, id)
}
