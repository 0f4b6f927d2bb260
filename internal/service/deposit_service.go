package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/request"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/apperrors"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/model"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/repository"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/validation"
)

// DepositService handles security deposit business logic operations.
// All money here is decimal: settlement splits must come out exact to the
// cent, since the refund letter goes to the tenant.
type DepositService struct {
	depositRepo  *repository.DepositRepository
	propertyRepo *repository.PropertyRepository
}

// NewDepositService creates a new DepositService with the provided repository dependencies.
func NewDepositService(
	depositRepo *repository.DepositRepository,
	propertyRepo *repository.PropertyRepository,
) *DepositService {
	return &DepositService{
		depositRepo:  depositRepo,
		propertyRepo: propertyRepo,
	}
}

// GetDeposits retrieves a user's deposits, newest first.
func (s *DepositService) GetDeposits(userID string) ([]model.Deposit, error) {
	return s.depositRepo.GetDeposits(userID)
}

// GetDeposit retrieves a single deposit by its ID. Deposits outside the
// user's account are reported as not found.
func (s *DepositService) GetDeposit(userID, depositID string) (model.Deposit, error) {
	deposit, err := s.depositRepo.GetDepositOnID(depositID)
	if err != nil {
		return model.Deposit{}, err
	}
	if deposit.UserID != userID {
		return model.Deposit{}, apperrors.ErrDepositNotFound
	}
	return deposit, nil
}

// CreateDeposit records a security deposit received for a property.
func (s *DepositService) CreateDeposit(ctx context.Context, userID string, req request.CreateDepositRequest) (*model.Deposit, error) {
	property, err := s.propertyRepo.GetPropertyOnID(req.PropertyID)
	if err != nil {
		return nil, err
	}
	if property.UserID != userID {
		return nil, apperrors.ErrPropertyNotFound
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse deposit amount: %w", err)
	}
	if amount.IsNegative() {
		return nil, apperrors.ErrNegativeAmount
	}

	receivedAt, err := time.Parse("2006-01-02", req.ReceivedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse received date: %w", err)
	}

	deposit := model.Deposit{
		UserID:     userID,
		PropertyID: req.PropertyID,
		TenantName: validation.SanitizeText(req.TenantName),
		Amount:     amount.Round(2),
		Status:     model.DepositStatusHeld,
		ReceivedAt: receivedAt,
	}

	created, err := s.depositRepo.InsertDeposit(ctx, deposit)
	if err != nil {
		return nil, fmt.Errorf("failed to create deposit: %w", err)
	}

	return &created, nil
}

// GetCharges retrieves the charges claimed against a deposit.
func (s *DepositService) GetCharges(userID, depositID string) ([]model.DepositCharge, error) {
	if _, err := s.GetDeposit(userID, depositID); err != nil {
		return nil, err
	}
	return s.depositRepo.GetChargesOnDepositID(depositID)
}

// AddCharge claims a deduction against a held deposit. Settled deposits are
// closed books and take no further charges.
func (s *DepositService) AddCharge(ctx context.Context, userID, depositID string, req request.CreateDepositChargeRequest) (*model.DepositCharge, error) {
	deposit, err := s.GetDeposit(userID, depositID)
	if err != nil {
		return nil, err
	}
	if deposit.Status == model.DepositStatusSettled {
		return nil, apperrors.ErrDepositAlreadySettled
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse charge amount: %w", err)
	}
	if amount.IsNegative() {
		return nil, apperrors.ErrNegativeAmount
	}

	charge := model.DepositCharge{
		DepositID:   depositID,
		Description: validation.SanitizeText(req.Description),
		Amount:      amount.Round(2),
	}

	created, err := s.depositRepo.InsertCharge(ctx, charge)
	if err != nil {
		return nil, fmt.Errorf("failed to add deposit charge: %w", err)
	}

	return &created, nil
}

// PreviewSettlement computes the settlement split without closing the
// deposit: what is withheld, what goes back to the tenant, and what the
// tenant still owes when charges exceed the deposit.
func (s *DepositService) PreviewSettlement(userID, depositID string) (model.DepositSettlement, error) {
	deposit, err := s.GetDeposit(userID, depositID)
	if err != nil {
		return model.DepositSettlement{}, err
	}

	charges, err := s.depositRepo.GetChargesOnDepositID(depositID)
	if err != nil {
		return model.DepositSettlement{}, err
	}

	return settle(deposit, charges), nil
}

// Settle closes a deposit: computes the final split and marks the deposit
// settled. Settling twice is rejected.
func (s *DepositService) Settle(ctx context.Context, userID, depositID string) (model.DepositSettlement, error) {
	deposit, err := s.GetDeposit(userID, depositID)
	if err != nil {
		return model.DepositSettlement{}, err
	}
	if deposit.Status == model.DepositStatusSettled {
		return model.DepositSettlement{}, apperrors.ErrDepositAlreadySettled
	}

	charges, err := s.depositRepo.GetChargesOnDepositID(depositID)
	if err != nil {
		return model.DepositSettlement{}, err
	}

	settlement := settle(deposit, charges)

	if err := s.depositRepo.MarkSettled(ctx, depositID, time.Now().UTC()); err != nil {
		return model.DepositSettlement{}, fmt.Errorf("failed to mark deposit settled: %w", err)
	}

	return settlement, nil
}

// settle computes the settlement split. Withheld never exceeds the deposit:
// the landlord keeps min(charges, deposit), refunds the rest, and bills the
// overage separately.
func settle(deposit model.Deposit, charges []model.DepositCharge) model.DepositSettlement {
	totalCharges := decimal.Zero
	for _, charge := range charges {
		totalCharges = totalCharges.Add(charge.Amount)
	}

	withheld := decimal.Min(totalCharges, deposit.Amount)
	refund := deposit.Amount.Sub(withheld)
	balanceDue := totalCharges.Sub(withheld)

	return model.DepositSettlement{
		DepositID:    deposit.ID,
		Deposit:      deposit.Amount.Round(2),
		TotalCharges: totalCharges.Round(2),
		Withheld:     withheld.Round(2),
		Refund:       refund.Round(2),
		BalanceDue:   balanceDue.Round(2),
	}
}
