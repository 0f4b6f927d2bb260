package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/request"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/apperrors"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/model"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/repository"
)

// PortfolioService handles portfolio-related business logic operations: the
// entries themselves, their monthly records, and their mortgages. Every write
// invalidates the performance cache for the affected entry.
type PortfolioService struct {
	db                 *sql.DB
	portfolioRepo      *repository.PortfolioRepository
	propertyRepo       *repository.PropertyRepository
	recordRepo         *repository.MonthlyRecordRepository
	mortgageRepo       *repository.MortgageRepository
	performanceService *PerformanceService
}

// NewPortfolioService creates a new PortfolioService with the provided dependencies.
// The database handle is used for the transaction that swaps primary mortgages.
func NewPortfolioService(
	db *sql.DB,
	portfolioRepo *repository.PortfolioRepository,
	propertyRepo *repository.PropertyRepository,
	recordRepo *repository.MonthlyRecordRepository,
	mortgageRepo *repository.MortgageRepository,
	performanceService *PerformanceService,
) *PortfolioService {
	return &PortfolioService{
		db:                 db,
		portfolioRepo:      portfolioRepo,
		propertyRepo:       propertyRepo,
		recordRepo:         recordRepo,
		mortgageRepo:       mortgageRepo,
		performanceService: performanceService,
	}
}

// GetEntries retrieves a user's portfolio entries in acquisition order.
// Deactivated entries are excluded unless includeInactive is set.
func (s *PortfolioService) GetEntries(userID string, includeInactive bool) ([]model.PortfolioEntry, error) {
	return s.portfolioRepo.GetEntries(model.PortfolioEntryFilter{
		UserID:          userID,
		IncludeInactive: includeInactive,
	})
}

// GetEntry retrieves a single portfolio entry by its ID. Entries outside the
// user's account are reported as not found.
func (s *PortfolioService) GetEntry(userID, entryID string) (model.PortfolioEntry, error) {
	entry, err := s.portfolioRepo.GetEntryOnID(entryID)
	if err != nil {
		return model.PortfolioEntry{}, err
	}
	if entry.UserID != userID {
		return model.PortfolioEntry{}, apperrors.ErrEntryNotFound
	}
	return entry, nil
}

// CreateEntry adds a property to the user's portfolio.
// The property must exist and belong to the user, and must not already have
// an active entry; the same property can re-enter the portfolio after its
// previous entry is deactivated (sold and repurchased).
func (s *PortfolioService) CreateEntry(ctx context.Context, userID string, req request.CreateEntryRequest) (*model.PortfolioEntry, error) {
	property, err := s.propertyRepo.GetPropertyOnID(req.PropertyID)
	if err != nil {
		return nil, err
	}
	if property.UserID != userID {
		return nil, apperrors.ErrPropertyNotFound
	}

	existing, err := s.portfolioRepo.GetEntries(model.PortfolioEntryFilter{
		UserID:     userID,
		PropertyID: req.PropertyID,
	})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, apperrors.ErrDuplicateEntry
	}

	acquisitionDate, err := time.Parse("2006-01-02", req.AcquisitionDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse acquisition date: %w", err)
	}

	entry := model.PortfolioEntry{
		UserID:           userID,
		PropertyID:       req.PropertyID,
		AcquisitionDate:  acquisitionDate,
		AcquisitionPrice: req.AcquisitionPrice,
		MonthlyRent:      req.MonthlyRent,
		MonthlyExpenses:  req.MonthlyExpenses,
		DealID:           req.DealID,
		GroupID:          req.GroupID,
	}
	if req.OwnershipPercentage != nil {
		entry.OwnershipPercentage = *req.OwnershipPercentage
	}

	created, err := s.portfolioRepo.InsertEntry(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to create portfolio entry: %w", err)
	}

	s.performanceService.InvalidateEntry(userID, created.ID)
	return &created, nil
}

// UpdateEntry updates an existing entry with the provided fields.
// Only provided fields in the request are updated; omitted fields remain unchanged.
func (s *PortfolioService) UpdateEntry(ctx context.Context, userID, id string, req request.UpdateEntryRequest) (*model.PortfolioEntry, error) {
	entry, err := s.GetEntry(userID, id)
	if err != nil {
		return nil, err
	}
	if req.AcquisitionDate != nil {
		acquisitionDate, err := time.Parse("2006-01-02", *req.AcquisitionDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse acquisition date: %w", err)
		}
		entry.AcquisitionDate = acquisitionDate
	}
	if req.AcquisitionPrice != nil {
		entry.AcquisitionPrice = *req.AcquisitionPrice
	}
	if req.MonthlyRent != nil {
		entry.MonthlyRent = *req.MonthlyRent
	}
	if req.MonthlyExpenses != nil {
		entry.MonthlyExpenses = *req.MonthlyExpenses
	}
	if req.OwnershipPercentage != nil {
		entry.OwnershipPercentage = *req.OwnershipPercentage
	}

	if err := s.portfolioRepo.UpdateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update portfolio entry: %w", err)
	}

	s.performanceService.InvalidateEntry(entry.UserID, entry.ID)
	return &entry, nil
}

// DeactivateEntry soft-deletes an entry, typically after a sale. Monthly
// records and mortgages stay in place so historical snapshots remain
// reproducible.
func (s *PortfolioService) DeactivateEntry(ctx context.Context, userID, id string) error {
	entry, err := s.GetEntry(userID, id)
	if err != nil {
		return err
	}

	if err := s.portfolioRepo.DeactivateEntry(ctx, id); err != nil {
		return err
	}

	s.performanceService.InvalidateEntry(entry.UserID, entry.ID)
	return nil
}

// GetMonthlyRecords retrieves an entry's monthly records, oldest first.
func (s *PortfolioService) GetMonthlyRecords(userID, entryID string) ([]model.MonthlyRecord, error) {
	if _, err := s.GetEntry(userID, entryID); err != nil {
		return nil, err
	}
	return s.recordRepo.GetRecordsOnEntryID(entryID)
}

// UpsertMonthlyRecord creates or replaces the record for one month of an
// entry. Re-submitting a month overwrites the previous figures, which is how
// corrections are made.
func (s *PortfolioService) UpsertMonthlyRecord(ctx context.Context, userID, entryID string, req request.UpsertMonthlyRecordRequest) (*model.MonthlyRecord, error) {
	entry, err := s.GetEntry(userID, entryID)
	if err != nil {
		return nil, err
	}

	month, err := parseMonth(req.Month)
	if err != nil {
		return nil, err
	}

	record := model.MonthlyRecord{
		EntryID:       entryID,
		Month:         month,
		RentCollected: req.RentCollected,
		Expenses: model.ExpenseBreakdown{
			Maintenance: req.Maintenance,
			Taxes:       req.Taxes,
			Insurance:   req.Insurance,
			Utilities:   req.Utilities,
			Management:  req.Management,
			HOA:         req.HOA,
			Other:       req.Other,
		},
	}

	saved, err := s.recordRepo.UpsertRecord(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert monthly record: %w", err)
	}

	s.performanceService.InvalidateEntry(entry.UserID, entryID)
	return &saved, nil
}

// DeleteMonthlyRecord removes the record for one month of an entry.
func (s *PortfolioService) DeleteMonthlyRecord(ctx context.Context, userID, entryID, monthStr string) error {
	entry, err := s.GetEntry(userID, entryID)
	if err != nil {
		return err
	}

	month, err := parseMonth(monthStr)
	if err != nil {
		return err
	}

	if err := s.recordRepo.DeleteRecord(ctx, entryID, month); err != nil {
		return err
	}

	s.performanceService.InvalidateEntry(entry.UserID, entryID)
	return nil
}

// GetMortgages retrieves an entry's mortgages, primary first.
func (s *PortfolioService) GetMortgages(userID, entryID string) ([]model.Mortgage, error) {
	if _, err := s.GetEntry(userID, entryID); err != nil {
		return nil, err
	}
	return s.mortgageRepo.GetMortgagesOnEntryID(entryID)
}

// CreateMortgage adds a mortgage to an entry. When the new mortgage is
// primary, any existing primary is demoted in the same transaction so the
// entry never holds two primaries.
func (s *PortfolioService) CreateMortgage(ctx context.Context, userID, entryID string, req request.CreateMortgageRequest) (*model.Mortgage, error) {
	entry, err := s.GetEntry(userID, entryID)
	if err != nil {
		return nil, err
	}

	mortgage := model.Mortgage{
		EntryID:         entryID,
		Lender:          req.Lender,
		OriginalBalance: req.OriginalBalance,
		CurrentBalance:  req.CurrentBalance,
		InterestRate:    req.InterestRate,
		MonthlyPayment:  req.MonthlyPayment,
		IsPrimary:       req.IsPrimary,
	}

	var created model.Mortgage
	if req.IsPrimary {
		err = s.withTransaction(ctx, func(tx *sql.Tx) error {
			txRepo := s.mortgageRepo.WithTx(tx)
			if err := txRepo.ClearPrimary(ctx, entryID); err != nil {
				return err
			}
			created, err = txRepo.InsertMortgage(ctx, mortgage)
			return err
		})
	} else {
		created, err = s.mortgageRepo.InsertMortgage(ctx, mortgage)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create mortgage: %w", err)
	}

	s.performanceService.InvalidateEntry(entry.UserID, entryID)
	return &created, nil
}

// UpdateMortgage updates an existing mortgage with the provided fields.
// Promoting a mortgage to primary demotes the current primary in the same
// transaction. Demoting the only primary is allowed; the entry is then
// treated as having no primary loan.
func (s *PortfolioService) UpdateMortgage(ctx context.Context, userID, mortgageID string, req request.UpdateMortgageRequest) (*model.Mortgage, error) {
	mortgage, err := s.getMortgage(userID, mortgageID)
	if err != nil {
		return nil, err
	}

	promoting := req.IsPrimary != nil && *req.IsPrimary && !mortgage.IsPrimary

	if req.Lender != nil {
		mortgage.Lender = *req.Lender
	}
	if req.OriginalBalance != nil {
		mortgage.OriginalBalance = *req.OriginalBalance
	}
	if req.CurrentBalance != nil {
		mortgage.CurrentBalance = *req.CurrentBalance
	}
	if req.InterestRate != nil {
		mortgage.InterestRate = *req.InterestRate
	}
	if req.MonthlyPayment != nil {
		mortgage.MonthlyPayment = *req.MonthlyPayment
	}
	if req.IsPrimary != nil {
		mortgage.IsPrimary = *req.IsPrimary
	}

	if mortgage.CurrentBalance > mortgage.OriginalBalance {
		return nil, apperrors.ErrBalanceExceedsOriginal
	}

	if promoting {
		err = s.withTransaction(ctx, func(tx *sql.Tx) error {
			txRepo := s.mortgageRepo.WithTx(tx)
			if err := txRepo.ClearPrimary(ctx, mortgage.EntryID); err != nil {
				return err
			}
			return txRepo.UpdateMortgage(ctx, mortgage)
		})
	} else {
		err = s.mortgageRepo.UpdateMortgage(ctx, mortgage)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update mortgage: %w", err)
	}

	s.performanceService.InvalidateEntry(userID, mortgage.EntryID)
	return &mortgage, nil
}

// DeleteMortgage removes a mortgage, paid off or refinanced away.
func (s *PortfolioService) DeleteMortgage(ctx context.Context, userID, mortgageID string) error {
	mortgage, err := s.getMortgage(userID, mortgageID)
	if err != nil {
		return err
	}

	if err := s.mortgageRepo.DeleteMortgage(ctx, mortgageID); err != nil {
		return err
	}

	s.performanceService.InvalidateEntry(userID, mortgage.EntryID)
	return nil
}

// getMortgage resolves a mortgage and verifies, through its entry, that it
// belongs to the user's account.
func (s *PortfolioService) getMortgage(userID, mortgageID string) (model.Mortgage, error) {
	mortgage, err := s.mortgageRepo.GetMortgageOnID(mortgageID)
	if err != nil {
		return model.Mortgage{}, err
	}
	if _, err := s.GetEntry(userID, mortgage.EntryID); err != nil {
		return model.Mortgage{}, apperrors.ErrMortgageNotFound
	}
	return mortgage, nil
}

// withTransaction runs fn inside a transaction, committing on success and
// rolling back on error.
func (s *PortfolioService) withTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// parseMonth accepts "2006-01" or a full date and truncates to the first of
// the month in UTC.
func parseMonth(s string) (time.Time, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		t, err = time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse month: %w", err)
		}
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}
