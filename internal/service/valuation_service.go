package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/request"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/apperrors"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/avm"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/model"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/repository"
)

// refreshConcurrency bounds parallel AVM provider calls during a refresh.
// The provider rate-limits aggressively above ~5 concurrent requests.
const refreshConcurrency = 4

// ValuationService handles property valuation business logic operations:
// manual valuations entered by the user and automated estimates pulled from
// the AVM provider.
type ValuationService struct {
	valuationRepo      *repository.ValuationRepository
	propertyRepo       *repository.PropertyRepository
	avmClient          avm.Client
	performanceService *PerformanceService
	logger             *zap.Logger
}

// NewValuationService creates a new ValuationService with the provided dependencies.
func NewValuationService(
	valuationRepo *repository.ValuationRepository,
	propertyRepo *repository.PropertyRepository,
	avmClient avm.Client,
	performanceService *PerformanceService,
	logger *zap.Logger,
) *ValuationService {
	return &ValuationService{
		valuationRepo:      valuationRepo,
		propertyRepo:       propertyRepo,
		avmClient:          avmClient,
		performanceService: performanceService,
		logger:             logger,
	}
}

// GetValuations retrieves a property's valuations, oldest first. Properties
// outside the user's account are reported as not found.
func (s *ValuationService) GetValuations(userID, propertyID string) ([]model.Valuation, error) {
	if _, err := s.getProperty(userID, propertyID); err != nil {
		return nil, err
	}
	return s.valuationRepo.GetValuationsOnPropertyID(propertyID)
}

// CreateValuation records a manually entered valuation (appraisal, CMA, tax
// assessment) against a property.
func (s *ValuationService) CreateValuation(ctx context.Context, userID string, req request.CreateValuationRequest) (*model.Valuation, error) {
	property, err := s.getProperty(userID, req.PropertyID)
	if err != nil {
		return nil, err
	}

	valuationDate, err := time.Parse("2006-01-02", req.ValuationDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse valuation date: %w", err)
	}

	valuation := model.Valuation{
		PropertyID:     req.PropertyID,
		EstimatedValue: req.EstimatedValue,
		ValuationDate:  valuationDate,
		Source:         req.Source,
	}

	created, err := s.valuationRepo.InsertValuation(ctx, valuation)
	if err != nil {
		return nil, fmt.Errorf("failed to create valuation: %w", err)
	}

	s.performanceService.InvalidateProperty(property.UserID, property.ID)
	return &created, nil
}

// DeleteValuation removes a valuation, typically a bad AVM pull.
func (s *ValuationService) DeleteValuation(ctx context.Context, userID, valuationID string) error {
	valuation, err := s.valuationRepo.GetValuationOnID(valuationID)
	if err != nil {
		return err
	}
	property, err := s.getProperty(userID, valuation.PropertyID)
	if err != nil {
		return apperrors.ErrValuationNotFound
	}

	if err := s.valuationRepo.DeleteValuation(ctx, valuationID); err != nil {
		return err
	}

	s.performanceService.InvalidateProperty(property.UserID, property.ID)
	return nil
}

// getProperty resolves a property and verifies it belongs to the user.
func (s *ValuationService) getProperty(userID, propertyID string) (model.Property, error) {
	property, err := s.propertyRepo.GetPropertyOnID(propertyID)
	if err != nil {
		return model.Property{}, err
	}
	if property.UserID != userID {
		return model.Property{}, apperrors.ErrPropertyNotFound
	}
	return property, nil
}

// RefreshResult summarizes one AVM refresh run.
type RefreshResult struct {
	Refreshed int      `json:"refreshed"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// RefreshEstimates pulls a fresh AVM estimate for each of the user's active
// properties and stores them as valuations with source "avm".
//
// Properties are refreshed concurrently with a bounded worker count. One
// property failing does not abort the run: failures are collected and
// reported in the result so a single bad address cannot block the rest of
// the portfolio.
func (s *ValuationService) RefreshEstimates(ctx context.Context, userID string) (RefreshResult, error) {
	properties, err := s.propertyRepo.GetProperties(model.PropertyFilter{UserID: userID})
	if err != nil {
		return RefreshResult{}, err
	}

	var (
		mu     sync.Mutex
		result RefreshResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(refreshConcurrency)

	for _, property := range properties {
		property := property
		g.Go(func() error {
			if err := s.refreshProperty(gctx, property); err != nil {
				s.logger.Warn("valuation refresh failed",
					zap.String("property_id", property.ID),
					zap.String("address", property.Address),
					zap.Error(err))
				mu.Lock()
				result.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", property.Address, err))
				mu.Unlock()
				return nil
			}
			mu.Lock()
			result.Refreshed++
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	s.performanceService.InvalidateUser(userID)
	return result, nil
}

// RefreshAllEstimates runs RefreshEstimates for every account that owns
// properties. This is the scheduler's nightly entry point; one account
// failing does not stop the others.
func (s *ValuationService) RefreshAllEstimates(ctx context.Context) {
	ownerIDs, err := s.propertyRepo.GetOwnerIDs()
	if err != nil {
		s.logger.Error("failed to list property owners for refresh", zap.Error(err))
		return
	}

	for _, ownerID := range ownerIDs {
		result, err := s.RefreshEstimates(ctx, ownerID)
		if err != nil {
			s.logger.Error("valuation refresh aborted",
				zap.String("user_id", ownerID),
				zap.Error(err))
			continue
		}
		s.logger.Info("valuation refresh finished",
			zap.String("user_id", ownerID),
			zap.Int("refreshed", result.Refreshed),
			zap.Int("failed", result.Failed))
	}
}

func (s *ValuationService) refreshProperty(ctx context.Context, property model.Property) error {
	estimate, err := s.avmClient.GetEstimate(ctx, property.Address, property.City, property.State, property.Zip)
	if err != nil {
		return err
	}

	valuation := model.Valuation{
		PropertyID:     property.ID,
		EstimatedValue: estimate.Value,
		ValuationDate:  estimate.AsOf,
		Source:         model.ValuationSourceAVM,
	}

	if _, err := s.valuationRepo.InsertValuation(ctx, valuation); err != nil {
		return fmt.Errorf("failed to store estimate: %w", err)
	}

	return nil
}
