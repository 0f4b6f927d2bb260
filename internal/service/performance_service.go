package service

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/apperrors"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/model"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/repository"
)

// Snapshot cache TTLs. Snapshots are cheap to recompute but sit on the hot
// path of every dashboard load, so they are cached briefly and dropped
// eagerly whenever underlying data changes.
const (
	snapshotCacheTTL     = 5 * time.Minute
	snapshotCacheCleanup = 10 * time.Minute
)

// PerformanceService computes and caches performance snapshots.
// It orchestrates the data loading for the PerformanceCalculator: the entry,
// its monthly records, its mortgages, and the property's valuations.
type PerformanceService struct {
	portfolioRepo *repository.PortfolioRepository
	recordRepo    *repository.MonthlyRecordRepository
	mortgageRepo  *repository.MortgageRepository
	valuationRepo *repository.ValuationRepository
	calculator    *PerformanceCalculator
	snapshots     *cache.Cache
}

// NewPerformanceService creates a new PerformanceService with the provided dependencies.
func NewPerformanceService(
	portfolioRepo *repository.PortfolioRepository,
	recordRepo *repository.MonthlyRecordRepository,
	mortgageRepo *repository.MortgageRepository,
	valuationRepo *repository.ValuationRepository,
	calculator *PerformanceCalculator,
) *PerformanceService {
	return &PerformanceService{
		portfolioRepo: portfolioRepo,
		recordRepo:    recordRepo,
		mortgageRepo:  mortgageRepo,
		valuationRepo: valuationRepo,
		calculator:    calculator,
		snapshots:     cache.New(snapshotCacheTTL, snapshotCacheCleanup),
	}
}

func entryCacheKey(entryID string) string {
	return "entry:" + entryID
}

func portfolioCacheKey(userID string) string {
	return "portfolio:" + userID
}

// GetEntryPerformance returns the performance snapshot for a single entry,
// computed as of now. Results are cached per entry until the TTL passes or a
// write to the entry invalidates them. Entries outside the user's account are
// reported as not found.
func (s *PerformanceService) GetEntryPerformance(userID, entryID string) (model.PerformanceSnapshot, error) {
	if cached, found := s.snapshots.Get(entryCacheKey(entryID)); found {
		snapshot := cached.(model.PerformanceSnapshot)
		if snapshot.UserID != userID {
			return model.PerformanceSnapshot{}, apperrors.ErrEntryNotFound
		}
		return snapshot, nil
	}

	snapshot, err := s.computeSnapshot(userID, entryID, time.Now().UTC())
	if err != nil {
		return model.PerformanceSnapshot{}, err
	}

	s.snapshots.Set(entryCacheKey(entryID), snapshot, cache.DefaultExpiration)
	return snapshot, nil
}

// GetPortfolioPerformance returns snapshots for every active entry the user
// holds, in acquisition order. Valuations are batch-loaded across all
// properties to avoid one query per entry.
func (s *PerformanceService) GetPortfolioPerformance(userID string) ([]model.PerformanceSnapshot, error) {
	if cached, found := s.snapshots.Get(portfolioCacheKey(userID)); found {
		return cached.([]model.PerformanceSnapshot), nil
	}

	entries, err := s.portfolioRepo.GetEntries(model.PortfolioEntryFilter{UserID: userID})
	if err != nil {
		return nil, err
	}

	propertyIDs := make([]string, 0, len(entries))
	seen := make(map[string]bool)
	for _, entry := range entries {
		if !seen[entry.PropertyID] {
			seen[entry.PropertyID] = true
			propertyIDs = append(propertyIDs, entry.PropertyID)
		}
	}

	valuationsByProperty, err := s.valuationRepo.GetValuationsOnPropertyIDs(propertyIDs)
	if err != nil {
		return nil, err
	}

	asOf := time.Now().UTC()
	snapshots := make([]model.PerformanceSnapshot, 0, len(entries))
	for _, entry := range entries {
		records, err := s.recordRepo.GetRecordsOnEntryID(entry.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load records for entry %s: %w", entry.ID, err)
		}
		mortgages, err := s.mortgageRepo.GetMortgagesOnEntryID(entry.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load mortgages for entry %s: %w", entry.ID, err)
		}

		snapshots = append(snapshots, s.calculator.Calculate(
			entry, records, mortgages, valuationsByProperty[entry.PropertyID], asOf))
	}

	s.snapshots.Set(portfolioCacheKey(userID), snapshots, cache.DefaultExpiration)
	return snapshots, nil
}

// GetBenchmark compares the user's portfolio against the configured market
// benchmark, averaging cash flow and cap rate across all active entries.
func (s *PerformanceService) GetBenchmark(userID string) (model.Benchmark, error) {
	snapshots, err := s.GetPortfolioPerformance(userID)
	if err != nil {
		return model.Benchmark{}, err
	}
	return s.calculator.Benchmark(snapshots), nil
}

// ProjectEntryEquity recomputes a forward equity projection for an arbitrary
// horizon. The snapshot already carries 5 and 10 year projections; this
// covers custom horizons without another full snapshot build.
func (s *PerformanceService) ProjectEntryEquity(userID, entryID string, months int) (model.EquityProjection, error) {
	snapshot, err := s.GetEntryPerformance(userID, entryID)
	if err != nil {
		return model.EquityProjection{}, err
	}

	mortgages, err := s.mortgageRepo.GetMortgagesOnEntryID(entryID)
	if err != nil {
		return model.EquityProjection{}, err
	}
	var primary *model.Mortgage
	for i := range mortgages {
		if mortgages[i].IsPrimary {
			primary = &mortgages[i]
			break
		}
	}

	return s.calculator.ProjectEquity(snapshot.CurrentValue, snapshot.MortgageBalance, primary, months), nil
}

// InvalidateEntry drops cached results affected by a write to one entry:
// the entry's own snapshot and the owner's portfolio-level aggregates.
func (s *PerformanceService) InvalidateEntry(userID, entryID string) {
	s.snapshots.Delete(entryCacheKey(entryID))
	s.snapshots.Delete(portfolioCacheKey(userID))
}

// InvalidateProperty drops cached results for every entry backed by the
// property. Used after valuation writes, which change value for all entries
// on the property. Falls back to a full flush if the entries cannot be
// listed, since serving stale numbers is worse than recomputing.
func (s *PerformanceService) InvalidateProperty(userID, propertyID string) {
	entries, err := s.portfolioRepo.GetEntries(model.PortfolioEntryFilter{
		PropertyID:      propertyID,
		IncludeInactive: true,
	})
	if err != nil {
		s.snapshots.Flush()
		return
	}

	for _, entry := range entries {
		s.snapshots.Delete(entryCacheKey(entry.ID))
	}
	s.snapshots.Delete(portfolioCacheKey(userID))
}

// InvalidateUser drops every cached result owned by the user. Used after
// bulk writes like a full valuation refresh.
func (s *PerformanceService) InvalidateUser(userID string) {
	entries, err := s.portfolioRepo.GetEntries(model.PortfolioEntryFilter{
		UserID:          userID,
		IncludeInactive: true,
	})
	if err != nil {
		s.snapshots.Flush()
		return
	}

	for _, entry := range entries {
		s.snapshots.Delete(entryCacheKey(entry.ID))
	}
	s.snapshots.Delete(portfolioCacheKey(userID))
}

func (s *PerformanceService) computeSnapshot(userID, entryID string, asOf time.Time) (model.PerformanceSnapshot, error) {
	entry, err := s.portfolioRepo.GetEntryOnID(entryID)
	if err != nil {
		return model.PerformanceSnapshot{}, err
	}
	if entry.UserID != userID {
		return model.PerformanceSnapshot{}, apperrors.ErrEntryNotFound
	}

	records, err := s.recordRepo.GetRecordsOnEntryID(entryID)
	if err != nil {
		return model.PerformanceSnapshot{}, err
	}

	mortgages, err := s.mortgageRepo.GetMortgagesOnEntryID(entryID)
	if err != nil {
		return model.PerformanceSnapshot{}, err
	}

	valuations, err := s.valuationRepo.GetValuationsOnPropertyID(entry.PropertyID)
	if err != nil {
		return model.PerformanceSnapshot{}, err
	}

	return s.calculator.Calculate(entry, records, mortgages, valuations, asOf), nil
}
