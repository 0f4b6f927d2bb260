package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/apperrors"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/model"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/testutil"
)

// TestPerformanceService_GetEntryPerformance tests the stored-data snapshot path.
//
// WHY: The calculator itself is covered by its own tests; this exercises the
// loading side: the entry, its records, its mortgages, and the property's
// valuations all have to arrive in the right order for the numbers to come
// out right.
func TestPerformanceService_GetEntryPerformance(t *testing.T) {
	t.Run("computes a snapshot from stored history", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPerformanceService(t, db)
		user := testutil.CreateUser(t, db)
		prop := testutil.CreateProperty(t, db, user.ID)
		entry := testutil.NewEntry(user.ID, prop.ID).
			WithAcquisitionPrice(200000).
			Build(t, db)

		testutil.NewMonthlyRecord(entry.ID).
			WithMonth(date(2024, 1, 1)).
			WithRentCollected(1800).
			WithExpenses(model.ExpenseBreakdown{Maintenance: 300}).
			Build(t, db)
		testutil.NewMonthlyRecord(entry.ID).
			WithMonth(date(2024, 2, 1)).
			WithRentCollected(1800).
			WithExpenses(model.ExpenseBreakdown{Taxes: 500}).
			Build(t, db)

		testutil.NewMortgage(entry.ID).
			WithOriginalBalance(160000).
			WithCurrentBalance(150000).
			Primary().
			Build(t, db)

		testutil.NewValuation(prop.ID).WithDate(date(2023, 6, 1)).WithValue(220000).Build(t, db)
		testutil.NewValuation(prop.ID).WithDate(date(2024, 6, 1)).WithValue(245000).Build(t, db)

		// Execute
		snapshot, err := svc.GetEntryPerformance(user.ID, entry.ID)

		// Assert
		if err != nil {
			t.Fatalf("GetEntryPerformance() returned unexpected error: %v", err)
		}
		if snapshot.EntryID != entry.ID || snapshot.UserID != user.ID {
			t.Errorf("Expected snapshot for entry %s, got %s", entry.ID, snapshot.EntryID)
		}
		if !almostEqual(snapshot.TotalCashFlow, 2800) {
			t.Errorf("Expected total cash flow 2800, got %v", snapshot.TotalCashFlow)
		}
		if !almostEqual(snapshot.TotalExpenses, 800) {
			t.Errorf("Expected total expenses 800, got %v", snapshot.TotalExpenses)
		}
		if !almostEqual(snapshot.CurrentValue, 245000) {
			t.Errorf("Expected current value from the latest valuation, got %v", snapshot.CurrentValue)
		}
		if !almostEqual(snapshot.MortgageBalance, 150000) {
			t.Errorf("Expected mortgage balance 150000, got %v", snapshot.MortgageBalance)
		}
		if !almostEqual(snapshot.CurrentEquity, 95000) {
			t.Errorf("Expected equity 95000, got %v", snapshot.CurrentEquity)
		}
		if !almostEqual(snapshot.DownPayment, 40000) {
			t.Errorf("Expected down payment 40000, got %v", snapshot.DownPayment)
		}
		if len(snapshot.CashFlowHistory) != 2 {
			t.Errorf("Expected 2 cash flow points, got %d", len(snapshot.CashFlowHistory))
		}
	})

	t.Run("serves the cached snapshot until invalidated", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPerformanceService(t, db)
		user := testutil.CreateUser(t, db)
		prop := testutil.CreateProperty(t, db, user.ID)
		entry := testutil.CreateEntry(t, db, user.ID, prop.ID)
		testutil.NewMonthlyRecord(entry.ID).
			WithMonth(date(2024, 1, 1)).
			WithRentCollected(2000).
			WithExpenses(model.ExpenseBreakdown{}).
			Build(t, db)

		first, err := svc.GetEntryPerformance(user.ID, entry.ID)
		if err != nil {
			t.Fatalf("GetEntryPerformance() returned unexpected error: %v", err)
		}
		if !almostEqual(first.TotalCashFlow, 2000) {
			t.Fatalf("Expected total cash flow 2000, got %v", first.TotalCashFlow)
		}

		// A write behind the service's back is invisible while cached.
		testutil.NewMonthlyRecord(entry.ID).
			WithMonth(date(2024, 2, 1)).
			WithRentCollected(1000).
			WithExpenses(model.ExpenseBreakdown{}).
			Build(t, db)

		// Execute
		cached, err := svc.GetEntryPerformance(user.ID, entry.ID)
		if err != nil {
			t.Fatalf("GetEntryPerformance() returned unexpected error: %v", err)
		}
		if !almostEqual(cached.TotalCashFlow, 2000) {
			t.Errorf("Expected cached total cash flow 2000, got %v", cached.TotalCashFlow)
		}

		// Invalidation forces a recompute that sees the new record.
		svc.InvalidateEntry(user.ID, entry.ID)
		fresh, err := svc.GetEntryPerformance(user.ID, entry.ID)
		if err != nil {
			t.Fatalf("GetEntryPerformance() returned unexpected error: %v", err)
		}

		// Assert
		if !almostEqual(fresh.TotalCashFlow, 3000) {
			t.Errorf("Expected recomputed total cash flow 3000, got %v", fresh.TotalCashFlow)
		}
	})

	t.Run("cached snapshots stay scoped to their owner", func(t *testing.T) {
		// Setup: the owner warms the cache, then another user asks.
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPerformanceService(t, db)
		owner := testutil.CreateUser(t, db)
		other := testutil.CreateUser(t, db)
		prop := testutil.CreateProperty(t, db, owner.ID)
		entry := testutil.CreateEntry(t, db, owner.ID, prop.ID)

		if _, err := svc.GetEntryPerformance(owner.ID, entry.ID); err != nil {
			t.Fatalf("GetEntryPerformance() returned unexpected error: %v", err)
		}

		// Execute
		_, err := svc.GetEntryPerformance(other.ID, entry.ID)

		// Assert
		if !errors.Is(err, apperrors.ErrEntryNotFound) {
			t.Errorf("Expected ErrEntryNotFound from the cached path, got %v", err)
		}
	})

	t.Run("returns not found for unknown entry", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPerformanceService(t, db)
		user := testutil.CreateUser(t, db)

		// Execute
		_, err := svc.GetEntryPerformance(user.ID, testutil.MakeID())

		// Assert
		if !errors.Is(err, apperrors.ErrEntryNotFound) {
			t.Errorf("Expected ErrEntryNotFound, got %v", err)
		}
	})
}

// TestPerformanceService_GetPortfolioPerformance tests the portfolio-wide view.
func TestPerformanceService_GetPortfolioPerformance(t *testing.T) {
	t.Run("returns one snapshot per active entry in acquisition order", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPerformanceService(t, db)
		user := testutil.CreateUser(t, db)

		firstProp := testutil.CreateProperty(t, db, user.ID)
		secondProp := testutil.CreateProperty(t, db, user.ID)
		soldProp := testutil.CreateProperty(t, db, user.ID)

		second := testutil.NewEntry(user.ID, secondProp.ID).
			WithAcquisitionDate(date(2023, 4, 1)).
			Build(t, db)
		first := testutil.NewEntry(user.ID, firstProp.ID).
			WithAcquisitionDate(date(2020, 9, 1)).
			Build(t, db)
		testutil.NewEntry(user.ID, soldProp.ID).Inactive().Build(t, db)

		testutil.NewValuation(firstProp.ID).WithValue(260000).Build(t, db)
		testutil.NewValuation(secondProp.ID).WithValue(310000).Build(t, db)

		// Execute
		snapshots, err := svc.GetPortfolioPerformance(user.ID)

		// Assert
		if err != nil {
			t.Fatalf("GetPortfolioPerformance() returned unexpected error: %v", err)
		}
		if len(snapshots) != 2 {
			t.Fatalf("Expected 2 snapshots, got %d", len(snapshots))
		}
		if snapshots[0].EntryID != first.ID || snapshots[1].EntryID != second.ID {
			t.Errorf("Expected acquisition order, got %s then %s", snapshots[0].EntryID, snapshots[1].EntryID)
		}

		// Each snapshot carries its own property's valuation.
		if !almostEqual(snapshots[0].CurrentValue, 260000) {
			t.Errorf("Expected first entry valued at 260000, got %v", snapshots[0].CurrentValue)
		}
		if !almostEqual(snapshots[1].CurrentValue, 310000) {
			t.Errorf("Expected second entry valued at 310000, got %v", snapshots[1].CurrentValue)
		}
	})

	t.Run("empty portfolio yields no snapshots", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPerformanceService(t, db)
		user := testutil.CreateUser(t, db)

		// Execute
		snapshots, err := svc.GetPortfolioPerformance(user.ID)

		// Assert
		if err != nil {
			t.Fatalf("GetPortfolioPerformance() returned unexpected error: %v", err)
		}
		if len(snapshots) != 0 {
			t.Errorf("Expected no snapshots, got %d", len(snapshots))
		}
	})
}

// TestPerformanceService_GetBenchmark tests the market comparison.
func TestPerformanceService_GetBenchmark(t *testing.T) {
	t.Run("averages cash flow across the portfolio", func(t *testing.T) {
		// Setup: two entries netting 1000 and 500 a month.
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPerformanceService(t, db)
		user := testutil.CreateUser(t, db)

		propA := testutil.CreateProperty(t, db, user.ID)
		propB := testutil.CreateProperty(t, db, user.ID)
		entryA := testutil.CreateEntry(t, db, user.ID, propA.ID)
		entryB := testutil.CreateEntry(t, db, user.ID, propB.ID)

		for _, month := range []int{1, 2} {
			testutil.NewMonthlyRecord(entryA.ID).
				WithMonth(date(2024, time.Month(month), 1)).
				WithRentCollected(1000).
				WithExpenses(model.ExpenseBreakdown{}).
				Build(t, db)
			testutil.NewMonthlyRecord(entryB.ID).
				WithMonth(date(2024, time.Month(month), 1)).
				WithRentCollected(500).
				WithExpenses(model.ExpenseBreakdown{}).
				Build(t, db)
		}

		// Execute
		benchmark, err := svc.GetBenchmark(user.ID)

		// Assert
		if err != nil {
			t.Fatalf("GetBenchmark() returned unexpected error: %v", err)
		}
		if !almostEqual(benchmark.PortfolioAverageCashFlow, 750) {
			t.Errorf("Expected average cash flow 750, got %v", benchmark.PortfolioAverageCashFlow)
		}
		if !almostEqual(benchmark.SP500AnnualReturn, 10.0) {
			t.Errorf("Expected benchmark return 10.0, got %v", benchmark.SP500AnnualReturn)
		}
		if benchmark.ComparisonPeriodMonths < 1 {
			t.Errorf("Expected a positive comparison period, got %d", benchmark.ComparisonPeriodMonths)
		}
	})

	t.Run("empty portfolio still reports the market rate", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPerformanceService(t, db)
		user := testutil.CreateUser(t, db)

		// Execute
		benchmark, err := svc.GetBenchmark(user.ID)

		// Assert
		if err != nil {
			t.Fatalf("GetBenchmark() returned unexpected error: %v", err)
		}
		if !almostEqual(benchmark.SP500AnnualReturn, 10.0) {
			t.Errorf("Expected benchmark return 10.0, got %v", benchmark.SP500AnnualReturn)
		}
		if benchmark.PortfolioAverageCashFlow != 0 {
			t.Errorf("Expected zero average cash flow, got %v", benchmark.PortfolioAverageCashFlow)
		}
	})
}

// TestPerformanceService_ProjectEntryEquity tests custom projection horizons.
func TestPerformanceService_ProjectEntryEquity(t *testing.T) {
	t.Run("projects appreciation and paydown over the horizon", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPerformanceService(t, db)
		user := testutil.CreateUser(t, db)
		prop := testutil.CreateProperty(t, db, user.ID)
		entry := testutil.CreateEntry(t, db, user.ID, prop.ID)
		testutil.NewMortgage(entry.ID).
			WithCurrentBalance(150000).
			WithInterestRate(0.065).
			WithMonthlyPayment(1011.31).
			Primary().
			Build(t, db)
		testutil.NewValuation(prop.ID).WithValue(245000).Build(t, db)

		// Execute
		projection, err := svc.ProjectEntryEquity(user.ID, entry.ID, 24)

		// Assert
		if err != nil {
			t.Fatalf("ProjectEntryEquity() returned unexpected error: %v", err)
		}
		if projection.Months != 24 {
			t.Errorf("Expected a 24 month projection, got %d", projection.Months)
		}
		if projection.ProjectedValue <= 245000 {
			t.Errorf("Expected the value to appreciate past 245000, got %v", projection.ProjectedValue)
		}
		if projection.ProjectedBalance >= 150000 {
			t.Errorf("Expected the balance to amortize below 150000, got %v", projection.ProjectedBalance)
		}
		if !almostEqual(projection.ProjectedEquity, projection.ProjectedValue-projection.ProjectedBalance) {
			t.Errorf("Expected equity to be value minus balance, got %v", projection.ProjectedEquity)
		}
	})

	t.Run("zero months returns the current position", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPerformanceService(t, db)
		user := testutil.CreateUser(t, db)
		prop := testutil.CreateProperty(t, db, user.ID)
		entry := testutil.CreateEntry(t, db, user.ID, prop.ID)
		testutil.NewValuation(prop.ID).WithValue(245000).Build(t, db)

		// Execute
		projection, err := svc.ProjectEntryEquity(user.ID, entry.ID, 0)

		// Assert
		if err != nil {
			t.Fatalf("ProjectEntryEquity() returned unexpected error: %v", err)
		}
		if !almostEqual(projection.ProjectedValue, 245000) {
			t.Errorf("Expected value unchanged at 245000, got %v", projection.ProjectedValue)
		}
	})

	t.Run("returns not found for another user's entry", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPerformanceService(t, db)
		owner := testutil.CreateUser(t, db)
		other := testutil.CreateUser(t, db)
		prop := testutil.CreateProperty(t, db, owner.ID)
		entry := testutil.CreateEntry(t, db, owner.ID, prop.ID)

		// Execute
		_, err := svc.ProjectEntryEquity(other.ID, entry.ID, 24)

		// Assert
		if !errors.Is(err, apperrors.ErrEntryNotFound) {
			t.Errorf("Expected ErrEntryNotFound, got %v", err)
		}
	})
}
