package service

import (
	"math"
	"time"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/model"
)

// PerformanceCalculator derives the full performance picture for a portfolio
// entry from its raw history. It is a pure computation: every input is passed
// in, nothing is fetched, and identical inputs produce identical outputs.
//
// Callers must supply monthly records and valuations in ascending date order;
// the calculator does not re-sort. The newest valuation (last in the slice)
// is authoritative for current value.
//
// Known modeling approximations, kept deliberately:
//   - Operating expenses are folded into invested capital when computing
//     cash-on-cash and total ROI, so a property with heavy expense history
//     shows a larger capital base, not just lower cash flow.
//   - NOI adds back only the primary mortgage's payment, while equity and
//     principal paydown use the aggregate balance across all mortgages.
//
// Changing either would change every historical number users have seen, so
// they stay until the model is versioned.
type PerformanceCalculator struct {
	assumptions model.Assumptions
}

// NewPerformanceCalculator creates a calculator with the given assumption set.
// Use model.DefaultAssumptions() unless a caller needs to vary the rates.
func NewPerformanceCalculator(assumptions model.Assumptions) *PerformanceCalculator {
	return &PerformanceCalculator{assumptions: assumptions}
}

// equityHistoryMaxPoints caps the equity history series length. Older entries
// are sampled at a coarser step instead of growing the series.
const equityHistoryMaxPoints = 60

// Calculate produces a PerformanceSnapshot for one entry as of the given date.
//
// Degenerate inputs (no records, no mortgages, no valuations, zero invested
// capital) produce zeroed metrics rather than errors; division by zero is
// guarded everywhere with an explicit zero fallback.
func (c *PerformanceCalculator) Calculate(
	entry model.PortfolioEntry,
	records []model.MonthlyRecord,
	mortgages []model.Mortgage,
	valuations []model.Valuation,
	asOf time.Time,
) model.PerformanceSnapshot {
	monthsOwned := monthsBetween(entry.AcquisitionDate, asOf)

	// Cash flow aggregation, one history point per record, in record order.
	var totalRent, totalExpenses float64
	cashFlowHistory := make([]model.CashFlowPoint, 0, len(records))
	for _, rec := range records {
		totalRent += rec.RentCollected
		totalExpenses += rec.Expenses.Total
		cashFlowHistory = append(cashFlowHistory, model.CashFlowPoint{
			Month:    rec.Month,
			Rent:     rec.RentCollected,
			Expenses: rec.Expenses.Total,
			Amount:   rec.RentCollected - rec.Expenses.Total,
		})
	}
	totalCashFlow := totalRent - totalExpenses

	// With no recorded months yet, fall back to the entry's static estimate.
	averageMonthlyCashFlow := entry.MonthlyRent - entry.MonthlyExpenses
	if len(records) > 0 {
		averageMonthlyCashFlow = totalCashFlow / float64(len(records))
	}

	// Aggregate balance spans all mortgages; amortization math uses the
	// primary only.
	var primary *model.Mortgage
	var aggregateBalance float64
	for i := range mortgages {
		aggregateBalance += mortgages[i].CurrentBalance
		if mortgages[i].IsPrimary && primary == nil {
			primary = &mortgages[i]
		}
	}

	var primaryOriginal, primaryPayment float64
	if primary != nil {
		primaryOriginal = primary.OriginalBalance
		primaryPayment = primary.MonthlyPayment
	}

	currentValue := c.estimatedValue(entry.AcquisitionPrice, monthsOwned)
	if len(valuations) > 0 {
		currentValue = valuations[len(valuations)-1].EstimatedValue
	}
	appreciation := currentValue - entry.AcquisitionPrice
	currentEquity := currentValue - aggregateBalance
	principalPaydown := primaryOriginal - aggregateBalance

	// No primary mortgage means an all-cash purchase.
	downPayment := entry.AcquisitionPrice
	if primary != nil {
		downPayment = entry.AcquisitionPrice - primary.OriginalBalance
	}
	investedCapital := downPayment + totalExpenses

	annualCashFlow := averageMonthlyCashFlow * 12

	var cashOnCash float64
	if investedCapital != 0 {
		cashOnCash = annualCashFlow / investedCapital * 100
	}

	var capRate float64
	if currentValue != 0 {
		noi := annualCashFlow + primaryPayment*12
		capRate = noi / currentValue * 100
	}

	var totalROI float64
	if investedCapital != 0 {
		totalROI = (totalCashFlow + appreciation + principalPaydown) / investedCapital * 100
	}

	// Annualizing uses fractional years, unlike the value estimate.
	var annualizedROI float64
	yearsOwned := float64(monthsOwned) / 12
	if yearsOwned > 0 && investedCapital != 0 {
		base := 1 + totalROI/100
		if base > 0 {
			annualizedROI = (math.Pow(base, 1/yearsOwned) - 1) * 100
		}
	}

	return model.PerformanceSnapshot{
		EntryID:     entry.ID,
		UserID:      entry.UserID,
		PropertyID:  entry.PropertyID,
		AsOf:        asOf,
		MonthsOwned: monthsOwned,

		TotalRentCollected:     totalRent,
		TotalCashFlow:          totalCashFlow,
		AverageMonthlyCashFlow: averageMonthlyCashFlow,
		CashFlowHistory:        cashFlowHistory,

		AcquisitionPrice: entry.AcquisitionPrice,
		CurrentValue:     currentValue,
		Appreciation:     appreciation,
		MortgageBalance:  aggregateBalance,
		CurrentEquity:    currentEquity,
		PrincipalPaydown: principalPaydown,
		EquityHistory:    c.equityHistory(entry, valuations, primary, monthsOwned),

		DownPayment:     downPayment,
		TotalExpenses:   totalExpenses,
		InvestedCapital: investedCapital,

		CashOnCashReturn: roundPercent(cashOnCash),
		CapRate:          roundPercent(capRate),
		TotalROI:         roundPercent(totalROI),
		AnnualizedROI:    roundPercent(annualizedROI),

		FiveYearProjection: c.ProjectEquity(currentValue, aggregateBalance, primary, 60),
		TenYearProjection:  c.ProjectEquity(currentValue, aggregateBalance, primary, 120),
	}
}

// equityHistory walks month offsets from acquisition to now and samples
// property value against the primary mortgage's amortizing balance. The walk
// is capped at equityHistoryMaxPoints by widening the step, so a ten-year
// entry yields 60 samples two months apart rather than 120.
//
// The balance track is an approximation: amortization steps are batched per
// sample rather than computed on a precise schedule.
func (c *PerformanceCalculator) equityHistory(
	entry model.PortfolioEntry,
	valuations []model.Valuation,
	primary *model.Mortgage,
	monthsOwned int,
) []model.EquityPoint {
	points := monthsOwned
	if points > equityHistoryMaxPoints {
		points = equityHistoryMaxPoints
	}
	step := monthsOwned / points
	if step < 1 {
		step = 1
	}

	var balance, monthlyRate, payment float64
	if primary != nil {
		balance = primary.OriginalBalance
		monthlyRate = primary.InterestRate / 12
		payment = primary.MonthlyPayment
	}

	series := make([]model.EquityPoint, 0, points)
	for i := 0; i < monthsOwned && len(series) < equityHistoryMaxPoints; i += step {
		sampleDate := entry.AcquisitionDate.AddDate(0, i, 0)

		value := c.estimatedValue(entry.AcquisitionPrice, i)
		for _, v := range valuations {
			if !v.ValuationDate.After(sampleDate) {
				value = v.EstimatedValue
				break
			}
		}

		series = append(series, model.EquityPoint{
			Month:           sampleDate,
			PropertyValue:   value,
			MortgageBalance: balance,
			Equity:          value - balance,
		})

		for s := 0; s < step; s++ {
			balance = amortizeStep(balance, monthlyRate, payment)
		}
	}

	return series
}

// ProjectEquity models appreciation and mortgage paydown a number of months
// into the future, starting from the given value and aggregate balance. The
// projection iterates every month (no sampling step) and amortizes with the
// primary mortgage's rate and payment. months = 0 returns the inputs
// unchanged.
func (c *PerformanceCalculator) ProjectEquity(currentValue, currentBalance float64, primary *model.Mortgage, months int) model.EquityProjection {
	var monthlyRate, payment float64
	if primary != nil {
		monthlyRate = primary.InterestRate / 12
		payment = primary.MonthlyPayment
	}

	value := currentValue
	balance := currentBalance
	monthlyGrowth := c.assumptions.AnnualAppreciation / 12

	for i := 0; i < months; i++ {
		value *= 1 + monthlyGrowth
		balance = amortizeStep(balance, monthlyRate, payment)
	}

	return model.EquityProjection{
		Months:           months,
		ProjectedValue:   value,
		ProjectedBalance: balance,
		ProjectedEquity:  value - balance,
	}
}

// Benchmark aggregates snapshots into a portfolio-wide market comparison.
// The market rate is a static assumption, not live index data.
func (c *PerformanceCalculator) Benchmark(snapshots []model.PerformanceSnapshot) model.Benchmark {
	var totalCashFlow, totalCapRate float64
	var periodMonths int
	for _, s := range snapshots {
		totalCashFlow += s.AverageMonthlyCashFlow
		totalCapRate += s.CapRate
		if s.MonthsOwned > periodMonths {
			periodMonths = s.MonthsOwned
		}
	}

	var avgCashFlow, avgCapRate float64
	if len(snapshots) > 0 {
		avgCashFlow = totalCashFlow / float64(len(snapshots))
		avgCapRate = totalCapRate / float64(len(snapshots))
	}

	return model.Benchmark{
		SP500AnnualReturn:        c.assumptions.BenchmarkAnnualReturn,
		PortfolioAverageCashFlow: round(avgCashFlow),
		PortfolioAverageCapRate:  roundPercent(avgCapRate),
		ComparisonPeriodMonths:   periodMonths,
	}
}

// estimatedValue compounds the acquisition price at the assumed appreciation
// rate. Growth applies in whole-year increments: a property owned eleven
// months is still carried at its acquisition price.
func (c *PerformanceCalculator) estimatedValue(acquisitionPrice float64, monthsElapsed int) float64 {
	years := monthsElapsed / 12
	if years == 0 {
		return acquisitionPrice
	}
	return acquisitionPrice * math.Pow(1+c.assumptions.AnnualAppreciation, float64(years))
}

// amortizeStep advances a loan balance by one payment: interest accrues on
// the running balance, the remainder of the payment reduces principal, and
// the balance never drops below zero.
func amortizeStep(balance, monthlyRate, payment float64) float64 {
	interest := balance * monthlyRate
	principal := payment - interest
	balance -= principal
	if balance < 0 {
		balance = 0
	}
	return balance
}

// monthsBetween counts calendar months from acquisition to asOf, floored at
// one so same-month acquisitions still register a month of ownership.
func monthsBetween(acquisition, asOf time.Time) int {
	months := (asOf.Year()-acquisition.Year())*12 + int(asOf.Month()) - int(acquisition.Month())
	if months < 1 {
		months = 1
	}
	return months
}
