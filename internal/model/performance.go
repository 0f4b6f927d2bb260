package model

import "time"

// Assumptions are the tunable constants the performance calculator applies
// when real data is missing or when projecting forward.
type Assumptions struct {
	// AnnualAppreciation is the yearly growth rate applied when a property
	// has no recorded valuations and when projecting future value.
	AnnualAppreciation float64 `json:"annual_appreciation"`
	// BenchmarkAnnualReturn is the market benchmark rate (percent) used for
	// side-by-side comparisons.
	BenchmarkAnnualReturn float64 `json:"benchmark_annual_return"`
}

// DefaultAssumptions returns the standard assumption set.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		AnnualAppreciation:    0.03,
		BenchmarkAnnualReturn: 10.0,
	}
}

// CashFlowPoint is one month of net cash flow in a snapshot's history.
type CashFlowPoint struct {
	Month    time.Time `json:"month"`
	Rent     float64   `json:"rent"`
	Expenses float64   `json:"expenses"`
	Amount   float64   `json:"amount"` // rent minus expenses
}

// EquityPoint is a sampled point on the equity growth curve.
type EquityPoint struct {
	Month           time.Time `json:"month"`
	PropertyValue   float64   `json:"property_value"`
	MortgageBalance float64   `json:"mortgage_balance"`
	Equity          float64   `json:"equity"`
}

// EquityProjection is the modeled value, balance, and equity some number of
// months into the future.
type EquityProjection struct {
	Months           int     `json:"months"`
	ProjectedValue   float64 `json:"projected_value"`
	ProjectedBalance float64 `json:"projected_balance"`
	ProjectedEquity  float64 `json:"projected_equity"`
}

// PerformanceSnapshot is the full computed performance picture for one
// portfolio entry as of a given date.
type PerformanceSnapshot struct {
	EntryID    string    `json:"entry_id"`
	UserID     string    `json:"user_id"`
	PropertyID string    `json:"property_id"`
	AsOf       time.Time `json:"as_of"`

	MonthsOwned int `json:"months_owned"`

	// Cash flow.
	TotalRentCollected     float64         `json:"total_rent_collected"`
	TotalCashFlow          float64         `json:"total_cash_flow"`
	AverageMonthlyCashFlow float64         `json:"average_monthly_cash_flow"`
	CashFlowHistory        []CashFlowPoint `json:"cash_flow_history"`

	// Value and equity.
	AcquisitionPrice float64       `json:"acquisition_price"`
	CurrentValue     float64       `json:"current_value"`
	Appreciation     float64       `json:"appreciation"`
	MortgageBalance  float64       `json:"mortgage_balance"`
	CurrentEquity    float64       `json:"current_equity"`
	PrincipalPaydown float64       `json:"principal_paydown"`
	EquityHistory    []EquityPoint `json:"equity_history"`

	// Capital.
	DownPayment     float64 `json:"down_payment"`
	TotalExpenses   float64 `json:"total_expenses"`
	InvestedCapital float64 `json:"invested_capital"`

	// Return metrics, as percentages rounded to one decimal.
	CashOnCashReturn float64 `json:"cash_on_cash_return"`
	CapRate          float64 `json:"cap_rate"`
	TotalROI         float64 `json:"total_roi"`
	AnnualizedROI    float64 `json:"annualized_roi"`

	// Forward-looking projections.
	FiveYearProjection EquityProjection `json:"five_year_projection"`
	TenYearProjection  EquityProjection `json:"ten_year_projection"`
}

// Benchmark compares portfolio-wide performance against a market index.
type Benchmark struct {
	SP500AnnualReturn        float64 `json:"sp500_annual_return"`
	PortfolioAverageCashFlow float64 `json:"portfolio_average_cash_flow"`
	PortfolioAverageCapRate  float64 `json:"portfolio_average_cap_rate"`
	ComparisonPeriodMonths   int     `json:"comparison_period_months"`
}
