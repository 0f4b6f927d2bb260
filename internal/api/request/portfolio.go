package request

// CreateEntryRequest represents the request body for adding a property to the
// portfolio. Dates are "YYYY-MM-DD". DealID and GroupID are optional links to
// where the deal came from.
type CreateEntryRequest struct {
	PropertyID          string   `json:"propertyId"`
	AcquisitionDate     string   `json:"acquisitionDate"`
	AcquisitionPrice    float64  `json:"acquisitionPrice"`
	MonthlyRent         float64  `json:"monthlyRent"`
	MonthlyExpenses     float64  `json:"monthlyExpenses"`
	OwnershipPercentage *float64 `json:"ownershipPercentage,omitempty"`
	DealID              *string  `json:"dealId,omitempty"`
	GroupID             *string  `json:"groupId,omitempty"`
}

type UpdateEntryRequest struct {
	AcquisitionDate     *string  `json:"acquisitionDate,omitempty"`
	AcquisitionPrice    *float64 `json:"acquisitionPrice,omitempty"`
	MonthlyRent         *float64 `json:"monthlyRent,omitempty"`
	MonthlyExpenses     *float64 `json:"monthlyExpenses,omitempty"`
	OwnershipPercentage *float64 `json:"ownershipPercentage,omitempty"`
}

// UpsertMonthlyRecordRequest creates or replaces the record for a month.
// Month is "YYYY-MM" or "YYYY-MM-DD"; any day component is discarded.
type UpsertMonthlyRecordRequest struct {
	Month         string  `json:"month"`
	RentCollected float64 `json:"rentCollected"`
	Maintenance   float64 `json:"maintenance"`
	Taxes         float64 `json:"taxes"`
	Insurance     float64 `json:"insurance"`
	Utilities     float64 `json:"utilities"`
	Management    float64 `json:"management"`
	HOA           float64 `json:"hoa"`
	Other         float64 `json:"other"`
}

type CreateMortgageRequest struct {
	Lender          string  `json:"lender"`
	OriginalBalance float64 `json:"originalBalance"`
	CurrentBalance  float64 `json:"currentBalance"`
	InterestRate    float64 `json:"interestRate"`
	MonthlyPayment  float64 `json:"monthlyPayment"`
	IsPrimary       bool    `json:"isPrimary"`
}

type UpdateMortgageRequest struct {
	Lender          *string  `json:"lender,omitempty"`
	OriginalBalance *float64 `json:"originalBalance,omitempty"`
	CurrentBalance  *float64 `json:"currentBalance,omitempty"`
	InterestRate    *float64 `json:"interestRate,omitempty"`
	MonthlyPayment  *float64 `json:"monthlyPayment,omitempty"`
	IsPrimary       *bool    `json:"isPrimary,omitempty"`
}
