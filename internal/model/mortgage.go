package model

import "time"

// Mortgage is a loan against a portfolio entry's property.
// current_balance only ever moves down via amortization and is floored at
// zero; it never exceeds original_balance. At most one mortgage per entry
// is primary (enforced at the service layer).
type Mortgage struct {
	ID              string    `json:"id"`
	EntryID         string    `json:"entry_id"`
	Lender          string    `json:"lender"`
	OriginalBalance float64   `json:"original_balance"`
	CurrentBalance  float64   `json:"current_balance"`
	InterestRate    float64   `json:"interest_rate"` // annual rate as a fraction, e.g. 0.06
	MonthlyPayment  float64   `json:"monthly_payment"`
	IsPrimary       bool      `json:"is_primary"`
	CreatedAt       time.Time `json:"created_at"`
}
