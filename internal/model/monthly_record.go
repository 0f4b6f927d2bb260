package model

import "time"

// MonthlyRecord is one calendar month of actual operating results for a
// portfolio entry. Records are append-only; once a month closes the record
// is immutable by convention (not enforced in the database).
type MonthlyRecord struct {
	ID            string           `json:"id"`
	EntryID       string           `json:"entry_id"`
	Month         time.Time        `json:"month"` // first day of the month, UTC
	RentCollected float64          `json:"rent_collected"`
	Expenses      ExpenseBreakdown `json:"expenses"`
	CreatedAt     time.Time        `json:"created_at"`
}

// ExpenseBreakdown itemizes a month's operating expenses. Total is stored
// alongside the items rather than derived, so imports that only know the
// total remain representable.
type ExpenseBreakdown struct {
	Maintenance float64 `json:"maintenance"`
	Taxes       float64 `json:"taxes"`
	Insurance   float64 `json:"insurance"`
	Utilities   float64 `json:"utilities"`
	Management  float64 `json:"management"`
	HOA         float64 `json:"hoa"`
	Other       float64 `json:"other"`
	Total       float64 `json:"total"`
}

// Sum adds up the itemized fields. Callers that build a breakdown from
// items should set Total = Sum().
func (e ExpenseBreakdown) Sum() float64 {
	return e.Maintenance + e.Taxes + e.Insurance + e.Utilities + e.Management + e.HOA + e.Other
}
