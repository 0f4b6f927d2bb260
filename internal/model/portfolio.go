package model

import "time"

// PortfolioEntry represents one property's ownership record for a user.
// Entries are soft-deactivated on removal (is_active = false), never hard-deleted,
// so historical monthly records and mortgages stay reachable.
type PortfolioEntry struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"user_id"`
	PropertyID          string    `json:"property_id"`
	AcquisitionDate     time.Time `json:"acquisition_date"`
	AcquisitionPrice    float64   `json:"acquisition_price"`
	DealID              *string   `json:"deal_id,omitempty"`  // set when the entry was converted from a closed deal
	GroupID             *string   `json:"group_id,omitempty"` // optional portfolio group reference
	MonthlyRent         float64   `json:"monthly_rent"`
	MonthlyExpenses     float64   `json:"monthly_expenses"`
	OwnershipPercentage float64   `json:"ownership_percentage"`
	IsActive            bool      `json:"is_active"`
	CreatedAt           time.Time `json:"created_at"`
}

// PortfolioEntryFilter for querying portfolio entries
type PortfolioEntryFilter struct {
	UserID          string
	PropertyID      string
	IncludeInactive bool
}
