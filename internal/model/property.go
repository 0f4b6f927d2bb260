package model

import "time"

// Property statuses. Retired properties stay queryable for history but are
// hidden from default listings.
const (
	PropertyStatusActive  = "active"
	PropertyStatusRetired = "retired"
)

// Property is a physical rental asset. Portfolio entries reference a
// property; the property itself carries the street-level facts.
type Property struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Zip          string    `json:"zip"`
	PropertyType string    `json:"property_type"` // single_family, duplex, condo, ...
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    float64   `json:"bathrooms"`
	SquareFeet   int       `json:"square_feet"`
	YearBuilt    int       `json:"year_built"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// PropertyFilter for querying properties
type PropertyFilter struct {
	UserID         string
	IncludeRetired bool
}
