package model

import "time"

// Valuation source values. Kept as plain strings in the database; the
// service layer validates against this set on create.
const (
	ValuationSourceAVM           = "avm"
	ValuationSourceAppraisal     = "appraisal"
	ValuationSourceCMA           = "cma"
	ValuationSourceTaxAssessment = "tax_assessment"
	ValuationSourceManual        = "manual"
	ValuationSourceOther         = "other"
)

// ValuationSources lists every accepted source value.
var ValuationSources = []string{
	ValuationSourceAVM,
	ValuationSourceAppraisal,
	ValuationSourceCMA,
	ValuationSourceTaxAssessment,
	ValuationSourceManual,
	ValuationSourceOther,
}

// Valuation is a point-in-time estimated value for a property.
// Repositories return valuations ordered ascending by date; the newest is
// authoritative for "current value".
type Valuation struct {
	ID             string    `json:"id"`
	PropertyID     string    `json:"property_id"`
	EstimatedValue float64   `json:"estimated_value"`
	ValuationDate  time.Time `json:"valuation_date"`
	Source         string    `json:"source"`
	CreatedAt      time.Time `json:"created_at"`
}
