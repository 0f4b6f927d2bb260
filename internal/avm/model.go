package avm

import "time"

// Response represents the raw JSON response from the AVM provider's
// valuation endpoint.
//
// The structure includes:
//   - Estimate: point estimate with confidence band
//   - Address: the normalized address the provider matched
//   - Error: optional error message from the provider
type Response struct {
	Estimate struct {
		Value      float64 `json:"value"`
		High       float64 `json:"high"`
		Low        float64 `json:"low"`
		Confidence float64 `json:"confidence"`
		AsOf       string  `json:"asOf"`
	} `json:"estimate"`
	Address struct {
		Line1 string `json:"line1"`
		City  string `json:"city"`
		State string `json:"state"`
		Zip   string `json:"zip"`
	} `json:"address"`
	Error *string `json:"error"`
}

// Estimate is the application's internal representation of a provider
// valuation after parsing the raw Response.
type Estimate struct {
	Value      float64
	High       float64
	Low        float64
	Confidence float64
	AsOf       time.Time
}
