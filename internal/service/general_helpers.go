package service

import "math"

// RoundingPrecision is the multiplier used when rounding monetary values
// (100 = two decimal places).
const RoundingPrecision = 100

// PercentPrecision is the multiplier used when rounding percentage values
// (10 = one decimal place).
const PercentPrecision = 10

// round rounds a float64 value to two decimal places using the package RoundingPrecision constant.
// This function is used throughout the service layer to ensure consistent rounding of monetary
// values in API responses.
//
// The rounding uses the standard "round half up" approach via math.Round.
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}

// roundPercent rounds a percentage to one decimal place.
func roundPercent(value float64) float64 {
	return math.Round(value*PercentPrecision) / PercentPrecision
}
