// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"
	"sort"

	"github.com/loanlogic/loan-logic/pkg/constants"
	"github.com/shopspring/decimal"
)

// exactExponent is low enough that a float64 converts to a decimal without
// any rounding.
const exactExponent = -1074

// Round rounds a value to two decimals, i.e. to represent real currency.
// Rounding applies to the exact binary value and midpoints go to the even
// cent, so 2.675 (stored just below the midpoint) rounds to 2.67 and 0.125
// rounds to 0.12.
func Round(val float64) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return val
	}
	return decimal.NewFromFloatWithExponent(val, exactExponent).RoundBank(constants.DecimalPlaces).InexactFloat64()
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// BelowTolerance reports whether a value is strictly less than one cent in
// magnitude.
func BelowTolerance(val float64) bool {
	return math.Abs(val) < constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// PercentToDecimal converts a percentage such as 3.5 into 0.035.
func PercentToDecimal(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}

// Median returns the median of values, averaging the two middle elements for
// even-length input. The input slice is not modified.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
