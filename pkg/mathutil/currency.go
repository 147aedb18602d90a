// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/lufenny/rentvsbuy/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
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

// CAGR computes the compound annual growth rate that turns initial into
// final over the given number of years. It returns 0 when the inputs do
// not define a meaningful rate (non-positive baseline, non-positive final
// value, or no elapsed years); callers rely on this convention instead of
// handling a division-by-zero error.
func CAGR(initial, final float64, years int) float64 {
	if initial <= 0 || final <= 0 || years <= 0 {
		return 0
	}
	return math.Pow(final/initial, 1/float64(years)) - 1
}
