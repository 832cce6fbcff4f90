package stats

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Round2 rounds half away from zero to two decimal places. Reported values
// and counter multipliers all use this precision.
func Round2(x float64) float64 {
	return scalar.Round(x, 2)
}

// Round4 is used for advantage fractions.
func Round4(x float64) float64 {
	return scalar.Round(x, 4)
}
