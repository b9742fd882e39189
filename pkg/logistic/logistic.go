// Package logistic provides the arithmetic of a fitted logistic regression model:
// the linear predictor and its sigmoid transform.
//
// Both functions are pure and deterministic. LinearPredictor accumulates terms
// strictly left to right without fused multiply-add so that the same inputs
// produce bit-identical output on every platform.
package logistic

import "math"

// errDimensionMismatch is the panic value of LinearPredictor for slices of different lengths
const errDimensionMismatch = "logistic: weights and values have different lengths"

// LinearPredictor returns intercept + Σ weights[i]·values[i].
// The sum is evaluated in index order, starting from the intercept.
// It panics if the slices differ in length.
func LinearPredictor(intercept float64, weights, values []float64) float64 {
	if len(weights) != len(values) {
		panic(errDimensionMismatch)
	}

	lp := intercept
	for i := range weights {
		// no FMA: the conversion forces the product to be rounded
		lp += float64(weights[i] * values[i])
	}
	return lp
}

// Sigmoid returns 1/(1+e^(-x)).
//
// When e^(-x) is not representable as a float64 the result saturates to its
// mathematical limit: 0 for x < 0 and 1 for x >= 0.
func Sigmoid(x float64) float64 {
	e := math.Exp(-x)
	if math.IsInf(e, 1) {
		if x < 0 {
			return 0.0
		}
		return 1.0
	}
	return 1.0 / (1.0 + e)
}

