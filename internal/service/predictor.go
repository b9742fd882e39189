package service

import (
	"github.com/ich-recovery-calculator/internal/domain"
	"github.com/ich-recovery-calculator/pkg/logistic"
)

// RecoveryPredictor scores observations with one fixed coefficient vector.
// The coefficients are copied at construction and never change.
type RecoveryPredictor struct {
	coeffs domain.CoefficientVector
}

// NewRecoveryPredictor creates a predictor for the given coefficients
func NewRecoveryPredictor(coeffs domain.CoefficientVector) *RecoveryPredictor {
	return &RecoveryPredictor{coeffs: coeffs}
}

// Coefficients returns the coefficient vector used by the predictor
func (p *RecoveryPredictor) Coefficients() domain.CoefficientVector {
	return p.coeffs
}

// ComputeLinearPredictor returns β0 + Σ βi·xi over the observation in model order
func (p *RecoveryPredictor) ComputeLinearPredictor(obs domain.ClinicalObservation) float64 {
	return ComputeLinearPredictor(obs, p.coeffs)
}

// Predict returns the linear predictor and the probability of recovery
func (p *RecoveryPredictor) Predict(obs domain.ClinicalObservation) domain.PredictionResult {
	return Predict(obs, p.coeffs)
}

// ComputeLinearPredictor returns coeffs.Intercept plus the weighted sum of the
// observation. Weights and values are paired by position in domain.Fields.
func ComputeLinearPredictor(obs domain.ClinicalObservation, coeffs domain.CoefficientVector) float64 {
	return logistic.LinearPredictor(coeffs.Intercept, coeffs.Weights(), obs.Vector())
}

// Sigmoid returns 1/(1+e^(-x)), saturating to 0 or 1 on overflow
func Sigmoid(x float64) float64 {
	return logistic.Sigmoid(x)
}

// Predict composes ComputeLinearPredictor and Sigmoid
func Predict(obs domain.ClinicalObservation, coeffs domain.CoefficientVector) domain.PredictionResult {
	lp := ComputeLinearPredictor(obs, coeffs)
	return domain.PredictionResult{
		LinearPredictor: lp,
		Probability:     Sigmoid(lp),
	}
}
