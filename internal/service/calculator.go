package service

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ich-recovery-calculator/internal/domain"
)

var (
	_ domain.Predictor       = (*RecoveryPredictor)(nil)
	_ domain.RangeClassifier = (*CohortRangeClassifier)(nil)
	_ domain.BandLabeler     = domain.BandThresholds{}
)

// Calculator evaluates clinical observations end to end: input validation,
// range classification, prediction and band labelling. It holds only
// immutable configuration and is safe for concurrent use.
type Calculator struct {
	logger     *logrus.Logger
	modelName  string
	predictor  domain.Predictor
	classifier domain.RangeClassifier
	bands      domain.BandThresholds
}

// NewCalculator creates a calculator from already validated configuration
func NewCalculator(
	logger *logrus.Logger,
	modelName string,
	coeffs domain.CoefficientVector,
	table domain.ReferenceTable,
	bands domain.BandThresholds,
) *Calculator {
	return &Calculator{
		logger:     logger,
		modelName:  modelName,
		predictor:  NewRecoveryPredictor(coeffs),
		classifier: NewRangeClassifier(table),
		bands:      bands,
	}
}

// NewCalculatorFromConfig builds a calculator from a configuration manager
func NewCalculatorFromConfig(logger *logrus.Logger, cm domain.ConfigManager) (*Calculator, error) {
	table, err := cm.ReferenceTable()
	if err != nil {
		return nil, fmt.Errorf("failed to build reference table: %w", err)
	}

	bands, err := cm.BandThresholds()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve band thresholds: %w", err)
	}

	if unordered := table.UnorderedFields(); len(unordered) > 0 {
		logger.WithField("fields", unordered).Warn("Reference ranges do not satisfy min <= p1 <= p99 <= max")
	}

	cfg := cm.GetConfig()
	logger.WithFields(logrus.Fields{
		"model":       cfg.Model.Name,
		"band_scheme": bands.Name,
	}).Debug("Calculator configured")

	return NewCalculator(logger, cfg.Model.Name, cm.Coefficients(), table, bands), nil
}

// Bands returns the band thresholds in use
func (c *Calculator) Bands() domain.BandThresholds {
	return c.bands
}

// Evaluate scores one observation and reports its range warnings.
// Observations with non-finite values, or whose linear predictor is NaN, are
// rejected with a *domain.ValidationError.
func (c *Calculator) Evaluate(obs domain.ClinicalObservation) (*domain.Assessment, error) {
	if err := obs.Validate(); err != nil {
		c.logger.WithError(err).Warn("Rejected clinical observation")
		return nil, fmt.Errorf("invalid observation: %w", err)
	}

	prediction := c.predictor.Predict(obs)
	if math.IsNaN(prediction.LinearPredictor) {
		// finite inputs whose weighted terms overflow to +Inf and -Inf
		err := domain.NewValidationError("linear_predictor", "weighted sum is not a number", prediction.LinearPredictor)
		c.logger.WithError(err).Warn("Rejected clinical observation")
		return nil, fmt.Errorf("invalid observation: %w", err)
	}

	fields := c.classifier.ClassifyObservation(obs)

	assessment := &domain.Assessment{
		ID:          uuid.New().String(),
		EvaluatedAt: time.Now().UTC(),
		ModelName:   c.modelName,
		Observation: obs,
		Prediction:  prediction,
		Band:        c.bands.Label(prediction.Probability),
		BandScheme:  c.bands.Name,
		Fields:      fields,
	}

	warnings := assessment.Warnings()
	for _, w := range warnings {
		c.logger.WithFields(logrus.Fields{
			"assessment_id": assessment.ID,
			"field":         w.Field,
			"value":         w.Value,
			"flag":          w.Flag,
		}).Debug(w.Message())
	}

	c.logger.WithFields(logrus.Fields{
		"assessment_id":    assessment.ID,
		"model":            c.modelName,
		"linear_predictor": prediction.LinearPredictor,
		"probability":      prediction.Probability,
		"band":             assessment.Band,
		"warnings":         len(warnings),
		"extrapolation":    assessment.HasExtrapolation(),
	}).Info("Recovery prediction completed")

	return assessment, nil
}
