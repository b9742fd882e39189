package service

import (
	"github.com/ich-recovery-calculator/internal/domain"
)

// Classify checks one value against a reference range.
// Boundary values are in range: all comparisons are strict.
func Classify(value float64, r domain.ReferenceRange) domain.RangeFlag {
	if value < r.Min || value > r.Max {
		return domain.RANGE_EXTRAPOLATION
	}
	if value < r.P1 || value > r.P99 {
		return domain.RANGE_CAUTION
	}
	return domain.RANGE_NONE
}

// CohortRangeClassifier flags predictors that fall in the tails of, or
// outside, the development cohort. It never alters the prediction.
type CohortRangeClassifier struct {
	table domain.ReferenceTable
}

// NewRangeClassifier creates a classifier over a complete reference table
func NewRangeClassifier(table domain.ReferenceTable) *CohortRangeClassifier {
	return &CohortRangeClassifier{table: table}
}

// ClassifyField classifies a single predictor value
func (c *CohortRangeClassifier) ClassifyField(field domain.Field, value float64) domain.FieldAssessment {
	r := c.table.Range(field)
	return domain.FieldAssessment{
		Field: field,
		Value: value,
		Flag:  Classify(value, r),
		Range: r,
	}
}

// ClassifyObservation classifies every predictor, in model order
func (c *CohortRangeClassifier) ClassifyObservation(obs domain.ClinicalObservation) []domain.FieldAssessment {
	values := obs.Vector()
	out := make([]domain.FieldAssessment, 0, len(domain.Fields))
	for i, f := range domain.Fields {
		out = append(out, c.ClassifyField(f, values[i]))
	}
	return out
}
