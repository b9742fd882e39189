package domain

import (
	"fmt"
	"sort"
	"time"
)

// CoefficientVector holds the fitted logistic regression coefficients.
// Weights are applied in the order of Fields; see Weights.
type CoefficientVector struct {
	Intercept              float64 `json:"intercept" yaml:"intercept" mapstructure:"intercept"`
	Age                    float64 `json:"age" yaml:"age" mapstructure:"age"`
	GCSPupils              float64 `json:"gcsp" yaml:"gcsp" mapstructure:"gcsp"`
	HematomaVolume         float64 `json:"volume" yaml:"volume" mapstructure:"volume"`
	IVHGrade               float64 `json:"ivh" yaml:"ivh" mapstructure:"ivh"`
	VentricularEnlargement float64 `json:"vent" yaml:"vent" mapstructure:"vent"`
	MidlineShift           float64 `json:"mls" yaml:"mls" mapstructure:"mls"`
	BloodGlucose           float64 `json:"glu" yaml:"glu" mapstructure:"glu"`
}

// Weights returns the per-predictor weights in model order, matching
// ClinicalObservation.Vector.
func (c CoefficientVector) Weights() []float64 {
	return []float64{
		c.Age,
		c.GCSPupils,
		c.HematomaVolume,
		c.IVHGrade,
		c.VentricularEnlargement,
		c.MidlineShift,
		c.BloodGlucose,
	}
}

// ReferenceRange describes the distribution of one predictor in the
// development cohort. Authored data is expected to satisfy
// Min <= P1 <= P99 <= Max; classification does not rely on it.
type ReferenceRange struct {
	Min float64 `json:"min" yaml:"min" mapstructure:"min"`
	Max float64 `json:"max" yaml:"max" mapstructure:"max"`
	P1  float64 `json:"p1" yaml:"p1" mapstructure:"p1"`
	P99 float64 `json:"p99" yaml:"p99" mapstructure:"p99"`
}

// IsOrdered reports whether Min <= P1 <= P99 <= Max.
func (r ReferenceRange) IsOrdered() bool {
	return r.Min <= r.P1 && r.P1 <= r.P99 && r.P99 <= r.Max
}

// ReferenceTable maps every predictor to its reference range.
// The zero value is unusable; build one with NewReferenceTable.
type ReferenceTable struct {
	ranges map[Field]ReferenceRange
}

// NewReferenceTable builds a complete table. Every field in Fields must be
// present; unknown fields are rejected.
func NewReferenceTable(ranges map[Field]ReferenceRange) (ReferenceTable, error) {
	for f := range ranges {
		if !f.IsValid() {
			return ReferenceTable{}, fmt.Errorf("%w: unknown field %q", ErrMissingReferenceData, f)
		}
	}

	table := ReferenceTable{ranges: make(map[Field]ReferenceRange, len(Fields))}
	for _, f := range Fields {
		r, ok := ranges[f]
		if !ok {
			return ReferenceTable{}, fmt.Errorf("%w: no reference range for %q", ErrMissingReferenceData, f)
		}
		table.ranges[f] = r
	}
	return table, nil
}

// Range returns the reference range of f. Tables built by NewReferenceTable
// hold every field in Fields.
func (t ReferenceTable) Range(f Field) ReferenceRange {
	return t.ranges[f]
}

// Ranges returns a copy of the table contents.
func (t ReferenceTable) Ranges() map[Field]ReferenceRange {
	out := make(map[Field]ReferenceRange, len(t.ranges))
	for f, r := range t.ranges {
		out[f] = r
	}
	return out
}

// UnorderedFields lists fields whose range violates Min <= P1 <= P99 <= Max.
func (t ReferenceTable) UnorderedFields() []Field {
	var out []Field
	for _, f := range Fields {
		if !t.ranges[f].IsOrdered() {
			out = append(out, f)
		}
	}
	return out
}

// BandThresholds splits probabilities into three interpretive bands:
// p < Intermediate is Low, p < High is Intermediate, otherwise High.
type BandThresholds struct {
	Name         string  `json:"name" yaml:"name" mapstructure:"name"`
	Intermediate float64 `json:"intermediate" yaml:"intermediate" mapstructure:"intermediate" validate:"gt=0,lt=1"`
	High         float64 `json:"high" yaml:"high" mapstructure:"high" validate:"gtfield=Intermediate,lt=1"`
}

// Label maps a probability to its band.
func (b BandThresholds) Label(p float64) RiskBand {
	switch {
	case p < b.Intermediate:
		return BAND_LOW
	case p < b.High:
		return BAND_INTERMEDIATE
	default:
		return BAND_HIGH
	}
}

// PredictionResult is the model output for one observation.
type PredictionResult struct {
	LinearPredictor float64 `json:"linear_predictor"`
	Probability     float64 `json:"probability"`
}

// FieldAssessment is the range check of one predictor.
type FieldAssessment struct {
	Field Field          `json:"field"`
	Value float64        `json:"value"`
	Flag  RangeFlag      `json:"flag"`
	Range ReferenceRange `json:"range"`
}

// Message describes a flagged value; it is empty when the value is in range.
func (fa FieldAssessment) Message() string {
	switch fa.Flag {
	case RANGE_EXTRAPOLATION:
		return fmt.Sprintf("%s is outside the development cohort range [%g, %g].",
			fa.Field.Label(), fa.Range.Min, fa.Range.Max)
	case RANGE_CAUTION:
		return fmt.Sprintf("%s is outside the typical range (approx. P1-P99 [%g, %g]).",
			fa.Field.Label(), fa.Range.P1, fa.Range.P99)
	default:
		return ""
	}
}

// Assessment is the complete result of evaluating one observation.
type Assessment struct {
	ID          string              `json:"id"`
	EvaluatedAt time.Time           `json:"evaluated_at"`
	ModelName   string              `json:"model_name"`
	Observation ClinicalObservation `json:"observation"`
	Prediction  PredictionResult    `json:"prediction"`
	Band        RiskBand            `json:"band"`
	BandScheme  string              `json:"band_scheme"`
	Fields      []FieldAssessment   `json:"fields"`
}

// Warnings returns the flagged fields, most severe first and in model order
// within a severity.
func (a *Assessment) Warnings() []FieldAssessment {
	var out []FieldAssessment
	for _, fa := range a.Fields {
		if fa.Flag != RANGE_NONE {
			out = append(out, fa)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Flag.Severity() > out[j].Flag.Severity()
	})
	return out
}

// HasExtrapolation reports whether any predictor lies outside the cohort min-max.
func (a *Assessment) HasExtrapolation() bool {
	for _, fa := range a.Fields {
		if fa.Flag == RANGE_EXTRAPOLATION {
			return true
		}
	}
	return false
}
