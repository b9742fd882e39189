package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ich-recovery-calculator/internal/domain"
)

var referenceCoefficients = domain.CoefficientVector{
	Intercept:              5.706245,
	Age:                    -0.116444,
	GCSPupils:              0.734351,
	HematomaVolume:         0.005742,
	IVHGrade:               -0.208413,
	VentricularEnlargement: -1.470830,
	MidlineShift:           -0.041931,
	BloodGlucose:           -0.166805,
}

var workedExample = domain.ClinicalObservation{
	Age:                    67,
	GCSPupilsScore:         6,
	HematomaVolume:         40.0,
	IVHGrade:               2,
	VentricularEnlargement: false,
	MidlineShift:           8.0,
	BloodGlucose:           9.0,
}

// referenceSum spells out the model equation term by term, independently of
// Weights and Vector.
func referenceSum(c domain.CoefficientVector, o domain.ClinicalObservation) float64 {
	vent := 0.0
	if o.VentricularEnlargement {
		vent = 1.0
	}
	return c.Intercept +
		c.Age*o.Age +
		c.GCSPupils*float64(o.GCSPupilsScore) +
		c.HematomaVolume*o.HematomaVolume +
		c.IVHGrade*float64(o.IVHGrade) +
		c.VentricularEnlargement*vent +
		c.MidlineShift*o.MidlineShift +
		c.BloodGlucose*o.BloodGlucose
}

func TestPredict_WorkedExample(t *testing.T) {
	result := Predict(workedExample, referenceCoefficients)

	assert.InDelta(t, 0.286764, result.LinearPredictor, 1e-9)
	assert.InDelta(t, 0.5712, result.Probability, 1e-4)
	assert.Equal(t, Sigmoid(result.LinearPredictor), result.Probability)
}

func TestRecoveryPredictor_Methods(t *testing.T) {
	p := NewRecoveryPredictor(referenceCoefficients)

	assert.Equal(t, referenceCoefficients, p.Coefficients())
	assert.Equal(t, ComputeLinearPredictor(workedExample, referenceCoefficients), p.ComputeLinearPredictor(workedExample))
	assert.Equal(t, Predict(workedExample, referenceCoefficients), p.Predict(workedExample))
}

func TestPredict_Idempotent(t *testing.T) {
	p := NewRecoveryPredictor(referenceCoefficients)

	first := p.Predict(workedExample)
	second := p.Predict(workedExample)

	assert.Equal(t, math.Float64bits(first.LinearPredictor), math.Float64bits(second.LinearPredictor))
	assert.Equal(t, math.Float64bits(first.Probability), math.Float64bits(second.Probability))
}

func TestComputeLinearPredictor_MatchesReferenceSum(t *testing.T) {
	observations := []struct {
		name string
		obs  domain.ClinicalObservation
	}{
		{"Worked example", workedExample},
		{"Young good grade", domain.ClinicalObservation{Age: 25, GCSPupilsScore: 8, HematomaVolume: 12.5, IVHGrade: 0, MidlineShift: 0, BloodGlucose: 5.2}},
		{"Elderly poor grade", domain.ClinicalObservation{Age: 88, GCSPupilsScore: 1, HematomaVolume: 150, IVHGrade: 4, VentricularEnlargement: true, MidlineShift: 18.5, BloodGlucose: 19.7}},
		{"Cohort medians", domain.ClinicalObservation{Age: 57, GCSPupilsScore: 6, HematomaVolume: 56.41256875, IVHGrade: 1, MidlineShift: 10.2, BloodGlucose: 8.8}},
		{"Vent only", domain.ClinicalObservation{VentricularEnlargement: true}},
	}

	for _, tt := range observations {
		t.Run(tt.name, func(t *testing.T) {
			lp := ComputeLinearPredictor(tt.obs, referenceCoefficients)
			assert.InDelta(t, referenceSum(referenceCoefficients, tt.obs), lp, 1e-12)
		})
	}
}

func TestComputeLinearPredictor_FieldOrder(t *testing.T) {
	// Distinct weights make any swap of coefficient positions visible.
	coeffs := domain.CoefficientVector{
		Intercept:              1000,
		Age:                    2,
		GCSPupils:              3,
		HematomaVolume:         5,
		IVHGrade:               7,
		VentricularEnlargement: 11,
		MidlineShift:           13,
		BloodGlucose:           17,
	}

	probes := []struct {
		field  domain.Field
		obs    domain.ClinicalObservation
		weight float64
	}{
		{domain.FIELD_AGE, domain.ClinicalObservation{Age: 1}, coeffs.Age},
		{domain.FIELD_GCSP, domain.ClinicalObservation{GCSPupilsScore: 1}, coeffs.GCSPupils},
		{domain.FIELD_VOLUME, domain.ClinicalObservation{HematomaVolume: 1}, coeffs.HematomaVolume},
		{domain.FIELD_IVH, domain.ClinicalObservation{IVHGrade: 1}, coeffs.IVHGrade},
		{domain.FIELD_VENT, domain.ClinicalObservation{VentricularEnlargement: true}, coeffs.VentricularEnlargement},
		{domain.FIELD_MLS, domain.ClinicalObservation{MidlineShift: 1}, coeffs.MidlineShift},
		{domain.FIELD_GLUCOSE, domain.ClinicalObservation{BloodGlucose: 1}, coeffs.BloodGlucose},
	}

	for _, tt := range probes {
		t.Run(tt.field.String(), func(t *testing.T) {
			lp := ComputeLinearPredictor(tt.obs, coeffs)
			assert.Equal(t, coeffs.Intercept+tt.weight, lp)
		})
	}

	t.Run("Zero_Observation_Is_Intercept", func(t *testing.T) {
		assert.Equal(t, coeffs.Intercept, ComputeLinearPredictor(domain.ClinicalObservation{}, coeffs))
	})
}

func TestComputeLinearPredictor_DetectsPermutation(t *testing.T) {
	swapped := referenceCoefficients
	swapped.MidlineShift, swapped.BloodGlucose = referenceCoefficients.BloodGlucose, referenceCoefficients.MidlineShift

	lp := ComputeLinearPredictor(workedExample, swapped)

	assert.NotEqual(t, referenceSum(referenceCoefficients, workedExample), lp)
	assert.InDelta(t, referenceSum(swapped, workedExample), lp, 1e-12)
}

func TestSigmoid_Contract(t *testing.T) {
	assert.Equal(t, 0.5, Sigmoid(0))
	assert.Equal(t, 0.0, Sigmoid(-745))
	assert.Equal(t, 0.0, Sigmoid(-1e4))
	assert.InDelta(t, 1.0, Sigmoid(1e4), 1e-15)

	prev := 0.0
	for x := -50.0; x <= 50.0; x += 0.5 {
		p := Sigmoid(x)
		require.GreaterOrEqual(t, p, prev)
		require.LessOrEqual(t, p, 1.0)
		prev = p
	}
}

func TestPredict_ExtremeInputsSaturate(t *testing.T) {
	low := Predict(domain.ClinicalObservation{Age: 1e6}, referenceCoefficients)
	assert.Equal(t, 0.0, low.Probability)
	assert.Less(t, low.LinearPredictor, -745.0)

	high := Predict(domain.ClinicalObservation{Age: -1e6}, referenceCoefficients)
	assert.InDelta(t, 1.0, high.Probability, 1e-15)
}
