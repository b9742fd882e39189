// Package domain contains the core entities of the ICH consciousness recovery
// calculator: the clinical observation, the fitted model coefficients, the
// development cohort reference ranges and the result types produced from them.
//
// The model is a multivariable logistic regression fitted on a single-center
// retrospective cohort (n = 516) of comatose patients (GCS <= 8) with
// spontaneous supratentorial intracerebral hemorrhage. The outcome is recovery
// of consciousness (follows commands) at 6 months after surgery.
package domain

import "math"

// Field identifies one predictor of the model
type Field string

const (
	FIELD_AGE     Field = "age"
	FIELD_GCSP    Field = "gcsp"
	FIELD_VOLUME  Field = "volume"
	FIELD_IVH     Field = "ivh"
	FIELD_VENT    Field = "vent"
	FIELD_MLS     Field = "mls"
	FIELD_GLUCOSE Field = "glu"
)

// Fields lists every predictor in model order. Coefficients, observation
// vectors and reference tables are all indexed by this order; changing it is a
// breaking change to the fitted model.
var Fields = [...]Field{
	FIELD_AGE,
	FIELD_GCSP,
	FIELD_VOLUME,
	FIELD_IVH,
	FIELD_VENT,
	FIELD_MLS,
	FIELD_GLUCOSE,
}

// IsValid reports whether f is one of the model predictors.
func (f Field) IsValid() bool {
	switch f {
	case FIELD_AGE, FIELD_GCSP, FIELD_VOLUME, FIELD_IVH, FIELD_VENT, FIELD_MLS, FIELD_GLUCOSE:
		return true
	default:
		return false
	}
}

// String returns the string representation of the field.
func (f Field) String() string {
	return string(f)
}

// Label returns the human-readable name of the predictor.
func (f Field) Label() string {
	switch f {
	case FIELD_AGE:
		return "Age"
	case FIELD_GCSP:
		return "GCS-Pupils score"
	case FIELD_VOLUME:
		return "Hematoma volume"
	case FIELD_IVH:
		return "IVH grade"
	case FIELD_VENT:
		return "Ventricular enlargement"
	case FIELD_MLS:
		return "Midline shift"
	case FIELD_GLUCOSE:
		return "Admission blood glucose"
	default:
		return string(f)
	}
}

// Unit returns the measurement unit of the predictor, empty for scores and grades.
func (f Field) Unit() string {
	switch f {
	case FIELD_AGE:
		return "years"
	case FIELD_VOLUME:
		return "mL"
	case FIELD_MLS:
		return "mm"
	case FIELD_GLUCOSE:
		return "mmol/L"
	default:
		return ""
	}
}

// ClinicalObservation holds the seven preoperative predictors of one patient.
// It is a value type: build a new one for every evaluation.
type ClinicalObservation struct {
	Age                    float64 `json:"age"`                     // years
	GCSPupilsScore         int     `json:"gcs_pupils_score"`        // 1-8
	HematomaVolume         float64 `json:"hematoma_volume"`         // mL
	IVHGrade               int     `json:"ivh_grade"`               // 0 none, 1 <25%, 2 25-50%, 3 50-75%, 4 >75%
	VentricularEnlargement bool    `json:"ventricular_enlargement"` // encoded 1/0
	MidlineShift           float64 `json:"midline_shift"`           // mm
	BloodGlucose           float64 `json:"blood_glucose"`           // mmol/L
}

// Vector returns the predictor values in model order.
func (o ClinicalObservation) Vector() []float64 {
	return []float64{
		o.Age,
		float64(o.GCSPupilsScore),
		o.HematomaVolume,
		float64(o.IVHGrade),
		boolToFloat(o.VentricularEnlargement),
		o.MidlineShift,
		o.BloodGlucose,
	}
}

// Validate rejects observations that cannot be scored. Only non-finite values
// are rejected; out-of-cohort values are reported by range classification.
func (o ClinicalObservation) Validate() error {
	for i, v := range o.Vector() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewValidationError(Fields[i].String(), "value must be a finite number", v)
		}
	}
	return nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// RangeFlag is the outcome of checking one value against the development cohort
type RangeFlag string

const (
	RANGE_NONE          RangeFlag = "NONE"
	RANGE_CAUTION       RangeFlag = "CAUTION"       // outside P1-P99, inside min-max
	RANGE_EXTRAPOLATION RangeFlag = "EXTRAPOLATION" // outside the observed min-max
)

// IsValid validates the range flag.
func (rf RangeFlag) IsValid() bool {
	switch rf {
	case RANGE_NONE, RANGE_CAUTION, RANGE_EXTRAPOLATION:
		return true
	default:
		return false
	}
}

// String returns the string representation of the flag.
func (rf RangeFlag) String() string {
	return string(rf)
}

// Severity orders flags for presentation: higher is more severe.
func (rf RangeFlag) Severity() int {
	switch rf {
	case RANGE_EXTRAPOLATION:
		return 2
	case RANGE_CAUTION:
		return 1
	default:
		return 0
	}
}

// RiskBand is an interpretive band for communicating a predicted probability.
type RiskBand string

const (
	BAND_LOW          RiskBand = "Low"
	BAND_INTERMEDIATE RiskBand = "Intermediate"
	BAND_HIGH         RiskBand = "High"
)

// BandDisclaimer accompanies every displayed risk band.
const BandDisclaimer = "Interpretive bands are for communication only. " +
	"They are not part of the fitted model and carry no clinical-guideline authority."

// IsValid validates the band.
func (b RiskBand) IsValid() bool {
	switch b {
	case BAND_LOW, BAND_INTERMEDIATE, BAND_HIGH:
		return true
	default:
		return false
	}
}

// String returns the string representation of the band.
func (b RiskBand) String() string {
	return string(b)
}
