package config

import (
	"fmt"
	"sort"

	"github.com/ich-recovery-calculator/internal/domain"
)

// DefaultModelName identifies the published development model
const DefaultModelName = "ich-6m-consciousness-recovery-v1"

// Preset names shared by reference tables and band schemes
const (
	PresetSCI    = "sci"
	PresetCohort = "cohort"
	SchemeCustom = "custom"
)

// DefaultCoefficients returns the coefficients of the published model
// (multivariable logistic regression, development cohort n = 516).
// Any change here requires revalidation of the model output.
func DefaultCoefficients() domain.CoefficientVector {
	return domain.CoefficientVector{
		Intercept:              5.706245,
		Age:                    -0.116444,
		GCSPupils:              0.734351,
		HematomaVolume:         0.005742,
		IVHGrade:               -0.208413,
		VentricularEnlargement: -1.470830,
		MidlineShift:           -0.041931,
		BloodGlucose:           -0.166805,
	}
}

// referencePresets holds the two authored reference tables.
//
// sci: hand-authored min/max with approximate P1/P99 from the manuscript
// version. Ventricular enlargement has no separate percentiles there, so its
// P1/P99 equal its min/max.
//
// cohort: empirical min/max/P1/P99 of the development cohort.
var referencePresets = map[string]map[domain.Field]domain.ReferenceRange{
	PresetSCI: {
		domain.FIELD_AGE:     {Min: 16, Max: 96, P1: 25, P99: 88},
		domain.FIELD_GCSP:    {Min: 1, Max: 8, P1: 1, P99: 8},
		domain.FIELD_VOLUME:  {Min: 0.0, Max: 200.0, P1: 10.0, P99: 120.0},
		domain.FIELD_IVH:     {Min: 0, Max: 4, P1: 0, P99: 4},
		domain.FIELD_VENT:    {Min: 0, Max: 1, P1: 0, P99: 1},
		domain.FIELD_MLS:     {Min: 0.0, Max: 30.0, P1: 0.0, P99: 20.0},
		domain.FIELD_GLUCOSE: {Min: 2.0, Max: 30.0, P1: 4.0, P99: 20.0},
	},
	PresetCohort: {
		domain.FIELD_AGE:     {Min: 17.0, Max: 89.0, P1: 32.3, P99: 84.0},
		domain.FIELD_GCSP:    {Min: 1.0, Max: 8.0, P1: 1.0, P99: 8.0},
		domain.FIELD_VOLUME:  {Min: 25.063675, Max: 173.4671222, P1: 26.7790338, P99: 143.13293718000008},
		domain.FIELD_IVH:     {Min: 0.0, Max: 4.0, P1: 0.0, P99: 4.0},
		domain.FIELD_VENT:    {Min: 0.0, Max: 1.0, P1: 0.0, P99: 1.0},
		domain.FIELD_MLS:     {Min: 0.0, Max: 22.8, P1: 3.5, P99: 19.968500000000006},
		domain.FIELD_GLUCOSE: {Min: 1.9, Max: 30.3, P1: 5.015, P99: 20.62500000000001},
	},
}

// bandPresets holds the interpretive band schemes used by the calculator variants
var bandPresets = map[string]domain.BandThresholds{
	PresetSCI:    {Name: PresetSCI, Intermediate: 0.20, High: 0.50},
	PresetCohort: {Name: PresetCohort, Intermediate: 0.40, High: 0.70},
}

// ReferencePreset returns a complete reference table by preset name
func ReferencePreset(name string) (domain.ReferenceTable, error) {
	ranges, ok := referencePresets[name]
	if !ok {
		return domain.ReferenceTable{}, fmt.Errorf("%w: unknown reference preset %q (available: %v)",
			domain.ErrInvalidConfig, name, PresetNames())
	}
	return domain.NewReferenceTable(ranges)
}

// BandPreset returns band thresholds by scheme name
func BandPreset(name string) (domain.BandThresholds, error) {
	bands, ok := bandPresets[name]
	if !ok {
		return domain.BandThresholds{}, fmt.Errorf("%w: unknown band scheme %q (available: %v, %s)",
			domain.ErrInvalidConfig, name, PresetNames(), SchemeCustom)
	}
	return bands, nil
}

// PresetNames lists the available preset names, sorted
func PresetNames() []string {
	names := make([]string, 0, len(referencePresets))
	for name := range referencePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
