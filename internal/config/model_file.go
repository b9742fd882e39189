package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ich-recovery-calculator/internal/domain"
)

// ModelFile is the reproducibility record of the active model. Written as
// YAML it is itself a valid config file for NewManager.
type ModelFile struct {
	Model ModelSection `yaml:"model"`
	Bands BandSection  `yaml:"bands"`
}

// ModelSection lists coefficients and the resolved reference table
type ModelSection struct {
	Name            string                           `yaml:"name"`
	Equation        string                           `yaml:"equation"`
	Coefficients    domain.CoefficientVector         `yaml:"coefficients"`
	ReferenceRanges map[string]domain.ReferenceRange `yaml:"reference_ranges"`
}

// BandSection records the band thresholds in use
type BandSection struct {
	Scheme       string  `yaml:"scheme"`
	Intermediate float64 `yaml:"intermediate"`
	High         float64 `yaml:"high"`
	Disclaimer   string  `yaml:"disclaimer"`
}

const modelEquation = "P = 1 / (1 + exp(-LP)), LP = b0 + b_age*age + b_gcsp*gcsp + b_volume*volume + " +
	"b_ivh*ivh + b_vent*vent + b_mls*mls + b_glu*glu"

// NewModelFile captures the given model configuration
func NewModelFile(name string, coeffs domain.CoefficientVector, table domain.ReferenceTable, bands domain.BandThresholds) *ModelFile {
	ranges := make(map[string]domain.ReferenceRange, len(domain.Fields))
	for f, r := range table.Ranges() {
		ranges[f.String()] = r
	}

	return &ModelFile{
		Model: ModelSection{
			Name:            name,
			Equation:        modelEquation,
			Coefficients:    coeffs,
			ReferenceRanges: ranges,
		},
		Bands: BandSection{
			Scheme:       bands.Name,
			Intermediate: bands.Intermediate,
			High:         bands.High,
			Disclaimer:   domain.BandDisclaimer,
		},
	}
}

// ModelFile captures the model configured in the manager
func (m *Manager) ModelFile() (*ModelFile, error) {
	table, err := m.ReferenceTable()
	if err != nil {
		return nil, err
	}
	bands, err := m.BandThresholds()
	if err != nil {
		return nil, err
	}
	return NewModelFile(m.config.Model.Name, m.Coefficients(), table, bands), nil
}

// Write encodes the model file as YAML
func (f *ModelFile) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("failed to encode model file: %w", err)
	}
	return enc.Close()
}
