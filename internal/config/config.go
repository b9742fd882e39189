package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/ich-recovery-calculator/internal/domain"
)

// Manager implements the ConfigManager interface using Viper
type Manager struct {
	v        *viper.Viper
	config   *domain.Config
	validate *validator.Validate
}

// NewManager creates a new configuration manager. When configFile is empty
// config.yaml is looked up in the default search paths and is optional.
func NewManager(configFile string) (*Manager, error) {
	m := &Manager{
		v:        viper.New(),
		validate: validator.New(),
	}
	if err := m.loadConfig(configFile); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// loadConfig loads configuration from defaults, file and environment
func (m *Manager) loadConfig(configFile string) error {
	if configFile != "" {
		m.v.SetConfigFile(configFile)
	} else {
		m.v.SetConfigName("config")
		m.v.SetConfigType("yaml")
		m.v.AddConfigPath(".")
		m.v.AddConfigPath("./config")
		m.v.AddConfigPath("/etc/ich-recovery-calculator/")
	}

	// ICH_MODEL_COEFFICIENTS_AGE overrides model.coefficients.age
	m.v.SetEnvPrefix("ICH")
	m.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.v.AutomaticEnv()

	m.setDefaults()

	if err := m.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using defaults and environment variables
	}

	config := &domain.Config{}
	if err := m.v.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.config = config
	return nil
}

// setDefaults sets default configuration values
func (m *Manager) setDefaults() {
	// Logging defaults
	m.v.SetDefault("logging.level", "info")
	m.v.SetDefault("logging.format", "json")
	m.v.SetDefault("logging.output", "stderr")

	// Model defaults: the published coefficients with the manuscript reference table
	coeffs := DefaultCoefficients()
	m.v.SetDefault("model.name", DefaultModelName)
	m.v.SetDefault("model.coefficients.intercept", coeffs.Intercept)
	m.v.SetDefault("model.coefficients.age", coeffs.Age)
	m.v.SetDefault("model.coefficients.gcsp", coeffs.GCSPupils)
	m.v.SetDefault("model.coefficients.volume", coeffs.HematomaVolume)
	m.v.SetDefault("model.coefficients.ivh", coeffs.IVHGrade)
	m.v.SetDefault("model.coefficients.vent", coeffs.VentricularEnlargement)
	m.v.SetDefault("model.coefficients.mls", coeffs.MidlineShift)
	m.v.SetDefault("model.coefficients.glu", coeffs.BloodGlucose)
	m.v.SetDefault("model.reference_preset", PresetSCI)

	// Band defaults
	m.v.SetDefault("bands.scheme", PresetSCI)
	m.v.SetDefault("bands.intermediate", 0.0)
	m.v.SetDefault("bands.high", 0.0)
}

// GetConfig returns the complete configuration
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// GetLoggingConfig returns logging configuration
func (m *Manager) GetLoggingConfig() *domain.LoggingConfig {
	return &m.config.Logging
}

// ConfigFileUsed returns the path of the loaded config file, empty if none
func (m *Manager) ConfigFileUsed() string {
	return m.v.ConfigFileUsed()
}

// Coefficients returns the configured coefficient vector
func (m *Manager) Coefficients() domain.CoefficientVector {
	return m.config.Model.Coefficients
}

// ReferenceTable builds the configured reference table. Explicit
// reference_ranges take precedence over reference_preset and must be complete.
func (m *Manager) ReferenceTable() (domain.ReferenceTable, error) {
	model := m.config.Model
	if len(model.ReferenceRanges) == 0 {
		return ReferencePreset(model.ReferencePreset)
	}

	ranges := make(map[domain.Field]domain.ReferenceRange, len(model.ReferenceRanges))
	for name, r := range model.ReferenceRanges {
		if r == nil {
			continue
		}
		for _, key := range referenceRangeKeys {
			if !m.v.IsSet("model.reference_ranges." + name + "." + key) {
				return domain.ReferenceTable{}, fmt.Errorf("%w: reference range for %q has no %s",
					domain.ErrMissingReferenceData, name, key)
			}
		}
		ranges[domain.Field(name)] = *r
	}
	return domain.NewReferenceTable(ranges)
}

// referenceRangeKeys must all be present in an explicit reference range; a
// missing key would otherwise decode as 0.
var referenceRangeKeys = [...]string{"min", "max", "p1", "p99"}

// BandThresholds resolves the configured band scheme
func (m *Manager) BandThresholds() (domain.BandThresholds, error) {
	bands := m.config.Bands
	if bands.Scheme != SchemeCustom {
		return BandPreset(bands.Scheme)
	}

	thresholds := domain.BandThresholds{
		Name:         SchemeCustom,
		Intermediate: bands.Intermediate,
		High:         bands.High,
	}
	if err := m.validate.Struct(thresholds); err != nil {
		return domain.BandThresholds{}, fmt.Errorf("%w: bands: %v", domain.ErrInvalidConfig, err)
	}
	return thresholds, nil
}

// Validate validates the configuration
func (m *Manager) Validate() error {
	config := m.config

	if err := m.validate.Struct(config); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}

	// Validate coefficients
	for i, w := range append([]float64{config.Model.Coefficients.Intercept}, config.Model.Coefficients.Weights()...) {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			name := "intercept"
			if i > 0 {
				name = domain.Fields[i-1].String()
			}
			return fmt.Errorf("%w: coefficient %s must be finite", domain.ErrInvalidConfig, name)
		}
	}

	// Validate reference data
	if _, err := m.ReferenceTable(); err != nil {
		return fmt.Errorf("invalid reference data: %w", err)
	}

	// Validate bands
	if _, err := m.BandThresholds(); err != nil {
		return err
	}

	return nil
}
