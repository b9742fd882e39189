package domain

// Config represents the main application configuration
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Model   ModelConfig   `mapstructure:"model" yaml:"model"`
	Bands   BandsConfig   `mapstructure:"bands" yaml:"bands"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=trace debug info warn error fatal panic"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=json text"`
	Output string `mapstructure:"output" yaml:"output" validate:"oneof=stdout stderr"`
}

// ModelConfig selects the coefficients and reference data used for scoring.
// When ReferenceRanges is non-empty it replaces ReferencePreset and must name
// every predictor.
type ModelConfig struct {
	Name            string                     `mapstructure:"name" yaml:"name" validate:"required"`
	Coefficients    CoefficientVector          `mapstructure:"coefficients" yaml:"coefficients"`
	ReferencePreset string                     `mapstructure:"reference_preset" yaml:"reference_preset,omitempty"`
	ReferenceRanges map[string]*ReferenceRange `mapstructure:"reference_ranges" yaml:"reference_ranges,omitempty"`
}

// BandsConfig selects the interpretive band thresholds. Scheme is a preset name
// or "custom", in which case Intermediate and High are used.
type BandsConfig struct {
	Scheme       string  `mapstructure:"scheme" yaml:"scheme" validate:"required"`
	Intermediate float64 `mapstructure:"intermediate" yaml:"intermediate,omitempty"`
	High         float64 `mapstructure:"high" yaml:"high,omitempty"`
}
