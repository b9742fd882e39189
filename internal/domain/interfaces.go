package domain

// Predictor scores an observation with a fitted model
type Predictor interface {
	ComputeLinearPredictor(obs ClinicalObservation) float64
	Predict(obs ClinicalObservation) PredictionResult
}

// RangeClassifier checks predictors against the development cohort
type RangeClassifier interface {
	ClassifyField(field Field, value float64) FieldAssessment
	ClassifyObservation(obs ClinicalObservation) []FieldAssessment
}

// BandLabeler maps a probability to an interpretive band
type BandLabeler interface {
	Label(p float64) RiskBand
}

// ConfigManager defines the interface for configuration management
type ConfigManager interface {
	GetConfig() *Config
	GetLoggingConfig() *LoggingConfig
	Coefficients() CoefficientVector
	ReferenceTable() (ReferenceTable, error)
	BandThresholds() (BandThresholds, error)
	Validate() error
}
