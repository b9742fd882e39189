// Package main provides an example host for the ICH consciousness recovery
// calculator: it scores one observation given on the command line and prints
// the assessment as JSON.
//
// This tool is for research and educational use only. It is not a substitute
// for clinical judgment and the model has not been externally validated.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ich-recovery-calculator/internal/config"
	"github.com/ich-recovery-calculator/internal/domain"
	"github.com/ich-recovery-calculator/internal/logging"
	"github.com/ich-recovery-calculator/internal/service"
)

func main() {
	configFile := flag.String("config", "", "path to config file (default: search ./config.yaml, ./config/, /etc/ich-recovery-calculator/)")
	printModel := flag.Bool("print-model", false, "print the active model definition as YAML and exit")

	age := flag.Float64("age", 67, "age (years)")
	gcsp := flag.Int("gcsp", 6, "GCS-Pupils score (1-8)")
	volume := flag.Float64("volume", 40, "hematoma volume (mL)")
	ivh := flag.Int("ivh", 2, "IVH grade (0-4)")
	vent := flag.Bool("vent", false, "ventricular enlargement")
	mls := flag.Float64("mls", 8, "midline shift (mm)")
	glu := flag.Float64("glu", 9, "admission blood glucose (mmol/L)")
	flag.Parse()

	// Load configuration
	configManager, err := config.NewManager(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	logger := logging.New(*configManager.GetLoggingConfig())
	if path := configManager.ConfigFileUsed(); path != "" {
		logger.WithField("config_file", path).Debug("Loaded configuration file")
	}

	if *printModel {
		mf, err := configManager.ModelFile()
		if err != nil {
			logger.WithError(err).Fatal("Failed to build model definition")
		}
		if err := mf.Write(os.Stdout); err != nil {
			logger.WithError(err).Fatal("Failed to write model definition")
		}
		return
	}

	calculator, err := service.NewCalculatorFromConfig(logger, configManager)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create calculator")
	}

	assessment, err := calculator.Evaluate(domain.ClinicalObservation{
		Age:                    *age,
		GCSPupilsScore:         *gcsp,
		HematomaVolume:         *volume,
		IVHGrade:               *ivh,
		VentricularEnlargement: *vent,
		MidlineShift:           *mls,
		BloodGlucose:           *glu,
	})
	if err != nil {
		logger.WithError(err).WithField("code", domain.ErrorCode(err)).Fatal("Evaluation failed")
	}

	if err := writeReport(os.Stdout, assessment); err != nil {
		logger.WithError(err).Fatal("Failed to write assessment")
	}
}

type report struct {
	*domain.Assessment
	Warnings   []warning `json:"warnings"`
	Disclaimer string    `json:"disclaimer"`
}

type warning struct {
	Field   domain.Field     `json:"field"`
	Flag    domain.RangeFlag `json:"flag"`
	Value   float64          `json:"value"`
	Unit    string           `json:"unit,omitempty"`
	Message string           `json:"message"`
}

func writeReport(w io.Writer, a *domain.Assessment) error {
	r := report{
		Assessment: a,
		Warnings:   []warning{},
		Disclaimer: domain.BandDisclaimer,
	}
	for _, fa := range a.Warnings() {
		r.Warnings = append(r.Warnings, warning{
			Field:   fa.Field,
			Flag:    fa.Flag,
			Value:   fa.Value,
			Unit:    fa.Field.Unit(),
			Message: fa.Message(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding assessment: %w", err)
	}
	return nil
}
