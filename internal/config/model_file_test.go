package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ich-recovery-calculator/internal/domain"
)

func TestModelFile_Write(t *testing.T) {
	table, err := ReferencePreset(PresetCohort)
	require.NoError(t, err)
	bands, err := BandPreset(PresetCohort)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewModelFile(DefaultModelName, DefaultCoefficients(), table, bands).Write(&buf))

	out := buf.String()
	assert.Contains(t, out, "intercept: 5.706245")
	assert.Contains(t, out, "vent: -1.47083")
	assert.Contains(t, out, "scheme: cohort")
	assert.Contains(t, out, "communication only")

	var decoded ModelFile
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, DefaultCoefficients(), decoded.Model.Coefficients)
	assert.Len(t, decoded.Model.ReferenceRanges, len(domain.Fields))
	assert.Equal(t, 143.13293718000008, decoded.Model.ReferenceRanges["volume"].P99)
}

func TestModelFile_LoadsBackAsConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Presets", "model:\n  reference_preset: cohort\nbands:\n  scheme: cohort\n"},
		{"Custom", "model:\n  name: recal\n  coefficients:\n    intercept: 3.25\nbands:\n  scheme: custom\n  intermediate: 0.25\n  high: 0.6\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original, err := NewManager(writeConfigFile(t, tt.content))
			require.NoError(t, err)
			require.NoError(t, original.Validate())

			mf, err := original.ModelFile()
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "model.yaml")
			f, err := os.Create(path)
			require.NoError(t, err)
			require.NoError(t, mf.Write(f))
			require.NoError(t, f.Close())

			reloaded, err := NewManager(path)
			require.NoError(t, err)
			require.NoError(t, reloaded.Validate())

			assert.Equal(t, original.GetConfig().Model.Name, reloaded.GetConfig().Model.Name)
			assert.Equal(t, original.Coefficients(), reloaded.Coefficients())

			wantTable, err := original.ReferenceTable()
			require.NoError(t, err)
			gotTable, err := reloaded.ReferenceTable()
			require.NoError(t, err)
			assert.Equal(t, wantTable.Ranges(), gotTable.Ranges())

			wantBands, err := original.BandThresholds()
			require.NoError(t, err)
			gotBands, err := reloaded.BandThresholds()
			require.NoError(t, err)
			assert.Equal(t, wantBands, gotBands)
		})
	}
}
