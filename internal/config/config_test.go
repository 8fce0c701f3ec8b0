package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadFrom tests layering of defaults, file and environment
func TestLoadFrom(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		fileContent string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no file and no env",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "both", cfg.Logging.Output)
				assert.Equal(t, 50, cfg.Generator.NumStudents)
				assert.Equal(t, 30, cfg.Generator.NumDays)
				assert.Equal(t, "2023-09-01", cfg.Generator.StartDate)
				assert.Equal(t, int64(42), cfg.Generator.Seed)
				assert.Equal(t, 20, cfg.Analyzer.HeatmapStudents)
				assert.True(t, cfg.Analyzer.WriteSummary)
				assert.False(t, cfg.Analyzer.ExportWorkbook)
				assert.Equal(t, "file", cfg.Telemetry.TraceExporter)
			},
		},
		{
			name: "file overrides defaults",
			fileContent: `
generator:
  num_students: 12
  seed: 7
analyzer:
  export_workbook: true
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 12, cfg.Generator.NumStudents)
				assert.Equal(t, int64(7), cfg.Generator.Seed)
				assert.Equal(t, 30, cfg.Generator.NumDays, "unset keys keep defaults")
				assert.True(t, cfg.Analyzer.ExportWorkbook)
			},
		},
		{
			name: "env overrides file",
			env: map[string]string{
				"ATTEND_GENERATOR_NUM_STUDENTS": "5",
				"ATTEND_LOGGING_LEVEL":          "debug",
			},
			fileContent: `
generator:
  num_students: 12
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 5, cfg.Generator.NumStudents)
				assert.Equal(t, "debug", cfg.Logging.Level)
			},
		},
		{
			name:    "non-positive days rejected",
			env:     map[string]string{"ATTEND_GENERATOR_NUM_DAYS": "0"},
			wantErr: true,
		},
		{
			name:    "bad start date rejected",
			env:     map[string]string{"ATTEND_GENERATOR_START_DATE": "01/09/2023"},
			wantErr: true,
		},
		{
			name:    "unknown log level rejected",
			env:     map[string]string{"ATTEND_LOGGING_LEVEL": "verbose"},
			wantErr: true,
		},
		{
			name:    "unknown trace exporter rejected",
			env:     map[string]string{"ATTEND_TELEMETRY_TRACE_EXPORTER": "otlp"},
			wantErr: true,
		},
		{
			name:        "malformed yaml",
			fileContent: "generator: [",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := ""
			if tt.fileContent != "" {
				path = filepath.Join(t.TempDir(), ConfigFileName)
				require.NoError(t, os.WriteFile(path, []byte(tt.fileContent), 0644))
			}

			cfg, err := LoadFrom(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoadFrom_MissingFileIsIgnored(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultNumStudents, cfg.Generator.NumStudents)
}

func TestResolvePaths(t *testing.T) {
	base := t.TempDir()

	t.Run("defaults under base dir", func(t *testing.T) {
		cfg := Default()
		cfg.Paths.BaseDir = base

		paths, err := cfg.ResolvePaths()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "data"), paths.DataDir)
		assert.Equal(t, filepath.Join(base, "outputs"), paths.OutputDir)
		assert.Equal(t, filepath.Join(base, "logs"), paths.LogsDir)
		assert.Equal(t, filepath.Join(base, "data", "student_attendance.csv"), paths.DatasetCSV)
	})

	t.Run("relative and absolute overrides", func(t *testing.T) {
		abs := filepath.Join(t.TempDir(), "charts")
		cfg := Default()
		cfg.Paths.BaseDir = base
		cfg.Paths.DataDir = "fixtures"
		cfg.Paths.OutputDir = abs

		paths, err := cfg.ResolvePaths()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "fixtures"), paths.DataDir)
		assert.Equal(t, filepath.Join(base, "fixtures", DatasetFileName), paths.DatasetCSV)
		assert.Equal(t, abs, paths.OutputDir)
	})

	t.Run("explicit dataset file", func(t *testing.T) {
		cfg := Default()
		cfg.Paths.BaseDir = base
		cfg.Paths.DatasetFile = "other.csv"

		paths, err := cfg.ResolvePaths()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "other.csv"), paths.DatasetCSV)
	})
}
