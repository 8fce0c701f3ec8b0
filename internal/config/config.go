package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Generator GeneratorConfig `yaml:"generator" envconfig:"GENERATOR"`
	Analyzer  AnalyzerConfig  `yaml:"analyzer" envconfig:"ANALYZER"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig overrides the executable-relative directory layout.
// Relative values are resolved against BaseDir.
type PathsConfig struct {
	BaseDir     string `yaml:"base_dir" envconfig:"BASE_DIR"`
	DataDir     string `yaml:"data_dir" envconfig:"DATA_DIR"`
	OutputDir   string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	LogsDir     string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
	DatasetFile string `yaml:"dataset_file" envconfig:"DATASET_FILE"`
}

// GeneratorConfig controls synthetic dataset generation
type GeneratorConfig struct {
	NumStudents    int    `yaml:"num_students" envconfig:"NUM_STUDENTS"`
	NumDays        int    `yaml:"num_days" envconfig:"NUM_DAYS"`
	StartDate      string `yaml:"start_date" envconfig:"START_DATE"`
	Seed           int64  `yaml:"seed" envconfig:"SEED"`
	ExportWorkbook bool   `yaml:"export_workbook" envconfig:"EXPORT_WORKBOOK"`
}

// AnalyzerConfig controls the analysis run
type AnalyzerConfig struct {
	HeatmapStudents int  `yaml:"heatmap_students" envconfig:"HEATMAP_STUDENTS"`
	WriteSummary    bool `yaml:"write_summary" envconfig:"WRITE_SUMMARY"`
	ExportWorkbook  bool `yaml:"export_workbook" envconfig:"EXPORT_WORKBOOK"`
}

// TelemetryConfig controls tracing and the batch metrics textfile
type TelemetryConfig struct {
	EnableTracing bool   `yaml:"enable_tracing" envconfig:"ENABLE_TRACING"`
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER"`
	EnableMetrics bool   `yaml:"enable_metrics" envconfig:"ENABLE_METRICS"`
	MetricsFile   string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Load loads configuration from the default config file (if any) and the environment
func Load() (*Config, error) {
	return LoadFrom(getConfigFilePath())
}

// LoadFrom builds the configuration in three layers: defaults, then the YAML
// file at path (skipped when empty or missing), then ATTEND_* environment
// variables. Later layers only override the keys they set.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := loadFromFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML values onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Generator.NumStudents <= 0 {
		return fmt.Errorf("number of students must be positive: %d", c.Generator.NumStudents)
	}
	if c.Generator.NumDays <= 0 {
		return fmt.Errorf("number of days must be positive: %d", c.Generator.NumDays)
	}
	if _, err := c.Generator.Start(); err != nil {
		return fmt.Errorf("invalid generator start date %q: %w", c.Generator.StartDate, err)
	}
	if c.Analyzer.HeatmapStudents <= 0 {
		return fmt.Errorf("heatmap student sample must be positive: %d", c.Analyzer.HeatmapStudents)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level: %s", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Output) {
	case "console", "file", "both":
	default:
		return fmt.Errorf("unknown log output: %s", c.Logging.Output)
	}

	if c.Logging.Format != "json" {
		// Logs are always JSON
		c.Logging.Format = "json"
	}

	switch c.Telemetry.TraceExporter {
	case "file", "stdout", "none":
	default:
		return fmt.Errorf("unsupported trace exporter: %s", c.Telemetry.TraceExporter)
	}

	return nil
}

// Start parses the configured anchor date
func (g GeneratorConfig) Start() (time.Time, error) {
	return time.Parse(DateLayout, g.StartDate)
}

// ResolvePaths returns the directory layout with any configured overrides applied
func (c *Config) ResolvePaths() (*Paths, error) {
	base := c.Paths.BaseDir
	if base == "" {
		p, err := GetPaths()
		if err != nil {
			return nil, err
		}
		base = p.ExecutableDir
	}
	paths := GetPathsFrom(base)

	resolve := func(v string) string {
		if filepath.IsAbs(v) {
			return v
		}
		return filepath.Join(base, v)
	}
	if c.Paths.DataDir != "" {
		paths.DataDir = resolve(c.Paths.DataDir)
		paths.DatasetCSV = filepath.Join(paths.DataDir, DatasetFileName)
		paths.DatasetXLSX = filepath.Join(paths.DataDir, DatasetWorkbookName)
	}
	if c.Paths.DatasetFile != "" {
		paths.DatasetCSV = resolve(c.Paths.DatasetFile)
	}
	if c.Paths.OutputDir != "" {
		paths.OutputDir = resolve(c.Paths.OutputDir)
	}
	if c.Paths.LogsDir != "" {
		paths.LogsDir = resolve(c.Paths.LogsDir)
	}
	return paths, nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG_FILE"); p != "" {
		return p
	}

	locations := []string{ConfigFileName}
	if paths, err := GetPaths(); err == nil {
		locations = append([]string{paths.GetRelativePath(ConfigFileName)}, locations...)
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: "",
		},
		Generator: GeneratorConfig{
			NumStudents: DefaultNumStudents,
			NumDays:     DefaultNumDays,
			StartDate:   DefaultStartDate,
			Seed:        DefaultSeed,
		},
		Analyzer: AnalyzerConfig{
			HeatmapStudents: DefaultHeatmapStudents,
			WriteSummary:    true,
		},
		Telemetry: TelemetryConfig{
			EnableTracing: false,
			TraceExporter: "file",
			EnableMetrics: true,
			MetricsFile:   MetricsFileName,
		},
	}
}
