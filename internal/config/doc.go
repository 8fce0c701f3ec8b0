// Package config provides configuration management for the attendance tools.
//
// # Configuration Sources
//
// Configuration starts from Default(). Values from the YAML file
// (attendance.yaml next to the executable, or ATTEND_CONFIG_FILE) are laid
// over it, then ATTEND_* environment variables. A layer only overrides the
// keys it sets.
//
// # Environment Variables
//
//	ATTEND_LOGGING_LEVEL=debug
//	ATTEND_GENERATOR_NUM_STUDENTS=50
//	ATTEND_GENERATOR_SEED=7
//	ATTEND_ANALYZER_EXPORT_WORKBOOK=true
//	ATTEND_PATHS_OUTPUT_DIR=/tmp/charts
//
// # Path Management
//
// Paths resolves the data, outputs and logs directories relative to the
// executable directory (or PathsConfig.BaseDir):
//
//	paths, err := cfg.ResolvePaths()
//	chart := paths.GetOutputPath("status_distribution.png")
package config
