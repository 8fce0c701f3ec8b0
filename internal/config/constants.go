package config

import "github.com/raziya7781/Attendance-Dataset-Analysis/pkg/contracts"

// Application constants
const (
	AppName    = "Attendance Dataset Analysis"
	AppVersion = contracts.Version

	// EnvPrefix namespaces every environment variable (ATTEND_LOGGING_LEVEL, ...)
	EnvPrefix      = "ATTEND"
	ConfigFileName = "attendance.yaml"

	DateLayout = "2006-01-02"

	// Directory layout (relative to the base directory)
	DefaultDataDir   = "data"
	DefaultOutputDir = "outputs"
	DefaultLogsDir   = "logs"

	// Well-known files
	DatasetFileName      = "student_attendance.csv"
	DatasetWorkbookName  = "student_attendance.xlsx"
	StudentSummaryName   = "student_summary.csv"
	SummaryFileName      = "day_wise_summary.csv"
	SummaryWorkbookName  = "attendance_summary.xlsx"
	MetricsFileName      = "attendance.prom"
	GeneratorMetricsName = "generator.prom"
	TraceFileName        = "traces.json"
	GeneratorLogFileName = "generator.log"
	AnalyzerLogFileName  = "analyzer.log"

	// Generator defaults
	DefaultNumStudents = 50
	DefaultNumDays     = 30
	DefaultStartDate   = "2023-09-01"
	DefaultSeed        = 42

	// Analyzer defaults
	DefaultHeatmapStudents = 20
)
