package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/raziya7781/Attendance-Dataset-Analysis/internal/config"
	apperrors "github.com/raziya7781/Attendance-Dataset-Analysis/internal/errors"
	"github.com/raziya7781/Attendance-Dataset-Analysis/internal/exporter"
	"github.com/raziya7781/Attendance-Dataset-Analysis/internal/generator"
	"github.com/raziya7781/Attendance-Dataset-Analysis/internal/infrastructure"
	"github.com/raziya7781/Attendance-Dataset-Analysis/pkg/contracts"
	"github.com/raziya7781/Attendance-Dataset-Analysis/pkg/contracts/domain"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		slog.Error("Generator failed", "error", err)
		os.Exit(1)
	}
}

// options are the resolved command line settings
type options struct {
	students int
	days     int
	seed     int64
	start    time.Time
	out      string
	xlsx     bool
	metrics  bool
	version  bool
}

func run(args []string, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	paths, err := cfg.ResolvePaths()
	if err != nil {
		return fmt.Errorf("failed to initialize paths: %w", err)
	}

	opts, err := parseFlags(args, cfg, paths)
	if err != nil {
		return err
	}
	if opts.version {
		fmt.Fprintln(stdout, contracts.GetVersionInfo().String("generator"))
		return nil
	}

	if err := paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create required directories: %w", err)
	}

	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = paths.GetLogPath(config.GeneratorLogFileName)
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	logger = infrastructure.WithComponent(logger, "generator")
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.EnsureTraceID(context.Background())
	logger.InfoContext(ctx, "Starting "+config.AppName,
		slog.String("version", config.AppVersion),
		slog.String("run_id", infrastructure.GetTraceID(ctx)))
	paths.LogPathResolution(logger)

	otelCfg := infrastructure.OTelConfigFromTelemetry(cfg.Telemetry, paths.GetLogPath(config.TraceFileName))
	otelCfg.EnableMetrics = otelCfg.EnableMetrics && opts.metrics
	telemetry, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer telemetry.Shutdown(context.Background())

	logger.InfoContext(ctx, "Generating student attendance data",
		slog.Int("students", opts.students),
		slog.Int("days", opts.days),
		slog.Int64("seed", opts.seed),
		slog.String("start_date", opts.start.Format(domain.DateLayout)),
		slog.String("output", opts.out))

	records, err := generate(ctx, logger, telemetry, opts)
	if err != nil {
		return err
	}

	if err := export(ctx, logger, telemetry, paths, opts, records); err != nil {
		return err
	}

	logDatasetInfo(ctx, logger, records)
	fmt.Fprintf(stdout, "Data saved to %s (%d records)\n", opts.out, len(records))

	if opts.metrics {
		metricsPath := paths.GetOutputPath(config.GeneratorMetricsName)
		if err := telemetry.WriteMetricsFile(metricsPath); err != nil {
			logger.WarnContext(ctx, "Failed to write metrics file",
				slog.String("file", metricsPath),
				slog.String("error", err.Error()))
		}
	}

	return nil
}

func parseFlags(args []string, cfg *config.Config, paths *config.Paths) (options, error) {
	fs := flag.NewFlagSet("generator", flag.ContinueOnError)
	students := fs.Int("students", cfg.Generator.NumStudents, "number of students")
	days := fs.Int("days", cfg.Generator.NumDays, "number of calendar days from the start date (weekends are skipped)")
	seed := fs.Int64("seed", cfg.Generator.Seed, "random seed")
	start := fs.String("start", cfg.Generator.StartDate, "first calendar day (YYYY-MM-DD)")
	out := fs.String("out", "", "output CSV path (defaults to data/student_attendance.csv relative to executable)")
	xlsx := fs.Bool("xlsx", cfg.Generator.ExportWorkbook, "also write the dataset as an xlsx workbook")
	metrics := fs.Bool("metrics", false, "write a Prometheus metrics textfile to the output directory")
	version := fs.Bool("version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	startDate, err := time.Parse(domain.DateLayout, *start)
	if err != nil {
		return options{}, apperrors.NewConfigError(fmt.Sprintf("invalid -start %q", *start), err)
	}
	if *out == "" {
		*out = paths.DatasetCSV
	}
	// Relative -out is taken from the working directory, like the analyzer's -in
	outPath, err := filepath.Abs(*out)
	if err != nil {
		return options{}, apperrors.NewConfigError(fmt.Sprintf("invalid -out %q", *out), err)
	}

	return options{
		students: *students,
		days:     *days,
		seed:     *seed,
		start:    startDate,
		out:      outPath,
		xlsx:     *xlsx,
		metrics:  *metrics,
		version:  *version,
	}, nil
}

func generate(ctx context.Context, logger *slog.Logger, telemetry *infrastructure.OTelProviders, opts options) (records []domain.AttendanceRecord, err error) {
	ctx, end := telemetry.StartStage(ctx, "generate")
	defer func() { end(err) }()

	gen, err := generator.NewGenerator(logger, generator.Config{
		NumStudents: opts.students,
		NumDays:     opts.days,
		StartDate:   opts.start,
		Seed:        opts.seed,
	})
	if err != nil {
		return nil, err
	}

	records, err = gen.Generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate records: %w", err)
	}
	telemetry.RecordRecords(ctx, "generate", len(records))
	return records, nil
}

func export(ctx context.Context, logger *slog.Logger, telemetry *infrastructure.OTelProviders, paths *config.Paths, opts options, records []domain.AttendanceRecord) (err error) {
	ctx, end := telemetry.StartStage(ctx, "export")
	defer func() { end(err) }()

	if err := exporter.NewDatasetExporter(paths, logger).ExportDataset(ctx, records, opts.out); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	telemetry.RecordArtifact(ctx, "dataset_csv")

	if opts.xlsx {
		xlsxPath := strings.TrimSuffix(opts.out, filepath.Ext(opts.out)) + ".xlsx"
		if err := exporter.NewWorkbookWriter(logger).WriteDatasetWorkbook(records, xlsxPath); err != nil {
			return fmt.Errorf("failed to write dataset workbook: %w", err)
		}
		telemetry.RecordArtifact(ctx, "dataset_xlsx")
	}
	return nil
}

// logDatasetInfo logs the shape of the dataset and its first rows
func logDatasetInfo(ctx context.Context, logger *slog.Logger, records []domain.AttendanceRecord) {
	head := records
	if len(head) > 5 {
		head = head[:5]
	}
	rows := make([]string, 0, len(head))
	for _, r := range head {
		rows = append(rows, strings.Join(r.ToSlice(), ","))
	}

	logger.InfoContext(ctx, "Dataset info",
		slog.Int("entries", len(records)),
		slog.Any("columns", domain.DatasetHeader),
		slog.Any("head", rows))
}
