package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/raziya7781/Attendance-Dataset-Analysis/internal/analysis"
	"github.com/raziya7781/Attendance-Dataset-Analysis/internal/charts"
	"github.com/raziya7781/Attendance-Dataset-Analysis/internal/config"
	apperrors "github.com/raziya7781/Attendance-Dataset-Analysis/internal/errors"
	"github.com/raziya7781/Attendance-Dataset-Analysis/internal/exporter"
	"github.com/raziya7781/Attendance-Dataset-Analysis/internal/infrastructure"
	"github.com/raziya7781/Attendance-Dataset-Analysis/internal/validation"
	"github.com/raziya7781/Attendance-Dataset-Analysis/pkg/contracts"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		slog.Error("Analyzer failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are the resolved command line settings
type options struct {
	in       string
	out      string
	students int
	summary  bool
	xlsx     bool
	metrics  bool
	version  bool

	metricsPath string
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
		fmt.Fprintln(stdout, contracts.GetVersionInfo().String("analyzer"))
		return nil
	}

	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = paths.GetLogPath(config.AnalyzerLogFileName)
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	logger = infrastructure.WithComponent(logger, "analyzer")
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.EnsureTraceID(context.Background())
	logger.InfoContext(ctx, "Starting "+config.AppName,
		slog.String("version", config.AppVersion),
		slog.String("run_id", infrastructure.GetTraceID(ctx)))
	paths.LogPathResolution(logger)

	otelCfg := infrastructure.OTelConfigFromTelemetry(cfg.Telemetry, paths.GetLogPath(config.TraceFileName))
	otelCfg.EnableMetrics = opts.metrics
	telemetry, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer telemetry.Shutdown(context.Background())

	logger.InfoContext(ctx, "Loading data",
		slog.String("input", opts.in),
		slog.String("output_dir", opts.out))

	p := &pipeline{
		logger:    logger,
		telemetry: telemetry,
		opts:      opts,
		stdout:    stdout,
	}
	return p.run(ctx)
}

func parseFlags(args []string, cfg *config.Config, paths *config.Paths) (options, error) {
	fs := flag.NewFlagSet("analyzer", flag.ContinueOnError)
	in := fs.String("in", paths.DatasetCSV, "input dataset CSV")
	out := fs.String("out", paths.OutputDir, "output directory for charts and summaries")
	students := fs.Int("students", cfg.Analyzer.HeatmapStudents, "number of students sampled for the heatmap")
	summary := fs.Bool("summary", cfg.Analyzer.WriteSummary, "write day-wise and per-student summary CSVs")
	xlsx := fs.Bool("xlsx", cfg.Analyzer.ExportWorkbook, "also write the summary as an xlsx workbook")
	metrics := fs.Bool("metrics", cfg.Telemetry.EnableMetrics, "write a Prometheus metrics textfile to the output directory")
	version := fs.Bool("version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if *students <= 0 {
		return options{}, apperrors.NewConfigError(fmt.Sprintf("-students must be positive, got %d", *students), nil)
	}

	metricsPath := cfg.Telemetry.MetricsFile
	if metricsPath == "" {
		metricsPath = config.MetricsFileName
	}
	if !filepath.IsAbs(metricsPath) {
		metricsPath = filepath.Join(*out, metricsPath)
	}

	return options{
		in:          *in,
		out:         *out,
		students:    *students,
		summary:     *summary,
		xlsx:        *xlsx,
		metrics:     *metrics,
		metricsPath: metricsPath,
		version:     *version,
	}, nil
}

// pipeline runs load, preprocess, analyze and the output stages in order
type pipeline struct {
	logger    *slog.Logger
	telemetry *infrastructure.OTelProviders
	opts      options
	stdout    io.Writer
}

func (p *pipeline) run(ctx context.Context) error {
	table, err := p.load(ctx)
	if err != nil {
		// Nothing is written when the input cannot be loaded
		return err
	}

	p.preprocess(ctx, table)

	report, err := p.analyze(ctx, table)
	if err != nil {
		return err
	}
	p.printReport(report)

	if err := p.visualize(ctx, table, report); err != nil {
		return err
	}

	if err := p.writeSummaries(ctx, table, report); err != nil {
		return err
	}

	if p.opts.metrics {
		if err := p.telemetry.WriteMetricsFile(p.opts.metricsPath); err != nil {
			return fmt.Errorf("failed to write metrics file: %w", err)
		}
		p.logger.InfoContext(ctx, "Metrics written", slog.String("file", p.opts.metricsPath))
	}
	return nil
}

func (p *pipeline) load(ctx context.Context) (table *analysis.Table, err error) {
	ctx, end := p.telemetry.StartStage(ctx, "load")
	defer func() { end(err) }()

	table, err = analysis.LoadDataset(ctx, p.logger, p.opts.in)
	if err != nil {
		return nil, err
	}
	p.telemetry.RecordRecords(ctx, "load", table.Len())
	return table, nil
}

func (p *pipeline) preprocess(ctx context.Context, table *analysis.Table) {
	ctx, end := p.telemetry.StartStage(ctx, "preprocess")
	defer end(nil)

	missing := analysis.Preprocess(ctx, p.logger, table)
	for _, col := range missing.Columns {
		p.telemetry.RecordMissing(ctx, col, missing.Counts[col])
	}
}

func (p *pipeline) analyze(ctx context.Context, table *analysis.Table) (report *analysis.Report, err error) {
	ctx, end := p.telemetry.StartStage(ctx, "analyze")
	defer func() { end(err) }()

	report, err = analysis.Analyze(ctx, p.logger, table)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	p.logger.InfoContext(ctx, "Analysis report ready",
		slog.String("source", table.Source()),
		slog.Int("records", report.Records),
		slog.Float64("overall_rate", report.OverallRate))
	p.telemetry.RecordRecords(ctx, "analyze", report.Records)
	if report.Records > 0 {
		p.telemetry.RecordRate(ctx, "overall", report.OverallRate)
	}
	for _, d := range report.Days {
		if d.Defined {
			p.telemetry.RecordRate(ctx, d.Day, d.Rate)
		}
	}
	return report, nil
}

func (p *pipeline) visualize(ctx context.Context, table *analysis.Table, report *analysis.Report) (err error) {
	ctx, end := p.telemetry.StartStage(ctx, "visualize")
	defer func() { end(err) }()

	heat, err := analysis.Heatmap(table, p.opts.students)
	if err != nil {
		return fmt.Errorf("failed to build heatmap: %w", err)
	}

	renderer := charts.NewRenderer(p.opts.out, p.logger)
	written, err := renderer.RenderAll(ctx, report, heat)
	for range written {
		p.telemetry.RecordArtifact(ctx, "chart")
	}
	if err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}

	if n, err := validation.NewFileValidator(p.logger).CountFiles(renderer.OutputDir(), "*.png"); err == nil {
		p.logger.DebugContext(ctx, "Charts in output directory", slog.Int("count", n))
	}

	fmt.Fprintf(p.stdout, "\nVisualizations saved to %s\n", renderer.OutputDir())
	return nil
}

func (p *pipeline) writeSummaries(ctx context.Context, table *analysis.Table, report *analysis.Report) (err error) {
	if !p.opts.summary && !p.opts.xlsx {
		return nil
	}

	ctx, end := p.telemetry.StartStage(ctx, "summarize")
	defer func() { end(err) }()

	if p.opts.summary {
		path := filepath.Join(p.opts.out, config.SummaryFileName)
		if err := analysis.WriteSummaryCSV(p.logger, report, path); err != nil {
			return fmt.Errorf("failed to write day-wise summary: %w", err)
		}
		p.telemetry.RecordArtifact(ctx, "summary_csv")

		records, skipped := table.Records()
		if skipped > 0 {
			p.logger.WarnContext(ctx, "Incomplete rows left out of the student summary",
				slog.Int("skipped", skipped))
		}
		students := exporter.NewStudentExporter(nil, p.logger)
		studentPath := filepath.Join(p.opts.out, config.StudentSummaryName)
		if err := students.ExportStudentSummary(students.GenerateStudentSummaries(records), studentPath); err != nil {
			return fmt.Errorf("failed to write student summary: %w", err)
		}
		p.telemetry.RecordArtifact(ctx, "summary_csv")
	}

	if p.opts.xlsx {
		path := filepath.Join(p.opts.out, config.SummaryWorkbookName)
		if err := exporter.NewWorkbookWriter(p.logger).WriteWorkbook(path, report.SummarySheets()); err != nil {
			return fmt.Errorf("failed to write summary workbook: %w", err)
		}
		p.telemetry.RecordArtifact(ctx, "summary_xlsx")
	}
	return nil
}

// printReport writes the human-readable report to stdout
func (p *pipeline) printReport(report *analysis.Report) {
	w := p.stdout
	fmt.Fprintln(w, "--- Analysis Report ---")
	fmt.Fprintf(w, "Overall Attendance Rate: %s\n", formatRate(report.OverallRate, report.Records > 0))

	fmt.Fprintln(w, "\nAttendance Status Distribution:")
	for _, sc := range report.StatusCounts {
		fmt.Fprintf(w, "  %-8s %d\n", sc.Status, sc.Count)
	}

	fmt.Fprintln(w, "\nDay-wise Attendance Rate:")
	fmt.Fprintf(w, "  %-10s %6s %8s %16s\n", "Day", "Total", "Present", "Attendance_Rate")
	for _, d := range report.Days {
		fmt.Fprintf(w, "  %-10s %6d %8d %16s\n", d.Day, d.Total, d.Present, formatRate(d.Rate, d.Defined))
	}
}

func formatRate(rate float64, defined bool) string {
	if !defined {
		return "NaN"
	}
	return fmt.Sprintf("%.2f%%", rate)
}
