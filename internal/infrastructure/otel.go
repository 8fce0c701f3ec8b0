package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/raziya7781/Attendance-Dataset-Analysis/internal/config"
)

const (
	ServiceName = "attendance-analysis"
	MeterName   = "attendance"
)

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	TraceExporter  string // "file", "stdout", "none"
	TraceFile      string // used by the "file" exporter
	EnableMetrics  bool
	EnableTracing  bool
	SampleRatio    float64
}

// OTelProviders holds the OpenTelemetry providers for one run
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Metrics        *PipelineMetrics
	Registry       *promclient.Registry
	Logger         *slog.Logger

	traceFile *os.File
}

// DefaultOTelConfig returns a configuration with metrics on and tracing off
func DefaultOTelConfig() *OTelConfig {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	return &OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: "1.0.0",
		Environment:    env,
		TraceExporter:  "none",
		EnableMetrics:  true,
		EnableTracing:  false,
		SampleRatio:    1.0,
	}
}

// InitializeOTel initializes tracing and metrics for a batch run.
// Disabled signals fall back to no-op implementations so callers never nil-check.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}
	if logger == nil {
		logger = GetLogger()
	}

	ctx := context.Background()

	logger.InfoContext(ctx, "Initializing OpenTelemetry",
		slog.String("service", cfg.ServiceName),
		slog.String("version", cfg.ServiceVersion),
		slog.String("environment", cfg.Environment),
		slog.Bool("tracing_enabled", cfg.EnableTracing),
		slog.Bool("metrics_enabled", cfg.EnableMetrics))

	res, err := createResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	providers := &OTelProviders{
		Logger: logger,
		Tracer: tracenoop.NewTracerProvider().Tracer(MeterName),
		Meter:  metricnoop.NewMeterProvider().Meter(MeterName),
	}

	if cfg.EnableTracing {
		if err := initializeTracing(ctx, cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}

	if cfg.EnableMetrics {
		if err := initializeMetrics(ctx, cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	metrics, err := CreatePipelineMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}
	providers.Metrics = metrics

	return providers, nil
}

// createResource creates the OpenTelemetry resource
func createResource(cfg *OTelConfig) (*resource.Resource, error) {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		attribute.String("service.instance.id", generateInstanceID()),
	), nil
}

// initializeTracing sets up OpenTelemetry tracing
func initializeTracing(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	var exporter sdktrace.SpanExporter
	var err error

	switch cfg.TraceExporter {
	case "stdout":
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	case "file":
		if cfg.TraceFile == "" {
			return fmt.Errorf("trace file path is empty")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.TraceFile), 0755); err != nil {
			return fmt.Errorf("failed to create trace directory: %w", err)
		}
		f, ferr := os.Create(cfg.TraceFile)
		if ferr != nil {
			return fmt.Errorf("failed to create trace file: %w", ferr)
		}
		providers.traceFile = f
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(f))
	case "none", "":
		return nil
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)

	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(cfg.ServiceVersion))
	otel.SetTracerProvider(tp)

	providers.Logger.InfoContext(ctx, "Tracing initialized",
		slog.String("exporter", cfg.TraceExporter),
		slog.Float64("sample_ratio", cfg.SampleRatio))

	return nil
}

// initializeMetrics wires the meter provider to a private Prometheus registry.
// The registry is written out as a textfile at the end of the run.
func initializeMetrics(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	registry := promclient.NewRegistry()

	exporter, err := prometheus.New(
		prometheus.WithRegisterer(registry),
		prometheus.WithoutTargetInfo(),
	)
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	providers.Registry = registry
	providers.MeterProvider = mp
	providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(cfg.ServiceVersion))
	otel.SetMeterProvider(mp)

	providers.Logger.InfoContext(ctx, "Metrics initialized", slog.String("exporter", "prometheus-textfile"))
	return nil
}

// PipelineMetrics holds the batch job instruments
type PipelineMetrics struct {
	RecordsProcessed metric.Int64Counter
	MissingValues    metric.Int64Counter
	ArtifactsWritten metric.Int64Counter
	StageDuration    metric.Float64Histogram
	AttendanceRate   metric.Float64Gauge
}

// CreatePipelineMetrics creates the batch job instruments on meter
func CreatePipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	recordsProcessed, err := meter.Int64Counter(
		"attendance_records_processed_total",
		metric.WithDescription("Attendance records generated or loaded, by stage"),
	)
	if err != nil {
		return nil, err
	}

	missingValues, err := meter.Int64Counter(
		"attendance_missing_values_total",
		metric.WithDescription("Missing field values found during preprocessing, by column"),
	)
	if err != nil {
		return nil, err
	}

	artifactsWritten, err := meter.Int64Counter(
		"attendance_artifacts_written_total",
		metric.WithDescription("Files written by the run, by kind"),
	)
	if err != nil {
		return nil, err
	}

	stageDuration, err := meter.Float64Histogram(
		"attendance_stage_duration_seconds",
		metric.WithDescription("Pipeline stage duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	attendanceRate, err := meter.Float64Gauge(
		"attendance_rate_percent",
		metric.WithDescription("Attendance rate in percent, overall and per weekday"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		RecordsProcessed: recordsProcessed,
		MissingValues:    missingValues,
		ArtifactsWritten: artifactsWritten,
		StageDuration:    stageDuration,
		AttendanceRate:   attendanceRate,
	}, nil
}

// StartStage opens a span for a pipeline stage. The returned function ends the
// span, marks it failed when err is non-nil and records the stage duration.
func (p *OTelProviders) StartStage(ctx context.Context, stage string) (context.Context, func(err error)) {
	start := time.Now()
	ctx, span := p.Tracer.Start(ctx, "attendance."+stage,
		trace.WithAttributes(attribute.String("stage", stage)))

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		if p.Metrics != nil {
			status := "success"
			if err != nil {
				status = "failure"
			}
			p.Metrics.StageDuration.Record(ctx, time.Since(start).Seconds(),
				metric.WithAttributes(
					attribute.String("stage", stage),
					attribute.String("status", status),
				))
		}
	}
}

// RecordRecords counts records handled by a stage
func (p *OTelProviders) RecordRecords(ctx context.Context, stage string, n int) {
	if p.Metrics == nil {
		return
	}
	p.Metrics.RecordsProcessed.Add(ctx, int64(n), metric.WithAttributes(attribute.String("stage", stage)))
}

// RecordMissing counts missing values for a column
func (p *OTelProviders) RecordMissing(ctx context.Context, column string, n int) {
	if p.Metrics == nil {
		return
	}
	p.Metrics.MissingValues.Add(ctx, int64(n), metric.WithAttributes(attribute.String("column", column)))
}

// RecordArtifact counts a written file
func (p *OTelProviders) RecordArtifact(ctx context.Context, kind string) {
	if p.Metrics == nil {
		return
	}
	p.Metrics.ArtifactsWritten.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordRate sets an attendance rate gauge for scope ("overall" or a weekday name)
func (p *OTelProviders) RecordRate(ctx context.Context, scope string, rate float64) {
	if p.Metrics == nil {
		return
	}
	p.Metrics.AttendanceRate.Record(ctx, rate, metric.WithAttributes(attribute.String("scope", scope)))
}

// WriteMetricsFile writes the gathered metrics in Prometheus text format
func (p *OTelProviders) WriteMetricsFile(path string) error {
	if p.Registry == nil {
		return fmt.Errorf("metrics are disabled")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	return promclient.WriteToTextfile(path, p.Registry)
}

// Shutdown flushes and shuts down OpenTelemetry providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if p.traceFile != nil {
		if err := p.traceFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("trace file close: %w", err))
		}
		p.traceFile = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown errors: %v", errs)
	}

	p.Logger.InfoContext(ctx, "OpenTelemetry shutdown complete")
	return nil
}

// generateInstanceID generates a unique instance identifier
func generateInstanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, time.Now().Unix())
}

// OTelConfigFromTelemetry maps the application telemetry settings onto an OTelConfig.
// traceFile is used when the file exporter is selected.
func OTelConfigFromTelemetry(t config.TelemetryConfig, traceFile string) *OTelConfig {
	cfg := DefaultOTelConfig()
	cfg.ServiceVersion = config.AppVersion
	cfg.EnableMetrics = t.EnableMetrics
	cfg.EnableTracing = t.EnableTracing && t.TraceExporter != "none"
	cfg.TraceExporter = t.TraceExporter
	cfg.TraceFile = traceFile
	return cfg
}
