package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/raziya7781/Attendance-Dataset-Analysis/internal/config"
)

var (
	runLogger     *slog.Logger
	runLoggerOnce sync.Once

	// runLogFile is the open log file, closed by CloseLogFile
	runLogFile *os.File
	logFileMu  sync.Mutex
)

// consoleWriter receives console log output. Stdout is kept for the report.
var consoleWriter io.Writer = os.Stderr

type contextKey string

// RunIDContextKey stores the run identifier in a context
const RunIDContextKey contextKey = "trace_id"

// InitializeLogger builds the process logger from cfg and installs it as
// the slog default. Only the first call has any effect.
func InitializeLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	var err error
	runLoggerOnce.Do(func() {
		runLogger, err = newRunLogger(cfg)
		if runLogger != nil {
			slog.SetDefault(runLogger)
		}
	})
	return runLogger, err
}

// GetLogger returns the process logger, or slog.Default before initialization
func GetLogger() *slog.Logger {
	if runLogger == nil {
		return slog.Default()
	}
	return runLogger
}

func newRunLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	out, err := logOutput(cfg)
	if err != nil {
		return nil, err
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		AddSource: true,
		Level:     parseLogLevel(cfg.Level),
	})
	return slog.New(&runHandler{Handler: handler}), nil
}

// logOutput opens the destinations named by cfg.Output
func logOutput(cfg config.LoggingConfig) (io.Writer, error) {
	output := strings.ToLower(cfg.Output)
	if output != "file" && output != "both" {
		return consoleWriter, nil
	}

	file, err := openLogFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logFileMu.Lock()
	runLogFile = file
	logFileMu.Unlock()

	if output == "both" {
		return io.MultiWriter(consoleWriter, file), nil
	}
	return file, nil
}

// runHandler stamps each record with the run ID and, inside a pipeline
// stage, the active span ID.
type runHandler struct {
	slog.Handler
}

func (h *runHandler) Handle(ctx context.Context, r slog.Record) error {
	if runID := GetTraceID(ctx); runID != "" {
		r.AddAttrs(slog.String("trace_id", runID))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(slog.String("span_id", sc.SpanID().String()))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *runHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &runHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *runHandler) WithGroup(name string) slog.Handler {
	return &runHandler{Handler: h.Handler.WithGroup(name)}
}

// parseLogLevel maps a config level name to a slog.Level, defaulting to info
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// WithTraceID stores the run ID in ctx
func WithTraceID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDContextKey, runID)
}

// GetTraceID returns the run ID stored in ctx, or ""
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	runID, _ := ctx.Value(RunIDContextKey).(string)
	return runID
}

// CloseLogFile flushes and closes the log file, if one is open
func CloseLogFile() error {
	logFileMu.Lock()
	defer logFileMu.Unlock()

	if runLogFile == nil {
		return nil
	}
	err := runLogFile.Close()
	runLogFile = nil
	return err
}

// ResetLoggerForTesting drops the process logger so tests can initialize
// it again.
func ResetLoggerForTesting() {
	CloseLogFile()
	runLogger = nil
	runLoggerOnce = sync.Once{}
}

func openLogFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return nil, fmt.Errorf("log file path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Runs append to the same file; each line carries its run ID
	return os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}
