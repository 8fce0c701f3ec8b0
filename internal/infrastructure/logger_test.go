package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raziya7781/Attendance-Dataset-Analysis/internal/config"
)

// lastLogEntry decodes the last JSON line of a log file
func lastLogEntry(t *testing.T, path string) map[string]interface{} {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestInitializeLogger_File(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	logFile := filepath.Join(t.TempDir(), "nested", "generator.log")
	logger, err := InitializeLogger(config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logFile,
	})
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.FileExists(t, logFile)

	logger.Info("records generated", "count", 1050)
	logger.Debug("below level")
	require.NoError(t, CloseLogFile())

	entry := lastLogEntry(t, logFile)
	assert.Equal(t, "records generated", entry["msg"])
	assert.Equal(t, float64(1050), entry["count"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Same(t, logger, slog.Default())
}

func TestInitializeLogger_OnlyFirstCallApplies(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	first, err := InitializeLogger(config.LoggingConfig{Level: "info", Output: "console"})
	require.NoError(t, err)
	second, err := InitializeLogger(config.LoggingConfig{Level: "debug", Output: "console"})
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Same(t, first, GetLogger())
}

func TestInitializeLogger_EmptyFilePath(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	_, err := InitializeLogger(config.LoggingConfig{Level: "info", Output: "file"})
	assert.Error(t, err)
}

func TestInitializeLogger_ConsoleKeepsStdoutFree(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	var buf bytes.Buffer
	prev := consoleWriter
	consoleWriter = &buf
	defer func() { consoleWriter = prev }()

	logger, err := InitializeLogger(config.LoggingConfig{Level: "warn", Output: "console"})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), `"msg":"kept"`)
}

func TestRunHandler_StampsRunAndSpan(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	logFile := filepath.Join(t.TempDir(), "analyzer.log")
	_, err := InitializeLogger(config.LoggingConfig{
		Level:    "debug",
		Output:   "file",
		FilePath: logFile,
	})
	require.NoError(t, err)

	cfg := DefaultOTelConfig()
	cfg.EnableMetrics = false
	cfg.EnableTracing = true
	cfg.TraceExporter = "file"
	cfg.TraceFile = filepath.Join(t.TempDir(), "traces.json")
	providers, err := InitializeOTel(cfg, nil)
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	ctx := WithTraceID(context.Background(), "run-123")
	ctx, end := providers.StartStage(ctx, "load")
	GetLogger().InfoContext(ctx, "Loading data")
	end(nil)
	require.NoError(t, CloseLogFile())

	entry := lastLogEntry(t, logFile)
	assert.Equal(t, "run-123", entry["trace_id"])
	assert.NotEmpty(t, entry["span_id"])
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLogLevel(tt.level))
		})
	}
}

func TestEnsureTraceID(t *testing.T) {
	ctx := EnsureTraceID(context.Background())
	runID := GetTraceID(ctx)
	require.NotEmpty(t, runID)
	assert.Len(t, runID, 36)

	assert.Equal(t, runID, GetTraceID(EnsureTraceID(ctx)), "existing run ID is kept")
	assert.Empty(t, GetTraceID(nil))
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	WithComponent(logger, "generator").Info("test message")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "generator", entry["component"])
}
