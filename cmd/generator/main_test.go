package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raziya7781/Attendance-Dataset-Analysis/internal/analysis"
	"github.com/raziya7781/Attendance-Dataset-Analysis/internal/config"
	"github.com/raziya7781/Attendance-Dataset-Analysis/internal/infrastructure"
)

// setupEnv points the layout at a temp dir and keeps logs on the console
func setupEnv(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("ATTEND_CONFIG_FILE", filepath.Join(base, "absent.yaml"))
	t.Setenv("ATTEND_PATHS_BASE_DIR", base)
	t.Setenv("ATTEND_LOGGING_OUTPUT", "console")
	t.Setenv("ATTEND_LOGGING_LEVEL", "warn")
	infrastructure.ResetLoggerForTesting()
	t.Cleanup(infrastructure.ResetLoggerForTesting)
	return base
}

func TestRun_Deterministic(t *testing.T) {
	base := setupEnv(t)

	generate := func(name string) []byte {
		out := filepath.Join(base, name)
		var stdout bytes.Buffer
		err := run([]string{"-students", "5", "-days", "7", "-seed", "7", "-out", out}, &stdout)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Data saved to "+out)

		content, err := os.ReadFile(out)
		require.NoError(t, err)
		return content
	}

	first := generate("first.csv")
	second := generate("second.csv")
	assert.Equal(t, first, second)

	lines := strings.Split(strings.TrimSpace(string(first)), "\n")
	assert.Len(t, lines, 26) // header + 5 weekdays x 5 students
	assert.Equal(t, "Student_ID,Date,Day_of_Week,Class_Type,Status", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "S001,2023-09-01,Friday,Lecture,"))
}

func TestRun_DefaultsAndWorkbook(t *testing.T) {
	base := setupEnv(t)

	var stdout bytes.Buffer
	require.NoError(t, run([]string{"-xlsx", "-metrics"}, &stdout))

	paths := config.GetPathsFrom(base)
	assert.FileExists(t, paths.DatasetCSV)
	assert.FileExists(t, paths.DatasetXLSX)
	assert.FileExists(t, paths.GetOutputPath(config.GeneratorMetricsName))

	content, err := os.ReadFile(paths.DatasetCSV)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Len(t, lines, 1+21*50)
}

func TestRun_InvalidInput(t *testing.T) {
	setupEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"bad start date", []string{"-start", "01/09/2023"}},
		{"zero students", []string{"-students", "0"}},
		{"negative days", []string{"-days", "-3"}},
		{"unknown flag", []string{"-bogus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "x.csv")
			err := run(append(tt.args, "-out", out), &bytes.Buffer{})
			assert.Error(t, err)
			assert.NoFileExists(t, out)
		})
	}
}

// chdir switches the working directory for the rest of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(prev) })
}

func TestRun_RelativeOutIsWorkingDirRelative(t *testing.T) {
	base := setupEnv(t)
	work := t.TempDir()
	chdir(t, work)

	var stdout bytes.Buffer
	require.NoError(t, run([]string{"-students", "5", "-days", "7", "-xlsx", "-out", "mydata.csv"}, &stdout))

	want := filepath.Join(work, "mydata.csv")
	assert.FileExists(t, want)
	assert.FileExists(t, filepath.Join(work, "mydata.xlsx"))
	assert.NoFileExists(t, config.GetPathsFrom(base).GetOutputPath("mydata.csv"))
	assert.Contains(t, stdout.String(), "Data saved to "+want)

	// The analyzer's -in resolves the same relative path
	table, err := analysis.LoadDataset(context.Background(), nil, "mydata.csv")
	require.NoError(t, err)
	assert.Equal(t, 25, table.Len())
}
