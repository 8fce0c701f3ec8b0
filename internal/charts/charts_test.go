package charts

import (
	"context"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raziya7781/Attendance-Dataset-Analysis/internal/analysis"
	apperrors "github.com/raziya7781/Attendance-Dataset-Analysis/internal/errors"
)

func sampleReport() *analysis.Report {
	return &analysis.Report{
		Records:     10,
		Present:     6,
		OverallRate: 60,
		StatusCounts: []analysis.StatusCount{
			{Status: "Present", Count: 6},
			{Status: "Absent", Count: 3},
			{Status: "Late", Count: 1},
		},
		Days: []analysis.DayAnalysis{
			{Day: "Monday", Total: 4, Present: 3, Rate: 75, Defined: true},
			{Day: "Tuesday", Rate: math.NaN()},
			{Day: "Wednesday", Total: 6, Present: 3, Rate: 50, Defined: true},
			{Day: "Thursday", Rate: math.NaN()},
			{Day: "Friday", Rate: math.NaN()},
		},
	}
}

func sampleHeatmap() analysis.HeatmapData {
	d := func(day int) time.Time { return time.Date(2023, 9, day, 0, 0, 0, 0, time.UTC) }
	return analysis.HeatmapData{
		Students: []string{"S001", "S002", "S003"},
		Dates:    []time.Time{d(4), d(5)},
		Values: [][]float64{
			{1, 0},
			{0, 1},
			{0.5, 1},
		},
	}
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Greater(t, cfg.Width, 0)
	assert.Greater(t, cfg.Height, 0)
}

func TestRenderAll(t *testing.T) {
	out := filepath.Join(t.TempDir(), "outputs")
	r := NewRenderer(out, nil)

	written, err := r.RenderAll(context.Background(), sampleReport(), sampleHeatmap())
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(out, StatusDistributionFile),
		filepath.Join(out, DayWiseAttendanceFile),
		filepath.Join(out, AttendanceHeatmapFile),
	}, written)
	for _, path := range written {
		assertPNG(t, path)
	}

	// Re-rendering overwrites in place
	again, err := r.RenderAll(context.Background(), sampleReport(), sampleHeatmap())
	require.NoError(t, err)
	assert.Equal(t, written, again)
}

func TestPresenceGrid(t *testing.T) {
	g := presenceGrid{data: sampleHeatmap()}

	c, r := g.Dims()
	assert.Equal(t, 2, c)
	assert.Equal(t, 3, r)

	// Row 0 is the bottom of the plot, so it holds the last student
	assert.Equal(t, 0.5, g.Z(0, 0))
	assert.Equal(t, 1.0, g.Z(0, 2))
	assert.Equal(t, 1.0, g.X(1))
	assert.Equal(t, 2.0, g.Y(2))
}

func TestRender_EmptyInputs(t *testing.T) {
	out := filepath.Join(t.TempDir(), "outputs")
	r := NewRenderer(out, nil)

	_, err := r.AttendanceHeatmap(context.Background(), analysis.HeatmapData{})
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeRender))

	_, err = r.StatusDistribution(context.Background(), nil)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeRender))

	_, err = r.DayWiseAttendance(context.Background(), nil)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeRender))

	assert.NoDirExists(t, out)
}

func TestRender_OutputDirBlocked(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	r := NewRenderer(filepath.Join(blocker, "outputs"), nil)
	_, err := r.StatusDistribution(context.Background(), sampleReport().StatusCounts)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}
