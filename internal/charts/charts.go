package charts

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/raziya7781/Attendance-Dataset-Analysis/internal/analysis"
	apperrors "github.com/raziya7781/Attendance-Dataset-Analysis/internal/errors"
	"github.com/raziya7781/Attendance-Dataset-Analysis/internal/validation"
)

// Artifact file names
const (
	StatusDistributionFile = "status_distribution.png"
	DayWiseAttendanceFile  = "day_wise_attendance.png"
	AttendanceHeatmapFile  = "attendance_heatmap.png"
)

// Renderer draws the analysis charts into one output directory.
// Existing files are overwritten.
type Renderer struct {
	outputDir string
	logger    *slog.Logger
}

// NewRenderer creates a renderer writing to outputDir
func NewRenderer(outputDir string, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{outputDir: outputDir, logger: logger}
}

// OutputDir returns the directory charts are written to
func (r *Renderer) OutputDir() string {
	return r.outputDir
}

// RenderAll draws the three charts and returns the written paths.
// Charts are independent: a failure in one does not prevent the others.
func (r *Renderer) RenderAll(ctx context.Context, report *analysis.Report, heat analysis.HeatmapData) ([]string, error) {
	var (
		written  []string
		firstErr error
	)
	collect := func(path string, err error) {
		if err != nil {
			r.logger.ErrorContext(ctx, "chart rendering failed", slog.String("error", err.Error()))
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		written = append(written, path)
	}

	collect(r.StatusDistribution(ctx, report.StatusCounts))
	collect(r.DayWiseAttendance(ctx, report.Days))
	collect(r.AttendanceHeatmap(ctx, heat))

	if firstErr == nil {
		r.logger.InfoContext(ctx, "Visualizations saved",
			slog.String("output_dir", r.outputDir),
			slog.Int("charts", len(written)))
	}
	return written, firstErr
}

func (r *Renderer) ensureOutputDir() error {
	return validation.NewFileValidator(r.logger).ValidateOutputDirectory(r.outputDir)
}

func (r *Renderer) save(ctx context.Context, p *plot.Plot, width, height vg.Length, name string) (string, error) {
	if err := r.ensureOutputDir(); err != nil {
		return "", err
	}
	path := filepath.Join(r.outputDir, name)
	if err := p.Save(width, height, path); err != nil {
		return "", apperrors.NewRenderError(fmt.Sprintf("failed to save %s", name), err)
	}
	r.logger.DebugContext(ctx, "Chart saved", slog.String("file", path))
	return path, nil
}

// sampleColors picks n colors spread across the inner part of a color map
func sampleColors(cm palette.ColorMap, n int) []color.Color {
	cm.SetMin(0)
	cm.SetMax(1)

	colors := make([]color.Color, n)
	for i := range colors {
		v := 0.5
		if n > 1 {
			v = 0.15 + 0.7*float64(i)/float64(n-1)
		}
		c, err := cm.At(v)
		if err != nil {
			c = plotutil.Color(i)
		}
		colors[i] = c
	}
	return colors
}
