package charts

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/raziya7781/Attendance-Dataset-Analysis/internal/analysis"
	apperrors "github.com/raziya7781/Attendance-Dataset-Analysis/internal/errors"
	"github.com/raziya7781/Attendance-Dataset-Analysis/pkg/contracts/domain"
)

const colorBarLabel = "Present (1) / Absent/Late (0)"

// presenceGrid adapts HeatmapData to plotter.GridXYZ.
// Column c is a date and row r a student; row 0 is drawn at the top.
type presenceGrid struct {
	data analysis.HeatmapData
}

func (g presenceGrid) Dims() (c, r int) {
	return len(g.data.Dates), len(g.data.Students)
}

func (g presenceGrid) Z(c, r int) float64 {
	return g.data.Values[len(g.data.Students)-1-r][c]
}

func (g presenceGrid) X(c int) float64 {
	return float64(c)
}

func (g presenceGrid) Y(r int) float64 {
	return float64(r)
}

// AttendanceHeatmap draws the student by date presence matrix with a color bar
func (r *Renderer) AttendanceHeatmap(ctx context.Context, heat analysis.HeatmapData) (string, error) {
	if heat.Empty() {
		return "", apperrors.NewRenderError("no dated records for the heatmap", nil)
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(0)
	cm.SetMax(1)

	hm := plotter.NewHeatMap(presenceGrid{data: heat}, cm.Palette(255))
	hm.Min = 0
	hm.Max = 1

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Attendance Heatmap (First %d Students)", len(heat.Students))
	p.X.Label.Text = domain.ColumnDate
	p.Y.Label.Text = domain.ColumnStudentID
	p.Add(hm)

	dates := make([]string, len(heat.Dates))
	for i, d := range heat.Dates {
		dates[i] = d.Format(domain.DateLayout)
	}
	students := make([]string, len(heat.Students))
	for i, s := range heat.Students {
		students[len(students)-1-i] = s
	}
	p.NominalX(dates...)
	p.NominalY(students...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	bar := plot.New()
	bar.HideX()
	bar.Y.Label.Text = colorBarLabel
	bar.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true})

	if err := r.ensureOutputDir(); err != nil {
		return "", err
	}

	const (
		width         = 12 * vg.Inch
		height        = 8 * vg.Inch
		colorBarWidth = 1.2 * vg.Inch
	)
	img := vgimg.New(width, height)
	dc := draw.New(img)
	p.Draw(draw.Crop(dc, 0, -colorBarWidth, 0, 0))
	bar.Draw(draw.Crop(dc, width-colorBarWidth, 0, 0, 0))

	path := filepath.Join(r.outputDir, AttendanceHeatmapFile)
	f, err := os.Create(path)
	if err != nil {
		return "", apperrors.NewStorageError(fmt.Sprintf("failed to create %s", path), err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return "", apperrors.NewRenderError("failed to encode heatmap", err)
	}
	if err := f.Close(); err != nil {
		return "", apperrors.NewStorageError(fmt.Sprintf("failed to close %s", path), err)
	}

	r.logger.DebugContext(ctx, "Chart saved", slog.String("file", path))
	return path, nil
}
