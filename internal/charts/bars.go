package charts

import (
	"context"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/raziya7781/Attendance-Dataset-Analysis/internal/analysis"
	apperrors "github.com/raziya7781/Attendance-Dataset-Analysis/internal/errors"
)

const barWidth = 40

// StatusDistribution draws a bar per status with its record count
func (r *Renderer) StatusDistribution(ctx context.Context, counts []analysis.StatusCount) (string, error) {
	if len(counts) == 0 {
		return "", apperrors.NewRenderError("no status values to plot", nil)
	}

	p := plot.New()
	p.Title.Text = "Distribution of Attendance Status"
	p.X.Label.Text = "Status"
	p.Y.Label.Text = "count"
	p.Add(plotter.NewGrid())

	names := make([]string, len(counts))
	values := make([]float64, len(counts))
	for i, sc := range counts {
		names[i] = sc.Status
		values[i] = float64(sc.Count)
	}
	if err := addBars(p, values, sampleColors(moreland.ExtendedKindlmann(), len(values))); err != nil {
		return "", err
	}
	p.NominalX(names...)
	p.Y.Min = 0

	return r.save(ctx, p, 8*vg.Inch, 6*vg.Inch, StatusDistributionFile)
}

// DayWiseAttendance draws the weekday attendance rates on a fixed 0-100 axis.
// Undefined rates are drawn as empty bars.
func (r *Renderer) DayWiseAttendance(ctx context.Context, days []analysis.DayAnalysis) (string, error) {
	if len(days) == 0 {
		return "", apperrors.NewRenderError("no weekday rows to plot", nil)
	}

	p := plot.New()
	p.Title.Text = "Attendance Rate by Day of Week"
	p.X.Label.Text = "Day_of_Week"
	p.Y.Label.Text = "Attendance Rate (%)"
	p.Add(plotter.NewGrid())

	names := make([]string, len(days))
	values := make([]float64, len(days))
	for i, d := range days {
		names[i] = d.Day
		if d.Defined {
			values[i] = d.Rate
		}
	}
	if err := addBars(p, values, sampleColors(moreland.BlackBody(), len(values))); err != nil {
		return "", err
	}
	p.NominalX(names...)
	p.Y.Min = 0
	p.Y.Max = 100

	return r.save(ctx, p, 10*vg.Inch, 6*vg.Inch, DayWiseAttendanceFile)
}

// addBars adds one single-value bar chart per value so each bar gets its own color
func addBars(p *plot.Plot, values []float64, colors []color.Color) error {
	for i, v := range values {
		bar, err := plotter.NewBarChart(plotter.Values{v}, vg.Points(barWidth))
		if err != nil {
			return apperrors.NewRenderError("failed to build bar chart", err)
		}
		bar.XMin = float64(i)
		bar.Color = colors[i]
		bar.LineStyle.Width = 0
		p.Add(bar)
	}
	return nil
}
