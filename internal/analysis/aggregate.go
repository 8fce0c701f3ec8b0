package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/raziya7781/Attendance-Dataset-Analysis/pkg/contracts/domain"
)

// StatusCount is one entry of the status distribution
type StatusCount struct {
	Status string
	Count  int
}

// DayAnalysis holds the attendance figures of one weekday.
// Defined is false when the weekday has no records; Rate is NaN then.
type DayAnalysis struct {
	Day     string
	Total   int
	Present int
	Rate    float64
	Defined bool
}

// Report bundles the aggregate statistics of a dataset
type Report struct {
	Records      int
	Present      int
	OverallRate  float64
	StatusCounts []StatusCount
	Days         []DayAnalysis
}

// Day returns the analysis row for the named weekday
func (r *Report) Day(name string) (DayAnalysis, bool) {
	for _, d := range r.Days {
		if d.Day == name {
			return d, true
		}
	}
	return DayAnalysis{}, false
}

// Analyze computes the overall rate, the status distribution and the
// per-weekday rates. The table is not modified.
func Analyze(ctx context.Context, logger *slog.Logger, t *Table) (*Report, error) {
	if logger == nil {
		logger = slog.Default()
	}

	total := t.Len()
	presentDF, err := filterEq(t.df, domain.ColumnStatus, string(domain.StatusPresent))
	if err != nil {
		return nil, err
	}

	report := &Report{
		Records:     total,
		Present:     presentDF.Nrow(),
		OverallRate: math.NaN(),
	}
	if total > 0 {
		report.OverallRate = float64(report.Present) / float64(total) * 100
	}

	report.StatusCounts = statusDistribution(t)

	days, err := dayAnalysis(t)
	if err != nil {
		return nil, err
	}
	report.Days = days

	logger.InfoContext(ctx, "Analysis report",
		slog.Int("records", report.Records),
		slog.Int("present", report.Present),
		slog.String("overall_rate", formatPercent(report.OverallRate)))
	for _, sc := range report.StatusCounts {
		logger.InfoContext(ctx, "Status distribution",
			slog.String("status", sc.Status),
			slog.Int("count", sc.Count))
	}
	for _, d := range report.Days {
		logger.InfoContext(ctx, "Day-wise attendance",
			slog.String("day", d.Day),
			slog.Int("total", d.Total),
			slog.Int("present", d.Present),
			slog.String("rate", formatPercent(d.Rate)))
	}

	return report, nil
}

// statusDistribution counts each distinct non-missing status,
// highest count first with ties in order of first appearance
func statusDistribution(t *Table) []StatusCount {
	values, missing := t.Column(domain.ColumnStatus)

	index := make(map[string]int)
	var counts []StatusCount
	for i, v := range values {
		if missing[i] {
			continue
		}
		pos, ok := index[v]
		if !ok {
			pos = len(counts)
			index[v] = pos
			counts = append(counts, StatusCount{Status: v})
		}
		counts[pos].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// dayAnalysis computes one row per weekday in Monday..Friday order
func dayAnalysis(t *Table) ([]DayAnalysis, error) {
	days := make([]DayAnalysis, 0, len(domain.Weekdays))
	for _, wd := range domain.Weekdays {
		name := wd.String()
		row := DayAnalysis{Day: name, Rate: math.NaN()}

		dayDF, err := filterEq(t.df, domain.ColumnDayOfWeek, name)
		if err != nil {
			return nil, err
		}
		row.Total = dayDF.Nrow()

		if row.Total > 0 {
			presentDF, err := filterEq(dayDF, domain.ColumnStatus, string(domain.StatusPresent))
			if err != nil {
				return nil, err
			}
			row.Present = presentDF.Nrow()
			row.Rate = float64(row.Present) / float64(row.Total) * 100
			row.Defined = true
		}

		days = append(days, row)
	}
	return days, nil
}

func formatPercent(v float64) string {
	if math.IsNaN(v) {
		return "undefined"
	}
	return fmt.Sprintf("%.2f%%", v)
}
