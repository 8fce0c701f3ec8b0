package analysis

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/raziya7781/Attendance-Dataset-Analysis/pkg/contracts/domain"
)

// Accepted Date encodings, tried in order
var dateLayouts = []string{
	domain.DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
}

// MissingReport lists missing values per column in file column order
type MissingReport struct {
	Columns []string
	Counts  map[string]int
	// InvalidDates is the number of non-empty Date cells that failed to parse.
	// They are included in Counts[Date].
	InvalidDates int
	Rows         int
}

// Total returns the number of missing cells across all columns
func (m MissingReport) Total() int {
	total := 0
	for _, c := range m.Counts {
		total += c
	}
	return total
}

// Preprocess parses the Date column and counts missing values per column.
// Nothing is dropped or imputed; the counts are informational.
func Preprocess(ctx context.Context, logger *slog.Logger, t *Table) MissingReport {
	if logger == nil {
		logger = slog.Default()
	}

	report := MissingReport{
		Columns: t.df.Names(),
		Counts:  make(map[string]int, t.df.Ncol()),
		Rows:    t.Len(),
	}
	for _, name := range report.Columns {
		_, missing := t.Column(name)
		report.Counts[name] = countTrue(missing)
	}

	values, missing := t.Column(domain.ColumnDate)
	t.dates = parseDates(values, missing)
	for i, d := range t.dates {
		if d.IsZero() && !missing[i] {
			report.InvalidDates++
		}
	}
	report.Counts[domain.ColumnDate] += report.InvalidDates

	attrs := make([]any, 0, len(report.Columns)+2)
	for _, name := range report.Columns {
		attrs = append(attrs, slog.Int(name, report.Counts[name]))
	}
	logger.InfoContext(ctx, "Missing values",
		slog.Group("missing", attrs...),
		slog.Int("invalid_dates", report.InvalidDates),
		slog.Int("rows", report.Rows))

	if report.InvalidDates > 0 {
		logger.WarnContext(ctx, "Unparseable dates treated as missing",
			slog.Int("count", report.InvalidDates))
	}

	return report
}

// parseDates parses each non-missing value; failures yield the zero time
func parseDates(values []string, missing []bool) []time.Time {
	dates := make([]time.Time, len(values))
	for i, v := range values {
		if missing[i] {
			continue
		}
		dates[i] = parseDate(strings.TrimSpace(v))
	}
	return dates
}

func parseDate(v string) time.Time {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, v); err == nil {
			y, m, day := d.Date()
			return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
		}
	}
	return time.Time{}
}

func countTrue(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
