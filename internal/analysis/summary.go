package analysis

import (
	"log/slog"
	"strconv"

	"github.com/raziya7781/Attendance-Dataset-Analysis/internal/exporter"
	"github.com/raziya7781/Attendance-Dataset-Analysis/pkg/contracts/domain"
)

// SummaryHeaders is the header row of the day-wise summary CSV
var SummaryHeaders = []string{domain.ColumnDayOfWeek, "Total", "Present", "Attendance_Rate"}

// Workbook sheet names
const (
	StatusSheetName = "Status"
	DaySheetName    = "Day_of_Week"
)

// SummaryRows renders the day analysis as CSV rows; undefined rates are empty
func (r *Report) SummaryRows() [][]string {
	rows := make([][]string, 0, len(r.Days))
	for _, d := range r.Days {
		rows = append(rows, []string{
			d.Day,
			strconv.Itoa(d.Total),
			strconv.Itoa(d.Present),
			exporter.FormatRate(d.Rate),
		})
	}
	return rows
}

// WriteSummaryCSV writes the day-wise summary to path, replacing any existing file
func WriteSummaryCSV(logger *slog.Logger, r *Report, path string) error {
	return exporter.NewCSVWriter(nil, logger).WriteCSV(path, SummaryHeaders, r.SummaryRows())
}

// SummarySheets returns the status distribution and day analysis as workbook sheets
func (r *Report) SummarySheets() []exporter.Sheet {
	status := exporter.Sheet{
		Name:    StatusSheetName,
		Headers: []string{domain.ColumnStatus, "Count"},
	}
	for _, sc := range r.StatusCounts {
		status.Rows = append(status.Rows, []interface{}{sc.Status, sc.Count})
	}

	days := exporter.Sheet{
		Name:    DaySheetName,
		Headers: SummaryHeaders,
	}
	for _, d := range r.Days {
		var rate interface{}
		if d.Defined {
			rate = d.Rate
		}
		days.Rows = append(days.Rows, []interface{}{d.Day, d.Total, d.Present, rate})
	}

	return []exporter.Sheet{status, days}
}
