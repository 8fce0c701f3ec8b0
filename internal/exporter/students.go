package exporter

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/raziya7781/Attendance-Dataset-Analysis/internal/config"
	"github.com/raziya7781/Attendance-Dataset-Analysis/pkg/contracts/domain"
)

// StudentExporter handles per-student report generation
type StudentExporter struct {
	csvWriter *CSVWriter
}

// NewStudentExporter creates a new student report exporter
func NewStudentExporter(paths *config.Paths, logger *slog.Logger) *StudentExporter {
	return &StudentExporter{
		csvWriter: NewCSVWriter(paths, logger),
	}
}

// StudentSummary represents attendance statistics for one student
type StudentSummary struct {
	StudentID      string
	SchoolDays     int
	Present        int
	Absent         int
	Late           int
	AttendanceRate float64
	FirstDate      string
	LastDate       string
	LastStatus     domain.AttendanceStatus
	Last10Days     string
}

// StudentSummaryHeaders is the header row of the student summary CSV
var StudentSummaryHeaders = []string{
	"Student_ID", "School_Days", "Present", "Absent", "Late",
	"Attendance_Rate", "First_Date", "Last_Date", "Last_Status", "Last_10_Days",
}

// GenerateStudentSummaries creates per-student statistics, sorted by student ID
func (s *StudentExporter) GenerateStudentSummaries(records []domain.AttendanceRecord) []StudentSummary {
	byStudent := make(map[string][]domain.AttendanceRecord)
	for _, record := range records {
		byStudent[record.StudentID] = append(byStudent[record.StudentID], record)
	}

	summaries := make([]StudentSummary, 0, len(byStudent))
	for student, studentRecords := range byStudent {
		sort.SliceStable(studentRecords, func(i, j int) bool {
			return studentRecords[i].Date.Before(studentRecords[j].Date)
		})

		summary := StudentSummary{
			StudentID:  student,
			SchoolDays: len(studentRecords),
		}
		for _, record := range studentRecords {
			switch record.Status {
			case domain.StatusPresent:
				summary.Present++
			case domain.StatusAbsent:
				summary.Absent++
			case domain.StatusLate:
				summary.Late++
			}
		}
		summary.AttendanceRate = float64(summary.Present) / float64(summary.SchoolDays) * 100

		first, last := studentRecords[0], studentRecords[len(studentRecords)-1]
		summary.FirstDate = first.Date.Format(domain.DateLayout)
		summary.LastDate = last.Date.Format(domain.DateLayout)
		summary.LastStatus = last.Status

		// Presence over the most recent 10 school days
		var window, present int
		for i := len(studentRecords) - 1; i >= 0 && window < 10; i-- {
			window++
			if studentRecords[i].IsPresent() {
				present++
			}
		}
		summary.Last10Days = fmt.Sprintf("%d/%d", present, window)

		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].StudentID < summaries[j].StudentID
	})
	return summaries
}

// ExportStudentSummary writes summaries to a CSV file
func (s *StudentExporter) ExportStudentSummary(summaries []StudentSummary, outputPath string) error {
	return s.csvWriter.WriteCSV(outputPath, StudentSummaryHeaders, StudentSummaryRows(summaries))
}

// StudentSummaryRows converts summaries to CSV rows
func StudentSummaryRows(summaries []StudentSummary) [][]string {
	rows := make([][]string, 0, len(summaries))
	for _, summary := range summaries {
		rows = append(rows, []string{
			summary.StudentID,
			formatInt(summary.SchoolDays),
			formatInt(summary.Present),
			formatInt(summary.Absent),
			formatInt(summary.Late),
			formatFloat(summary.AttendanceRate),
			summary.FirstDate,
			summary.LastDate,
			string(summary.LastStatus),
			summary.Last10Days,
		})
	}
	return rows
}
