// Package exporter writes attendance data and reports to disk.
//
// CSVWriter is the core writer: whole-file writes and row streaming.
// Given a Paths, relative names resolve into the data or output directory;
// absolute paths are used as-is.
//
// DatasetExporter writes the generated dataset in its canonical column
// order. StudentExporter builds per-student summaries. WorkbookWriter
// mirrors tables into xlsx workbooks.
//
// Example usage:
//
//	datasets := exporter.NewDatasetExporter(paths, logger)
//	err := datasets.ExportDataset(ctx, records, paths.DatasetCSV)
//
//	students := exporter.NewStudentExporter(paths, logger)
//	summaries := students.GenerateStudentSummaries(records)
//	err = students.ExportStudentSummary(summaries, "student_summary.csv")
package exporter
