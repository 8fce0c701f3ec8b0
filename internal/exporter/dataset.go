package exporter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/raziya7781/Attendance-Dataset-Analysis/internal/config"
	"github.com/raziya7781/Attendance-Dataset-Analysis/pkg/contracts/domain"
)

// DatasetExporter writes the attendance dataset in its on-disk CSV format
type DatasetExporter struct {
	csvWriter *CSVWriter
	logger    *slog.Logger
}

// NewDatasetExporter creates a new dataset exporter
func NewDatasetExporter(paths *config.Paths, logger *slog.Logger) *DatasetExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetExporter{
		csvWriter: NewCSVWriter(paths, logger),
		logger:    logger,
	}
}

// ExportDataset writes records in the order given, preceded by the dataset header.
// Any existing file is replaced. Output is byte-identical for identical input.
func (d *DatasetExporter) ExportDataset(ctx context.Context, records []domain.AttendanceRecord, filePath string) error {
	stream, err := d.csvWriter.CreateStreamWriter(filePath, domain.DatasetHeader)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}

	for i, record := range records {
		if err := stream.WriteRecord(record.ToSlice()); err != nil {
			stream.Close()
			return fmt.Errorf("failed to write dataset row %d: %w", i, err)
		}
	}

	if err := stream.Close(); err != nil {
		return fmt.Errorf("failed to close dataset file: %w", err)
	}

	d.logger.InfoContext(ctx, "Dataset exported",
		slog.String("file_path", filePath),
		slog.Int("rows", stream.Rows()))
	return nil
}

// DatasetRows converts records to CSV rows in DatasetHeader order
func DatasetRows(records []domain.AttendanceRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.ToSlice())
	}
	return rows
}
