package exporter

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/raziya7781/Attendance-Dataset-Analysis/pkg/contracts/domain"
)

// DatasetSheetName is the sheet holding the dataset in the dataset workbook
const DatasetSheetName = "Attendance"

// Sheet is one worksheet: a header row followed by data rows.
// nil cells and NaN floats are left empty.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// WorkbookWriter writes xlsx workbooks
type WorkbookWriter struct {
	logger *slog.Logger
}

// NewWorkbookWriter creates a new workbook writer
func NewWorkbookWriter(logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{logger: logger}
}

// WriteWorkbook writes sheets, in order, to a new workbook at filePath.
// An existing file is replaced.
func (w *WorkbookWriter) WriteWorkbook(filePath string, sheets []Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("workbook %s has no sheets", filePath)
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.Warn("failed to close workbook", slog.String("error", err.Error()))
		}
	}()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return fmt.Errorf("failed to rename sheet %s: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet.Name, err)
		}

		if err := writeSheet(f, sheet); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("Workbook written",
		slog.String("file_path", filePath),
		slog.Int("sheets", len(sheets)))
	return nil
}

// WriteDatasetWorkbook mirrors the dataset CSV into a single-sheet workbook
func (w *WorkbookWriter) WriteDatasetWorkbook(records []domain.AttendanceRecord, filePath string) error {
	rows := make([][]interface{}, 0, len(records))
	for _, values := range DatasetRows(records) {
		row := make([]interface{}, len(values))
		for i, v := range values {
			row[i] = v
		}
		rows = append(rows, row)
	}

	return w.WriteWorkbook(filePath, []Sheet{{
		Name:    DatasetSheetName,
		Headers: domain.DatasetHeader,
		Rows:    rows,
	}})
}

func writeSheet(f *excelize.File, sheet Sheet) error {
	for col, h := range sheet.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet.Name, cell, h); err != nil {
			return fmt.Errorf("failed to set header %s: %w", cell, err)
		}
	}

	for r, row := range sheet.Rows {
		for col, val := range row {
			if val == nil {
				continue
			}
			if fv, ok := val.(float64); ok && math.IsNaN(fv) {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet.Name, cell, val); err != nil {
				return fmt.Errorf("failed to set cell %s!%s: %w", sheet.Name, cell, err)
			}
		}
	}
	return nil
}
