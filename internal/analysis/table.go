package analysis

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	apperrors "github.com/raziya7781/Attendance-Dataset-Analysis/internal/errors"
	"github.com/raziya7781/Attendance-Dataset-Analysis/internal/validation"
	"github.com/raziya7781/Attendance-Dataset-Analysis/pkg/contracts/domain"
)

// MissingTokens are the cell values treated as missing on load
var MissingTokens = []string{"", "NA", "NaN", "<nil>"}

// Table is the loaded attendance dataset.
// Every column is kept as strings; Date is parsed separately by Preprocess.
type Table struct {
	df     dataframe.DataFrame
	source string

	// Filled by Preprocess; a zero time marks a missing or unparseable date.
	dates []time.Time
}

// LoadDataset reads the attendance CSV at path.
// A missing file is a NOT_FOUND error and nothing is read.
func LoadDataset(ctx context.Context, logger *slog.Logger, path string) (*Table, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := validation.NewFileValidator(logger).ValidateFile(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open dataset", err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(skipBOM(f),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(MissingTokens),
	)
	if df.Err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to parse %s", path), df.Err)
	}

	if err := requireColumns(df); err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("dataset %s", path), err).
			WithContext("columns", df.Names())
	}

	logger.InfoContext(ctx, "Dataset loaded",
		slog.String("file", path),
		slog.Int("rows", df.Nrow()),
		slog.Int("columns", df.Ncol()))

	return &Table{df: df, source: path}, nil
}

// NewTable wraps an existing dataframe, e.g. one built in memory
func NewTable(df dataframe.DataFrame) (*Table, error) {
	if df.Err != nil {
		return nil, apperrors.NewParsingError("failed to build dataset", df.Err)
	}
	if err := requireColumns(df); err != nil {
		return nil, apperrors.NewParsingError("invalid dataset", err)
	}
	return &Table{df: df}, nil
}

func requireColumns(df dataframe.DataFrame) error {
	names := make(map[string]bool, df.Ncol())
	for _, n := range df.Names() {
		names[n] = true
	}
	for _, col := range domain.DatasetHeader {
		if !names[col] {
			return fmt.Errorf("missing column %s", col)
		}
	}
	return nil
}

// TableFromRecords builds a table from generated records
func TableFromRecords(records []domain.AttendanceRecord) (*Table, error) {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, domain.DatasetHeader)
	for _, r := range records {
		rows = append(rows, r.ToSlice())
	}
	return NewTable(dataframe.LoadRecords(rows,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(MissingTokens),
	))
}

// Len returns the number of rows
func (t *Table) Len() int {
	return t.df.Nrow()
}

// Source returns the file the table was loaded from, if any
func (t *Table) Source() string {
	return t.source
}

// Column returns the values of a column with missing cells as "".
// The second result marks which cells are missing.
func (t *Table) Column(name string) ([]string, []bool) {
	return columnValues(t.df.Col(name))
}

// Dates returns the parsed Date column; nil before Preprocess
func (t *Table) Dates() []time.Time {
	return t.dates
}

// Head returns up to n rows as strings, header excluded
func (t *Table) Head(n int) [][]string {
	if n > t.df.Nrow() {
		n = t.df.Nrow()
	}
	records := t.df.Records()
	return records[1 : n+1]
}

// Records converts complete, valid rows to domain records.
// Rows with a missing or invalid field are skipped and counted.
func (t *Table) Records() ([]domain.AttendanceRecord, int) {
	ids, idMissing := t.Column(domain.ColumnStudentID)
	classes, classMissing := t.Column(domain.ColumnClassType)
	statuses, statusMissing := t.Column(domain.ColumnStatus)
	days, dayMissing := t.Column(domain.ColumnDayOfWeek)
	dates := t.dates
	if dates == nil {
		dates = parseDates(t.Column(domain.ColumnDate))
	}

	records := make([]domain.AttendanceRecord, 0, t.Len())
	skipped := 0
	for i := 0; i < t.Len(); i++ {
		if idMissing[i] || classMissing[i] || statusMissing[i] || dayMissing[i] || dates[i].IsZero() {
			skipped++
			continue
		}
		r := domain.AttendanceRecord{
			StudentID: ids[i],
			Date:      dates[i],
			DayOfWeek: days[i],
			ClassType: domain.ClassType(classes[i]),
			Status:    domain.AttendanceStatus(statuses[i]),
		}
		if r.Validate() != nil {
			skipped++
			continue
		}
		records = append(records, r)
	}
	return records, skipped
}

// filterEq returns the rows whose column equals value. Missing cells never match.
func filterEq(df dataframe.DataFrame, column, value string) (dataframe.DataFrame, error) {
	if df.Nrow() == 0 {
		return df, nil
	}
	out := df.Filter(dataframe.F{
		Colname:    column,
		Comparator: series.Eq,
		Comparando: value,
	})
	if out.Err != nil {
		return out, fmt.Errorf("filter %s == %q: %w", column, value, out.Err)
	}
	return out, nil
}

func columnValues(s series.Series) ([]string, []bool) {
	values := s.Records()
	missing := s.IsNaN()
	for i := range values {
		if missing[i] {
			values[i] = ""
		}
	}
	return values, missing
}

// skipBOM drops a leading UTF-8 byte order mark
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	return br
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}
