package domain

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the on-disk format of the Date column
const DateLayout = "2006-01-02"

// Dataset column names, in file order
const (
	ColumnStudentID = "Student_ID"
	ColumnDate      = "Date"
	ColumnDayOfWeek = "Day_of_Week"
	ColumnClassType = "Class_Type"
	ColumnStatus    = "Status"
)

// DatasetHeader is the header row of the attendance CSV
var DatasetHeader = []string{
	ColumnStudentID,
	ColumnDate,
	ColumnDayOfWeek,
	ColumnClassType,
	ColumnStatus,
}

// AttendanceStatus is the outcome recorded for a student on a date
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "Present"
	StatusAbsent  AttendanceStatus = "Absent"
	StatusLate    AttendanceStatus = "Late"
)

// Statuses lists every valid status in draw order
var Statuses = []AttendanceStatus{StatusPresent, StatusAbsent, StatusLate}

// ClassType is the kind of session attended
type ClassType string

const (
	ClassLecture ClassType = "Lecture"
	ClassLab     ClassType = "Lab"
)

// Weekdays is the fixed reporting order of school days.
// Aggregations reindex onto this list rather than on the data.
var Weekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
}

// IsSchoolDay reports whether d is Monday through Friday
func IsSchoolDay(d time.Weekday) bool {
	return d != time.Saturday && d != time.Sunday
}

// AttendanceRecord is one row of the dataset
type AttendanceRecord struct {
	StudentID string           `json:"student_id" validate:"required"`
	Date      time.Time        `json:"date" validate:"required"`
	DayOfWeek string           `json:"day_of_week" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday"`
	ClassType ClassType        `json:"class_type" validate:"required,oneof=Lecture Lab"`
	Status    AttendanceStatus `json:"status" validate:"required,oneof=Present Absent Late"`
}

// NewAttendanceRecord builds a record whose day of week is derived from date
func NewAttendanceRecord(studentID string, date time.Time, classType ClassType, status AttendanceStatus) AttendanceRecord {
	return AttendanceRecord{
		StudentID: studentID,
		Date:      date,
		DayOfWeek: date.Weekday().String(),
		ClassType: classType,
		Status:    status,
	}
}

// IsPresent reports whether the record counts toward attendance
func (r AttendanceRecord) IsPresent() bool {
	return r.Status == StatusPresent
}

// ToSlice returns the record as a CSV row in DatasetHeader order
func (r AttendanceRecord) ToSlice() []string {
	return []string{
		r.StudentID,
		r.Date.Format(DateLayout),
		r.DayOfWeek,
		string(r.ClassType),
		string(r.Status),
	}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func recordValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterStructValidation(weekdayMatchesDate, AttendanceRecord{})
	})
	return validate
}

// weekdayMatchesDate rejects records whose day name disagrees with the date
func weekdayMatchesDate(sl validator.StructLevel) {
	r := sl.Current().Interface().(AttendanceRecord)
	if r.Date.IsZero() {
		return
	}
	if !IsSchoolDay(r.Date.Weekday()) {
		sl.ReportError(r.Date, "Date", "Date", "schoolday", "")
		return
	}
	if r.DayOfWeek != r.Date.Weekday().String() {
		sl.ReportError(r.DayOfWeek, "DayOfWeek", "DayOfWeek", "weekday", r.Date.Weekday().String())
	}
}

// Validate checks the record invariants
func (r AttendanceRecord) Validate() error {
	if err := recordValidator().Struct(r); err != nil {
		return fmt.Errorf("invalid attendance record %s/%s: %w", r.StudentID, r.Date.Format(DateLayout), err)
	}
	return nil
}

// ValidateRecords checks every record and the (student, date) uniqueness invariant
func ValidateRecords(records []AttendanceRecord) error {
	type key struct {
		student string
		date    string
	}
	seen := make(map[key]struct{}, len(records))
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		k := key{r.StudentID, r.Date.Format(DateLayout)}
		if _, dup := seen[k]; dup {
			return fmt.Errorf("record %d: duplicate entry for student %s on %s", i, k.student, k.date)
		}
		seen[k] = struct{}{}
	}
	return nil
}
