package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// AttendanceHeader is the header line of the attendance CSV
const AttendanceHeader = "Student_ID,Date,Day_of_Week,Class_Type,Status"

// WriteAttendanceCSV writes a dataset made of the header and lines into a
// temp dir and returns its path
func WriteAttendanceCSV(t *testing.T, lines ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "student_attendance.csv")
	content := AttendanceHeader + "\n" + strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write dataset fixture: %v", err)
	}
	return path
}

// MondayOnlyLines is a dataset with Monday records only, 3 Present and 1 Absent
var MondayOnlyLines = []string{
	"S001,2023-09-04,Monday,Lecture,Present",
	"S002,2023-09-04,Monday,Lecture,Present",
	"S003,2023-09-04,Monday,Lecture,Absent",
	"S004,2023-09-04,Monday,Lecture,Present",
}
