// Package charts renders the attendance analysis as PNG images.
//
// Three charts are produced in the output directory:
//
//	status_distribution.png   record count per status
//	day_wise_attendance.png   Monday..Friday attendance rate, 0-100 axis
//	attendance_heatmap.png    presence per student and date, with a color bar
package charts
