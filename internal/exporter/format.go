package exporter

import (
	"math"
	"strconv"
)

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// FormatRate renders a percentage with 2 decimals; NaN becomes an empty cell
func FormatRate(rate float64) string {
	if math.IsNaN(rate) {
		return ""
	}
	return formatFloat(rate)
}
