package exporter

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// listDelimiter re-joins list-valued fields for CSV output, matching the
// ingestion format.
const listDelimiter = "|"

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int64 value for CSV output
func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// formatList joins a list-valued field back into one delimited cell
func formatList(values []string) string {
	return strings.Join(values, listDelimiter)
}

// formatDate formats a calendar date for CSV output
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
