package utils

import "time"

// CalculateElapsedDays calculates the number of whole days between since and now
func CalculateElapsedDays(since, now time.Time) int {
	return int(now.Sub(since).Hours() / 24)
}

// FormatDate formats a time as a date, or "N/A" for the zero time
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("2006-01-02")
}
