package domain

import "time"

// DateLayout is the ISO-8601 calendar date layout used in data files.
const DateLayout = time.DateOnly

// DateOf truncates t to its calendar date at midnight UTC, keeping the
// year, month and day as seen in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO-8601 calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
