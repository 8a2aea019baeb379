package utils

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the storage format for calendar dates. No time component,
	// no time zone: the application operates on local calendar days only.
	DateLayout = "2006-01-02"

	// ClockLayout is the storage format for times of day. Zero-padded HH:MM
	// values compare correctly as plain strings, which event ordering and the
	// conflict check rely on.
	ClockLayout = "15:04"
)

// ParseDate converts a stored "YYYY-MM-DD" string into a date value normalized
// to midnight local time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", s, err)
	}
	return t, nil
}

// ValidClock reports whether s is a well-formed zero-padded "HH:MM" value.
func ValidClock(s string) bool {
	if len(s) != len(ClockLayout) {
		return false
	}
	_, err := time.Parse(ClockLayout, s)
	return err == nil
}

// Midnight strips the time component from t, keeping its location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day,
// ignoring their time components.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// FormatDate renders t in the storage date format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
