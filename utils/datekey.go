package utils

import (
	"fmt"
	"strings"
	"time"
)

// DateKeyLayout is the canonical YYYY-MM-DD form used for grouping and
// comparison everywhere a service date travels through the system.
const DateKeyLayout = "2006-01-02"

// NormalizeDateKey reduces a date string to its canonical YYYY-MM-DD key.
// Full RFC3339 timestamps are truncated to their date part.
func NormalizeDateKey(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty date")
	}
	if len(s) > len(DateKeyLayout) {
		s = s[:len(DateKeyLayout)]
	}
	t, err := time.Parse(DateKeyLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t.Format(DateKeyLayout), nil
}

// DateKeyToUTCNoon converts a date key into a time anchored at 12:00:00 UTC.
// Anchoring at noon keeps the stored value from rendering as the previous
// day in US time zones.
func DateKeyToUTCNoon(key string) (time.Time, error) {
	t, err := time.Parse(DateKeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC), nil
}

// StartOfWeek returns the Monday-based start of the week containing t,
// truncated to midnight.
func StartOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	diff := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -diff)
}

// WeekdayOfKey returns the weekday (0=Sunday .. 6=Saturday) of a date key.
func WeekdayOfKey(key string) (int, error) {
	t, err := time.Parse(DateKeyLayout, key)
	if err != nil {
		return 0, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return int(t.Weekday()), nil
}
