package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habithaven/internal/constants"
)

// timestampLayouts are the timestamp shapes the backend has been seen to send.
var timestampLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", constants.DateFormat}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ClockInTimezone returns a now function that reports wall time in timezone.
func ClockInTimezone(timezone string) (func() time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return func() time.Time { return time.Now().In(loc) }, nil
}

// GetTodayInTimezone returns today's date string (YYYY-MM-DD) in the specified timezone.
func GetTodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// Today formats the date reported by now.
func Today(now func() time.Time) string {
	return now().Format(constants.DateFormat)
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// NormalizeDate reduces timestamps to YYYY-MM-DD; other values pass through.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= len(constants.DateFormat) {
		if _, err := ParseDateInLocation(s[:len(constants.DateFormat)], time.UTC); err == nil {
			return s[:len(constants.DateFormat)]
		}
	}
	return s
}

// ParseTimestamp tries each known layout and returns nil when none match.
func ParseTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
