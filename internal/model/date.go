package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO-8601 calendar date format used in payloads
const DateLayout = "2006-01-02"

// Day truncates t to midnight in its own location
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseDate parses date input like "2024-01-15" or "-1" (yesterday)
// relative to today
func ParseDate(input string, today time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)

	// Relative dates: +N or -N days
	if strings.HasPrefix(input, "+") || strings.HasPrefix(input, "-") {
		days := 0
		if _, err := fmt.Sscanf(input, "%d", &days); err != nil {
			return time.Time{}, fmt.Errorf("invalid relative date format: %s", input)
		}
		return Day(today).AddDate(0, 0, days), nil
	}

	formats := []string{
		DateLayout,
		"2006/01/02",
		"01/02/2006",
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, input, today.Location()); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s (use YYYY-MM-DD or +N/-N)", input)
}
