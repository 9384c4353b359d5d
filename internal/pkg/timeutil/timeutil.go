package timeutil

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Layouts accepted for punch and break times. Spreadsheet exports are wildly
// inconsistent, so 12-hour and 24-hour forms are both supported, with and
// without seconds.
var (
	layouts12h = []string{"3:04:05 PM", "3:04 PM"}
	layouts24h = []string{"15:04:05", "15:04"}
)

// ParseTimeOfDay normalizes a raw time-of-day string into a time.Time carrying
// only the clock component. The 12-hour family is selected when the input
// contains AM or PM (case-insensitive) anywhere; otherwise the 24-hour family
// is tried. Returns ok=false when no layout matches; an unparseable value is
// treated as absent, never as an error.
func ParseTimeOfDay(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	candidates := layouts24h
	if upper := strings.ToUpper(s); strings.Contains(upper, "AM") || strings.Contains(upper, "PM") {
		candidates = layouts12h
		s = upper
	}

	for _, layout := range candidates {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// OnDate anchors a parsed time-of-day onto a calendar date.
func OnDate(clock time.Time, date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC)
}

// ElapsedHours computes the working hours between two raw time-of-day strings
// anchored on the same calendar date. Returns nil when either side is absent
// or unparseable. A negative span (end before start) is clamped to zero; there
// is no cross-midnight rollover. Result is rounded to two decimals.
func ElapsedHours(start, end string, date time.Time) *float64 {
	startClock, ok := ParseTimeOfDay(start)
	if !ok {
		return nil
	}
	endClock, ok := ParseTimeOfDay(end)
	if !ok {
		return nil
	}

	hours := OnDate(endClock, date).Sub(OnDate(startClock, date)).Hours()
	hours = math.Max(0, Round2(hours))
	return &hours
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatHours renders decimal hours as a human string like "8h 15m". A zero
// component is omitted unless both are zero, which renders as "0h 0m".
func FormatHours(decimalHours float64) string {
	hours := int(decimalHours)
	minutes := int(math.Round((decimalHours - float64(hours)) * 60))
	if minutes == 60 {
		hours++
		minutes = 0
	}

	if hours == 0 && minutes == 0 {
		return "0h 0m"
	}

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	return strings.Join(parts, " ")
}
