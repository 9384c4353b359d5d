package timeutil

import (
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		input  string
		hour   int
		minute int
		ok     bool
	}{
		{"09:15", 9, 15, true},
		{"09:15:00", 9, 15, true},
		{"9:15 AM", 9, 15, true},
		{"09:15:00 AM", 9, 15, true},
		{"2:30 PM", 14, 30, true},
		{"2:30:45 pm", 14, 30, true},
		{"  18:05  ", 18, 5, true},
		{"00:00", 0, 0, true},
		{"not a time", 0, 0, false},
		{"", 0, 0, false},
		{"25:00", 0, 0, false},
		{"13:00 PM", 0, 0, false},
	}
	for _, c := range cases {
		got, ok := ParseTimeOfDay(c.input)
		if ok != c.ok {
			t.Errorf("ParseTimeOfDay(%q) ok = %v, want %v", c.input, ok, c.ok)
			continue
		}
		if ok && (got.Hour() != c.hour || got.Minute() != c.minute) {
			t.Errorf("ParseTimeOfDay(%q) = %02d:%02d, want %02d:%02d",
				c.input, got.Hour(), got.Minute(), c.hour, c.minute)
		}
	}
}

func TestElapsedHours(t *testing.T) {
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		start  string
		end    string
		want   float64
		isNil  bool
	}{
		{"full day", "09:45", "18:00", 8.25, false},
		{"twelve hour formats", "9:00 AM", "5:30 PM", 8.5, false},
		{"with seconds", "09:00:30", "17:00:30", 8.0, false},
		{"end before start clamps to zero", "18:00", "09:00", 0, false},
		{"unparseable start", "nope", "17:00", 0, true},
		{"absent end", "09:00", "", 0, true},
	}
	for _, c := range cases {
		got := ElapsedHours(c.start, c.end, date)
		if c.isNil {
			if got != nil {
				t.Errorf("%s: ElapsedHours = %v, want nil", c.name, *got)
			}
			continue
		}
		if got == nil {
			t.Errorf("%s: ElapsedHours = nil, want %v", c.name, c.want)
			continue
		}
		if *got != c.want {
			t.Errorf("%s: ElapsedHours = %v, want %v", c.name, *got, c.want)
		}
	}
}

func TestFormatHours(t *testing.T) {
	cases := []struct {
		input float64
		want  string
	}{
		{8.25, "8h 15m"},
		{8.0, "8h"},
		{0.5, "30m"},
		{0, "0h 0m"},
		{7.999, "8h"}, // 59.94m rounds up and rolls over
		{1.99, "1h 59m"},
	}
	for _, c := range cases {
		if got := FormatHours(c.input); got != c.want {
			t.Errorf("FormatHours(%v) = %q, want %q", c.input, got, c.want)
		}
	}
}
