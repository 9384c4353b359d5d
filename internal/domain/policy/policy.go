package policy

import (
	"strconv"

	"github.com/punchdeck/attendance-backend-go/internal/pkg/timeutil"
)

// Setting keys recognized by the classifier. Anything else stored in the
// settings table is carried along untouched.
const (
	KeyStandardStartTime  = "standard_start_time"
	KeyStandardEndTime    = "standard_end_time"
	KeyStandardBreakStart = "standard_break_start"
	KeyStandardBreakEnd   = "standard_break_end"
	KeyMaxBreakDuration   = "max_break_duration"
	KeyHalfDayTime        = "half_day_time"
)

// Policy is an immutable snapshot of the attendance rules configuration.
// Classification receives it by value: the classifier never reaches into
// shared settings state, which is what makes stored records re-derivable
// under any later snapshot.
type Policy struct {
	StandardStartTime  string
	StandardEndTime    string
	StandardBreakStart string
	StandardBreakEnd   string
	MaxBreakDuration   float64 // minutes
	HalfDayTime        string
}

// Default returns the hardcoded fallback policy.
func Default() Policy {
	return Policy{
		StandardStartTime:  "09:30",
		StandardEndTime:    "18:30",
		StandardBreakStart: "13:00",
		StandardBreakEnd:   "14:00",
		MaxBreakDuration:   60,
		HalfDayTime:        "14:00",
	}
}

// DefaultValues returns the defaults as a settings map, used to guarantee
// every recognized key is present in API responses.
func DefaultValues() map[string]string {
	return map[string]string{
		KeyStandardStartTime:  "09:30",
		KeyStandardEndTime:    "18:30",
		KeyStandardBreakStart: "13:00",
		KeyStandardBreakEnd:   "14:00",
		KeyMaxBreakDuration:   "60",
		KeyHalfDayTime:        "14:00",
	}
}

// FromValues builds a snapshot from a raw settings map. A missing or corrupt
// value falls back to the default for that key; this never fails.
func FromValues(values map[string]string) Policy {
	p := Default()
	p.StandardStartTime = timeValue(values, KeyStandardStartTime, p.StandardStartTime)
	p.StandardEndTime = timeValue(values, KeyStandardEndTime, p.StandardEndTime)
	p.StandardBreakStart = timeValue(values, KeyStandardBreakStart, p.StandardBreakStart)
	p.StandardBreakEnd = timeValue(values, KeyStandardBreakEnd, p.StandardBreakEnd)
	p.HalfDayTime = timeValue(values, KeyHalfDayTime, p.HalfDayTime)

	if raw, ok := values[KeyMaxBreakDuration]; ok {
		if minutes, err := strconv.ParseFloat(raw, 64); err == nil {
			p.MaxBreakDuration = minutes
		}
	}
	return p
}

func timeValue(values map[string]string, key, fallback string) string {
	raw, ok := values[key]
	if !ok {
		return fallback
	}
	if _, ok := timeutil.ParseTimeOfDay(raw); !ok {
		return fallback
	}
	return raw
}
