package attendance

import (
	"time"

	"github.com/punchdeck/attendance-backend-go/internal/domain/attendance"
	"github.com/punchdeck/attendance-backend-go/internal/domain/policy"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/timeutil"
)

// legacyHalfDayHours is the working-hours backstop for half-day detection,
// kept for records whose punch times cannot be parsed but whose hours were
// captured at ingestion.
const legacyHalfDayHours = 5.0

// Classifier derives an attendance classification from one day's raw fields
// and a policy snapshot. It is a pure function of its inputs: no clock, no
// storage, no shared state. The same raw record classified under two
// different snapshots may legitimately yield two different results, which is
// what makes retroactive recalculation possible.
type Classifier struct {
}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify applies the rules in a fixed order. The ordering is the precedence
// contract: later rules may overwrite the tentative status set by earlier
// ones, and the boolean flags are set independently of the final label.
func (c *Classifier) Classify(raw attendance.RawPunch, p policy.Policy) attendance.Classification {
	result := attendance.Classification{
		Status: attendance.StatusAbsent,
	}

	// Rule 1: base presence. No punch-in means nothing else is knowable.
	if !present(raw.PunchIn) {
		return result
	}
	if !present(raw.PunchOut) {
		result.Status = attendance.StatusIncomplete
	} else {
		result.Status = attendance.StatusPresent
	}

	inTime, inOK := parseField(raw.PunchIn)
	outTime, outOK := parseField(raw.PunchOut)

	// Rule 2: half-day detection. Any one trigger suffices, and the label
	// overwrites whatever rule 1 chose.
	halfDay := raw.WorkingHours != nil && *raw.WorkingHours < legacyHalfDayHours
	if halfDayPivot, ok := timeutil.ParseTimeOfDay(p.HalfDayTime); ok {
		if outOK && outTime.Before(halfDayPivot) {
			halfDay = true
		}
		if inOK && inTime.After(halfDayPivot) {
			halfDay = true
		}
	}
	if halfDay {
		result.Status = attendance.StatusHalfDay
	}

	// Rule 3: lateness. The flag is set whenever punch-in is late; the label
	// only changes when nothing stronger has claimed it.
	if inOK {
		if startThreshold, ok := timeutil.ParseTimeOfDay(p.StandardStartTime); ok && inTime.After(startThreshold) {
			result.IsLate = true
			if result.Status == attendance.StatusPresent {
				result.Status = attendance.StatusLate
			}
		}
	}

	// Rule 4: early departure. Informational only, never touches the label.
	if outOK {
		if endThreshold, ok := timeutil.ParseTimeOfDay(p.StandardEndTime); ok && outTime.Before(endThreshold) {
			result.IsEarlyDeparture = true
		}
	}

	// Rule 5: break evaluation, only when both ends parse.
	if bs, ok := parseField(raw.BreakStart); ok {
		if be, ok := parseField(raw.BreakEnd); ok {
			// No clamping here: a break end before its start yields a
			// negative duration, which in turn can never exceed the maximum.
			result.BreakDuration = timeutil.Round2(be.Sub(bs).Minutes())
			if result.BreakDuration > p.MaxBreakDuration {
				result.BreakExceeded = true
			}

			windowStart, startOK := timeutil.ParseTimeOfDay(p.StandardBreakStart)
			windowEnd, endOK := timeutil.ParseTimeOfDay(p.StandardBreakEnd)
			if startOK && endOK && (bs.Before(windowStart) || be.After(windowEnd)) {
				result.IsBreakOutsideWindow = true
			}
		}
	}

	return result
}

func present(field *string) bool {
	return field != nil && *field != ""
}

func parseField(field *string) (time.Time, bool) {
	if !present(field) {
		return time.Time{}, false
	}
	return timeutil.ParseTimeOfDay(*field)
}
