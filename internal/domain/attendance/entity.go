package attendance

import (
	"time"
)

// Status labels. Half Day and Incomplete take precedence over Late in the
// status column; the boolean flags below are independent of the label.
const (
	StatusAbsent     = "Absent"
	StatusIncomplete = "Incomplete"
	StatusPresent    = "Present"
	StatusLate       = "Late"
	StatusHalfDay    = "Half Day"
)

// Attendance is one employee-day record. The raw punch and break strings are
// stored verbatim so the classification can be re-derived at any time under a
// newer policy snapshot.
type Attendance struct {
	ID           string
	EmployeeCode string
	EmployeeName string
	Date         time.Time
	PunchIn      *string
	PunchOut     *string
	BreakStart   *string
	BreakEnd     *string
	WorkingHours *float64
	Status       string
	Month        int
	Year         int
	Notes        *string

	IsLate               bool
	BreakDuration        float64 // minutes
	BreakExceeded        bool
	IsBreakOutsideWindow bool
	IsEarlyDeparture     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RawPunch is the classifier input: one day's raw fields, nothing more. A nil
// pointer means the field was absent in the source row.
type RawPunch struct {
	PunchIn      *string
	PunchOut     *string
	BreakStart   *string
	BreakEnd     *string
	WorkingHours *float64
	Date         time.Time
}

// Classification is the classifier's sole output. The four flags are
// orthogonal to each other and to the status label: a record can be
// "Half Day" with IsLate set at the same time.
type Classification struct {
	Status               string
	IsLate               bool
	BreakDuration        float64 // minutes; negative when break end precedes break start
	BreakExceeded        bool
	IsBreakOutsideWindow bool
	IsEarlyDeparture     bool
}

// Raw returns the record's classifier input.
func (a Attendance) Raw() RawPunch {
	return RawPunch{
		PunchIn:      a.PunchIn,
		PunchOut:     a.PunchOut,
		BreakStart:   a.BreakStart,
		BreakEnd:     a.BreakEnd,
		WorkingHours: a.WorkingHours,
		Date:         a.Date,
	}
}
