package attendance

import (
	"testing"
	"time"

	"github.com/punchdeck/attendance-backend-go/internal/domain/attendance"
	"github.com/punchdeck/attendance-backend-go/internal/domain/policy"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func testDate() time.Time         { return time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC) }

func TestClassify_AbsentWhenNoPunchIn(t *testing.T) {
	c := NewClassifier()

	// Other fields must not matter at all when punch-in is missing.
	raws := []attendance.RawPunch{
		{Date: testDate()},
		{PunchOut: strPtr("18:00"), Date: testDate()},
		{PunchIn: strPtr(""), PunchOut: strPtr("18:00"), BreakStart: strPtr("12:00"), BreakEnd: strPtr("15:00"), WorkingHours: floatPtr(2), Date: testDate()},
	}
	for _, raw := range raws {
		result := c.Classify(raw, policy.Default())
		assert.Equal(t, attendance.StatusAbsent, result.Status)
		assert.False(t, result.IsLate)
		assert.False(t, result.BreakExceeded)
		assert.False(t, result.IsBreakOutsideWindow)
		assert.False(t, result.IsEarlyDeparture)
		assert.Equal(t, 0.0, result.BreakDuration)
	}
}

func TestClassify_IncompleteWhenNoPunchOut(t *testing.T) {
	c := NewClassifier()

	result := c.Classify(attendance.RawPunch{
		PunchIn: strPtr("09:00"),
		Date:    testDate(),
	}, policy.Default())

	assert.Equal(t, attendance.StatusIncomplete, result.Status)
	assert.False(t, result.IsLate, "09:00 is not late under the default 09:30 threshold")
}

func TestClassify_IncompleteAndLateFlag(t *testing.T) {
	c := NewClassifier()

	result := c.Classify(attendance.RawPunch{
		PunchIn: strPtr("10:00"),
		Date:    testDate(),
	}, policy.Default())

	// The label stays Incomplete; the flag is independent.
	assert.Equal(t, attendance.StatusIncomplete, result.Status)
	assert.True(t, result.IsLate)
}

func TestClassify_EndToEndLateDay(t *testing.T) {
	c := NewClassifier()

	hours := timeutil.ElapsedHours("09:45", "18:00", testDate())
	require.NotNil(t, hours)
	assert.Equal(t, 8.25, *hours)

	result := c.Classify(attendance.RawPunch{
		PunchIn:      strPtr("09:45"),
		PunchOut:     strPtr("18:00"),
		WorkingHours: hours,
		Date:         testDate(),
	}, policy.Default())

	assert.Equal(t, attendance.StatusLate, result.Status)
	assert.True(t, result.IsLate)
	assert.True(t, result.IsEarlyDeparture, "18:00 is before the 18:30 standard end")
	assert.False(t, result.BreakExceeded)
}

func TestClassify_HalfDayByEarlyLeave(t *testing.T) {
	c := NewClassifier()

	result := c.Classify(attendance.RawPunch{
		PunchIn:      strPtr("09:00"),
		PunchOut:     strPtr("13:30"),
		WorkingHours: floatPtr(4.5),
		Date:         testDate(),
	}, policy.Default())

	assert.Equal(t, attendance.StatusHalfDay, result.Status)
	assert.True(t, result.IsEarlyDeparture)
	assert.False(t, result.IsLate)
}

func TestClassify_HalfDayByLateArrival(t *testing.T) {
	c := NewClassifier()

	result := c.Classify(attendance.RawPunch{
		PunchIn:      strPtr("14:30"),
		PunchOut:     strPtr("18:45"),
		WorkingHours: floatPtr(4.25),
		Date:         testDate(),
	}, policy.Default())

	// Half Day wins the label; lateness is still flagged.
	assert.Equal(t, attendance.StatusHalfDay, result.Status)
	assert.True(t, result.IsLate)
	assert.False(t, result.IsEarlyDeparture)
}

func TestClassify_HalfDayByShortHours(t *testing.T) {
	c := NewClassifier()

	// Punch times unparseable, but captured hours still trigger the
	// legacy backstop.
	result := c.Classify(attendance.RawPunch{
		PunchIn:      strPtr("morning"),
		PunchOut:     strPtr("afternoon"),
		WorkingHours: floatPtr(3.0),
		Date:         testDate(),
	}, policy.Default())

	assert.Equal(t, attendance.StatusHalfDay, result.Status)
	assert.False(t, result.IsLate)
}

func TestClassify_PresentOnTime(t *testing.T) {
	c := NewClassifier()

	result := c.Classify(attendance.RawPunch{
		PunchIn:      strPtr("09:15"),
		PunchOut:     strPtr("18:45"),
		WorkingHours: floatPtr(9.5),
		Date:         testDate(),
	}, policy.Default())

	assert.Equal(t, attendance.StatusPresent, result.Status)
	assert.False(t, result.IsLate)
	assert.False(t, result.IsEarlyDeparture)
}

func TestClassify_BreakWithinWindow(t *testing.T) {
	c := NewClassifier()

	result := c.Classify(attendance.RawPunch{
		PunchIn:      strPtr("09:00"),
		PunchOut:     strPtr("18:30"),
		WorkingHours: floatPtr(9.5),
		BreakStart:   strPtr("13:05"),
		BreakEnd:     strPtr("13:50"),
		Date:         testDate(),
	}, policy.Default())

	assert.Equal(t, 45.0, result.BreakDuration)
	assert.False(t, result.BreakExceeded)
	assert.False(t, result.IsBreakOutsideWindow)
}

func TestClassify_BreakOutsideWindowAndExceeded(t *testing.T) {
	c := NewClassifier()

	result := c.Classify(attendance.RawPunch{
		PunchIn:      strPtr("09:00"),
		PunchOut:     strPtr("18:30"),
		WorkingHours: floatPtr(9.5),
		BreakStart:   strPtr("12:30"),
		BreakEnd:     strPtr("14:30"),
		Date:         testDate(),
	}, policy.Default())

	assert.Equal(t, 120.0, result.BreakDuration)
	assert.True(t, result.BreakExceeded)
	assert.True(t, result.IsBreakOutsideWindow)
}

func TestClassify_NegativeBreakPassesThrough(t *testing.T) {
	c := NewClassifier()

	result := c.Classify(attendance.RawPunch{
		PunchIn:      strPtr("09:00"),
		PunchOut:     strPtr("18:30"),
		WorkingHours: floatPtr(9.5),
		BreakStart:   strPtr("14:00"),
		BreakEnd:     strPtr("13:00"),
		Date:         testDate(),
	}, policy.Default())

	// Reversed break times are not clamped, and a negative duration can
	// never exceed the maximum.
	assert.Equal(t, -60.0, result.BreakDuration)
	assert.False(t, result.BreakExceeded)
}

func TestClassify_UnparseableBreakLeavesDefaults(t *testing.T) {
	c := NewClassifier()

	result := c.Classify(attendance.RawPunch{
		PunchIn:      strPtr("09:00"),
		PunchOut:     strPtr("18:30"),
		WorkingHours: floatPtr(9.5),
		BreakStart:   strPtr("lunch"),
		BreakEnd:     strPtr("13:50"),
		Date:         testDate(),
	}, policy.Default())

	assert.Equal(t, 0.0, result.BreakDuration)
	assert.False(t, result.BreakExceeded)
	assert.False(t, result.IsBreakOutsideWindow)
}

func TestClassify_Deterministic(t *testing.T) {
	c := NewClassifier()

	raw := attendance.RawPunch{
		PunchIn:      strPtr("9:45 AM"),
		PunchOut:     strPtr("6:00 PM"),
		WorkingHours: floatPtr(8.25),
		BreakStart:   strPtr("13:05"),
		BreakEnd:     strPtr("13:50"),
		Date:         testDate(),
	}

	first := c.Classify(raw, policy.Default())
	second := c.Classify(raw, policy.Default())
	assert.Equal(t, first, second)
}

func TestClassify_RederivesUnderNewPolicy(t *testing.T) {
	c := NewClassifier()

	raw := attendance.RawPunch{
		PunchIn:      strPtr("09:45"),
		PunchOut:     strPtr("18:00"),
		WorkingHours: floatPtr(8.25),
		Date:         testDate(),
	}

	strict := policy.Default()
	lenient := policy.Default()
	lenient.StandardStartTime = "10:00"
	lenient.StandardEndTime = "18:00"

	under := c.Classify(raw, strict)
	assert.Equal(t, attendance.StatusLate, under.Status)
	assert.True(t, under.IsEarlyDeparture)

	relaxed := c.Classify(raw, lenient)
	assert.Equal(t, attendance.StatusPresent, relaxed.Status)
	assert.False(t, relaxed.IsLate)
	assert.False(t, relaxed.IsEarlyDeparture, "18:00 is not strictly before 18:00")
}

func TestPolicyFromValues_FallbackOnCorruptValues(t *testing.T) {
	p := policy.FromValues(map[string]string{
		policy.KeyStandardStartTime: "not a time",
		policy.KeyMaxBreakDuration:  "ninety",
		policy.KeyHalfDayTime:       "13:00",
	})

	assert.Equal(t, "09:30", p.StandardStartTime)
	assert.Equal(t, 60.0, p.MaxBreakDuration)
	assert.Equal(t, "13:00", p.HalfDayTime)
}
