package attendance

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/punchdeck/attendance-backend-go/internal/domain/attendance"
	"github.com/punchdeck/attendance-backend-go/internal/domain/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAttendanceRepo is an in-memory AttendanceRepository for service tests.
type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records []attendance.Attendance
	updates map[string]attendance.Classification
	failIDs map[string]bool
	stats   attendance.Statistics
}

func newFakeAttendanceRepo(records ...attendance.Attendance) *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		records: records,
		updates: make(map[string]attendance.Classification),
		failIDs: make(map[string]bool),
	}
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, record)
	return record, nil
}

func (f *fakeAttendanceRepo) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, r := range f.records {
		if r.Date.Equal(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, error) {
	return f.records, nil
}

func (f *fakeAttendanceRepo) ListAll(ctx context.Context) ([]attendance.Attendance, error) {
	return f.records, nil
}

func (f *fakeAttendanceRepo) UpdateClassification(ctx context.Context, id string, c attendance.Classification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIDs[id] {
		return errors.New("write failed")
	}
	f.updates[id] = c
	return nil
}

func (f *fakeAttendanceRepo) Statistics(ctx context.Context, filter attendance.ListFilter) (attendance.Statistics, error) {
	return f.stats, nil
}

func (f *fakeAttendanceRepo) CalendarDates(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) DeleteByDate(ctx context.Context, date time.Time) error { return nil }
func (f *fakeAttendanceRepo) DeleteAll(ctx context.Context) error                    { return nil }

// fakeSettings serves a fixed policy snapshot.
type fakeSettings struct {
	snapshot policy.Policy
}

func (f *fakeSettings) Values(ctx context.Context) (map[string]string, error) { return nil, nil }
func (f *fakeSettings) Update(ctx context.Context, values map[string]string) (map[string]string, error) {
	return nil, nil
}
func (f *fakeSettings) Snapshot(ctx context.Context) (policy.Policy, error) {
	return f.snapshot, nil
}

func testRecord(id, code string, punchIn, punchOut string, hours float64) attendance.Attendance {
	return attendance.Attendance{
		ID:           id,
		EmployeeCode: code,
		EmployeeName: "Employee " + code,
		Date:         testDate(),
		PunchIn:      strPtr(punchIn),
		PunchOut:     strPtr(punchOut),
		WorkingHours: floatPtr(hours),
	}
}

func TestRecalculateAll_RederivesEveryRecord(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAttendanceRepo(
		testRecord("a", "EMP001", "09:00", "18:45", 9.75),
		testRecord("b", "EMP002", "10:15", "18:45", 8.5),
		testRecord("c", "EMP003", "09:00", "13:30", 4.5),
	)
	svc := NewAttendanceService(nil, repo, &fakeSettings{snapshot: policy.Default()})

	result, err := svc.RecalculateAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Attempted)
	assert.Equal(t, 3, result.Updated)
	assert.Equal(t, 0, result.Failed)

	assert.Equal(t, attendance.StatusPresent, repo.updates["a"].Status)
	assert.Equal(t, attendance.StatusLate, repo.updates["b"].Status)
	assert.Equal(t, attendance.StatusHalfDay, repo.updates["c"].Status)
}

func TestRecalculateAll_FailedWriteDoesNotAbortBatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAttendanceRepo(
		testRecord("a", "EMP001", "09:00", "18:45", 9.75),
		testRecord("b", "EMP002", "09:00", "18:45", 9.75),
	)
	repo.failIDs["a"] = true
	svc := NewAttendanceService(nil, repo, &fakeSettings{snapshot: policy.Default()})

	result, err := svc.RecalculateAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Attempted)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Failed)
	assert.NotContains(t, repo.updates, "a")
}

func TestRecalculateAll_UsesOneSnapshot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var records []attendance.Attendance
	for i := 0; i < 50; i++ {
		records = append(records, testRecord(fmt.Sprintf("id-%d", i), fmt.Sprintf("EMP%03d", i), "09:45", "18:45", 9.0))
	}
	repo := newFakeAttendanceRepo(records...)

	// A lenient snapshot under which 09:45 is not late.
	lenient := policy.Default()
	lenient.StandardStartTime = "10:00"
	svc := NewAttendanceService(nil, repo, &fakeSettings{snapshot: lenient})

	result, err := svc.RecalculateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, result.Updated)
	for id, c := range repo.updates {
		assert.Equal(t, attendance.StatusPresent, c.Status, "record %s", id)
		assert.False(t, c.IsLate)
	}
}

func TestStatistics_RateAndRounding(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAttendanceRepo()
	repo.stats = attendance.Statistics{
		TotalRecords:        3,
		PresentCount:        2,
		AbsentCount:         1,
		AverageWorkingHours: 7.456,
		TotalEmployees:      3,
	}
	svc := NewAttendanceService(nil, repo, &fakeSettings{snapshot: policy.Default()})

	stats, err := svc.Statistics(ctx, attendance.StatisticsRequest{})
	require.NoError(t, err)

	assert.Equal(t, 66.67, stats.AttendanceRate)
	assert.Equal(t, 7.46, stats.AverageWorkingHours)
}

func TestStatistics_EmptyTableHasZeroRate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewAttendanceService(nil, newFakeAttendanceRepo(), &fakeSettings{snapshot: policy.Default()})
	stats, err := svc.Statistics(ctx, attendance.StatisticsRequest{})
	require.NoError(t, err)
	assert.Zero(t, stats.AttendanceRate)
}

func TestGetByDate_RejectsBadDate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewAttendanceService(nil, newFakeAttendanceRepo(), &fakeSettings{snapshot: policy.Default()})
	_, err := svc.GetByDate(ctx, attendance.ByDateRequest{Date: "10/01/2024"})
	assert.Error(t, err)
}

func TestGetByDate_FormatsWorkingHoursDisplay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	record := testRecord("a", "EMP001", "09:00", "18:45", 8.25)
	record.Status = attendance.StatusPresent
	repo := newFakeAttendanceRepo(record)
	svc := NewAttendanceService(nil, repo, &fakeSettings{snapshot: policy.Default()})

	out, err := svc.GetByDate(ctx, attendance.ByDateRequest{Date: "2024-01-10"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "8h 15m", out[0].WorkingHoursDisplay)
}
