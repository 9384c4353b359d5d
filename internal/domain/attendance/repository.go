package attendance

import (
	"context"
	"time"
)

// Statistics is the raw aggregate row computed by the store.
type Statistics struct {
	TotalRecords        int64
	PresentCount        int64
	AbsentCount         int64
	AverageWorkingHours float64
	TotalEmployees      int64
}

// ListFilter narrows record queries. Zero values mean "no constraint".
type ListFilter struct {
	StartDate    *time.Time
	EndDate      *time.Time
	EmployeeCode string
	Month        int
	Year         int
}

// AttendanceRepository defines data access for attendance records. One row
// per employee-day; Upsert replaces an existing row for the same pair.
type AttendanceRepository interface {
	// Upsert inserts or replaces the record for (employee_code, date).
	Upsert(ctx context.Context, record Attendance) (Attendance, error)

	// ListByDate returns all records on one date ordered by employee name.
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)

	// List returns records matching the filter, newest date first.
	List(ctx context.Context, filter ListFilter) ([]Attendance, error)

	// ListAll returns every stored record (the bulk recalculation input).
	ListAll(ctx context.Context) ([]Attendance, error)

	// UpdateClassification replaces the derived columns of one record.
	UpdateClassification(ctx context.Context, id string, c Classification) error

	// Statistics computes the aggregate view under the same filter semantics.
	Statistics(ctx context.Context, filter ListFilter) (Statistics, error)

	// CalendarDates returns the distinct dates that carry data, ascending.
	CalendarDates(ctx context.Context) ([]string, error)

	// DeleteByDate removes all records on a date (re-upload replaces a day).
	DeleteByDate(ctx context.Context, date time.Time) error

	// DeleteAll wipes the table (full reset).
	DeleteAll(ctx context.Context) error
}
