package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/punchdeck/attendance-backend-go/internal/domain/attendance"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_code, employee_name, date,
	punch_in, punch_out, break_start, break_end,
	working_hours, status, month, year,
	is_late, break_duration, break_exceeded, is_break_outside_window, is_early_departure,
	notes, created_at, updated_at`

func scanAttendance(row interface{ Scan(dest ...any) error }) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeCode, &att.EmployeeName, &att.Date,
		&att.PunchIn, &att.PunchOut, &att.BreakStart, &att.BreakEnd,
		&att.WorkingHours, &att.Status, &att.Month, &att.Year,
		&att.IsLate, &att.BreakDuration, &att.BreakExceeded, &att.IsBreakOutsideWindow, &att.IsEarlyDeparture,
		&att.Notes, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// Upsert implements attendance.AttendanceRepository.
func (r *attendanceRepository) Upsert(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			employee_code, employee_name, date,
			punch_in, punch_out, break_start, break_end,
			working_hours, status, month, year,
			is_late, break_duration, break_exceeded, is_break_outside_window, is_early_departure,
			notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		)
		ON CONFLICT (employee_code, date) DO UPDATE SET
			employee_name = EXCLUDED.employee_name,
			punch_in = EXCLUDED.punch_in,
			punch_out = EXCLUDED.punch_out,
			break_start = EXCLUDED.break_start,
			break_end = EXCLUDED.break_end,
			working_hours = EXCLUDED.working_hours,
			status = EXCLUDED.status,
			month = EXCLUDED.month,
			year = EXCLUDED.year,
			is_late = EXCLUDED.is_late,
			break_duration = EXCLUDED.break_duration,
			break_exceeded = EXCLUDED.break_exceeded,
			is_break_outside_window = EXCLUDED.is_break_outside_window,
			is_early_departure = EXCLUDED.is_early_departure,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeCode, record.EmployeeName, record.Date,
		record.PunchIn, record.PunchOut, record.BreakStart, record.BreakEnd,
		record.WorkingHours, record.Status, record.Month, record.Year,
		record.IsLate, record.BreakDuration, record.BreakExceeded, record.IsBreakOutsideWindow, record.IsEarlyDeparture,
		record.Notes,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance record: %w", err)
	}

	return record, nil
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance_records
		WHERE date = $1
		ORDER BY employee_name
	`, attendanceColumns)

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, att)
	}
	return records, rows.Err()
}

// buildFilter translates a ListFilter into a WHERE clause.
func buildFilter(filter attendance.ListFilter) (string, []any) {
	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Month != 0 && filter.Year != 0 {
		conditions = append(conditions, fmt.Sprintf("month = %s AND year = %s", arg(filter.Month), arg(filter.Year)))
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("date BETWEEN %s AND %s", arg(*filter.StartDate), arg(*filter.EndDate)))
	} else if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("date >= %s", arg(*filter.StartDate)))
	} else if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("date <= %s", arg(*filter.EndDate)))
	}
	if filter.EmployeeCode != "" {
		conditions = append(conditions, fmt.Sprintf("employee_code = %s", arg(filter.EmployeeCode)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	where, args := buildFilter(filter)
	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance_records
		%s
		ORDER BY date DESC, employee_name
	`, attendanceColumns, where)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, att)
	}
	return records, rows.Err()
}

// ListAll implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListAll(ctx context.Context) ([]attendance.Attendance, error) {
	return r.List(ctx, attendance.ListFilter{})
}

// UpdateClassification implements attendance.AttendanceRepository.
func (r *attendanceRepository) UpdateClassification(ctx context.Context, id string, c attendance.Classification) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records SET
			status = $1,
			is_late = $2,
			break_duration = $3,
			break_exceeded = $4,
			is_break_outside_window = $5,
			is_early_departure = $6,
			updated_at = NOW()
		WHERE id = $7
	`

	tag, err := q.Exec(ctx, query,
		c.Status, c.IsLate, c.BreakDuration, c.BreakExceeded, c.IsBreakOutsideWindow, c.IsEarlyDeparture,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update classification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

// Statistics implements attendance.AttendanceRepository.
func (r *attendanceRepository) Statistics(ctx context.Context, filter attendance.ListFilter) (attendance.Statistics, error) {
	q := GetQuerier(ctx, r.db)

	where, args := buildFilter(filter)
	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'Present'),
			COUNT(*) FILTER (WHERE status = 'Absent'),
			COALESCE(AVG(working_hours), 0),
			COUNT(DISTINCT employee_code)
		FROM attendance_records
		%s
	`, where)

	var stats attendance.Statistics
	err := q.QueryRow(ctx, query, args...).Scan(
		&stats.TotalRecords, &stats.PresentCount, &stats.AbsentCount,
		&stats.AverageWorkingHours, &stats.TotalEmployees,
	)
	if err != nil {
		return attendance.Statistics{}, fmt.Errorf("failed to compute statistics: %w", err)
	}

	// Unfiltered view reports the directory size, not just employees with
	// records.
	if where == "" {
		err = q.QueryRow(ctx, `SELECT COUNT(DISTINCT code) FROM employees`).Scan(&stats.TotalEmployees)
		if err != nil {
			return attendance.Statistics{}, fmt.Errorf("failed to count employees: %w", err)
		}
	}

	return stats, nil
}

// CalendarDates implements attendance.AttendanceRepository.
func (r *attendanceRepository) CalendarDates(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT DISTINCT date FROM attendance_records ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan date: %w", err)
		}
		dates = append(dates, d.Format("2006-01-02"))
	}
	return dates, rows.Err()
}

// DeleteByDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) DeleteByDate(ctx context.Context, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE date = $1`, date); err != nil {
		return fmt.Errorf("failed to delete attendance by date: %w", err)
	}
	return nil
}

// DeleteAll implements attendance.AttendanceRepository.
func (r *attendanceRepository) DeleteAll(ctx context.Context) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM attendance_records`); err != nil {
		return fmt.Errorf("failed to delete attendance records: %w", err)
	}
	return nil
}
