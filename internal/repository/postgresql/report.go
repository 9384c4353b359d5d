package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/punchdeck/attendance-backend-go/internal/domain/report"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type reportSummaryRepository struct {
	db *database.DB
}

func NewReportSummaryRepository(db *database.DB) report.SummaryRepository {
	return &reportSummaryRepository{db: db}
}

// round2 keeps the summary's percentages and averages at an exact two
// decimals; plain float arithmetic drifts on aggregates.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func rate(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return round2(float64(part) / float64(whole) * 100)
}

// Summary implements report.SummaryRepository.
func (r *reportSummaryRepository) Summary(ctx context.Context, startDate, endDate string) (report.DataSummary, error) {
	q := GetQuerier(ctx, r.db)

	dateFilter := ""
	var args []any
	switch {
	case startDate != "" && endDate != "":
		dateFilter = "WHERE date BETWEEN $1 AND $2"
		args = []any{startDate, endDate}
	case startDate != "":
		dateFilter = "WHERE date >= $1"
		args = []any{startDate}
	}

	summary := report.DataSummary{
		Period: report.Period{
			StartDate: startDate,
			EndDate:   endDate,
		},
	}
	if summary.Period.StartDate == "" {
		summary.Period.StartDate = "All time"
	}
	if summary.Period.EndDate == "" {
		summary.Period.EndDate = time.Now().Format("2006-01-02")
	}

	overallQuery := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(DISTINCT employee_code),
			COUNT(*) FILTER (WHERE status = 'Present'),
			COUNT(*) FILTER (WHERE status = 'Absent'),
			COUNT(*) FILTER (WHERE status = 'Leave'),
			COALESCE(AVG(working_hours), 0),
			COALESCE(MIN(working_hours), 0),
			COALESCE(MAX(working_hours), 0)
		FROM attendance_records
		%s
	`, dateFilter)

	o := &summary.Overall
	err := q.QueryRow(ctx, overallQuery, args...).Scan(
		&o.TotalRecords, &o.TotalEmployees, &o.PresentCount, &o.AbsentCount, &o.LeaveCount,
		&o.AvgWorkingHours, &o.MinWorkingHours, &o.MaxWorkingHours,
	)
	if err != nil {
		return report.DataSummary{}, fmt.Errorf("failed to compute overall summary: %w", err)
	}
	o.AttendanceRate = rate(o.PresentCount, o.TotalRecords)
	o.AvgWorkingHours = round2(o.AvgWorkingHours)
	o.MinWorkingHours = round2(o.MinWorkingHours)
	o.MaxWorkingHours = round2(o.MaxWorkingHours)

	// Per-employee summary ordered by attendance issues first.
	employeeQuery := fmt.Sprintf(`
		SELECT
			employee_code,
			employee_name,
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'Present'),
			COUNT(*) FILTER (WHERE status = 'Absent'),
			COALESCE(AVG(working_hours), 0),
			MIN(date),
			MAX(date)
		FROM attendance_records
		%s
		GROUP BY employee_code, employee_name
		ORDER BY COUNT(*) FILTER (WHERE status = 'Absent') DESC, COALESCE(AVG(working_hours), 0) ASC
		LIMIT 20
	`, dateFilter)

	rows, err := q.Query(ctx, employeeQuery, args...)
	if err != nil {
		return report.DataSummary{}, fmt.Errorf("failed to compute employee summary: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e report.EmployeeSummary
		var first, last time.Time
		if err := rows.Scan(
			&e.EmployeeCode, &e.EmployeeName, &e.TotalDays, &e.PresentDays, &e.AbsentDays,
			&e.AvgHours, &first, &last,
		); err != nil {
			return report.DataSummary{}, fmt.Errorf("failed to scan employee summary: %w", err)
		}
		e.AttendanceRate = rate(e.PresentDays, e.TotalDays)
		e.AvgHours = round2(e.AvgHours)
		e.DateRange = fmt.Sprintf("%s to %s", first.Format("2006-01-02"), last.Format("2006-01-02"))
		summary.EmployeeSummary = append(summary.EmployeeSummary, e)
	}
	if err := rows.Err(); err != nil {
		return report.DataSummary{}, err
	}

	trendQuery := fmt.Sprintf(`
		SELECT
			date,
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'Present'),
			COALESCE(AVG(working_hours), 0)
		FROM attendance_records
		%s
		GROUP BY date
		ORDER BY date DESC
		LIMIT 30
	`, dateFilter)

	trendRows, err := q.Query(ctx, trendQuery, args...)
	if err != nil {
		return report.DataSummary{}, fmt.Errorf("failed to compute daily trends: %w", err)
	}
	defer trendRows.Close()

	for trendRows.Next() {
		var t report.DailyTrend
		var day time.Time
		if err := trendRows.Scan(&day, &t.TotalRecords, &t.Present, &t.AvgHours); err != nil {
			return report.DataSummary{}, fmt.Errorf("failed to scan daily trend: %w", err)
		}
		t.Date = day.Format("2006-01-02")
		t.AttendanceRate = rate(t.Present, t.TotalRecords)
		t.AvgHours = round2(t.AvgHours)
		summary.DailyTrends = append(summary.DailyTrends, t)
	}
	return summary, trendRows.Err()
}

type reportUsageRepository struct {
	db *database.DB
}

func NewReportUsageRepository(db *database.DB) report.UsageRepository {
	return &reportUsageRepository{db: db}
}

// Track implements report.UsageRepository.
func (r *reportUsageRepository) Track(ctx context.Context, reportType string, tokensUsed int, cached bool) error {
	q := GetQuerier(ctx, r.db)

	query := `INSERT INTO api_usage (report_type, tokens_used, cached) VALUES ($1, $2, $3)`
	if _, err := q.Exec(ctx, query, reportType, tokensUsed, cached); err != nil {
		return fmt.Errorf("failed to track API usage: %w", err)
	}
	return nil
}

// Stats implements report.UsageRepository.
func (r *reportUsageRepository) Stats(ctx context.Context) (report.UsageStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(tokens_used) FILTER (WHERE created_at >= date_trunc('day', NOW())), 0),
			COALESCE(SUM(tokens_used) FILTER (WHERE created_at >= date_trunc('month', NOW())), 0),
			COUNT(*) FILTER (WHERE cached AND created_at >= date_trunc('day', NOW())),
			COUNT(*) FILTER (WHERE NOT cached AND created_at >= date_trunc('day', NOW()))
		FROM api_usage
	`
	var stats report.UsageStats
	err := q.QueryRow(ctx, query).Scan(
		&stats.TodayTokens, &stats.MonthTokens, &stats.TodayCached, &stats.TodayNew,
	)
	if err != nil {
		return report.UsageStats{}, fmt.Errorf("failed to compute usage stats: %w", err)
	}
	return stats, nil
}
