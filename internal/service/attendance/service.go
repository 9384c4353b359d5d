package attendance

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/punchdeck/attendance-backend-go/internal/domain/attendance"
	"github.com/punchdeck/attendance-backend-go/internal/domain/policy"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/database"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/timeutil"
)

// recalcWorkers bounds the update fan-out so a large table does not exhaust
// the connection pool.
const recalcWorkers = 8

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	settings   policy.SettingsService
	classifier *Classifier
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	settings policy.SettingsService,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		settings:             settings,
		classifier:           NewClassifier(),
	}
}

// GetByDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetByDate(ctx context.Context, req attendance.ByDateRequest) ([]attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	records, err := s.AttendanceRepository.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list records by date: %w", err)
	}
	return toResponses(records), nil
}

// GetByRange implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetByRange(ctx context.Context, req attendance.RangeRequest) ([]attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	records, err := s.AttendanceRepository.List(ctx, attendance.ListFilter{
		StartDate:    &start,
		EndDate:      &end,
		EmployeeCode: req.EmployeeCode,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list records by range: %w", err)
	}
	return toResponses(records), nil
}

// Statistics implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Statistics(ctx context.Context, req attendance.StatisticsRequest) (attendance.StatisticsResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.StatisticsResponse{}, err
	}

	filter := attendance.ListFilter{
		EmployeeCode: req.EmployeeCode,
		Month:        req.Month,
		Year:         req.Year,
	}
	if req.StartDate != "" {
		start, _ := time.Parse("2006-01-02", req.StartDate)
		filter.StartDate = &start
	}
	if req.EndDate != "" {
		end, _ := time.Parse("2006-01-02", req.EndDate)
		filter.EndDate = &end
	}

	stats, err := s.AttendanceRepository.Statistics(ctx, filter)
	if err != nil {
		return attendance.StatisticsResponse{}, fmt.Errorf("failed to compute statistics: %w", err)
	}

	rate := 0.0
	if stats.TotalRecords > 0 {
		rate = timeutil.Round2(float64(stats.PresentCount) / float64(stats.TotalRecords) * 100)
	}
	return attendance.StatisticsResponse{
		TotalRecords:        stats.TotalRecords,
		PresentCount:        stats.PresentCount,
		AbsentCount:         stats.AbsentCount,
		AverageWorkingHours: timeutil.Round2(stats.AverageWorkingHours),
		TotalEmployees:      stats.TotalEmployees,
		AttendanceRate:      rate,
	}, nil
}

// CalendarDates implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CalendarDates(ctx context.Context) ([]string, error) {
	dates, err := s.AttendanceRepository.CalendarDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar dates: %w", err)
	}
	return dates, nil
}

// RecalculateAll implements attendance.AttendanceService. Every stored record
// is re-derived from its raw fields under one policy snapshot taken at the
// start, so a concurrent settings change cannot split the batch between two
// rule sets. Individual write failures are counted, not fatal.
func (s *AttendanceServiceImpl) RecalculateAll(ctx context.Context) (attendance.RecalculateResponse, error) {
	snapshot, err := s.settings.Snapshot(ctx)
	if err != nil {
		return attendance.RecalculateResponse{}, err
	}

	records, err := s.AttendanceRepository.ListAll(ctx)
	if err != nil {
		return attendance.RecalculateResponse{}, fmt.Errorf("failed to list records: %w", err)
	}

	var updated, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(recalcWorkers)
	for _, record := range records {
		g.Go(func() error {
			result := s.classifier.Classify(record.Raw(), snapshot)
			if err := s.AttendanceRepository.UpdateClassification(gctx, record.ID, result); err != nil {
				failed.Add(1)
				return nil
			}
			updated.Add(1)
			return nil
		})
	}
	// Workers never return errors; Wait only propagates context cancellation.
	if err := g.Wait(); err != nil {
		return attendance.RecalculateResponse{}, err
	}

	return attendance.RecalculateResponse{
		Attempted: len(records),
		Updated:   int(updated.Load()),
		Failed:    int(failed.Load()),
	}, nil
}

func toResponses(records []attendance.Attendance) []attendance.AttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toResponse(record))
	}
	return responses
}

func toResponse(record attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:                   record.ID,
		EmployeeCode:         record.EmployeeCode,
		EmployeeName:         record.EmployeeName,
		Date:                 record.Date.Format("2006-01-02"),
		PunchIn:              record.PunchIn,
		PunchOut:             record.PunchOut,
		BreakStart:           record.BreakStart,
		BreakEnd:             record.BreakEnd,
		WorkingHours:         record.WorkingHours,
		Status:               record.Status,
		Month:                record.Month,
		Year:                 record.Year,
		IsLate:               record.IsLate,
		BreakDuration:        record.BreakDuration,
		BreakExceeded:        record.BreakExceeded,
		IsBreakOutsideWindow: record.IsBreakOutsideWindow,
		IsEarlyDeparture:     record.IsEarlyDeparture,
		Notes:                record.Notes,
	}
	if record.WorkingHours != nil {
		resp.WorkingHoursDisplay = timeutil.FormatHours(*record.WorkingHours)
	}
	return resp
}
