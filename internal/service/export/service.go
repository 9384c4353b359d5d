package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/punchdeck/attendance-backend-go/internal/domain/attendance"
	"github.com/punchdeck/attendance-backend-go/internal/domain/policy"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/timeutil"
	attendanceservice "github.com/punchdeck/attendance-backend-go/internal/service/attendance"
)

var exportHeader = []string{
	"Employee ID", "Employee Name", "Date", "Punch In", "Punch Out",
	"Working Hours", "Break Start", "Break End", "Break Duration (Mins)",
	"Late?", "Break Exceeded?", "Off Schedule Break?", "Early Departure?", "Status",
}

type ExportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	settings       policy.SettingsService
	classifier     *attendanceservice.Classifier
}

func NewExportService(
	attendanceRepo attendance.AttendanceRepository,
	settings policy.SettingsService,
) attendance.ExportService {
	return &ExportServiceImpl{
		attendanceRepo: attendanceRepo,
		settings:       settings,
		classifier:     attendanceservice.NewClassifier(),
	}
}

// Export implements attendance.ExportService. The status and flag columns
// are re-derived from the raw fields under the current policy, so an export
// taken after a settings change reflects the new rules even before a
// recalculation pass has run.
func (s *ExportServiceImpl) Export(ctx context.Context, req attendance.ExportRequest) (attendance.ExportFile, error) {
	if err := req.Validate(); err != nil {
		return attendance.ExportFile{}, err
	}

	records, err := s.attendanceRepo.List(ctx, attendance.ListFilter{
		Month: req.Month,
		Year:  req.Year,
	})
	if err != nil {
		return attendance.ExportFile{}, fmt.Errorf("failed to list records: %w", err)
	}

	snapshot, err := s.settings.Snapshot(ctx)
	if err != nil {
		return attendance.ExportFile{}, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(exportHeader); err != nil {
		return attendance.ExportFile{}, fmt.Errorf("failed to write header: %w", err)
	}

	for _, record := range records {
		result := s.classifier.Classify(record.Raw(), snapshot)

		hoursDisplay := ""
		if record.WorkingHours != nil {
			hoursDisplay = timeutil.FormatHours(*record.WorkingHours)
		}

		row := []string{
			record.EmployeeCode,
			record.EmployeeName,
			record.Date.Format("2006-01-02"),
			deref(record.PunchIn),
			deref(record.PunchOut),
			hoursDisplay,
			deref(record.BreakStart),
			deref(record.BreakEnd),
			strconv.FormatFloat(result.BreakDuration, 'f', -1, 64),
			yesNo(result.IsLate),
			yesNo(result.BreakExceeded),
			yesNo(result.IsBreakOutsideWindow),
			yesNo(result.IsEarlyDeparture),
			result.Status,
		}
		if err := writer.Write(row); err != nil {
			return attendance.ExportFile{}, fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return attendance.ExportFile{}, fmt.Errorf("failed to flush export: %w", err)
	}

	fileName := "attendance_report.csv"
	if req.Month != 0 && req.Year != 0 {
		fileName = fmt.Sprintf("attendance_%d_%d.csv", req.Month, req.Year)
	}
	return attendance.ExportFile{
		FileName: fileName,
		Content:  buf.Bytes(),
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
