package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/punchdeck/attendance-backend-go/internal/domain/attendance"
	"github.com/punchdeck/attendance-backend-go/internal/domain/employee"
	"github.com/punchdeck/attendance-backend-go/internal/domain/policy"
	"github.com/punchdeck/attendance-backend-go/internal/domain/upload"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/database"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/storage"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/timeutil"
	"github.com/punchdeck/attendance-backend-go/internal/repository/postgresql"
	attendanceservice "github.com/punchdeck/attendance-backend-go/internal/service/attendance"
)

type IngestServiceImpl struct {
	db             *database.DB
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	historyRepo    upload.HistoryRepository
	settings       policy.SettingsService
	fileStorage    storage.FileStorage
	classifier     *attendanceservice.Classifier
}

func NewIngestService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	historyRepo upload.HistoryRepository,
	settings policy.SettingsService,
	fileStorage storage.FileStorage,
) upload.IngestService {
	return &IngestServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		historyRepo:    historyRepo,
		settings:       settings,
		fileStorage:    fileStorage,
		classifier:     attendanceservice.NewClassifier(),
	}
}

// Upload implements upload.IngestService. The file is parsed first, validated
// against date rules, stored, and only then ingested row by row. A re-upload
// for a date that already has data replaces that day and flags the earlier
// history entries.
func (s *IngestServiceImpl) Upload(ctx context.Context, req upload.UploadRequest) (upload.UploadResponse, error) {
	if req.File == nil || req.FileName == "" {
		return upload.UploadResponse{}, upload.ErrNoFile
	}
	if !strings.EqualFold(filepath.Ext(req.FileName), ".csv") {
		return upload.UploadResponse{}, upload.ErrUnsupportedFileType
	}

	// The body is read twice: parse, then store verbatim.
	content, err := io.ReadAll(req.File)
	if err != nil {
		return upload.UploadResponse{}, fmt.Errorf("failed to read upload: %w", err)
	}

	rows, err := ParseCSV(bytes.NewReader(content))
	if err != nil {
		return upload.UploadResponse{}, err
	}

	fileDates := distinctDates(rows)
	effectiveDate := fileDates[0]
	if req.TargetDate != "" {
		if !slices.Contains(fileDates, req.TargetDate) {
			return upload.UploadResponse{}, fmt.Errorf("%w: selected date is %s, but file contains %v",
				upload.ErrDateMismatch, req.TargetDate, fileDates)
		}
		effectiveDate = req.TargetDate
	}

	today := time.Now().Format("2006-01-02")
	if effectiveDate > today {
		return upload.UploadResponse{}, upload.ErrFutureDate
	}

	storedPath, err := s.storeFile(ctx, req.FileName, content)
	if err != nil {
		return upload.UploadResponse{}, err
	}

	snapshot, err := s.settings.Snapshot(ctx)
	if err != nil {
		return upload.UploadResponse{}, err
	}

	success := 0
	failed := 0
	err = postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		// Earlier data for this date is replaced wholesale.
		if err := s.historyRepo.MarkReplacedByDate(ctx, effectiveDate); err != nil {
			return fmt.Errorf("failed to mark replaced uploads: %w", err)
		}
		replaceDate, _ := time.Parse("2006-01-02", effectiveDate)
		if err := s.attendanceRepo.DeleteByDate(ctx, replaceDate); err != nil {
			return fmt.Errorf("failed to clear records for %s: %w", effectiveDate, err)
		}

		for _, row := range rows {
			// Each row gets its own savepoint so one bad row cannot
			// poison the transaction for the rows after it.
			err := postgresql.WithSavepoint(ctx, func(ctx context.Context) error {
				return s.ingestRow(ctx, row, snapshot)
			})
			if err != nil {
				slog.Warn("failed to ingest row",
					"employee_code", row.EmployeeCode,
					"date", row.Date.Format("2006-01-02"),
					"error", err)
				failed++
				continue
			}
			success++
		}

		_, err := s.historyRepo.Create(ctx, upload.History{
			FileName:    req.FileName,
			FilePath:    storedPath,
			TargetDate:  effectiveDate,
			RecordCount: len(rows),
			Status:      upload.StatusProcessed,
		})
		if err != nil {
			return fmt.Errorf("failed to record upload history: %w", err)
		}
		return nil
	})
	if err != nil {
		return upload.UploadResponse{}, err
	}

	return upload.UploadResponse{
		Message:          "File processed successfully",
		RecordsProcessed: len(rows),
		RecordsSuccess:   success,
		RecordsFailed:    failed,
		MaxDate:          fileDates[len(fileDates)-1],
		FileName:         req.FileName,
		FilePath:         storedPath,
	}, nil
}

func (s *IngestServiceImpl) ingestRow(ctx context.Context, row Row, snapshot policy.Policy) error {
	_, err := s.employeeRepo.Upsert(ctx, employee.Employee{
		Code:     row.EmployeeCode,
		Name:     row.EmployeeName,
		IsActive: true,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert employee: %w", err)
	}

	var workingHours *float64
	if row.PunchIn != nil && row.PunchOut != nil {
		workingHours = timeutil.ElapsedHours(*row.PunchIn, *row.PunchOut, row.Date)
	}

	raw := attendance.RawPunch{
		PunchIn:      row.PunchIn,
		PunchOut:     row.PunchOut,
		BreakStart:   row.BreakStart,
		BreakEnd:     row.BreakEnd,
		WorkingHours: workingHours,
		Date:         row.Date,
	}
	result := s.classifier.Classify(raw, snapshot)

	_, err = s.attendanceRepo.Upsert(ctx, attendance.Attendance{
		EmployeeCode:         row.EmployeeCode,
		EmployeeName:         row.EmployeeName,
		Date:                 row.Date,
		PunchIn:              row.PunchIn,
		PunchOut:             row.PunchOut,
		BreakStart:           row.BreakStart,
		BreakEnd:             row.BreakEnd,
		WorkingHours:         workingHours,
		Status:               result.Status,
		Month:                int(row.Date.Month()),
		Year:                 row.Date.Year(),
		IsLate:               result.IsLate,
		BreakDuration:        result.BreakDuration,
		BreakExceeded:        result.BreakExceeded,
		IsBreakOutsideWindow: result.IsBreakOutsideWindow,
		IsEarlyDeparture:     result.IsEarlyDeparture,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert record: %w", err)
	}
	return nil
}

func (s *IngestServiceImpl) storeFile(ctx context.Context, fileName string, content []byte) (string, error) {
	ext := filepath.Ext(fileName)
	base := strings.TrimSuffix(filepath.Base(fileName), ext)
	storedName := fmt.Sprintf("%s_%s%s", base, uuid.NewString(), ext)

	path, err := s.fileStorage.Upload(ctx, bytes.NewReader(content), storedName)
	if err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return path, nil
}

// History implements upload.IngestService.
func (s *IngestServiceImpl) History(ctx context.Context) ([]upload.HistoryResponse, error) {
	entries, err := s.historyRepo.List(ctx, 50)
	if err != nil {
		return nil, fmt.Errorf("failed to list upload history: %w", err)
	}

	responses := make([]upload.HistoryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, upload.HistoryResponse{
			ID:          entry.ID,
			FileName:    entry.FileName,
			TargetDate:  entry.TargetDate,
			RecordCount: entry.RecordCount,
			Status:      entry.Status,
			UploadedAt:  entry.UploadedAt.Format(time.RFC3339),
		})
	}
	return responses, nil
}

// DownloadLatest implements upload.IngestService.
func (s *IngestServiceImpl) DownloadLatest(ctx context.Context) (upload.LatestFile, error) {
	latest, err := s.historyRepo.Latest(ctx)
	if err != nil {
		return upload.LatestFile{}, err
	}

	content, err := s.fileStorage.Download(ctx, latest.FilePath)
	if err != nil {
		return upload.LatestFile{}, upload.ErrNoUploadFound
	}
	return upload.LatestFile{
		FileName: latest.FileName,
		Content:  content,
	}, nil
}

// ResetAll implements upload.IngestService.
func (s *IngestServiceImpl) ResetAll(ctx context.Context) error {
	return postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		if err := s.attendanceRepo.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to delete records: %w", err)
		}
		if err := s.historyRepo.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to delete upload history: %w", err)
		}
		if err := s.employeeRepo.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to delete employees: %w", err)
		}
		return nil
	})
}

func distinctDates(rows []Row) []string {
	seen := make(map[string]bool)
	var dates []string
	for _, row := range rows {
		key := row.Date.Format("2006-01-02")
		if !seen[key] {
			seen[key] = true
			dates = append(dates, key)
		}
	}
	slices.Sort(dates)
	return dates
}
