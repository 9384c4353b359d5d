package ingest

import (
	"errors"
	"strings"
	"testing"

	"github.com/punchdeck/attendance-backend-go/internal/domain/upload"
)

func TestParseCSV_CanonicalHeaders(t *testing.T) {
	input := strings.Join([]string{
		"Employee ID,Employee Name,Date,Punch In,Punch Out,Break Start,Break End",
		"EMP001,Alice,2024-01-10,09:15,18:45,13:00,13:45",
		"EMP002,Bob,2024-01-10,,,,",
	}, "\n")

	rows, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ParseCSV() returned %d rows, want 2", len(rows))
	}

	first := rows[0]
	if first.EmployeeCode != "EMP001" || first.EmployeeName != "Alice" {
		t.Errorf("row = %q/%q, want EMP001/Alice", first.EmployeeCode, first.EmployeeName)
	}
	if first.PunchIn == nil || *first.PunchIn != "09:15" {
		t.Errorf("PunchIn = %v, want 09:15", first.PunchIn)
	}
	if first.Date.Format("2006-01-02") != "2024-01-10" {
		t.Errorf("Date = %v, want 2024-01-10", first.Date)
	}

	second := rows[1]
	if second.PunchIn != nil || second.PunchOut != nil || second.BreakStart != nil || second.BreakEnd != nil {
		t.Errorf("blank cells should map to nil, got %+v", second)
	}
}

func TestParseCSV_AlternateHeaderSpellings(t *testing.T) {
	input := strings.Join([]string{
		"EmpID,Name,AttendanceDate,CheckIn,CheckOut,LunchStart,LunchEnd",
		"EMP001,Alice,2024-01-10,9:15 AM,6:45 PM,1:00 PM,1:45 PM",
	}, "\n")

	rows, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("ParseCSV() returned %d rows, want 1", len(rows))
	}
	if rows[0].BreakStart == nil || *rows[0].BreakStart != "1:00 PM" {
		t.Errorf("BreakStart = %v, want 1:00 PM", rows[0].BreakStart)
	}
}

func TestParseCSV_MissingRequiredColumns(t *testing.T) {
	input := strings.Join([]string{
		"Employee ID,Punch In,Punch Out",
		"EMP001,09:15,18:45",
	}, "\n")

	_, err := ParseCSV(strings.NewReader(input))
	if !errors.Is(err, upload.ErrMissingColumns) {
		t.Errorf("ParseCSV() error = %v, want ErrMissingColumns", err)
	}
}

func TestParseCSV_EmptyFile(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	if !errors.Is(err, upload.ErrEmptyFile) {
		t.Errorf("ParseCSV() on empty input error = %v, want ErrEmptyFile", err)
	}

	headerOnly := "Employee ID,Employee Name,Date\n"
	_, err = ParseCSV(strings.NewReader(headerOnly))
	if !errors.Is(err, upload.ErrEmptyFile) {
		t.Errorf("ParseCSV() on header-only input error = %v, want ErrEmptyFile", err)
	}
}

func TestParseCSV_SkipsBadRows(t *testing.T) {
	input := strings.Join([]string{
		"Employee ID,Employee Name,Date",
		"EMP001,Alice,2024-01-10",
		",NoCode,2024-01-10",
		"EMP003,BadDate,not-a-date",
		"EMP004,Dana,10/02/2024",
	}, "\n")

	rows, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ParseCSV() returned %d rows, want 2 (bad rows skipped)", len(rows))
	}
	if rows[1].Date.Format("2006-01-02") != "2024-10-02" {
		t.Errorf("slash date parsed as %v, want 2024-10-02", rows[1].Date)
	}
}
