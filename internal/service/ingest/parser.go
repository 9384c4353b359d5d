package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/punchdeck/attendance-backend-go/internal/domain/upload"
)

// columnCandidates maps each canonical field to the header spellings seen in
// the wild. Matching is exact after trimming; the first hit per field wins.
var columnCandidates = map[string][]string{
	"employee_id":   {"Employee ID", "employee_id", "EmployeeID", "empId", "EmpID"},
	"employee_name": {"Employee Name", "employee_name", "EmployeeName", "Name", "name"},
	"date":          {"Date", "date", "Attendance Date", "AttendanceDate"},
	"punch_in":      {"Punch In", "punch_in", "PunchIn", "Check In", "CheckIn"},
	"punch_out":     {"Punch Out", "punch_out", "PunchOut", "Check Out", "CheckOut"},
	"break_start":   {"Break Start", "break_start", "BreakStart", "Lunch Start", "LunchStart"},
	"break_end":     {"Break End", "break_end", "BreakEnd", "Lunch End", "LunchEnd"},
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
	"2006-01-02 15:04:05",
}

// Row is one parsed spreadsheet line, raw fields only. Classification and
// working-hours derivation happen in the service under a policy snapshot.
type Row struct {
	EmployeeCode string
	EmployeeName string
	Date         time.Time
	PunchIn      *string
	PunchOut     *string
	BreakStart   *string
	BreakEnd     *string
}

// ParseCSV reads the whole spreadsheet. Rows with an unparseable date or a
// blank employee id are skipped, matching the forgiving posture of the rest
// of the pipeline; only structural problems (missing required columns, no
// rows at all) are errors.
func ParseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, upload.ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	colIndex := mapColumns(header)
	if _, ok := colIndex["employee_id"]; !ok {
		return nil, upload.ErrMissingColumns
	}
	if _, ok := colIndex["employee_name"]; !ok {
		return nil, upload.ErrMissingColumns
	}
	if _, ok := colIndex["date"]; !ok {
		return nil, upload.ErrMissingColumns
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		code := strings.TrimSpace(cell(record, colIndex, "employee_id"))
		name := strings.TrimSpace(cell(record, colIndex, "employee_name"))
		if code == "" {
			continue
		}

		date, ok := parseDate(cell(record, colIndex, "date"))
		if !ok {
			continue
		}

		rows = append(rows, Row{
			EmployeeCode: code,
			EmployeeName: name,
			Date:         date,
			PunchIn:      cellPtr(record, colIndex, "punch_in"),
			PunchOut:     cellPtr(record, colIndex, "punch_out"),
			BreakStart:   cellPtr(record, colIndex, "break_start"),
			BreakEnd:     cellPtr(record, colIndex, "break_end"),
		})
	}

	if len(rows) == 0 {
		return nil, upload.ErrEmptyFile
	}
	return rows, nil
}

func mapColumns(header []string) map[string]int {
	index := make(map[string]int)
	for field, candidates := range columnCandidates {
		for i, col := range header {
			if matchesAny(strings.TrimSpace(col), candidates) {
				index[field] = i
				break
			}
		}
	}
	return index
}

func matchesAny(col string, candidates []string) bool {
	for _, candidate := range candidates {
		if col == candidate {
			return true
		}
	}
	return false
}

func cell(record []string, colIndex map[string]int, field string) string {
	i, ok := colIndex[field]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func cellPtr(record []string, colIndex map[string]int, field string) *string {
	value := strings.TrimSpace(cell(record, colIndex, field))
	if value == "" {
		return nil
	}
	return &value
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date.Truncate(24 * time.Hour), true
		}
	}
	return time.Time{}, false
}
