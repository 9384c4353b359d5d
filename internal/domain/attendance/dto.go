package attendance

import (
	"github.com/punchdeck/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ByDateRequest struct {
	Date string `json:"date"`
}

func (r *ByDateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RangeRequest struct {
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	EmployeeCode string `json:"employee_id,omitempty"`
}

func (r *RangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Message: "startDate is required",
		})
	} else if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Message: "startDate must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate is required",
		})
	} else if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// StatisticsRequest filters the aggregate view. All fields are optional and
// combine the way the record listing filters do.
type StatisticsRequest struct {
	Month        int    `json:"month,omitempty"`
	Year         int    `json:"year,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	EmployeeCode string `json:"employee_id,omitempty"`
}

func (r *StatisticsRequest) Validate() error {
	var errs validator.ValidationErrors

	if (r.Month != 0) != (r.Year != 0) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month and year must be provided together",
		})
	}
	if r.Month != 0 && (r.Month < 1 || r.Month > 12) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if r.StartDate != "" {
		if _, ok := validator.IsValidDate(r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "startDate",
				Message: "startDate must be in YYYY-MM-DD format",
			})
		}
	}
	if r.EndDate != "" {
		if _, ok := validator.IsValidDate(r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "endDate",
				Message: "endDate must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID                   string   `json:"id"`
	EmployeeCode         string   `json:"employee_id"`
	EmployeeName         string   `json:"employee_name"`
	Date                 string   `json:"date"`
	PunchIn              *string  `json:"punch_in_time"`
	PunchOut             *string  `json:"punch_out_time"`
	BreakStart           *string  `json:"break_start_time"`
	BreakEnd             *string  `json:"break_end_time"`
	WorkingHours         *float64 `json:"working_hours"`
	WorkingHoursDisplay  string   `json:"working_hours_display,omitempty"`
	Status               string   `json:"status"`
	Month                int      `json:"month"`
	Year                 int      `json:"year"`
	IsLate               bool     `json:"is_late"`
	BreakDuration        float64  `json:"break_duration"`
	BreakExceeded        bool     `json:"break_exceeded"`
	IsBreakOutsideWindow bool     `json:"is_break_outside_window"`
	IsEarlyDeparture     bool     `json:"is_early_departure"`
	Notes                *string  `json:"notes,omitempty"`
}

type StatisticsResponse struct {
	TotalRecords        int64   `json:"totalRecords"`
	PresentCount        int64   `json:"presentCount"`
	AbsentCount         int64   `json:"absentCount"`
	AverageWorkingHours float64 `json:"averageWorkingHours"`
	TotalEmployees      int64   `json:"totalEmployees"`
	AttendanceRate      float64 `json:"attendanceRate"`
}

// RecalculateResponse reports the outcome of a bulk re-derivation pass. A
// failed write never aborts the batch; it only increments Failed.
type RecalculateResponse struct {
	Attempted int `json:"attempted"`
	Updated   int `json:"updated"`
	Failed    int `json:"failed"`
}
