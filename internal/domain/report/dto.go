package report

import (
	"github.com/punchdeck/attendance-backend-go/internal/pkg/validator"
)

// Report types accepted by the narrative generator.
var reportTypes = []string{"daily", "weekly", "monthly", "custom"}

type GenerateRequest struct {
	ReportType      string `json:"reportType"`
	StartDate       string `json:"startDate,omitempty"`
	EndDate         string `json:"endDate,omitempty"`
	ForceRegenerate bool   `json:"forceRegenerate,omitempty"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ReportType == "" {
		r.ReportType = "daily"
	}
	if !validator.IsInSlice(r.ReportType, reportTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "reportType",
			Message: "reportType must be one of daily, weekly, monthly, custom",
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

type ConfigureRequest struct {
	APIKey string `json:"apiKey"`
}

func (r *ConfigureRequest) Validate() error {
	if validator.IsEmpty(r.APIKey) {
		return validator.ValidationErrors{{Field: "apiKey", Message: "apiKey is required"}}
	}
	return nil
}

// ========================================
// DATA SUMMARY
// ========================================

// DataSummary is the aggregated view handed to the text-generation model.
// Sending aggregates instead of raw rows keeps the token footprint small.
type DataSummary struct {
	Period          Period            `json:"period"`
	Overall         OverallStats      `json:"overall"`
	EmployeeSummary []EmployeeSummary `json:"employee_summary"`
	DailyTrends     []DailyTrend      `json:"daily_trends"`
}

type Period struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type OverallStats struct {
	TotalRecords    int64   `json:"total_records"`
	TotalEmployees  int64   `json:"total_employees"`
	PresentCount    int64   `json:"present_count"`
	AbsentCount     int64   `json:"absent_count"`
	LeaveCount      int64   `json:"leave_count"`
	AttendanceRate  float64 `json:"attendance_rate"`
	AvgWorkingHours float64 `json:"avg_working_hours"`
	MinWorkingHours float64 `json:"min_working_hours"`
	MaxWorkingHours float64 `json:"max_working_hours"`
}

type EmployeeSummary struct {
	EmployeeCode   string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	TotalDays      int64   `json:"total_days"`
	PresentDays    int64   `json:"present_days"`
	AbsentDays     int64   `json:"absent_days"`
	AttendanceRate float64 `json:"attendance_rate"`
	AvgHours       float64 `json:"avg_hours"`
	DateRange      string  `json:"date_range"`
}

type DailyTrend struct {
	Date           string  `json:"date"`
	TotalRecords   int64   `json:"total_records"`
	Present        int64   `json:"present"`
	AttendanceRate float64 `json:"attendance_rate"`
	AvgHours       float64 `json:"avg_hours"`
}

// ========================================
// REPORT OUTPUT
// ========================================

// Report is the generated narrative. Sections carries the model's structured
// answer (executive_summary, key_metrics, attendance_analysis,
// employee_insights, recommendations, trend_forecast, alerts), or a
// full_response fallback when the model's output was not valid JSON.
type Report struct {
	ReportType  string         `json:"report_type"`
	GeneratedAt string         `json:"generated_at"`
	Sections    map[string]any `json:"sections"`
	DataSummary DataSummary    `json:"data_summary"`
	TokensUsed  int            `json:"tokens_used,omitempty"`
	Cached      bool           `json:"cached"`
}

// UsageStats aggregates text-generation API consumption.
type UsageStats struct {
	TodayTokens int64 `json:"today_tokens"`
	MonthTokens int64 `json:"month_tokens"`
	TodayCached int64 `json:"today_cached"`
	TodayNew    int64 `json:"today_new"`
}

type UsageResponse struct {
	UsageStats
	DailyLimit      int64   `json:"daily_limit"`
	UsagePercentage float64 `json:"usage_percentage"`
	TokensRemaining int64   `json:"tokens_remaining"`
}
