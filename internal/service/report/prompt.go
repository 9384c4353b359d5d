package report

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/punchdeck/attendance-backend-go/internal/domain/report"
)

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// BuildPrompt renders the analysis request. Only the top-10 employee rows and
// last-7 trend rows are embedded to keep the prompt small.
func BuildPrompt(reportType string, summary report.DataSummary) string {
	employees := summary.EmployeeSummary
	if len(employees) > 10 {
		employees = employees[:10]
	}
	trends := summary.DailyTrends
	if len(trends) > 7 {
		trends = trends[:7]
	}

	employeeJSON, _ := json.MarshalIndent(employees, "", "  ")
	trendJSON, _ := json.MarshalIndent(trends, "", "  ")

	return fmt.Sprintf(`You are an expert HR analytics consultant analyzing employee attendance data.
Generate a comprehensive yet concise attendance report based on the following data.

REPORT TYPE: %s
PERIOD: %s to %s

OVERALL STATISTICS:
- Total Records: %d
- Total Employees: %d
- Attendance Rate: %v%%
- Present: %d | Absent: %d | Leave: %d
- Average Working Hours: %v
- Working Hours Range: %v - %v

TOP EMPLOYEES (by attendance issues):
%s

RECENT DAILY TRENDS:
%s

Please provide a structured analysis with the following sections (use JSON format):

1. **executive_summary**: A 2-3 sentence overview of key findings
2. **key_metrics**: List 4-5 most important metrics with brief explanations
3. **attendance_analysis**: Detailed analysis of attendance patterns and trends
4. **employee_insights**: Insights about employee performance (highlight both concerns and commendations)
5. **recommendations**: 3-5 actionable recommendations for management
6. **trend_forecast**: Brief prediction about attendance trends
7. **alerts**: Any critical issues requiring immediate attention

Format your response as valid JSON with these exact keys. Be concise but insightful.`,
		strings.ToUpper(reportType),
		summary.Period.StartDate, summary.Period.EndDate,
		summary.Overall.TotalRecords,
		summary.Overall.TotalEmployees,
		summary.Overall.AttendanceRate,
		summary.Overall.PresentCount, summary.Overall.AbsentCount, summary.Overall.LeaveCount,
		summary.Overall.AvgWorkingHours,
		summary.Overall.MinWorkingHours, summary.Overall.MaxWorkingHours,
		employeeJSON,
		trendJSON,
	)
}

// ExtractSections pulls the structured answer out of the model's text. The
// model is asked for pure JSON but often wraps it in prose or fences; the
// first braced object found is used. When no parseable object exists the raw
// text is preserved under full_response with a truncated executive_summary.
func ExtractSections(text string) map[string]any {
	if match := jsonObjectPattern.FindString(text); match != "" {
		var sections map[string]any
		if err := json.Unmarshal([]byte(match), &sections); err == nil {
			return sections
		}
	}

	summary := text
	if len(summary) > 500 {
		summary = summary[:500]
	}
	return map[string]any{
		"executive_summary": summary,
		"full_response":     text,
	}
}
