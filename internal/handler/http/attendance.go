package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/punchdeck/attendance-backend-go/internal/domain/attendance"
	"github.com/punchdeck/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	GetByDate(w http.ResponseWriter, r *http.Request)
	GetByRange(w http.ResponseWriter, r *http.Request)
	Statistics(w http.ResponseWriter, r *http.Request)
	CalendarDates(w http.ResponseWriter, r *http.Request)
	Recalculate(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	exportService     attendance.ExportService
}

func NewAttendanceHandler(
	attendanceService attendance.AttendanceService,
	exportService attendance.ExportService,
) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		exportService:     exportService,
	}
}

// GetByDate implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetByDate(w http.ResponseWriter, r *http.Request) {
	req := attendance.ByDateRequest{
		Date: r.URL.Query().Get("date"),
	}

	records, err := h.attendanceService.GetByDate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]any{"records": records})
}

// GetByRange implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetByRange(w http.ResponseWriter, r *http.Request) {
	req := attendance.RangeRequest{
		StartDate:    r.URL.Query().Get("startDate"),
		EndDate:      r.URL.Query().Get("endDate"),
		EmployeeCode: r.URL.Query().Get("employeeId"),
	}

	records, err := h.attendanceService.GetByRange(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]any{"records": records})
}

// Statistics implements AttendanceHandler.
func (h *attendanceHandlerImpl) Statistics(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := attendance.StatisticsRequest{
		Month:        queryInt(query.Get("month")),
		Year:         queryInt(query.Get("year")),
		StartDate:    query.Get("startDate"),
		EndDate:      query.Get("endDate"),
		EmployeeCode: query.Get("employeeId"),
	}

	stats, err := h.attendanceService.Statistics(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}

// CalendarDates implements AttendanceHandler.
func (h *attendanceHandlerImpl) CalendarDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.attendanceService.CalendarDates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]any{"dates": dates})
}

// Recalculate implements AttendanceHandler.
func (h *attendanceHandlerImpl) Recalculate(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.RecalculateAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Recalculation complete", result)
}

// Export implements AttendanceHandler. Streams a CSV attachment instead of
// the JSON envelope.
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := attendance.ExportRequest{
		Month: queryInt(query.Get("month")),
		Year:  queryInt(query.Get("year")),
	}

	file, err := h.exportService.Export(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	w.Write(file.Content)
}

func queryInt(value string) int {
	n, _ := strconv.Atoi(value)
	return n
}
