package http

import (
	"encoding/json"
	"net/http"

	"github.com/punchdeck/attendance-backend-go/internal/domain/report"
	"github.com/punchdeck/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Configure(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
	Usage(w http.ResponseWriter, r *http.Request)
	ClearCache(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// Configure implements ReportHandler.
func (h *reportHandlerImpl) Configure(w http.ResponseWriter, r *http.Request) {
	var req report.ConfigureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.reportService.Configure(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "API key configured successfully", nil)
}

// Generate implements ReportHandler.
func (h *reportHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req report.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.reportService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Usage implements ReportHandler.
func (h *reportHandlerImpl) Usage(w http.ResponseWriter, r *http.Request) {
	usage, err := h.reportService.Usage(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, usage)
}

// ClearCache implements ReportHandler.
func (h *reportHandlerImpl) ClearCache(w http.ResponseWriter, r *http.Request) {
	if err := h.reportService.ClearCache(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Report cache cleared", nil)
}
