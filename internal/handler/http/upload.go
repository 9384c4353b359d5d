package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/punchdeck/attendance-backend-go/internal/domain/upload"
	"github.com/punchdeck/attendance-backend-go/internal/handler/http/response"
)

type UploadHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	DownloadLatest(w http.ResponseWriter, r *http.Request)
	DeleteAll(w http.ResponseWriter, r *http.Request)
}

type uploadHandlerImpl struct {
	ingestService upload.IngestService
}

func NewUploadHandler(ingestService upload.IngestService) UploadHandler {
	return &uploadHandlerImpl{
		ingestService: ingestService,
	}
}

// Upload implements UploadHandler.
func (h *uploadHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		response.HandleError(w, upload.ErrNoFile)
		return
	}
	defer file.Close()

	req := upload.UploadRequest{
		FileName:   fileHeader.Filename,
		File:       file,
		TargetDate: r.FormValue("target_date"),
	}

	result, err := h.ingestService.Upload(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, result.Message, result)
}

// History implements UploadHandler.
func (h *uploadHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.ingestService.History(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]any{"history": history})
}

// DownloadLatest implements UploadHandler.
func (h *uploadHandlerImpl) DownloadLatest(w http.ResponseWriter, r *http.Request) {
	latest, err := h.ingestService.DownloadLatest(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer latest.Content.Close()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", latest.FileName))
	io.Copy(w, latest.Content)
}

// DeleteAll implements UploadHandler.
func (h *uploadHandlerImpl) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.ingestService.ResetAll(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "All attendance data deleted successfully", nil)
}
