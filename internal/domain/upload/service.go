package upload

import "context"

// IngestService is the spreadsheet ingestion surface. Upload is the single
// write path into attendance storage besides recalculation.
type IngestService interface {
	Upload(ctx context.Context, req UploadRequest) (UploadResponse, error)
	History(ctx context.Context) ([]HistoryResponse, error)
	DownloadLatest(ctx context.Context) (LatestFile, error)

	// ResetAll wipes attendance records, employees, and upload history.
	ResetAll(ctx context.Context) error
}
