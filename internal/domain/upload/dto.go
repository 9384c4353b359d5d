package upload

import "io"

// UploadRequest carries one spreadsheet to ingest. TargetDate is optional;
// when set (calendar-driven upload) it must match a date found in the file.
type UploadRequest struct {
	FileName   string
	File       io.Reader
	TargetDate string
}

type UploadResponse struct {
	Message          string `json:"message"`
	RecordsProcessed int    `json:"recordsProcessed"`
	RecordsSuccess   int    `json:"recordsSuccess"`
	RecordsFailed    int    `json:"recordsFailed"`
	MaxDate          string `json:"maxDate"`
	FileName         string `json:"fileName"`
	FilePath         string `json:"filePath"`
}

type HistoryResponse struct {
	ID          string `json:"id"`
	FileName    string `json:"file_name"`
	TargetDate  string `json:"target_date"`
	RecordCount int    `json:"records_processed"`
	Status      string `json:"status"`
	UploadedAt  string `json:"upload_date"`
}

// LatestFile is the most recent stored source file, streamed back to the
// caller. The caller owns closing Content.
type LatestFile struct {
	FileName string
	Content  io.ReadCloser
}
