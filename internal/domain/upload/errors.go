package upload

import "errors"

// Ingestion is the one boundary where user-visible failures exist: a bad
// spreadsheet is rejected, everything downstream degrades instead.
var (
	ErrNoFile              = errors.New("no file provided")
	ErrUnsupportedFileType = errors.New("only CSV spreadsheet files are allowed")
	ErrEmptyFile           = errors.New("uploaded file contains no records")
	ErrMissingColumns      = errors.New("file must contain Employee ID, Employee Name, and Date columns")
	ErrDateMismatch        = errors.New("selected date not present in the uploaded file")
	ErrFutureDate          = errors.New("cannot upload data for a future date")
	ErrNoUploadFound       = errors.New("no uploaded file found")
)
