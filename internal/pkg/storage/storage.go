package storage

import (
	"context"
	"io"
)

// FileStorage keeps the raw uploaded spreadsheets so the most recent source
// file can be re-downloaded later.
type FileStorage interface {
	// Upload stores a file and returns the storage path/key.
	Upload(ctx context.Context, file io.Reader, path string) (string, error)

	// Download retrieves a stored file.
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file.
	Delete(ctx context.Context, path string) error

	// Exists checks if a file exists.
	Exists(ctx context.Context, path string) (bool, error)
}
