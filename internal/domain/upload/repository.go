package upload

import "context"

type HistoryRepository interface {
	Create(ctx context.Context, h History) (History, error)

	// List returns the most recent uploads, newest first, capped at limit.
	List(ctx context.Context, limit int) ([]History, error)

	// Latest returns the most recent upload that still has a stored file.
	Latest(ctx context.Context) (History, error)

	// MarkReplacedByDate flags earlier uploads for a date that was re-uploaded.
	MarkReplacedByDate(ctx context.Context, targetDate string) error

	DeleteAll(ctx context.Context) error
}
