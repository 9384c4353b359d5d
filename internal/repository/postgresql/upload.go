package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/punchdeck/attendance-backend-go/internal/domain/upload"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/database"
)

type uploadHistoryRepository struct {
	db *database.DB
}

func NewUploadHistoryRepository(db *database.DB) upload.HistoryRepository {
	return &uploadHistoryRepository{db: db}
}

// Create implements upload.HistoryRepository.
func (r *uploadHistoryRepository) Create(ctx context.Context, h upload.History) (upload.History, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO upload_history (file_name, file_path, target_date, record_count, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, uploaded_at
	`
	err := q.QueryRow(ctx, query,
		h.FileName, h.FilePath, h.TargetDate, h.RecordCount, h.Status,
	).Scan(&h.ID, &h.UploadedAt)

	if err != nil {
		return upload.History{}, fmt.Errorf("failed to create upload history: %w", err)
	}
	return h, nil
}

// List implements upload.HistoryRepository.
func (r *uploadHistoryRepository) List(ctx context.Context, limit int) ([]upload.History, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, file_name, file_path, target_date, record_count, status, uploaded_at
		FROM upload_history
		ORDER BY uploaded_at DESC
		LIMIT $1
	`
	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upload history: %w", err)
	}
	defer rows.Close()

	var history []upload.History
	for rows.Next() {
		var h upload.History
		if err := rows.Scan(&h.ID, &h.FileName, &h.FilePath, &h.TargetDate, &h.RecordCount, &h.Status, &h.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan upload history: %w", err)
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

// Latest implements upload.HistoryRepository.
func (r *uploadHistoryRepository) Latest(ctx context.Context) (upload.History, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, file_name, file_path, target_date, record_count, status, uploaded_at
		FROM upload_history
		WHERE file_path <> ''
		ORDER BY uploaded_at DESC
		LIMIT 1
	`
	var h upload.History
	err := q.QueryRow(ctx, query).Scan(&h.ID, &h.FileName, &h.FilePath, &h.TargetDate, &h.RecordCount, &h.Status, &h.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return upload.History{}, upload.ErrNoUploadFound
		}
		return upload.History{}, fmt.Errorf("failed to get latest upload: %w", err)
	}
	return h, nil
}

// MarkReplacedByDate implements upload.HistoryRepository.
func (r *uploadHistoryRepository) MarkReplacedByDate(ctx context.Context, targetDate string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE upload_history SET status = $1 WHERE target_date = $2 AND status = $3`
	if _, err := q.Exec(ctx, query, upload.StatusReplaced, targetDate, upload.StatusProcessed); err != nil {
		return fmt.Errorf("failed to mark uploads replaced: %w", err)
	}
	return nil
}

// DeleteAll implements upload.HistoryRepository.
func (r *uploadHistoryRepository) DeleteAll(ctx context.Context) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM upload_history`); err != nil {
		return fmt.Errorf("failed to delete upload history: %w", err)
	}
	return nil
}
