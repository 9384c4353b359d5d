package database

import (
	"context"
	"fmt"
)

// Schema bootstrap. The service owns a small fixed set of tables, so the
// statements are applied idempotently at startup instead of through a
// migration tool.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS employees (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		department TEXT,
		designation TEXT,
		email TEXT,
		joining_date DATE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS attendance_records (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		employee_code TEXT NOT NULL,
		employee_name TEXT NOT NULL,
		date DATE NOT NULL,
		punch_in TEXT,
		punch_out TEXT,
		break_start TEXT,
		break_end TEXT,
		working_hours DOUBLE PRECISION,
		status TEXT NOT NULL,
		month INT NOT NULL,
		year INT NOT NULL,
		is_late BOOLEAN NOT NULL DEFAULT FALSE,
		break_duration DOUBLE PRECISION NOT NULL DEFAULT 0,
		break_exceeded BOOLEAN NOT NULL DEFAULT FALSE,
		is_break_outside_window BOOLEAN NOT NULL DEFAULT FALSE,
		is_early_departure BOOLEAN NOT NULL DEFAULT FALSE,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (employee_code, date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_records_date ON attendance_records (date)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_records_period ON attendance_records (year, month)`,
	`CREATE TABLE IF NOT EXISTS upload_history (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		file_name TEXT NOT NULL,
		file_path TEXT NOT NULL,
		target_date TEXT NOT NULL,
		record_count INT NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS api_usage (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		report_type TEXT NOT NULL,
		tokens_used INT NOT NULL DEFAULT 0,
		cached BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate applies the schema statements in order.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
