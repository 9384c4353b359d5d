package policy

import "context"

// SettingsRepository is the keyed settings store backing policy snapshots.
type SettingsRepository interface {
	// GetAll returns every stored key/value pair.
	GetAll(ctx context.Context) (map[string]string, error)

	// Upsert inserts or replaces a single setting.
	Upsert(ctx context.Context, key, value string) error
}
