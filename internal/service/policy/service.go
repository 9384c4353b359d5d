package policy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/punchdeck/attendance-backend-go/internal/domain/policy"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/database"
	"github.com/punchdeck/attendance-backend-go/internal/repository/postgresql"
)

type SettingsServiceImpl struct {
	db           *database.DB
	settingsRepo policy.SettingsRepository
}

func NewSettingsService(db *database.DB, settingsRepo policy.SettingsRepository) policy.SettingsService {
	return &SettingsServiceImpl{
		db:           db,
		settingsRepo: settingsRepo,
	}
}

// Values implements policy.SettingsService. Defaults are merged underneath
// the stored values so every recognized key is always present. An unreadable
// settings store degrades to the full default map so classification keeps
// working.
func (s *SettingsServiceImpl) Values(ctx context.Context) (map[string]string, error) {
	stored, err := s.settingsRepo.GetAll(ctx)
	if err != nil {
		slog.Warn("failed to load settings, using defaults", "error", err)
		return policy.DefaultValues(), nil
	}

	merged := policy.DefaultValues()
	for key, value := range stored {
		merged[key] = value
	}
	return merged, nil
}

// Update implements policy.SettingsService. Keys are upserted in one
// transaction and the merged map is returned. Updating settings never
// triggers recalculation on its own.
func (s *SettingsServiceImpl) Update(ctx context.Context, values map[string]string) (map[string]string, error) {
	err := postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		for key, value := range values {
			if err := s.settingsRepo.Upsert(ctx, key, value); err != nil {
				return fmt.Errorf("failed to upsert setting %q: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Values(ctx)
}

// Snapshot implements policy.SettingsService. A settings-store failure
// degrades to the default policy rather than blocking ingestion, export,
// or recalculation.
func (s *SettingsServiceImpl) Snapshot(ctx context.Context) (policy.Policy, error) {
	stored, err := s.settingsRepo.GetAll(ctx)
	if err != nil {
		slog.Warn("failed to load settings, using default policy", "error", err)
		return policy.Default(), nil
	}
	return policy.FromValues(stored), nil
}
