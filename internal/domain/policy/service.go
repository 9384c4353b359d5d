package policy

import "context"

// SettingsService exposes the policy configuration. Values is the merged
// defaults+stored map for the API; Snapshot is the typed view the classifier
// consumes.
type SettingsService interface {
	Values(ctx context.Context) (map[string]string, error)
	Update(ctx context.Context, values map[string]string) (map[string]string, error)
	Snapshot(ctx context.Context) (Policy, error)
}
