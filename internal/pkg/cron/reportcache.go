package cron

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// NewReportCachePurgeJob removes cached narrative reports older than maxAge.
// Cached reports are only valid for 24 hours, so anything older is dead
// weight on disk.
func NewReportCachePurgeJob(cacheDir string, maxAge time.Duration) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		entries, err := os.ReadDir(cacheDir)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}

		cutoff := time.Now().Add(-maxAge)
		removed := 0
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if info.ModTime().Before(cutoff) {
				if err := os.Remove(filepath.Join(cacheDir, entry.Name())); err == nil {
					removed++
				}
			}
		}

		if removed > 0 {
			slog.Info("Purged expired report cache entries", "count", removed)
		}
		return nil
	}
}
