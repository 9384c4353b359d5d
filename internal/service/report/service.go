package report

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/punchdeck/attendance-backend-go/internal/domain/report"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/gemini"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/timeutil"
)

const (
	cacheMaxAge = 24 * time.Hour

	// Free-tier allowance used for the usage gauge.
	dailyTokenLimit = 1_000_000
)

type ReportServiceImpl struct {
	summaryRepo report.SummaryRepository
	usageRepo   report.UsageRepository
	cacheDir    string
	model       string

	mu     sync.RWMutex
	client *gemini.Client
}

// NewReportService builds the narrative report generator. client may be nil
// or unconfigured; Generate then fails with ErrNotConfigured until Configure
// installs a working key.
func NewReportService(
	summaryRepo report.SummaryRepository,
	usageRepo report.UsageRepository,
	client *gemini.Client,
	cacheDir string,
	model string,
) report.ReportService {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		slog.Warn("failed to create report cache directory", "dir", cacheDir, "error", err)
	}
	return &ReportServiceImpl{
		summaryRepo: summaryRepo,
		usageRepo:   usageRepo,
		cacheDir:    cacheDir,
		model:       model,
		client:      client,
	}
}

// Configure implements report.ReportService. The key is validated by listing
// models and the generation model is rediscovered against that list.
func (s *ReportServiceImpl) Configure(ctx context.Context, req report.ConfigureRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	candidate := gemini.NewClient(req.APIKey, s.model)
	if _, err := candidate.ListModels(ctx); err != nil {
		return fmt.Errorf("%w: %v", report.ErrInvalidAPIKey, err)
	}
	model := candidate.DiscoverModel(ctx, s.model)

	s.mu.Lock()
	s.client = gemini.NewClient(req.APIKey, model)
	s.mu.Unlock()
	return nil
}

// Generate implements report.ReportService. The summary is aggregated first
// so the cache key reflects the underlying data: the same period with
// unchanged records hits the cache, any data change misses it.
func (s *ReportServiceImpl) Generate(ctx context.Context, req report.GenerateRequest) (report.Report, error) {
	if err := req.Validate(); err != nil {
		return report.Report{}, err
	}

	client := s.currentClient()
	if client == nil || !client.Configured() {
		return report.Report{}, report.ErrNotConfigured
	}

	summary, err := s.summaryRepo.Summary(ctx, req.StartDate, req.EndDate)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to aggregate summary: %w", err)
	}

	cacheKey, err := CacheKey(req.ReportType, summary)
	if err != nil {
		return report.Report{}, err
	}

	if !req.ForceRegenerate {
		if cached, ok := s.loadCached(cacheKey); ok {
			if err := s.usageRepo.Track(ctx, req.ReportType, 0, true); err != nil {
				slog.Warn("failed to track cached report usage", "error", err)
			}
			cached.Cached = true
			return cached, nil
		}
	}

	prompt := BuildPrompt(req.ReportType, summary)
	text, tokens, err := client.GenerateContent(ctx, prompt)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to generate report: %w", err)
	}
	if tokens == 0 {
		// Older API surfaces omit usage metadata; approximate by words.
		tokens = len(strings.Fields(prompt)) + len(strings.Fields(text))
	}

	if err := s.usageRepo.Track(ctx, req.ReportType, tokens, false); err != nil {
		slog.Warn("failed to track report usage", "error", err)
	}

	generated := report.Report{
		ReportType:  req.ReportType,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Sections:    ExtractSections(text),
		DataSummary: summary,
		TokensUsed:  tokens,
	}
	s.saveCached(cacheKey, generated)
	return generated, nil
}

// Usage implements report.ReportService.
func (s *ReportServiceImpl) Usage(ctx context.Context) (report.UsageResponse, error) {
	stats, err := s.usageRepo.Stats(ctx)
	if err != nil {
		return report.UsageResponse{}, fmt.Errorf("failed to load usage stats: %w", err)
	}

	return report.UsageResponse{
		UsageStats:      stats,
		DailyLimit:      dailyTokenLimit,
		UsagePercentage: timeutil.Round2(float64(stats.TodayTokens) / dailyTokenLimit * 100),
		TokensRemaining: dailyTokenLimit - stats.TodayTokens,
	}, nil
}

// ClearCache implements report.ReportService.
func (s *ReportServiceImpl) ClearCache(ctx context.Context) error {
	entries, err := os.ReadDir(s.cacheDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(s.cacheDir, entry.Name())); err != nil {
			return fmt.Errorf("failed to remove cache file %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func (s *ReportServiceImpl) currentClient() *gemini.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}

func (s *ReportServiceImpl) cachePath(key string) string {
	return filepath.Join(s.cacheDir, key+".json")
}

func (s *ReportServiceImpl) loadCached(key string) (report.Report, bool) {
	path := s.cachePath(key)
	info, err := os.Stat(path)
	if err != nil || time.Since(info.ModTime()) >= cacheMaxAge {
		return report.Report{}, false
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return report.Report{}, false
	}
	var cached report.Report
	if err := json.Unmarshal(raw, &cached); err != nil {
		return report.Report{}, false
	}
	return cached, true
}

func (s *ReportServiceImpl) saveCached(key string, r report.Report) {
	raw, err := json.Marshal(r)
	if err != nil {
		slog.Warn("failed to marshal report for cache", "error", err)
		return
	}
	if err := os.WriteFile(s.cachePath(key), raw, 0o644); err != nil {
		slog.Warn("failed to write report cache", "error", err)
	}
}

// CacheKey derives a stable fingerprint for one report type over one data
// summary. md5 is used as a fingerprint only, nothing security-relevant.
func CacheKey(reportType string, summary report.DataSummary) (string, error) {
	canonical, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary: %w", err)
	}
	sum := md5.Sum([]byte(reportType + "_" + string(canonical)))
	return hex.EncodeToString(sum[:]), nil
}
