package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/punchdeck/attendance-backend-go/internal/domain/report"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSummaryRepo struct {
	summary report.DataSummary
}

func (f *fakeSummaryRepo) Summary(ctx context.Context, startDate, endDate string) (report.DataSummary, error) {
	return f.summary, nil
}

type fakeUsageRepo struct {
	tracked []trackedCall
	stats   report.UsageStats
}

type trackedCall struct {
	reportType string
	tokens     int
	cached     bool
}

func (f *fakeUsageRepo) Track(ctx context.Context, reportType string, tokensUsed int, cached bool) error {
	f.tracked = append(f.tracked, trackedCall{reportType, tokensUsed, cached})
	return nil
}

func (f *fakeUsageRepo) Stats(ctx context.Context) (report.UsageStats, error) {
	return f.stats, nil
}

func testSummary() report.DataSummary {
	return report.DataSummary{
		Period: report.Period{StartDate: "2024-01-01", EndDate: "2024-01-31"},
		Overall: report.OverallStats{
			TotalRecords:   100,
			TotalEmployees: 10,
			PresentCount:   85,
			AbsentCount:    15,
			AttendanceRate: 85.0,
		},
	}
}

// generationServer fakes the two REST calls the client makes and counts
// generation requests.
func generationServer(t *testing.T, responseText string, calls *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/models"):
			json.NewEncoder(w).Encode(map[string]any{
				"models": []map[string]string{{"name": "models/gemini-2.0-flash"}},
			})
		case strings.Contains(r.URL.Path, ":generateContent"):
			calls.Add(1)
			json.NewEncoder(w).Encode(map[string]any{
				"candidates": []map[string]any{
					{"content": map[string]any{"parts": []map[string]string{{"text": responseText}}}},
				},
				"usageMetadata": map[string]int{"totalTokenCount": 321},
			})
		default:
			http.NotFound(w, r)
		}
	}))
}

func newTestReportService(t *testing.T, srv *httptest.Server) (report.ReportService, *fakeUsageRepo, string) {
	t.Helper()
	cacheDir := t.TempDir()
	usage := &fakeUsageRepo{}
	client := gemini.NewClient("test-key", "gemini-2.0-flash", gemini.WithBaseURL(srv.URL))
	svc := NewReportService(&fakeSummaryRepo{summary: testSummary()}, usage, client, cacheDir, "gemini-2.0-flash")
	return svc, usage, cacheDir
}

func TestGenerate_ParsesStructuredResponse(t *testing.T) {
	var calls atomic.Int64
	srv := generationServer(t, `Here is the report: {"executive_summary": "All good.", "alerts": []}`, &calls)
	defer srv.Close()

	svc, usage, _ := newTestReportService(t, srv)
	out, err := svc.Generate(context.Background(), report.GenerateRequest{ReportType: "daily"})
	require.NoError(t, err)

	assert.Equal(t, "daily", out.ReportType)
	assert.False(t, out.Cached)
	assert.Equal(t, 321, out.TokensUsed)
	assert.Equal(t, "All good.", out.Sections["executive_summary"])
	require.Len(t, usage.tracked, 1)
	assert.False(t, usage.tracked[0].cached)
	assert.Equal(t, 321, usage.tracked[0].tokens)
}

func TestGenerate_SecondCallHitsCache(t *testing.T) {
	var calls atomic.Int64
	srv := generationServer(t, `{"executive_summary": "Stable week."}`, &calls)
	defer srv.Close()

	svc, usage, _ := newTestReportService(t, srv)
	ctx := context.Background()

	first, err := svc.Generate(ctx, report.GenerateRequest{ReportType: "weekly"})
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := svc.Generate(ctx, report.GenerateRequest{ReportType: "weekly"})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Sections, second.Sections)

	assert.Equal(t, int64(1), calls.Load(), "cached call must not reach the API")
	require.Len(t, usage.tracked, 2)
	assert.True(t, usage.tracked[1].cached)
	assert.Zero(t, usage.tracked[1].tokens)
}

func TestGenerate_ForceRegenerateSkipsCache(t *testing.T) {
	var calls atomic.Int64
	srv := generationServer(t, `{"executive_summary": "Fresh."}`, &calls)
	defer srv.Close()

	svc, _, _ := newTestReportService(t, srv)
	ctx := context.Background()

	_, err := svc.Generate(ctx, report.GenerateRequest{ReportType: "daily"})
	require.NoError(t, err)
	_, err = svc.Generate(ctx, report.GenerateRequest{ReportType: "daily", ForceRegenerate: true})
	require.NoError(t, err)

	assert.Equal(t, int64(2), calls.Load())
}

func TestGenerate_NotConfigured(t *testing.T) {
	usage := &fakeUsageRepo{}
	client := gemini.NewClient("", "gemini-2.0-flash")
	svc := NewReportService(&fakeSummaryRepo{summary: testSummary()}, usage, client, t.TempDir(), "gemini-2.0-flash")

	_, err := svc.Generate(context.Background(), report.GenerateRequest{})
	assert.ErrorIs(t, err, report.ErrNotConfigured)
}

func TestClearCache_RemovesCachedReports(t *testing.T) {
	var calls atomic.Int64
	srv := generationServer(t, `{"executive_summary": "x"}`, &calls)
	defer srv.Close()

	svc, _, cacheDir := newTestReportService(t, srv)
	ctx := context.Background()

	_, err := svc.Generate(ctx, report.GenerateRequest{ReportType: "daily"})
	require.NoError(t, err)

	entries, err := os.ReadDir(cacheDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	require.NoError(t, svc.ClearCache(ctx))
	entries, err = os.ReadDir(cacheDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// And the next generate goes back to the API.
	_, err = svc.Generate(ctx, report.GenerateRequest{ReportType: "daily"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestUsage_PercentageAndRemaining(t *testing.T) {
	usage := &fakeUsageRepo{stats: report.UsageStats{TodayTokens: 250_000, MonthTokens: 900_000}}
	svc := NewReportService(&fakeSummaryRepo{}, usage, nil, t.TempDir(), "gemini-2.0-flash")

	out, err := svc.Usage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 25.0, out.UsagePercentage)
	assert.Equal(t, int64(750_000), out.TokensRemaining)
}

func TestConfigure_RejectsEmptyKey(t *testing.T) {
	svc := NewReportService(&fakeSummaryRepo{}, &fakeUsageRepo{}, nil, t.TempDir(), "gemini-2.0-flash")
	err := svc.Configure(context.Background(), report.ConfigureRequest{APIKey: ""})
	assert.Error(t, err)
}

func TestCacheKey_StableAndDataSensitive(t *testing.T) {
	summary := testSummary()

	a, err := CacheKey("daily", summary)
	require.NoError(t, err)
	b, err := CacheKey("daily", summary)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := CacheKey("weekly", summary)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	changed := summary
	changed.Overall.PresentCount++
	d, err := CacheKey("daily", changed)
	require.NoError(t, err)
	assert.NotEqual(t, a, d)
}

func TestExtractSections_Fallback(t *testing.T) {
	text := "The model refused to emit JSON today."
	sections := ExtractSections(text)
	assert.Equal(t, text, sections["executive_summary"])
	assert.Equal(t, text, sections["full_response"])

	long := strings.Repeat("a", 600)
	sections = ExtractSections(long)
	assert.Len(t, sections["executive_summary"], 500)
}

func TestExtractSections_FencedJSON(t *testing.T) {
	text := "```json\n{\"executive_summary\": \"ok\", \"recommendations\": [\"hire\"]}\n```"
	sections := ExtractSections(text)
	assert.Equal(t, "ok", sections["executive_summary"])
}

func TestBuildPrompt_EmbedsSummary(t *testing.T) {
	prompt := BuildPrompt("monthly", testSummary())
	assert.Contains(t, prompt, "REPORT TYPE: MONTHLY")
	assert.Contains(t, prompt, "2024-01-01 to 2024-01-31")
	for _, key := range []string{
		"executive_summary", "key_metrics", "attendance_analysis",
		"employee_insights", "recommendations", "trend_forecast", "alerts",
	} {
		assert.Contains(t, prompt, key)
	}
}
