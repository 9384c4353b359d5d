package report

import "context"

// SummaryRepository computes the aggregate inputs for narrative reports.
type SummaryRepository interface {
	// Summary aggregates stored records inside the optional date window.
	// Empty strings mean an open bound.
	Summary(ctx context.Context, startDate, endDate string) (DataSummary, error)
}

// UsageRepository tracks per-call token consumption.
type UsageRepository interface {
	Track(ctx context.Context, reportType string, tokensUsed int, cached bool) error
	Stats(ctx context.Context) (UsageStats, error)
}
