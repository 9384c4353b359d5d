package report

import "context"

// ReportService generates and caches narrative attendance reports.
type ReportService interface {
	// Configure validates and installs a text-generation API key.
	Configure(ctx context.Context, req ConfigureRequest) error

	Generate(ctx context.Context, req GenerateRequest) (Report, error)

	Usage(ctx context.Context) (UsageResponse, error)

	// ClearCache drops every cached report.
	ClearCache(ctx context.Context) error
}
