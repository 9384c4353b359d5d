package attendance

import "context"

// AttendanceService is the query and recalculation surface over stored
// records. Ingestion lives in the ingest service; this side never touches
// source files.
type AttendanceService interface {
	GetByDate(ctx context.Context, req ByDateRequest) ([]AttendanceResponse, error)
	GetByRange(ctx context.Context, req RangeRequest) ([]AttendanceResponse, error)
	Statistics(ctx context.Context, req StatisticsRequest) (StatisticsResponse, error)
	CalendarDates(ctx context.Context) ([]string, error)

	// RecalculateAll re-derives every stored record from its raw fields under
	// the current policy snapshot.
	RecalculateAll(ctx context.Context) (RecalculateResponse, error)
}
