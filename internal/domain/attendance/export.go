package attendance

import "context"

// ExportRequest narrows the export to one month. Both zero means everything.
type ExportRequest struct {
	Month int
	Year  int
}

func (r *ExportRequest) Validate() error {
	req := StatisticsRequest{Month: r.Month, Year: r.Year}
	return req.Validate()
}

// ExportFile is a rendered spreadsheet ready to stream to the caller.
type ExportFile struct {
	FileName string
	Content  []byte
}

// ExportService renders stored records back out as a spreadsheet, with the
// flags re-derived under the current policy rather than read from storage.
type ExportService interface {
	Export(ctx context.Context, req ExportRequest) (ExportFile, error)
}
