package upload

import "time"

// History is one upload event: which file was ingested, where its raw copy
// lives, and how many records it produced.
type History struct {
	ID          string
	FileName    string
	FilePath    string
	TargetDate  string
	RecordCount int
	Status      string
	UploadedAt  time.Time
}

const (
	StatusProcessed = "processed"
	StatusReplaced  = "replaced"
)
