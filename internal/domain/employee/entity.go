package employee

import "time"

// Employee is the directory entry derived from ingested rows. Code is the
// spreadsheet's employee identifier and is unique.
type Employee struct {
	ID          string
	Code        string
	Name        string
	Department  *string
	Designation *string
	Email       *string
	JoiningDate *time.Time
	IsActive    bool
	CreatedAt   time.Time
}
