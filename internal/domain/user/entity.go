package user

import "time"

// User is an operator account. The API has a single admin-style role; the
// ingested employees are data, not logins.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
