package report

import "errors"

var (
	ErrNotConfigured = errors.New("text generation API key not configured")
	ErrInvalidAPIKey = errors.New("text generation API key validation failed")
)
