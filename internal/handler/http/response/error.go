package response

import (
	"errors"
	"net/http"

	"github.com/punchdeck/attendance-backend-go/internal/domain/attendance"
	"github.com/punchdeck/attendance-backend-go/internal/domain/auth"
	"github.com/punchdeck/attendance-backend-go/internal/domain/employee"
	"github.com/punchdeck/attendance-backend-go/internal/domain/report"
	"github.com/punchdeck/attendance-backend-go/internal/domain/upload"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, auth.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrNoRecords):
		NotFound(w, "No attendance records found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Upload domain errors
	case errors.Is(err, upload.ErrNoFile),
		errors.Is(err, upload.ErrUnsupportedFileType),
		errors.Is(err, upload.ErrEmptyFile),
		errors.Is(err, upload.ErrMissingColumns),
		errors.Is(err, upload.ErrFutureDate),
		errors.Is(err, upload.ErrDateMismatch):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, upload.ErrNoUploadFound):
		NotFound(w, "No uploaded file found")

	// Report domain errors
	case errors.Is(err, report.ErrNotConfigured):
		BadRequest(w, "Text generation API key not configured", nil)
	case errors.Is(err, report.ErrInvalidAPIKey):
		BadRequest(w, "API key validation failed", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
