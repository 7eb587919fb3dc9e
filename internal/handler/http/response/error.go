package response

import (
	"errors"
	"net/http"

	"github.com/teamstack/ems-backend-go/internal/domain/announcement"
	"github.com/teamstack/ems-backend-go/internal/domain/attendance"
	"github.com/teamstack/ems-backend-go/internal/domain/auth"
	"github.com/teamstack/ems-backend-go/internal/domain/user"
	"github.com/teamstack/ems-backend-go/internal/domain/worksheet"
	"github.com/teamstack/ems-backend-go/internal/pkg/validator"
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
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is inactive")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, err.Error())

	// Attendance lifecycle errors: out-of-sequence transitions are rejected
	// synchronously with a descriptive message
	case errors.Is(err, attendance.ErrAlreadyClockedIn),
		errors.Is(err, attendance.ErrAlreadyClockedOut),
		errors.Is(err, attendance.ErrBreakAlreadyOpen):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotClockedIn),
		errors.Is(err, attendance.ErrNoOpenBreak):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Announcement domain errors
	case errors.Is(err, announcement.ErrAnnouncementNotFound):
		NotFound(w, "Announcement not found")
	case errors.Is(err, announcement.ErrAnnouncementExpired):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, announcement.ErrNotInAudience):
		Forbidden(w, err.Error())

	// Worksheet domain errors
	case errors.Is(err, worksheet.ErrWorksheetNotFound):
		NotFound(w, "Worksheet not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
