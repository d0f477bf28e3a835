package response

import (
	"errors"
	"net/http"

	"github.com/workdeskhq/workdesk-backend/internal/domain/attendance"
	"github.com/workdeskhq/workdesk-backend/internal/domain/auth"
	"github.com/workdeskhq/workdesk-backend/internal/domain/incident"
	"github.com/workdeskhq/workdesk-backend/internal/domain/presence"
	"github.com/workdeskhq/workdesk-backend/internal/domain/schedule"
	"github.com/workdeskhq/workdesk-backend/internal/domain/worker"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrOAuthExchange):
		Unauthorized(w, err.Error())

	// Worker errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, worker.ErrWorkerInactive):
		Forbidden(w, err.Error())

	// Shift schedule errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, schedule.ErrInvalidDayOfWeek):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, schedule.ErrInvalidTimeOfDay):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, schedule.ErrInvalidTimezone):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, schedule.ErrWorkerRequired):
		BadRequest(w, err.Error(), nil)

	// Presence errors
	case errors.Is(err, presence.ErrUnknownEventKind):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, presence.ErrEventNotFound):
		NotFound(w, err.Error())

	// Attendance report errors
	case errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrInvalidGranularity):
		BadRequest(w, err.Error(), nil)

	// Incident errors
	case errors.Is(err, incident.ErrIncidentNotFound):
		NotFound(w, err.Error())

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
