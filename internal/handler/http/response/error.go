package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/workclock/attendance-engine-go/internal/domain/attendance"
	"github.com/workclock/attendance-engine-go/internal/domain/auth"
	"github.com/workclock/attendance-engine-go/internal/domain/employee"
	"github.com/workclock/attendance-engine-go/internal/domain/shift"
	"github.com/workclock/attendance-engine-go/internal/pkg/validator"
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
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrInvalidConfig):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrEmployeeRequired):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrNoEmployeesInBatch):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrRangeTooLarge):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrReportNotFound):
		NotFound(w, "Attendance report not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is not active")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
