package response

import (
	"errors"
	"net/http"

	"github.com/staffloom/attendance-backend-go/internal/domain/attendance"
	"github.com/staffloom/attendance-backend-go/internal/domain/employee"
	"github.com/staffloom/attendance-backend-go/internal/domain/leave"
	"github.com/staffloom/attendance-backend-go/internal/domain/location"
	"github.com/staffloom/attendance-backend-go/internal/pkg/validator"
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
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeDeleted):
		Conflict(w, "Employee has been deleted")
	case errors.Is(err, employee.ErrVersionConflict):
		Conflict(w, "Concurrent update, please retry")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAttendanceDeleted):
		Conflict(w, "Attendance record already undone")
	case errors.Is(err, attendance.ErrAlreadyMarked):
		Conflict(w, "Attendance already marked for this date")
	case errors.Is(err, attendance.ErrHolidayBlocked):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNonWorkingDay):
		BadRequest(w, "Date is not a working day; an exception with a reason is required", nil)
	case errors.Is(err, attendance.ErrLocationNotPermitted):
		Forbidden(w, "Not permitted to act on this location")

	// Leave ledger errors
	case errors.Is(err, leave.ErrRecordNotFound):
		NotFound(w, "Leave record not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrRecordFinalized):
		Conflict(w, "Month is finalized")

	// Location errors
	case errors.Is(err, location.ErrLocationNotFound):
		NotFound(w, "Location not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
