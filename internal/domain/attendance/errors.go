package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAttendanceDeleted  = errors.New("attendance record already deleted")
	ErrAlreadyMarked      = errors.New("attendance already marked for this date")

	// ErrHolidayBlocked rejects a whole batch whose date is a holiday for a
	// referenced location and the overwrite flag is not set.
	ErrHolidayBlocked = errors.New("date is a holiday for a referenced location")

	// ErrNonWorkingDay rejects a tuple on a non-working day without a valid
	// exception.
	ErrNonWorkingDay = errors.New("date is not a working day for this location")

	// ErrBatchValidation marks a bulk batch rejected by hard validation;
	// the response carries every collected tuple error.
	ErrBatchValidation = errors.New("batch failed validation")

	// ErrLocationNotPermitted rejects a tuple referencing a location outside
	// the caller's authorization set.
	ErrLocationNotPermitted = errors.New("caller is not authorized for this location")
)
