package attendance

import (
	"context"
	"time"
)

// AttendanceRepository persists attendance rows. Rows are never hard-deleted;
// undo soft-deletes so the (employee, date) uniqueness rule only applies to
// non-deleted records.
type AttendanceRepository interface {
	Create(ctx context.Context, rec AttendanceRecord) (AttendanceRecord, error)

	GetByID(ctx context.Context, id string) (AttendanceRecord, error)

	// GetActiveByEmployeeAndDate returns the non-deleted record for the
	// pair, or nil when none exists.
	GetActiveByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*AttendanceRecord, error)

	// ListActiveByEmployeesAndDate resolves pre-existing records for a
	// whole batch in one read, keyed by employee id.
	ListActiveByEmployeesAndDate(ctx context.Context, employeeIDs []string, date time.Time) (map[string]AttendanceRecord, error)

	// ListActiveByEmployeeMonth returns an employee's non-deleted records
	// within a calendar month, ordered by date.
	ListActiveByEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]AttendanceRecord, error)

	Update(ctx context.Context, rec AttendanceRecord) error
}
