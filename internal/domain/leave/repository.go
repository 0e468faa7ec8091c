package leave

import (
	"context"
	"time"
)

type LedgerRepository interface {
	// Get returns the record for (employeeID, year, month) or ErrRecordNotFound.
	Get(ctx context.Context, employeeID string, year int, month time.Month) (MonthlyLeaveRecord, error)

	// ListByEmployee returns all of an employee's records ordered by
	// (year, month) ascending.
	ListByEmployee(ctx context.Context, employeeID string) ([]MonthlyLeaveRecord, error)

	// Save upserts a record keyed by (employee_id, year, month).
	Save(ctx context.Context, rec MonthlyLeaveRecord) (MonthlyLeaveRecord, error)
}
