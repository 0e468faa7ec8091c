package employee

import (
	"context"
)

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByIDs resolves a set of employees in one read. Missing ids are
	// simply absent from the result map; the caller decides how to report them.
	GetByIDs(ctx context.Context, ids []string) (map[string]Employee, error)

	// ListActive returns all non-deleted employees, used by the
	// reconciliation sweep.
	ListActive(ctx context.Context) ([]Employee, error)

	// SetProrated sets the sticky proration flag.
	SetProrated(ctx context.Context, id string) error

	// CompareAndBumpVersion atomically increments the employee's version if
	// it still equals expected, returning the new version. Returns
	// ErrVersionConflict otherwise.
	CompareAndBumpVersion(ctx context.Context, id string, expected int64) (int64, error)
}
