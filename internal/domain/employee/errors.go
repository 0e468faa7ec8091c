package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeDeleted  = errors.New("employee has been deleted")

	// ErrVersionConflict is returned by the compare-and-bump version guard
	// when another writer updated the employee's ledger first. Callers are
	// expected to re-fetch and reapply a bounded number of times.
	ErrVersionConflict = errors.New("employee version conflict")
)
