package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	// BulkMark validates and persists a batch of attendance tuples sharing
	// one calendar date. Hard validation is all-or-nothing: if any tuple
	// fails, nothing is written and every collected error is returned with
	// ErrBatchValidation. Duplicate tuples are skipped (not errored) unless
	// the overwrite flag is set.
	BulkMark(ctx context.Context, principal Principal, req BulkMarkRequest) (BulkMarkResponse, error)

	// Mark is the single-record path. Unlike BulkMark it hard-rejects a
	// leave mark that exceeds the available balance.
	Mark(ctx context.Context, principal Principal, req MarkRequest) (AttendanceResponse, error)

	// Undo soft-deletes a record and reverses its ledger delta.
	Undo(ctx context.Context, principal Principal, id string) error

	// MonthlySummary is the read API for payroll and reporting.
	MonthlySummary(ctx context.Context, employeeID string, year int, month time.Month) (MonthlySummary, error)
}
