package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffloom/attendance-backend-go/internal/domain/employee"
)

// DeltaMode selects the balance-shortfall behavior of ApplyDelta.
type DeltaMode int

const (
	// DeltaSingle rejects a delta that exceeds the available balance.
	DeltaSingle DeltaMode = iota
	// DeltaBulk clamps taken to the available ceiling and records the
	// excess as unpaid usage.
	DeltaBulk
)

// ApplyResult reports the outcome of a ledger delta.
type ApplyResult struct {
	Record MonthlyLeaveRecord
	// UnpaidUnits is the portion of a positive delta that exceeded the
	// available balance on the bulk path; zero otherwise.
	UnpaidUnits decimal.Decimal
}

type LedgerService interface {
	// EnsureMonth creates the record for (year, month) if it does not exist.
	// The join month always starts with zero carry-forward; other months
	// copy the prior month's available balance only if that month is
	// finalized, else the last finalized balance, else zero.
	EnsureMonth(ctx context.Context, emp employee.Employee, year int, month time.Month) (MonthlyLeaveRecord, error)

	// ApplyDelta adds units (positive for marks, negative for reversals) to
	// the month's taken figure and bumps the employee's version. Returns
	// employee.ErrVersionConflict when another writer got there first.
	ApplyDelta(ctx context.Context, emp employee.Employee, year int, month time.Month, units decimal.Decimal, mode DeltaMode) (ApplyResult, error)

	// Finalize freezes the month and seeds the next month's carry-forward,
	// clamped to the policy cap. Idempotent; FinalizedAt is stamped once.
	Finalize(ctx context.Context, emp employee.Employee, year int, month time.Month) (MonthlyLeaveRecord, error)

	// Reverse is the audited undo: it un-finalizes the month if needed and
	// subtracts units, draining unpaid usage before paid usage.
	Reverse(ctx context.Context, emp employee.Employee, year int, month time.Month, units decimal.Decimal) (MonthlyLeaveRecord, error)

	// Correct recomputes allocation, carry-forward and unpaid figures from
	// the full record history. No-op for prorated or manually adjusted
	// employees.
	Correct(ctx context.Context, emp employee.Employee) error

	// MonthlyAllocation derives the employee's per-month allocation,
	// prorated for mid-year joiners.
	MonthlyAllocation(ctx context.Context, emp employee.Employee, year int) (decimal.Decimal, error)
}
