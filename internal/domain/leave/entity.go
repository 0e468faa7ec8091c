package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyLeaveRecord is the per-employee, per-month accrual record. At most
// one exists per (employee, year, month); records run contiguously from the
// employee's join month to the current month. It is mutated only through the
// ledger service while the employee's lock is held.
type MonthlyLeaveRecord struct {
	ID         string
	EmployeeID string
	Year       int
	Month      time.Month

	Allocated      decimal.Decimal
	Taken          decimal.Decimal
	CarriedForward decimal.Decimal

	// Unpaid accumulates leave taken beyond the available balance on the
	// bulk path, where the shortfall degrades to unpaid usage instead of
	// rejecting the batch.
	Unpaid decimal.Decimal

	// IsFinalized freezes Allocated, CarriedForward and Taken. Only an
	// explicit reversal un-finalizes a record.
	IsFinalized bool
	FinalizedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewMonthlyLeaveRecord constructs a record with every field present and
// defaulted so historical records never carry implicit shapes.
func NewMonthlyLeaveRecord(employeeID string, year int, month time.Month, allocated, carriedForward decimal.Decimal) MonthlyLeaveRecord {
	return MonthlyLeaveRecord{
		EmployeeID:     employeeID,
		Year:           year,
		Month:          month,
		Allocated:      allocated,
		Taken:          decimal.Zero,
		CarriedForward: carriedForward,
		Unpaid:         decimal.Zero,
		IsFinalized:    false,
	}
}

// Available is the spendable balance: max(0, allocated + carriedForward - taken).
func (r MonthlyLeaveRecord) Available() decimal.Decimal {
	avail := r.Allocated.Add(r.CarriedForward).Sub(r.Taken)
	if avail.IsNegative() {
		return decimal.Zero
	}
	return avail
}

// Before reports whether the record's month precedes (year, month).
func (r MonthlyLeaveRecord) Before(year int, month time.Month) bool {
	if r.Year != year {
		return r.Year < year
	}
	return r.Month < month
}

// NextMonth returns the (year, month) pair following the record's month.
func (r MonthlyLeaveRecord) NextMonth() (int, time.Month) {
	if r.Month == time.December {
		return r.Year + 1, time.January
	}
	return r.Year, r.Month + 1
}

// PrevMonth returns the (year, month) pair preceding (year, month).
func PrevMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}
