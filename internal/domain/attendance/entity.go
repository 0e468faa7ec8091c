package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half_day"
	StatusLeave   Status = "leave"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay, StatusLeave:
		return true
	}
	return false
}

// PresenceDays maps status to the payroll presence figure: 1 for a present
// day, 0.5 for a half day, 0 otherwise.
func (s Status) PresenceDays() decimal.Decimal {
	switch s {
	case StatusPresent:
		return decimal.NewFromInt(1)
	case StatusHalfDay:
		return decimal.NewFromFloat(0.5)
	default:
		return decimal.Zero
	}
}

// LeaveUnits maps status to the ledger deduction: 1 for a leave day,
// halfDayWeight for a half day, 0 otherwise.
func (s Status) LeaveUnits(halfDayWeight decimal.Decimal) decimal.Decimal {
	switch s {
	case StatusLeave:
		return decimal.NewFromInt(1)
	case StatusHalfDay:
		return halfDayWeight
	default:
		return decimal.Zero
	}
}

// ExceptionReasonOther requires a free-text description alongside it.
const ExceptionReasonOther = "other"

// AttendanceRecord is one employee-day. At most one non-deleted record
// exists per (employee, date); the constraint is enforced logically because
// undo soft-deletes and history must survive.
type AttendanceRecord struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Status     Status
	LocationID string

	IsException          bool
	ExceptionReason      *string
	ExceptionDescription *string

	MarkedBy     string
	PresenceDays decimal.Decimal

	IsDeleted bool
	DeletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
