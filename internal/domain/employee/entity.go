package employee

import (
	"time"
)

type Employee struct {
	ID           string
	FullName     string
	EmployeeCode *string
	LocationID   string
	JoinDate     time.Time

	// IsProrated marks employees with a partial-year accrual window.
	// Once set it stays set; automatic recomputation skips them.
	IsProrated bool

	// IsManualQuota marks employees whose allocation was adjusted by hand.
	// Like IsProrated, it excludes the employee from auto-recompute.
	IsManualQuota bool

	// Version guards ledger writes against lost updates. Every ledger
	// mutation bumps it with a compare-and-swap at the storage layer.
	Version int64

	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e Employee) IsDeleted() bool {
	return e.DeletedAt != nil
}

// JoinedAfter reports whether the employee joined after the given calendar date.
func (e Employee) JoinedAfter(date time.Time) bool {
	jy, jm, jd := e.JoinDate.Date()
	dy, dm, dd := date.Date()
	if jy != dy {
		return jy > dy
	}
	if jm != dm {
		return jm > dm
	}
	return jd > dd
}

// InJoinMonth reports whether (year, month) is the employee's join month.
func (e Employee) InJoinMonth(year int, month time.Month) bool {
	return e.JoinDate.Year() == year && e.JoinDate.Month() == month
}
