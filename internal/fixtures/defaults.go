package fixtures

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffloom/attendance-backend-go/internal/domain/employee"
	"github.com/staffloom/attendance-backend-go/internal/domain/location"
	"github.com/staffloom/attendance-backend-go/internal/domain/settings"
)

func strPtr(s string) *string { return &s }

// DefaultSettings mirrors the standard Indonesian annual-leave entitlement:
// 12 paid days per year, half days deduct 0.5, carry-forward capped at 6.
func DefaultSettings() settings.Settings {
	return settings.Settings{
		PaidLeavesPerYear:      12,
		HalfDayDeductionWeight: decimal.NewFromFloat(0.5),
		MaxCarryForward:        decimal.NewFromInt(6),
	}
}

// DefaultLocation returns a headquarters location.
func DefaultLocation() location.Location {
	return location.Location{
		Name:     "Headquarters",
		Timezone: "Asia/Jakarta",
	}
}

// NewEmployee returns an active employee joined on the given date.
func NewEmployee(fullName, locationID string, joinDate time.Time) employee.Employee {
	return employee.Employee{
		FullName:     fullName,
		EmployeeCode: strPtr("EMP-" + joinDate.Format("20060102")),
		LocationID:   locationID,
		JoinDate:     joinDate,
	}
}
