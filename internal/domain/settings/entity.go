package settings

import (
	"time"

	"github.com/shopspring/decimal"
)

// PolicyKind identifies a location's working-day rule.
type PolicyKind string

const (
	PolicyAllDays         PolicyKind = "all_days"
	PolicyExcludeSundays  PolicyKind = "exclude_sundays"
	PolicyExcludeWeekends PolicyKind = "exclude_weekends"
	PolicyCustom          PolicyKind = "custom"
)

// WorkingDayPolicy decides which calendar dates are attendance-eligible
// for a location. ExcludedWeekdays is only consulted for PolicyCustom.
type WorkingDayPolicy struct {
	LocationID       string
	Kind             PolicyKind
	ExcludedWeekdays []time.Weekday
}

// Excludes reports whether the policy excludes the given weekday.
func (p WorkingDayPolicy) Excludes(day time.Weekday) bool {
	switch p.Kind {
	case PolicyExcludeSundays:
		return day == time.Sunday
	case PolicyExcludeWeekends:
		return day == time.Saturday || day == time.Sunday
	case PolicyCustom:
		for _, d := range p.ExcludedWeekdays {
			if d == day {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Holiday blocks attendance marking for a location (or globally when
// LocationID is empty) unless the caller sets the overwrite flag.
type Holiday struct {
	ID         string
	Name       string
	Date       time.Time
	LocationID string
}

// Global reports whether the holiday applies to every location.
func (h Holiday) Global() bool {
	return h.LocationID == ""
}

// Settings is the read-mostly policy configuration the ledger and the
// bulk processor consume. Callers may cache it but must tolerate a
// re-fetch on every batch.
type Settings struct {
	PaidLeavesPerYear      int
	HalfDayDeductionWeight decimal.Decimal
	MaxCarryForward        decimal.Decimal
}
