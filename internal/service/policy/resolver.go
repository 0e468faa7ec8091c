// Package policy decides, for a location and a date, whether attendance may
// be marked: holiday status and working-day status are independent checks.
package policy

import (
	"context"
	"fmt"
	"time"

	"github.com/staffloom/attendance-backend-go/internal/domain/settings"
)

// Resolver is a pure function of the policy configuration plus the date; it
// has no side effects and may be called concurrently.
type Resolver struct {
	settings settings.Repository
}

func NewResolver(settingsRepo settings.Repository) *Resolver {
	return &Resolver{settings: settingsRepo}
}

// HolidayOn returns the holiday blocking the location on the given date, or
// nil. A location-scoped holiday only blocks its own location; a global
// holiday blocks every location.
func (r *Resolver) HolidayOn(ctx context.Context, locationID string, date time.Time) (*settings.Holiday, error) {
	holidays, err := r.settings.HolidaysOn(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	for _, h := range holidays {
		if h.Global() || h.LocationID == locationID {
			return &h, nil
		}
	}
	return nil, nil
}

// IsWorkingDay reports whether the date counts as attendance-eligible under
// the location's working-day policy. A non-working day is not the same as a
// holiday: marking it requires an exception, not the overwrite flag.
func (r *Resolver) IsWorkingDay(ctx context.Context, locationID string, date time.Time) (bool, error) {
	policy, err := r.settings.PolicyForLocation(ctx, locationID)
	if err != nil {
		return false, fmt.Errorf("failed to resolve working-day policy: %w", err)
	}
	return !policy.Excludes(date.Weekday()), nil
}
