package settings

import (
	"context"
	"time"
)

type Repository interface {
	Get(ctx context.Context) (Settings, error)

	// PolicyForLocation returns the location's working-day policy,
	// defaulting to PolicyAllDays when none is configured.
	PolicyForLocation(ctx context.Context, locationID string) (WorkingDayPolicy, error)

	// HolidaysOn returns every holiday falling on the given date,
	// both location-scoped and global.
	HolidaysOn(ctx context.Context, date time.Time) ([]Holiday, error)
}
