package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/staffloom/attendance-backend-go/internal/domain/settings"
	"github.com/staffloom/attendance-backend-go/internal/pkg/database"
)

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.Repository {
	return &settingsRepository{db: db}
}

// Get implements settings.Repository. The settings table holds exactly one row.
func (r *settingsRepository) Get(ctx context.Context) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT paid_leaves_per_year, half_day_deduction_weight, max_carry_forward
		FROM settings
		LIMIT 1
	`

	var cfg settings.Settings
	err := q.QueryRow(ctx, query).Scan(
		&cfg.PaidLeavesPerYear,
		&cfg.HalfDayDeductionWeight,
		&cfg.MaxCarryForward,
	)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return cfg, nil
}

// PolicyForLocation implements settings.Repository.
func (r *settingsRepository) PolicyForLocation(ctx context.Context, locationID string) (settings.WorkingDayPolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT location_id, kind, excluded_weekdays
		FROM working_day_policies
		WHERE location_id = $1
	`

	var policy settings.WorkingDayPolicy
	var excluded []int32
	err := q.QueryRow(ctx, query, locationID).Scan(&policy.LocationID, &policy.Kind, &excluded)
	if err != nil {
		if err == pgx.ErrNoRows {
			return settings.WorkingDayPolicy{LocationID: locationID, Kind: settings.PolicyAllDays}, nil
		}
		return settings.WorkingDayPolicy{}, fmt.Errorf("failed to get working-day policy: %w", err)
	}

	for _, d := range excluded {
		policy.ExcludedWeekdays = append(policy.ExcludedWeekdays, time.Weekday(d))
	}
	return policy, nil
}

// HolidaysOn implements settings.Repository. Global holidays carry a NULL
// location_id, surfaced to the domain as an empty string.
func (r *settingsRepository) HolidaysOn(ctx context.Context, date time.Time) ([]settings.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, date, COALESCE(location_id, '')
		FROM holidays
		WHERE date = $1
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var out []settings.Holiday
	for rows.Next() {
		var h settings.Holiday
		if err := rows.Scan(&h.ID, &h.Name, &h.Date, &h.LocationID); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
