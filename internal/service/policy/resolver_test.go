package policy

import (
	"context"
	"testing"
	"time"

	"github.com/staffloom/attendance-backend-go/internal/domain/settings"
	"github.com/staffloom/attendance-backend-go/internal/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolidayOnScoping(t *testing.T) {
	repo := fixtures.NewMemorySettingsRepo(fixtures.DefaultSettings())
	r := NewResolver(repo)
	date := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)

	repo.AddHoliday(settings.Holiday{Name: "Branch Anniversary", Date: date, LocationID: "loc-1"})

	h, err := r.HolidayOn(context.Background(), "loc-1", date)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, "Branch Anniversary", h.Name)

	// A location-scoped holiday does not block other locations.
	h, err = r.HolidayOn(context.Background(), "loc-2", date)
	require.NoError(t, err)
	assert.Nil(t, h)

	// A global holiday blocks every location.
	repo.AddHoliday(settings.Holiday{Name: "Nyepi", Date: date})
	h, err = r.HolidayOn(context.Background(), "loc-2", date)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, "Nyepi", h.Name)
}

func TestHolidayOnOtherDate(t *testing.T) {
	repo := fixtures.NewMemorySettingsRepo(fixtures.DefaultSettings())
	r := NewResolver(repo)

	repo.AddHoliday(settings.Holiday{
		Name: "Nyepi",
		Date: time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
	})

	h, err := r.HolidayOn(context.Background(), "loc-1",
		time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, h)
}

func TestIsWorkingDayPolicies(t *testing.T) {
	sunday := time.Date(2024, time.March, 17, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC)
	wednesday := time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		policy settings.WorkingDayPolicy
		date   time.Time
		want   bool
	}{
		{"default all days includes sunday", settings.WorkingDayPolicy{}, sunday, true},
		{"exclude sundays blocks sunday",
			settings.WorkingDayPolicy{LocationID: "loc-1", Kind: settings.PolicyExcludeSundays}, sunday, false},
		{"exclude sundays keeps saturday",
			settings.WorkingDayPolicy{LocationID: "loc-1", Kind: settings.PolicyExcludeSundays}, saturday, true},
		{"exclude weekends blocks saturday",
			settings.WorkingDayPolicy{LocationID: "loc-1", Kind: settings.PolicyExcludeWeekends}, saturday, false},
		{"custom excludes wednesday",
			settings.WorkingDayPolicy{
				LocationID:       "loc-1",
				Kind:             settings.PolicyCustom,
				ExcludedWeekdays: []time.Weekday{time.Wednesday},
			}, wednesday, false},
		{"custom keeps sunday when not listed",
			settings.WorkingDayPolicy{
				LocationID:       "loc-1",
				Kind:             settings.PolicyCustom,
				ExcludedWeekdays: []time.Weekday{time.Wednesday},
			}, sunday, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := fixtures.NewMemorySettingsRepo(fixtures.DefaultSettings())
			if tt.policy.Kind != "" {
				repo.SetPolicy(tt.policy)
			}
			r := NewResolver(repo)

			got, err := r.IsWorkingDay(context.Background(), "loc-1", tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
