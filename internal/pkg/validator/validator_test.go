package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty("  x  "))
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("018f2a3b-7c1d-7e5f-89ab-0123456789ab"))
	assert.True(t, IsValidUUID("550E8400-E29B-41D4-A716-446655440000"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID("550e8400e29b41d4a716446655440000"))
	assert.False(t, IsValidUUID(""))
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2024-03-15")
	require.True(t, ok)
	assert.Equal(t, 2024, date.Year())
	assert.Equal(t, 15, date.Day())

	_, ok = IsValidDate("15-03-2024")
	assert.False(t, ok)
	_, ok = IsValidDate("2024-13-01")
	assert.False(t, ok)
	_, ok = IsValidDate("")
	assert.False(t, ok)
}

func TestIsInSlice(t *testing.T) {
	assert.True(t, IsInSlice("b", []string{"a", "b", "c"}))
	assert.False(t, IsInSlice("d", []string{"a", "b", "c"}))
	assert.False(t, IsInSlice("a", nil))
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "date", Message: "date is required"},
		{Field: "entries", Message: "entries must not be empty"},
	}

	m := errs.ToMap()
	assert.Equal(t, "date is required", m["date"])
	assert.Equal(t, "entries must not be empty", m["entries"])
	assert.Contains(t, errs.Error(), "date: date is required")
}
