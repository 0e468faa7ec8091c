package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	c := New(time.Minute, time.Hour)

	c.Set("emp-1", 2024, time.March, KindAllocation, 42)

	got, ok := c.Get("emp-1", 2024, time.March, KindAllocation)
	require.True(t, ok)
	assert.Equal(t, 42, got)

	// Same key, different kind: independent entries.
	_, ok = c.Get("emp-1", 2024, time.March, KindFinalization)
	assert.False(t, ok)
}

func TestEntriesExpirePerKind(t *testing.T) {
	c := New(time.Minute, time.Hour)
	start := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	now := start
	c.now = func() time.Time { return now }

	c.Set("emp-1", 2024, time.March, KindAllocation, "a")
	c.Set("emp-1", 2024, time.March, KindFinalization, "f")

	now = start.Add(2 * time.Minute)

	_, ok := c.Get("emp-1", 2024, time.March, KindAllocation)
	assert.False(t, ok, "allocation TTL elapsed")

	_, ok = c.Get("emp-1", 2024, time.March, KindFinalization)
	assert.True(t, ok, "finalization TTL still running")
}

func TestInvalidate(t *testing.T) {
	c := New(time.Minute, time.Minute)

	c.Set("emp-1", 2024, time.March, KindFinalization, "f")
	c.Invalidate("emp-1", 2024, time.March, KindFinalization)

	_, ok := c.Get("emp-1", 2024, time.March, KindFinalization)
	assert.False(t, ok)
}

func TestDisabledCacheIsPassThrough(t *testing.T) {
	c := New(time.Minute, time.Minute)
	c.Set("emp-1", 2024, time.March, KindAllocation, "a")

	c.Disable()

	_, ok := c.Get("emp-1", 2024, time.March, KindAllocation)
	assert.False(t, ok)

	c.Set("emp-2", 2024, time.March, KindAllocation, "b")
	_, ok = c.Get("emp-2", 2024, time.March, KindAllocation)
	assert.False(t, ok)
}
