package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireRelease(t *testing.T) {
	m := NewManager(time.Second)

	token, err := m.Acquire(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.True(t, m.Held("emp-1"))

	m.Release(token)
	assert.False(t, m.Held("emp-1"))
}

func TestAcquireIsExclusivePerEntity(t *testing.T) {
	m := NewManager(time.Minute)

	first, err := m.Acquire(context.Background(), "emp-1")
	require.NoError(t, err)

	// A different entity is not blocked.
	other, err := m.Acquire(context.Background(), "emp-2")
	require.NoError(t, err)
	m.Release(other)

	acquired := make(chan *Token)
	go func() {
		token, err := m.Acquire(context.Background(), "emp-1")
		if err != nil {
			close(acquired)
			return
		}
		acquired <- token
	}()

	select {
	case <-acquired:
		t.Fatal("second acquire must block while the lock is held")
	case <-time.After(20 * time.Millisecond):
	}

	m.Release(first)

	select {
	case token := <-acquired:
		require.NotNil(t, token)
		m.Release(token)
	case <-time.After(time.Second):
		t.Fatal("waiter was not woken by release")
	}
}

func TestAcquireSeizesExpiredLock(t *testing.T) {
	m := NewManager(30 * time.Second)
	start := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	now := start
	m.now = func() time.Time { return now }

	stale, err := m.Acquire(context.Background(), "emp-1")
	require.NoError(t, err)

	// The holder goes silent past the timeout window.
	now = start.Add(31 * time.Second)

	seized, err := m.Acquire(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.True(t, m.Held("emp-1"))

	// The stale token can no longer free the lock.
	m.Release(stale)
	assert.True(t, m.Held("emp-1"))

	m.Release(seized)
	assert.False(t, m.Held("emp-1"))
}

func TestAcquireHonorsContextCancellation(t *testing.T) {
	m := NewManager(time.Minute)

	token, err := m.Acquire(context.Background(), "emp-1")
	require.NoError(t, err)
	defer m.Release(token)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := m.Acquire(ctx, "emp-1")
		done <- err
	}()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("canceled acquire did not return")
	}
}

func TestReleaseNilTokenIsNoop(t *testing.T) {
	m := NewManager(time.Second)
	m.Release(nil)
}
