// Package lock provides advisory per-entity mutual exclusion for ledger
// writers within a single process. It only reduces version-conflict churn;
// the storage layer's optimistic version check remains the authoritative
// guard against lost updates.
package lock

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Token proves ownership of an entity lock. Release with a stale token
// (one whose lock was seized after the timeout) is a no-op, so a crashed
// or slow holder can never free a lock it no longer owns.
type Token struct {
	EntityID   string
	AcquiredAt time.Time

	released chan struct{}
}

// Manager hands out at most one live lock per entity id. A lock held
// longer than the timeout window is considered abandoned and may be seized
// by the next acquirer; this bounds the staleness window after a holder
// crash and is an accepted liveness trade-off.
type Manager struct {
	mu      sync.Mutex
	timeout time.Duration
	held    map[string]*Token

	now func() time.Time
}

func NewManager(timeout time.Duration) *Manager {
	return &Manager{
		timeout: timeout,
		held:    make(map[string]*Token),
		now:     time.Now,
	}
}

// Acquire blocks until the entity lock is free, seizable, or ctx is done.
// Waiters park on the holder's release channel rather than polling.
func (m *Manager) Acquire(ctx context.Context, entityID string) (*Token, error) {
	for {
		m.mu.Lock()
		current, ok := m.held[entityID]
		if !ok {
			token := &Token{
				EntityID:   entityID,
				AcquiredAt: m.now(),
				released:   make(chan struct{}),
			}
			m.held[entityID] = token
			m.mu.Unlock()
			return token, nil
		}

		expiry := current.AcquiredAt.Add(m.timeout)
		if !m.now().Before(expiry) {
			// Abandoned: seize. The previous holder's token stays stale
			// so its eventual Release cannot free this lock.
			slog.Warn("seizing abandoned entity lock",
				"entity_id", entityID,
				"held_since", current.AcquiredAt)
			token := &Token{
				EntityID:   entityID,
				AcquiredAt: m.now(),
				released:   make(chan struct{}),
			}
			m.held[entityID] = token
			m.mu.Unlock()
			return token, nil
		}

		released := current.released
		m.mu.Unlock()

		wait := time.NewTimer(time.Until(expiry))
		select {
		case <-ctx.Done():
			wait.Stop()
			return nil, ctx.Err()
		case <-released:
			wait.Stop()
		case <-wait.C:
			// Timeout window elapsed; loop and seize.
		}
	}
}

// Release frees the entity lock if token still owns it.
func (m *Manager) Release(token *Token) {
	if token == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if current, ok := m.held[token.EntityID]; ok && current == token {
		delete(m.held, token.EntityID)
		close(token.released)
	}
}

// Held reports whether a live lock exists for the entity. Intended for
// observability; the answer can be stale by the time the caller acts on it.
func (m *Manager) Held(entityID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.held[entityID]
	return ok
}
