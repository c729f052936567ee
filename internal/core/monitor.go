package core

import (
	"context"
	"fmt"

	"github.com/a1mart/tasker/internal/observability"
)

// ConnectionMonitor probes service reachability and maintains the tri-state
// connectivity signal in the store. It is re-entrant: every Check starts a
// fresh probe from Connecting, whether invoked by a manual refresh, a
// periodic re-check, or a pre-mutation gate.
type ConnectionMonitor interface {
	Check(ctx context.Context) ConnectionState
	State() ConnectionState
}

type connectionMonitor struct {
	svc    TaskService
	store  *Store
	events observability.EventLog
}

// NewConnectionMonitor creates a ConnectionMonitor backed by the service
// health probe. events may be nil to disable event logging.
func NewConnectionMonitor(svc TaskService, store *Store, events observability.EventLog) ConnectionMonitor {
	return &connectionMonitor{svc: svc, store: store, events: events}
}

// Check runs one probe. Any failure, including a healthy=false body, flips
// the state to Disconnected and records a user-facing message.
func (m *connectionMonitor) Check(ctx context.Context) ConnectionState {
	prev := m.store.Snapshot().Connection
	m.store.ConnectionChanged(StateConnecting, "")

	health, err := m.svc.Health(ctx)
	switch {
	case err != nil:
		m.store.ConnectionChanged(StateDisconnected, fmt.Sprintf("cannot reach the task service: %v", err))
	case !health.Healthy:
		m.store.ConnectionChanged(StateDisconnected, "the task service reported itself unhealthy")
	default:
		m.store.ConnectionChanged(StateConnected, "")
	}

	state := m.store.Snapshot().Connection
	if m.events != nil && state != prev {
		m.logChange(prev, state)
	}
	return state
}

// State returns the last recorded connectivity state without probing.
func (m *connectionMonitor) State() ConnectionState {
	return m.store.Snapshot().Connection
}

func (m *connectionMonitor) logChange(from, to ConnectionState) {
	level := "INFO"
	if to == StateDisconnected {
		level = "WARN"
	}
	_ = m.events.Write(observability.Event{
		Level:   level,
		Type:    "connection.changed",
		Message: fmt.Sprintf("connection %s -> %s", from, to),
	})
}
