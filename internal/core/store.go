package core

import (
	"sync"
	"time"

	"github.com/a1mart/tasker/pkg/models"
)

// ConnectionState is the tri-state connectivity signal every component
// consumes.
type ConnectionState int

const (
	StateConnecting ConnectionState = iota
	StateConnected
	StateDisconnected
)

func (s ConnectionState) String() string {
	switch s {
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	case StateDisconnected:
		return "DISCONNECTED"
	}
	return "UNKNOWN"
}

// Snapshot is an immutable view of the client's shared state. Components
// receive copies and never share mutable references; slices inside a
// snapshot must not be modified by readers.
type Snapshot struct {
	Connection ConnectionState
	// ConnectionErr is the user-facing message recorded when the last
	// probe failed.
	ConnectionErr string

	Tasks     []models.Task
	Users     []models.User
	Analytics *models.TaskAnalytics

	// Query is the live free-text query; Displayed is the task list the
	// UI should render, which tracks search results when a query is
	// active and the full collection otherwise.
	Query     string
	Displayed []models.Task

	// Loading is the initial full-page load flag; Mutating is the
	// per-pipeline busy flag, kept distinct so the UI can disable
	// controls without re-showing a loading screen.
	Loading  bool
	Mutating bool

	// Err is the global error message from the last failed pass, empty
	// after a fully successful one.
	Err string

	LastSync time.Time
}

// Store holds the current snapshot and fans out a copy to subscribers on
// every named transition. All mutation goes through the transition methods.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
	subs []chan Snapshot
}

// NewStore creates a Store in the initial Connecting state with empty
// collections and the loading flag set.
func NewStore() *Store {
	return &Store{
		snap: Snapshot{
			Connection: StateConnecting,
			Loading:    true,
		},
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Subscribe registers a listener. The channel holds the most recent
// snapshot only: if a subscriber lags, intermediate snapshots are dropped
// in favor of the latest.
func (s *Store) Subscribe() <-chan Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Snapshot, 1)
	ch <- s.snap
	s.subs = append(s.subs, ch)
	return ch
}

// apply installs the new snapshot and notifies subscribers. Callers must
// hold no lock.
func (s *Store) apply(mutate func(*Snapshot)) {
	s.mu.Lock()
	next := s.snap
	mutate(&next)
	s.snap = next
	subs := s.subs
	s.mu.Unlock()

	for _, ch := range subs {
		// Replace a stale undelivered snapshot rather than blocking.
		select {
		case ch <- next:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- next:
			default:
			}
		}
	}
}

// ConnectionChanged records a probe result. msg is the user-facing error
// for Disconnected and empty otherwise.
func (s *Store) ConnectionChanged(state ConnectionState, msg string) {
	s.apply(func(n *Snapshot) {
		n.Connection = state
		n.ConnectionErr = msg
	})
}

// SyncStarted marks the beginning of a synchronization pass.
func (s *Store) SyncStarted() {
	s.apply(func(n *Snapshot) {
		n.Loading = len(n.Tasks) == 0 && len(n.Users) == 0
	})
}

// SyncSucceeded atomically replaces all collections and clears the global
// error. Analytics may be nil when that leg of the pass was degraded.
func (s *Store) SyncSucceeded(tasks []models.Task, users []models.User, analytics *models.TaskAnalytics) {
	s.apply(func(n *Snapshot) {
		n.Tasks = tasks
		n.Users = users
		n.Analytics = analytics
		n.Loading = false
		n.Err = ""
		n.LastSync = time.Now()
		if n.Query == "" {
			n.Displayed = tasks
		}
	})
}

// SyncFailed records a fatal pass failure. Previously displayed collections
// are deliberately left untouched so the UI never flashes empty state.
func (s *Store) SyncFailed(msg string) {
	s.apply(func(n *Snapshot) {
		n.Loading = false
		n.Err = msg
	})
}

// QueryChanged records the live query text.
func (s *Store) QueryChanged(query string) {
	s.apply(func(n *Snapshot) {
		n.Query = query
	})
}

// SearchApplied installs the result list of a settled search.
func (s *Store) SearchApplied(tasks []models.Task) {
	s.apply(func(n *Snapshot) {
		n.Displayed = tasks
	})
}

// TasksReloaded replaces the task collection alone; used when an emptied
// query resets the view to the unfiltered listing.
func (s *Store) TasksReloaded(tasks []models.Task) {
	s.apply(func(n *Snapshot) {
		n.Tasks = tasks
		n.Displayed = tasks
	})
}

// MutationStarted sets the per-pipeline busy flag.
func (s *Store) MutationStarted() {
	s.apply(func(n *Snapshot) {
		n.Mutating = true
	})
}

// MutationSucceeded clears the busy flag.
func (s *Store) MutationSucceeded() {
	s.apply(func(n *Snapshot) {
		n.Mutating = false
	})
}

// MutationFailed clears the busy flag and records the operation-scoped
// error message. Collections are never touched on mutation failure.
func (s *Store) MutationFailed(msg string) {
	s.apply(func(n *Snapshot) {
		n.Mutating = false
		n.Err = msg
	})
}
