package core

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/a1mart/tasker/internal/observability"
	"github.com/a1mart/tasker/pkg/models"
)

// DataSynchronizer coordinates the retrieval of tasks, users, and analytics
// and is the single source of truth for loaded state. Tasks and users are
// operational data: either leg failing aborts the pass and keeps the
// last-known-good collections. Analytics is advisory: its failure is logged
// and the pass still succeeds.
type DataSynchronizer interface {
	SyncAll(ctx context.Context) error
	ReloadTasks(ctx context.Context) error
}

type dataSynchronizer struct {
	svc     TaskService
	monitor ConnectionMonitor
	store   *Store
	events  observability.EventLog

	pageSize        int32
	analyticsWindow time.Duration

	// seq guards against a slow pass overwriting the results of a newer
	// one: results are applied only when the pass still holds the latest
	// sequence number.
	seq atomic.Uint64
}

// NewDataSynchronizer creates a DataSynchronizer. pageSize bounds each
// listing; analyticsWindow is the trailing window of the analytics fetch.
// events may be nil.
func NewDataSynchronizer(svc TaskService, monitor ConnectionMonitor, store *Store, events observability.EventLog, pageSize int32, analyticsWindow time.Duration) DataSynchronizer {
	return &dataSynchronizer{
		svc:             svc,
		monitor:         monitor,
		store:           store,
		events:          events,
		pageSize:        pageSize,
		analyticsWindow: analyticsWindow,
	}
}

// SyncAll runs one synchronization pass: probe, then three concurrent
// fetches, then one atomic snapshot replacement. A manual refresh simply
// starts a new pass; if an older pass finishes afterwards its results are
// discarded.
func (s *dataSynchronizer) SyncAll(ctx context.Context) error {
	pass := s.seq.Add(1)
	s.store.SyncStarted()
	s.logEvent("INFO", "sync.started", "synchronization pass started", nil)

	if state := s.monitor.Check(ctx); state != StateConnected {
		msg := s.store.Snapshot().ConnectionErr
		s.store.SyncFailed(msg)
		err := &ConnectivityError{Op: "sync", Err: errUnreachable(msg)}
		s.logEvent("ERROR", "sync.failed", msg, nil)
		return err
	}

	var (
		wg        sync.WaitGroup
		tasks     *[]models.Task
		users     *[]models.User
		analytics *models.TaskAnalytics
		taskErr   error
		userErr   error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		resp, err := s.svc.ListTasks(ctx, s.pageSize)
		if err != nil {
			taskErr = err
			return
		}
		tasks = &resp.Tasks
	}()
	go func() {
		defer wg.Done()
		resp, err := s.svc.ListUsers(ctx, s.pageSize, false)
		if err != nil {
			userErr = err
			return
		}
		users = &resp.Users
	}()
	go func() {
		defer wg.Done()
		end := time.Now()
		start := end.Add(-s.analyticsWindow)
		resp, err := s.svc.GetTaskAnalytics(ctx, start, end, "status")
		if err != nil {
			// Non-fatal: a slow or broken analytics backend must not
			// block day-to-day task operations.
			s.logEvent("WARN", "sync.analytics_degraded", err.Error(), nil)
			return
		}
		analytics = resp.Analytics
	}()
	wg.Wait()

	if taskErr != nil {
		s.store.SyncFailed("loading tasks failed: " + taskErr.Error())
		s.logEvent("ERROR", "sync.failed", taskErr.Error(), nil)
		return &ConnectivityError{Op: "listing tasks", Err: taskErr}
	}
	if userErr != nil {
		s.store.SyncFailed("loading users failed: " + userErr.Error())
		s.logEvent("ERROR", "sync.failed", userErr.Error(), nil)
		return &ConnectivityError{Op: "listing users", Err: userErr}
	}

	if s.seq.Load() != pass {
		// A newer pass has started; let it win.
		return nil
	}

	s.store.SyncSucceeded(*tasks, *users, analytics)
	s.logEvent("INFO", "sync.succeeded", "synchronization pass completed", map[string]any{
		"tasks": len(*tasks),
		"users": len(*users),
	})
	return nil
}

// ReloadTasks refreshes the task collection alone. Used when an emptied
// search query resets the view to the unfiltered listing.
func (s *dataSynchronizer) ReloadTasks(ctx context.Context) error {
	pass := s.seq.Add(1)

	resp, err := s.svc.ListTasks(ctx, s.pageSize)
	if err != nil {
		s.logEvent("ERROR", "sync.failed", err.Error(), nil)
		return &ConnectivityError{Op: "reloading tasks", Err: err}
	}
	if s.seq.Load() != pass {
		return nil
	}
	s.store.TasksReloaded(resp.Tasks)
	return nil
}

func (s *dataSynchronizer) logEvent(level, typ, msg string, data map[string]any) {
	if s.events == nil {
		return
	}
	_ = s.events.Write(observability.Event{Level: level, Type: typ, Message: msg, Data: data})
}

// errUnreachable turns a recorded probe message back into an error value.
type errUnreachable string

func (e errUnreachable) Error() string {
	if e == "" {
		return "service unreachable"
	}
	return string(e)
}
