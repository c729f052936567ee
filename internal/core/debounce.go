package core

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/a1mart/tasker/internal/observability"
)

// SearchDebouncer coalesces free-text query changes into at most one
// outstanding remote search per settling window. A keystroke before the
// window elapses cancels the pending trigger entirely; no request is ever
// issued for an intermediate value. When the window elapses on a blank
// query the view resets to the unfiltered listing via a task reload
// instead of a search.
//
// An already-dispatched request cannot be cancelled, so every trigger
// carries a strictly increasing sequence number and a response is applied
// only if it still holds the latest one. That makes "last intent wins"
// hold without depending on response ordering.
type SearchDebouncer struct {
	svc     TaskService
	monitor ConnectionMonitor
	store   *Store
	syncer  DataSynchronizer
	events  observability.EventLog

	window   time.Duration
	pageSize int32

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	pending sync.WaitGroup
}

// NewSearchDebouncer creates a SearchDebouncer with the given settling
// window. events may be nil.
func NewSearchDebouncer(svc TaskService, monitor ConnectionMonitor, store *Store, syncer DataSynchronizer, events observability.EventLog, window time.Duration, pageSize int32) *SearchDebouncer {
	return &SearchDebouncer{
		svc:      svc,
		monitor:  monitor,
		store:    store,
		syncer:   syncer,
		events:   events,
		window:   window,
		pageSize: pageSize,
	}
}

// QueryChanged records a keystroke. It restarts the settling window; only
// the value present when the window elapses without further changes
// triggers a remote call. Nothing is scheduled while the connection is not
// Connected.
func (d *SearchDebouncer) QueryChanged(query string) {
	d.store.QueryChanged(query)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		if d.timer.Stop() {
			d.pending.Done()
		}
		d.timer = nil
	}
	if d.monitor.State() != StateConnected {
		return
	}

	d.pending.Add(1)
	d.timer = time.AfterFunc(d.window, func() {
		defer d.pending.Done()
		d.fire(query)
	})
}

// Flush waits for any in-flight trigger to finish. Intended for shutdown
// and tests; it does not force a pending timer to fire early.
func (d *SearchDebouncer) Flush() {
	d.pending.Wait()
}

// fire runs once the window has elapsed. The connection gate is re-checked
// because connectivity may have dropped while the timer was pending.
func (d *SearchDebouncer) fire(query string) {
	if d.monitor.State() != StateConnected {
		return
	}

	d.mu.Lock()
	d.seq++
	issued := d.seq
	d.mu.Unlock()

	ctx := context.Background()

	if strings.TrimSpace(query) == "" {
		if err := d.syncer.ReloadTasks(ctx); err != nil {
			d.logEvent("WARN", "search.reload_failed", err.Error())
		}
		return
	}

	resp, err := d.svc.SearchTasks(ctx, query, d.pageSize)
	if err != nil {
		d.logEvent("WARN", "search.failed", err.Error())
		return
	}

	if !d.latest(issued) {
		// A newer query has since been issued; this result is stale.
		return
	}
	d.store.SearchApplied(resp.Tasks)
	d.logEvent("INFO", "search.applied", query)
}

func (d *SearchDebouncer) latest(issued uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seq == issued
}

func (d *SearchDebouncer) logEvent(level, typ, msg string) {
	if d.events == nil {
		return
	}
	_ = d.events.Write(observability.Event{Level: level, Type: typ, Message: msg})
}
