package core

import (
	"testing"

	"github.com/a1mart/tasker/pkg/models"
)

func TestStore_InitialState(t *testing.T) {
	s := NewStore()
	snap := s.Snapshot()
	if snap.Connection != StateConnecting {
		t.Errorf("initial connection must be Connecting, got %s", snap.Connection)
	}
	if !snap.Loading {
		t.Error("initial snapshot must be loading")
	}
	if len(snap.Tasks) != 0 || len(snap.Users) != 0 || snap.Analytics != nil {
		t.Error("initial collections must be empty")
	}
}

func TestStore_SyncSucceededReplacesAtomically(t *testing.T) {
	s := NewStore()
	s.SyncFailed("previous failure")

	tasks := sampleTasks()
	users := sampleUsers()
	s.SyncSucceeded(tasks, users, &models.TaskAnalytics{TotalTasks: 3})

	snap := s.Snapshot()
	if len(snap.Tasks) != 3 || len(snap.Users) != 2 || snap.Analytics == nil {
		t.Fatal("collections not installed")
	}
	if snap.Err != "" {
		t.Errorf("a successful pass must clear the global error, got %q", snap.Err)
	}
	if snap.LastSync.IsZero() {
		t.Error("LastSync not stamped")
	}
	if len(snap.Displayed) != 3 {
		t.Error("displayed view must follow the collection with no query active")
	}
}

func TestStore_SyncSucceededKeepsSearchView(t *testing.T) {
	s := NewStore()
	s.QueryChanged("login")
	s.SearchApplied([]models.Task{{ID: "3", Title: "Fix login bug"}})

	s.SyncSucceeded(sampleTasks(), sampleUsers(), nil)

	snap := s.Snapshot()
	if len(snap.Displayed) != 1 || snap.Displayed[0].ID != "3" {
		t.Fatalf("an active query must keep its search view across a sync, got %v", snap.Displayed)
	}
	if len(snap.Tasks) != 3 {
		t.Error("the underlying collection must still be replaced")
	}
}

func TestStore_SyncStartedLoadingOnlyWhenEmpty(t *testing.T) {
	s := NewStore()
	s.SyncSucceeded(sampleTasks(), sampleUsers(), nil)

	s.SyncStarted()
	if s.Snapshot().Loading {
		t.Error("a refresh over existing data must not re-enter the loading state")
	}
}

func TestStore_SyncFailedPreservesCollections(t *testing.T) {
	s := NewStore()
	s.SyncSucceeded(sampleTasks(), sampleUsers(), nil)

	s.SyncFailed("connection refused")

	snap := s.Snapshot()
	if len(snap.Tasks) != 3 || len(snap.Users) != 2 {
		t.Fatal("a failed pass must not clear collections")
	}
	if snap.Err != "connection refused" {
		t.Errorf("expected the failure message, got %q", snap.Err)
	}
	if snap.Loading {
		t.Error("loading flag must clear on failure")
	}
}

func TestStore_MutationFlags(t *testing.T) {
	s := NewStore()

	s.MutationStarted()
	if !s.Snapshot().Mutating {
		t.Fatal("busy flag not set")
	}

	s.MutationFailed("title already taken")
	snap := s.Snapshot()
	if snap.Mutating {
		t.Error("busy flag not cleared on failure")
	}
	if snap.Err != "title already taken" {
		t.Errorf("expected the failure message, got %q", snap.Err)
	}

	s.MutationStarted()
	s.MutationSucceeded()
	if s.Snapshot().Mutating {
		t.Error("busy flag not cleared on success")
	}
}

func TestStore_SubscribeDeliversCurrentAndLatest(t *testing.T) {
	s := NewStore()
	ch := s.Subscribe()

	first := <-ch
	if first.Connection != StateConnecting {
		t.Fatalf("subscription must start with the current snapshot, got %s", first.Connection)
	}

	// Several transitions while the subscriber lags: only the newest
	// undelivered snapshot survives.
	s.ConnectionChanged(StateConnected, "")
	s.QueryChanged("a")
	s.QueryChanged("ab")

	latest := <-ch
	if latest.Query != "ab" {
		t.Fatalf("lagging subscriber must see the latest snapshot, got query %q", latest.Query)
	}
	select {
	case extra := <-ch:
		t.Fatalf("no further snapshot expected, got query %q", extra.Query)
	default:
	}
}

func TestStore_TasksReloadedResetsView(t *testing.T) {
	s := NewStore()
	s.SyncSucceeded(sampleTasks(), sampleUsers(), nil)
	s.QueryChanged("login")
	s.SearchApplied([]models.Task{{ID: "3"}})

	s.QueryChanged("")
	fresh := []models.Task{{ID: "9", Title: "fresh"}}
	s.TasksReloaded(fresh)

	snap := s.Snapshot()
	if len(snap.Displayed) != 1 || snap.Displayed[0].ID != "9" {
		t.Fatalf("reload must reset the view, got %v", snap.Displayed)
	}
	if len(snap.Users) != 2 {
		t.Error("users must be untouched by a task reload")
	}
}
