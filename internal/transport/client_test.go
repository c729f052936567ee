package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/a1mart/tasker/pkg/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second)
}

func TestClient_ListTasks(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tasks" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("page_size"); got != "100" {
			t.Errorf("page_size not forwarded, got %q", got)
		}
		// Returned out of creation order; the client sorts.
		w.Write([]byte(`{
			"tasks": [
				{"id":"b","title":"Second","status":1,"priority":2,"created_at":{"seconds":200,"nanos":0}},
				{"id":"a","title":"First","status":4,"priority":3,"created_at":{"seconds":100,"nanos":0}}
			],
			"next_page_token":"tok",
			"total_count":2
		}`))
	})

	resp, err := c.ListTasks(context.Background(), 100)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(resp.Tasks) != 2 || resp.Tasks[0].ID != "a" || resp.Tasks[1].ID != "b" {
		t.Fatalf("tasks must be ordered by creation time ascending, got %v", resp.Tasks)
	}
	if resp.Tasks[0].Status != models.TaskStatusDone || resp.Tasks[1].Status != models.TaskStatusTodo {
		t.Error("status enums not mapped")
	}
	if resp.NextPageToken != "tok" || resp.TotalCount != 2 {
		t.Error("paging metadata not carried")
	}
}

func TestClient_UnknownEnumDegrades(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tasks":[{"id":"x","title":"t","status":99,"priority":-3}],"total_count":1}`))
	})

	resp, err := c.ListTasks(context.Background(), 10)
	if err != nil {
		t.Fatalf("an unrecognized enum must not fail the decode: %v", err)
	}
	if resp.Tasks[0].Status != models.TaskStatusUnknown {
		t.Errorf("status 99 must degrade to Unknown, got %s", resp.Tasks[0].Status)
	}
	if resp.Tasks[0].Priority != models.TaskPriorityUnknown {
		t.Errorf("priority -3 must degrade to Unknown, got %s", resp.Tasks[0].Priority)
	}
}

func TestClient_SearchTasksIsPost(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/tasks/search" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var req searchTasksRequestWire
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req.Query != "login" || req.PageSize != 50 {
			t.Errorf("unexpected request %+v", req)
		}
		w.Write([]byte(`{"tasks":[{"id":"3","title":"Fix login bug","status":2}],"total_count":1,"search_time_ms":7}`))
	})

	resp, err := c.SearchTasks(context.Background(), "login", 50)
	if err != nil {
		t.Fatalf("SearchTasks failed: %v", err)
	}
	if len(resp.Tasks) != 1 || resp.Tasks[0].ID != "3" {
		t.Fatalf("unexpected results %v", resp.Tasks)
	}
	if resp.SearchTimeMs != 7 {
		t.Errorf("search timing not carried, got %d", resp.SearchTimeMs)
	}
}

func TestClient_GetTaskNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"task":null,"found":false}`))
	})

	resp, err := c.GetTask(context.Background(), "missing")
	if err != nil {
		t.Fatalf("a found=false response is not a transport error: %v", err)
	}
	if resp.Found || resp.Task != nil {
		t.Errorf("expected not-found, got %+v", resp)
	}
}

func TestClient_UpdateTaskBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/tasks/t1" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var req updateTaskRequestWire
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req.Task.Status == nil || *req.Task.Status != 4 {
			t.Errorf("status not carried: %+v", req.Task)
		}
		if len(req.UpdateMask) != 1 || req.UpdateMask[0] != "status" {
			t.Errorf("unexpected mask %v", req.UpdateMask)
		}
		w.Write([]byte(`{"success":true,"message":"updated"}`))
	})

	status := int32(4)
	result, err := c.UpdateTask(context.Background(), "t1", TaskPatch{Status: &status}, []string{"status"})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if !result.Success || result.Message != "updated" {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestClient_MutationFailurePassthrough(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"task has dependents"}`))
	})

	result, err := c.DeleteTask(context.Background(), "t1", false)
	if err != nil {
		t.Fatalf("a success=false body is not a transport error: %v", err)
	}
	if result.Success || result.Message != "task has dependents" {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestClient_NonSuccessStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})

	if _, err := c.ListTasks(context.Background(), 10); err == nil {
		t.Fatal("expected an error for a 500 response")
	}
}

func TestClient_ListUsersForwardsFlags(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("active_only") != "true" || q.Get("page_size") != "20" {
			t.Errorf("query not forwarded: %v", q)
		}
		w.Write([]byte(`{"users":[{"id":"u1","username":"alice","full_name":"Alice Jones","role":3,"status":1}],"total_count":1}`))
	})

	resp, err := c.ListUsers(context.Background(), 20, true)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(resp.Users) != 1 || resp.Users[0].Role != models.UserRoleAdmin {
		t.Fatalf("unexpected users %v", resp.Users)
	}
}

func TestClient_AnalyticsQueryAndDecode(t *testing.T) {
	start := time.Unix(1_000, 0).UTC()
	end := time.Unix(2_000, 0).UTC()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("start_seconds") != "1000" || q.Get("end_seconds") != "2000" {
			t.Errorf("window not forwarded: %v", q)
		}
		if q.Get("group_by") != "priority" {
			t.Errorf("group_by not forwarded: %v", q)
		}
		w.Write([]byte(`{
			"analytics": {
				"total_tasks": 10,
				"completed_tasks": 4,
				"completion_rate": 40.0,
				"tasks_by_priority": {"3": 2, "bogus": 9}
			},
			"generated_at": {"seconds": 1500, "nanos": 0}
		}`))
	})

	resp, err := c.GetTaskAnalytics(context.Background(), start, end, "priority")
	if err != nil {
		t.Fatalf("GetTaskAnalytics failed: %v", err)
	}
	a := resp.Analytics
	if a == nil || a.TotalTasks != 10 || a.CompletionRate != 40.0 {
		t.Fatalf("analytics not decoded: %+v", a)
	}
	if a.TasksByPriority[models.TaskPriorityHigh] != 2 {
		t.Errorf("priority bucket not mapped: %v", a.TasksByPriority)
	}
	if _, ok := a.TasksByPriority[models.TaskPriorityUnknown]; ok {
		t.Error("non-numeric bucket keys must be skipped")
	}
	if !a.GeneratedAt.Equal(time.Unix(1500, 0).UTC()) {
		t.Errorf("generated_at not carried: %v", a.GeneratedAt)
	}
}

func TestClient_HealthProbe(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"healthy":true,"version":"1.4.0"}`))
	})

	resp, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if !resp.Healthy || resp.Version != "1.4.0" {
		t.Errorf("unexpected response %+v", resp)
	}
}
