// Package transport implements the JSON gateway client for the remote task
// and user service, including the wire timestamp codec and enum mapping.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/a1mart/tasker/pkg/models"
)

// Client talks to the task service's HTTP JSON gateway. All calls are
// bounded request/response exchanges; the caller's context controls
// cancellation on top of the client-wide timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the gateway at baseURL (for example
// "http://localhost:3001"). timeout bounds every request end to end.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Health issues the service health probe.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("health probe: %w", err)
	}
	return &out, nil
}

// ListTasks fetches one page of tasks, ordered by creation time ascending.
func (c *Client) ListTasks(ctx context.Context, pageSize int32) (*ListTasksResponse, error) {
	q := url.Values{"page_size": {strconv.Itoa(int(pageSize))}}
	var raw listTasksWire
	if err := c.do(ctx, http.MethodGet, "/api/tasks", q, nil, &raw); err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return &ListTasksResponse{
		Tasks:         tasksToModel(raw.Tasks),
		NextPageToken: raw.NextPageToken,
		TotalCount:    raw.TotalCount,
	}, nil
}

// GetTask fetches a single task by ID. Found is false when the service has
// no task with that ID; that is not a transport error.
func (c *Client) GetTask(ctx context.Context, id string) (*GetTaskResponse, error) {
	var raw getTaskWire
	if err := c.do(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(id), nil, nil, &raw); err != nil {
		return nil, fmt.Errorf("getting task %s: %w", id, err)
	}
	out := &GetTaskResponse{Found: raw.Found}
	if raw.Task != nil {
		t := raw.Task.toModel()
		out.Task = &t
	}
	return out, nil
}

// SearchTasks runs a free-text search over task titles and descriptions.
func (c *Client) SearchTasks(ctx context.Context, query string, pageSize int32) (*SearchTasksResponse, error) {
	body := searchTasksRequestWire{Query: query, PageSize: pageSize}
	var raw searchTasksWire
	if err := c.do(ctx, http.MethodPost, "/api/tasks/search", nil, body, &raw); err != nil {
		return nil, fmt.Errorf("searching tasks: %w", err)
	}
	return &SearchTasksResponse{
		Tasks:        tasksToModel(raw.Tasks),
		TotalCount:   raw.TotalCount,
		SearchTimeMs: raw.SearchTimeMs,
	}, nil
}

// GetTaskAnalytics fetches the aggregated snapshot for the window
// [start, end], grouped by the given dimension.
func (c *Client) GetTaskAnalytics(ctx context.Context, start, end time.Time, groupBy string) (*AnalyticsResponse, error) {
	startTS := NewTimestamp(start)
	endTS := NewTimestamp(end)
	q := url.Values{
		"start_seconds": {strconv.FormatInt(startTS.Seconds, 10)},
		"start_nanos":   {strconv.FormatInt(int64(startTS.Nanos), 10)},
		"end_seconds":   {strconv.FormatInt(endTS.Seconds, 10)},
		"end_nanos":     {strconv.FormatInt(int64(endTS.Nanos), 10)},
		"group_by":      {groupBy},
	}
	var raw analyticsWire
	if err := c.do(ctx, http.MethodGet, "/api/tasks/analytics", q, nil, &raw); err != nil {
		return nil, fmt.Errorf("fetching analytics: %w", err)
	}

	out := &AnalyticsResponse{}
	if raw.GeneratedAt != nil {
		out.GeneratedAt = *raw.GeneratedAt
	}
	if raw.Analytics != nil {
		a := &models.TaskAnalytics{
			TotalTasks:                 raw.Analytics.TotalTasks,
			CompletedTasks:             raw.Analytics.CompletedTasks,
			InProgressTasks:            raw.Analytics.InProgressTasks,
			TodoTasks:                  raw.Analytics.TodoTasks,
			CompletionRate:             raw.Analytics.CompletionRate,
			AverageCompletionTimeHours: raw.Analytics.AverageCompletionTimeHours,
			OverdueTasks:               raw.Analytics.OverdueTasks,
			TasksCreatedThisWeek:       raw.Analytics.TasksCreatedThisWeek,
			TasksCompletedThisWeek:     raw.Analytics.TasksCompletedThisWeek,
		}
		if raw.GeneratedAt != nil {
			a.GeneratedAt = raw.GeneratedAt.Time()
		}
		if len(raw.Analytics.TasksByPriority) > 0 {
			a.TasksByPriority = make(map[models.TaskPriority]int, len(raw.Analytics.TasksByPriority))
			for k, v := range raw.Analytics.TasksByPriority {
				// Priority buckets are keyed by the wire integer.
				n, err := strconv.ParseInt(k, 10, 32)
				if err != nil {
					continue
				}
				a.TasksByPriority[models.TaskPriorityFromWire(int32(n))] = v
			}
		}
		out.Analytics = a
	}
	return out, nil
}

// CreateTask submits a new task.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*MutationResult, error) {
	var out MutationResult
	if err := c.do(ctx, http.MethodPost, "/api/tasks", nil, req, &out); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return &out, nil
}

// UpdateTask submits a partial update; only fields named in updateMask are
// applied by the service.
func (c *Client) UpdateTask(ctx context.Context, id string, patch TaskPatch, updateMask []string) (*MutationResult, error) {
	body := updateTaskRequestWire{Task: patch, UpdateMask: updateMask}
	var out MutationResult
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id), nil, body, &out); err != nil {
		return nil, fmt.Errorf("updating task %s: %w", id, err)
	}
	return &out, nil
}

// DeleteTask removes a task. force is passed through to the service, which
// owns the soft-delete semantics.
func (c *Client) DeleteTask(ctx context.Context, id string, force bool) (*MutationResult, error) {
	q := url.Values{"force": {strconv.FormatBool(force)}}
	var out MutationResult
	if err := c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), q, nil, &out); err != nil {
		return nil, fmt.Errorf("deleting task %s: %w", id, err)
	}
	return &out, nil
}

// ListUsers fetches one page of users. activeOnly false includes inactive
// and suspended accounts.
func (c *Client) ListUsers(ctx context.Context, pageSize int32, activeOnly bool) (*ListUsersResponse, error) {
	q := url.Values{
		"page_size":   {strconv.Itoa(int(pageSize))},
		"active_only": {strconv.FormatBool(activeOnly)},
	}
	var raw listUsersWire
	if err := c.do(ctx, http.MethodGet, "/api/users", q, nil, &raw); err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	users := make([]models.User, len(raw.Users))
	for i, w := range raw.Users {
		users[i] = w.toModel()
	}
	return &ListUsersResponse{
		Users:         users,
		NextPageToken: raw.NextPageToken,
		TotalCount:    raw.TotalCount,
	}, nil
}

// CreateUser submits a new user account.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*MutationResult, error) {
	var out MutationResult
	if err := c.do(ctx, http.MethodPost, "/api/users", nil, req, &out); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return &out, nil
}

// UpdateUser submits a partial user update with an explicit field mask.
func (c *Client) UpdateUser(ctx context.Context, id string, patch UserPatch, updateMask []string) (*MutationResult, error) {
	body := updateUserRequestWire{User: patch, UpdateMask: updateMask}
	var out MutationResult
	if err := c.do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id), nil, body, &out); err != nil {
		return nil, fmt.Errorf("updating user %s: %w", id, err)
	}
	return &out, nil
}

// DeleteUser removes a user account.
func (c *Client) DeleteUser(ctx context.Context, id string, force bool) (*MutationResult, error) {
	q := url.Values{"force": {strconv.FormatBool(force)}}
	var out MutationResult
	if err := c.do(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(id), q, nil, &out); err != nil {
		return nil, fmt.Errorf("deleting user %s: %w", id, err)
	}
	return &out, nil
}

// do issues one request and decodes the JSON response into out. A non-2xx
// status is an error carrying the response body, which the gateway uses for
// its error text.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(data)
		if len(msg) > 200 {
			msg = msg[:200]
		}
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
