package transport

import (
	"sort"

	"github.com/a1mart/tasker/pkg/models"
)

// Wire message types for the task service's JSON gateway. Field names match
// the service's serialization; enumerations travel as integers and are
// mapped through the models package so unrecognized values degrade to
// Unknown instead of failing the decode.

// wireTask mirrors the service's Task message.
type wireTask struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Status      int32              `json:"status"`
	Priority    int32              `json:"priority"`
	AssignedTo  string             `json:"assigned_to"`
	Tags        []string           `json:"tags"`
	DueDate     *Timestamp         `json:"due_date,omitempty"`
	CreatedAt   *Timestamp         `json:"created_at,omitempty"`
	UpdatedAt   *Timestamp         `json:"updated_at,omitempty"`
	Metrics     *wireTaskMetrics   `json:"metrics,omitempty"`
}

type wireTaskMetrics struct {
	EstimatedHours       int32   `json:"estimated_hours"`
	ActualHours          int32   `json:"actual_hours"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

func (w wireTask) toModel() models.Task {
	t := models.Task{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Status:      models.TaskStatusFromWire(w.Status),
		Priority:    models.TaskPriorityFromWire(w.Priority),
		AssignedTo:  w.AssignedTo,
		Tags:        w.Tags,
	}
	if w.DueDate != nil {
		due := w.DueDate.Time()
		t.DueDate = &due
	}
	if w.CreatedAt != nil {
		t.CreatedAt = w.CreatedAt.Time()
	}
	if w.UpdatedAt != nil {
		t.UpdatedAt = w.UpdatedAt.Time()
	}
	if w.Metrics != nil {
		t.Metrics = &models.TaskMetrics{
			EstimatedHours:       w.Metrics.EstimatedHours,
			ActualHours:          w.Metrics.ActualHours,
			CompletionPercentage: w.Metrics.CompletionPercentage,
		}
	}
	return t
}

func tasksToModel(ws []wireTask) []models.Task {
	tasks := make([]models.Task, len(ws))
	for i, w := range ws {
		tasks[i] = w.toModel()
	}
	// The gateway does not honor a sort parameter; creation-time ascending
	// is the ordering every view expects, so it is applied here.
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks
}

// wireUser mirrors the service's User message.
type wireUser struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	FullName  string     `json:"full_name"`
	Email     string     `json:"email"`
	Role      int32      `json:"role"`
	Status    int32      `json:"status"`
	CreatedAt *Timestamp `json:"created_at,omitempty"`
}

func (w wireUser) toModel() models.User {
	u := models.User{
		ID:       w.ID,
		Username: w.Username,
		FullName: w.FullName,
		Email:    w.Email,
		Role:     models.UserRoleFromWire(w.Role),
		Status:   models.UserStatusFromWire(w.Status),
	}
	if w.CreatedAt != nil {
		u.CreatedAt = w.CreatedAt.Time()
	}
	return u
}

type wireAnalytics struct {
	TotalTasks                 int32           `json:"total_tasks"`
	CompletedTasks             int32           `json:"completed_tasks"`
	InProgressTasks            int32           `json:"in_progress_tasks"`
	TodoTasks                  int32           `json:"todo_tasks"`
	CompletionRate             float64         `json:"completion_rate"`
	AverageCompletionTimeHours float64         `json:"average_completion_time_hours"`
	OverdueTasks               int32           `json:"overdue_tasks"`
	TasksByPriority            map[string]int  `json:"tasks_by_priority"`
	TasksCreatedThisWeek       int32           `json:"tasks_created_this_week"`
	TasksCompletedThisWeek     int32           `json:"tasks_completed_this_week"`
}

// ListTasksResponse is the result of a bounded task listing.
type ListTasksResponse struct {
	Tasks         []models.Task
	NextPageToken string
	TotalCount    int32
}

type listTasksWire struct {
	Tasks         []wireTask `json:"tasks"`
	NextPageToken string     `json:"next_page_token"`
	TotalCount    int32      `json:"total_count"`
}

// GetTaskResponse is the result of a single-task fetch.
type GetTaskResponse struct {
	Task  *models.Task
	Found bool
}

type getTaskWire struct {
	Task  *wireTask `json:"task"`
	Found bool      `json:"found"`
}

// SearchTasksResponse is the result of a free-text search.
type SearchTasksResponse struct {
	Tasks        []models.Task
	TotalCount   int32
	SearchTimeMs int64
}

type searchTasksWire struct {
	Tasks        []wireTask `json:"tasks"`
	TotalCount   int32      `json:"total_count"`
	SearchTimeMs int64      `json:"search_time_ms"`
}

type searchTasksRequestWire struct {
	Query    string `json:"query"`
	PageSize int32  `json:"page_size"`
}

// AnalyticsResponse is the result of an analytics fetch.
type AnalyticsResponse struct {
	Analytics   *models.TaskAnalytics
	GeneratedAt Timestamp
}

type analyticsWire struct {
	Analytics   *wireAnalytics `json:"analytics"`
	GeneratedAt *Timestamp     `json:"generated_at,omitempty"`
}

// ListUsersResponse is the result of a bounded user listing.
type ListUsersResponse struct {
	Users         []models.User
	NextPageToken string
	TotalCount    int32
}

type listUsersWire struct {
	Users         []wireUser `json:"users"`
	NextPageToken string     `json:"next_page_token"`
	TotalCount    int32      `json:"total_count"`
}

// HealthResponse is the result of the service health probe.
type HealthResponse struct {
	Healthy   bool       `json:"healthy"`
	Version   string     `json:"version"`
	Timestamp *Timestamp `json:"timestamp,omitempty"`
}

// MutationResult is the common shape of create/update/delete responses.
// Success may be false on a structurally successful response; callers must
// check it rather than rely on the transport error alone.
type MutationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CreateTaskRequest carries the client-supplied fields of a new task.
// The service assigns the ID, status, and timestamps.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    int32      `json:"priority"`
	AssignedTo  string     `json:"assigned_to"`
	Tags        []string   `json:"tags"`
	DueDate     *Timestamp `json:"due_date,omitempty"`
}

// TaskPatch carries the updatable fields of a task. Only fields named in
// the accompanying update mask are applied by the service.
type TaskPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *int32     `json:"status,omitempty"`
	Priority    *int32     `json:"priority,omitempty"`
	AssignedTo  *string    `json:"assigned_to,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	DueDate     *Timestamp `json:"due_date,omitempty"`
}

type updateTaskRequestWire struct {
	Task       TaskPatch `json:"task"`
	UpdateMask []string  `json:"update_mask"`
}

// CreateUserRequest carries the client-supplied fields of a new user.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     int32  `json:"role"`
}

// UserPatch carries the updatable fields of a user. Username is immutable
// and therefore absent.
type UserPatch struct {
	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     *int32  `json:"role,omitempty"`
	Status   *int32  `json:"status,omitempty"`
}

type updateUserRequestWire struct {
	User       UserPatch `json:"user"`
	UpdateMask []string  `json:"update_mask"`
}
