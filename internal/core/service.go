// Package core implements the data-orchestration layer of the client:
// connection monitoring, coordinated multi-resource synchronization,
// debounced search, local filtering, and the write-then-reconcile mutation
// pipeline. It owns the snapshot store every UI surface subscribes to.
package core

import (
	"context"
	"time"

	"github.com/a1mart/tasker/internal/transport"
)

// TaskService is the subset of the transport client the core depends on.
// Defining it here keeps core independent of the transport wiring and lets
// tests substitute an in-memory fake.
type TaskService interface {
	Health(ctx context.Context) (*transport.HealthResponse, error)
	ListTasks(ctx context.Context, pageSize int32) (*transport.ListTasksResponse, error)
	GetTask(ctx context.Context, id string) (*transport.GetTaskResponse, error)
	SearchTasks(ctx context.Context, query string, pageSize int32) (*transport.SearchTasksResponse, error)
	GetTaskAnalytics(ctx context.Context, start, end time.Time, groupBy string) (*transport.AnalyticsResponse, error)
	ListUsers(ctx context.Context, pageSize int32, activeOnly bool) (*transport.ListUsersResponse, error)
	CreateTask(ctx context.Context, req transport.CreateTaskRequest) (*transport.MutationResult, error)
	UpdateTask(ctx context.Context, id string, patch transport.TaskPatch, updateMask []string) (*transport.MutationResult, error)
	DeleteTask(ctx context.Context, id string, force bool) (*transport.MutationResult, error)
	CreateUser(ctx context.Context, req transport.CreateUserRequest) (*transport.MutationResult, error)
	UpdateUser(ctx context.Context, id string, patch transport.UserPatch, updateMask []string) (*transport.MutationResult, error)
	DeleteUser(ctx context.Context, id string, force bool) (*transport.MutationResult, error)
}
