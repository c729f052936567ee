// Package models defines the domain types shared by the transport layer,
// the orchestration core, and the presentation surfaces.
package models

import "time"

// Task represents a unit of work owned by the remote service. IDs and the
// created/updated instants are server-assigned; the client never originates
// either.
type Task struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Status      TaskStatus   `json:"status" yaml:"status"`
	Priority    TaskPriority `json:"priority" yaml:"priority"`
	// AssignedTo holds the assignee's username, not their user ID.
	// Empty means unassigned.
	AssignedTo string       `json:"assigned_to" yaml:"assigned_to"`
	Tags       []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
	DueDate    *time.Time   `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	CreatedAt  time.Time    `json:"created_at" yaml:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at" yaml:"updated_at"`
	Metrics    *TaskMetrics `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// TaskMetrics carries per-task effort tracking.
// CompletionPercentage is a value in [0, 100].
type TaskMetrics struct {
	EstimatedHours       int32   `json:"estimated_hours" yaml:"estimated_hours"`
	ActualHours          int32   `json:"actual_hours" yaml:"actual_hours"`
	CompletionPercentage float64 `json:"completion_percentage" yaml:"completion_percentage"`
}

// Assigned reports whether the task has an assignee.
func (t *Task) Assigned() bool {
	return t.AssignedTo != ""
}
