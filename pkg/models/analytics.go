package models

import "time"

// TaskAnalytics is an aggregated snapshot computed by the remote service over
// a trailing time window. It is advisory: its absence never blocks the task
// and user views.
type TaskAnalytics struct {
	TotalTasks                 int32                `json:"total_tasks" yaml:"total_tasks"`
	CompletedTasks             int32                `json:"completed_tasks" yaml:"completed_tasks"`
	InProgressTasks            int32                `json:"in_progress_tasks" yaml:"in_progress_tasks"`
	TodoTasks                  int32                `json:"todo_tasks" yaml:"todo_tasks"`
	CompletionRate             float64              `json:"completion_rate" yaml:"completion_rate"`
	AverageCompletionTimeHours float64              `json:"average_completion_time_hours" yaml:"average_completion_time_hours"`
	OverdueTasks               int32                `json:"overdue_tasks" yaml:"overdue_tasks"`
	TasksByPriority            map[TaskPriority]int `json:"tasks_by_priority,omitempty" yaml:"tasks_by_priority,omitempty"`
	TasksCreatedThisWeek       int32                `json:"tasks_created_this_week" yaml:"tasks_created_this_week"`
	TasksCompletedThisWeek     int32                `json:"tasks_completed_this_week" yaml:"tasks_completed_this_week"`
	GeneratedAt                time.Time            `json:"generated_at" yaml:"generated_at"`
}
