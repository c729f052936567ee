package core

import (
	"strings"

	"github.com/a1mart/tasker/pkg/models"
)

// UnassignedToken is the reserved assignee token that matches tasks with no
// assignee.
const UnassignedToken = "unassigned"

// TaskFilter combines the three local filter dimensions. An empty set for a
// dimension places no restriction on that dimension.
type TaskFilter struct {
	Statuses  []models.TaskStatus
	Assignees []string
	Query     string
}

// Empty reports whether the filter restricts nothing.
func (f TaskFilter) Empty() bool {
	return len(f.Statuses) == 0 && len(f.Assignees) == 0 && strings.TrimSpace(f.Query) == ""
}

// FilterTasks returns the ordered subsequence of tasks satisfying all three
// predicates conjunctively: any selected status AND any selected assignee
// AND a case-insensitive substring match of the query against title or
// description. The input is never modified and relative order is preserved,
// so applying the same filter twice yields identical output.
func FilterTasks(tasks []models.Task, f TaskFilter) []models.Task {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !matchStatus(t, f.Statuses) {
			continue
		}
		if !matchAssignee(t, f.Assignees) {
			continue
		}
		if !matchQuery(t, query) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchStatus(t models.Task, statuses []models.TaskStatus) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, s := range statuses {
		if t.Status == s {
			return true
		}
	}
	return false
}

func matchAssignee(t models.Task, assignees []string) bool {
	if len(assignees) == 0 {
		return true
	}
	for _, a := range assignees {
		if a == UnassignedToken {
			if !t.Assigned() {
				return true
			}
			continue
		}
		if t.AssignedTo == a {
			return true
		}
	}
	return false
}

func matchQuery(t models.Task, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), query) ||
		strings.Contains(strings.ToLower(t.Description), query)
}
