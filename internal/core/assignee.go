package core

import "github.com/a1mart/tasker/pkg/models"

// ResolveAssignee finds the user a task's AssignedTo field refers to.
// Tasks reference users by username, a denormalized key, so resolution is
// a scan of the user collection rather than an ID lookup. Returns nil for
// an empty username or when no user matches.
func ResolveAssignee(users []models.User, username string) *models.User {
	if username == "" {
		return nil
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i]
		}
	}
	return nil
}
