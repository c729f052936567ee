package models

import "fmt"

// Enumerations are transmitted on the wire as small non-negative integers.
// Each set is closed: an unrecognized wire value decodes to the Unknown
// variant instead of failing, so a newer server cannot break list rendering
// or filtering in an older client.

// TaskStatus represents the lifecycle state of a task.
type TaskStatus int32

const (
	TaskStatusUnknown TaskStatus = iota
	TaskStatusTodo
	TaskStatusInProgress
	TaskStatusReview
	TaskStatusDone
	TaskStatusCancelled
)

var taskStatusLabels = map[TaskStatus]string{
	TaskStatusUnknown:    "UNKNOWN",
	TaskStatusTodo:       "TODO",
	TaskStatusInProgress: "IN_PROGRESS",
	TaskStatusReview:     "REVIEW",
	TaskStatusDone:       "DONE",
	TaskStatusCancelled:  "CANCELLED",
}

// TaskStatusFromWire maps a wire integer to a TaskStatus, degrading
// unrecognized values to TaskStatusUnknown.
func TaskStatusFromWire(v int32) TaskStatus {
	s := TaskStatus(v)
	if _, ok := taskStatusLabels[s]; !ok {
		return TaskStatusUnknown
	}
	return s
}

// ParseTaskStatus converts a label such as "IN_PROGRESS" back to its
// TaskStatus. Unrecognized labels are an error so CLI flags fail loudly.
func ParseTaskStatus(label string) (TaskStatus, error) {
	for s, l := range taskStatusLabels {
		if l == label && s != TaskStatusUnknown {
			return s, nil
		}
	}
	return TaskStatusUnknown, fmt.Errorf("unknown task status %q", label)
}

func (s TaskStatus) String() string {
	if l, ok := taskStatusLabels[s]; ok {
		return l
	}
	return taskStatusLabels[TaskStatusUnknown]
}

// MarshalYAML renders the label instead of the wire integer in exports.
func (s TaskStatus) MarshalYAML() (any, error) { return s.String(), nil }

// TaskPriority represents the urgency level of a task.
type TaskPriority int32

const (
	TaskPriorityUnknown TaskPriority = iota
	TaskPriorityLow
	TaskPriorityMedium
	TaskPriorityHigh
	TaskPriorityCritical
)

var taskPriorityLabels = map[TaskPriority]string{
	TaskPriorityUnknown:  "UNKNOWN",
	TaskPriorityLow:      "LOW",
	TaskPriorityMedium:   "MEDIUM",
	TaskPriorityHigh:     "HIGH",
	TaskPriorityCritical: "CRITICAL",
}

// TaskPriorityFromWire maps a wire integer to a TaskPriority, degrading
// unrecognized values to TaskPriorityUnknown.
func TaskPriorityFromWire(v int32) TaskPriority {
	p := TaskPriority(v)
	if _, ok := taskPriorityLabels[p]; !ok {
		return TaskPriorityUnknown
	}
	return p
}

// ParseTaskPriority converts a label such as "HIGH" back to its TaskPriority.
func ParseTaskPriority(label string) (TaskPriority, error) {
	for p, l := range taskPriorityLabels {
		if l == label && p != TaskPriorityUnknown {
			return p, nil
		}
	}
	return TaskPriorityUnknown, fmt.Errorf("unknown task priority %q", label)
}

func (p TaskPriority) String() string {
	if l, ok := taskPriorityLabels[p]; ok {
		return l
	}
	return taskPriorityLabels[TaskPriorityUnknown]
}

// MarshalYAML renders the label instead of the wire integer in exports.
func (p TaskPriority) MarshalYAML() (any, error) { return p.String(), nil }

// UserRole represents a user's permission level.
type UserRole int32

const (
	UserRoleUnknown UserRole = iota
	UserRoleViewer
	UserRoleMember
	UserRoleAdmin
)

var userRoleLabels = map[UserRole]string{
	UserRoleUnknown: "UNKNOWN",
	UserRoleViewer:  "VIEWER",
	UserRoleMember:  "MEMBER",
	UserRoleAdmin:   "ADMIN",
}

// UserRoleFromWire maps a wire integer to a UserRole, degrading
// unrecognized values to UserRoleUnknown.
func UserRoleFromWire(v int32) UserRole {
	r := UserRole(v)
	if _, ok := userRoleLabels[r]; !ok {
		return UserRoleUnknown
	}
	return r
}

// ParseUserRole converts a label such as "ADMIN" back to its UserRole.
func ParseUserRole(label string) (UserRole, error) {
	for r, l := range userRoleLabels {
		if l == label && r != UserRoleUnknown {
			return r, nil
		}
	}
	return UserRoleUnknown, fmt.Errorf("unknown user role %q", label)
}

func (r UserRole) String() string {
	if l, ok := userRoleLabels[r]; ok {
		return l
	}
	return userRoleLabels[UserRoleUnknown]
}

// MarshalYAML renders the label instead of the wire integer in exports.
func (r UserRole) MarshalYAML() (any, error) { return r.String(), nil }

// UserStatus represents whether a user account is usable.
type UserStatus int32

const (
	UserStatusUnknown UserStatus = iota
	UserStatusActive
	UserStatusInactive
	UserStatusSuspended
)

var userStatusLabels = map[UserStatus]string{
	UserStatusUnknown:   "UNKNOWN",
	UserStatusActive:    "ACTIVE",
	UserStatusInactive:  "INACTIVE",
	UserStatusSuspended: "SUSPENDED",
}

// UserStatusFromWire maps a wire integer to a UserStatus, degrading
// unrecognized values to UserStatusUnknown.
func UserStatusFromWire(v int32) UserStatus {
	s := UserStatus(v)
	if _, ok := userStatusLabels[s]; !ok {
		return UserStatusUnknown
	}
	return s
}

// ParseUserStatus converts a label such as "SUSPENDED" back to its UserStatus.
func ParseUserStatus(label string) (UserStatus, error) {
	for s, l := range userStatusLabels {
		if l == label && s != UserStatusUnknown {
			return s, nil
		}
	}
	return UserStatusUnknown, fmt.Errorf("unknown user status %q", label)
}

func (s UserStatus) String() string {
	if l, ok := userStatusLabels[s]; ok {
		return l
	}
	return userStatusLabels[UserStatusUnknown]
}

// MarshalYAML renders the label instead of the wire integer in exports.
func (s UserStatus) MarshalYAML() (any, error) { return s.String(), nil }
