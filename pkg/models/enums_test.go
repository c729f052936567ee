package models

import "testing"

func TestTaskStatusFromWire(t *testing.T) {
	tests := []struct {
		in   int32
		want TaskStatus
	}{
		{1, TaskStatusTodo},
		{2, TaskStatusInProgress},
		{3, TaskStatusReview},
		{4, TaskStatusDone},
		{5, TaskStatusCancelled},
		{0, TaskStatusUnknown},
		{99, TaskStatusUnknown},
		{-1, TaskStatusUnknown},
	}
	for _, tt := range tests {
		if got := TaskStatusFromWire(tt.in); got != tt.want {
			t.Errorf("TaskStatusFromWire(%d) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseTaskStatus(t *testing.T) {
	s, err := ParseTaskStatus("IN_PROGRESS")
	if err != nil || s != TaskStatusInProgress {
		t.Fatalf("ParseTaskStatus(IN_PROGRESS) = %s, %v", s, err)
	}
	if _, err := ParseTaskStatus("in_progress"); err == nil {
		t.Error("labels are case-sensitive; lowercase must fail")
	}
	if _, err := ParseTaskStatus("UNKNOWN"); err == nil {
		t.Error("the Unknown variant must not be parseable")
	}
	if _, err := ParseTaskStatus("BOGUS"); err == nil {
		t.Error("unrecognized label must fail")
	}
}

func TestEnumStrings(t *testing.T) {
	if got := TaskStatusDone.String(); got != "DONE" {
		t.Errorf("TaskStatusDone = %q", got)
	}
	if got := TaskPriorityCritical.String(); got != "CRITICAL" {
		t.Errorf("TaskPriorityCritical = %q", got)
	}
	if got := UserRoleViewer.String(); got != "VIEWER" {
		t.Errorf("UserRoleViewer = %q", got)
	}
	if got := UserStatusSuspended.String(); got != "SUSPENDED" {
		t.Errorf("UserStatusSuspended = %q", got)
	}
	if got := TaskStatus(42).String(); got != "UNKNOWN" {
		t.Errorf("out-of-range status = %q", got)
	}
}

func TestPriorityAndRoleFromWire(t *testing.T) {
	if got := TaskPriorityFromWire(4); got != TaskPriorityCritical {
		t.Errorf("priority 4 = %s", got)
	}
	if got := TaskPriorityFromWire(7); got != TaskPriorityUnknown {
		t.Errorf("priority 7 must degrade, got %s", got)
	}
	if got := UserRoleFromWire(2); got != UserRoleMember {
		t.Errorf("role 2 = %s", got)
	}
	if got := UserStatusFromWire(3); got != UserStatusSuspended {
		t.Errorf("user status 3 = %s", got)
	}
	if got := UserStatusFromWire(9); got != UserStatusUnknown {
		t.Errorf("user status 9 must degrade, got %s", got)
	}
}

func TestEnumYAMLMarshalling(t *testing.T) {
	v, err := TaskStatusReview.MarshalYAML()
	if err != nil || v != "REVIEW" {
		t.Fatalf("MarshalYAML = %v, %v", v, err)
	}
	v, err = TaskPriorityLow.MarshalYAML()
	if err != nil || v != "LOW" {
		t.Fatalf("MarshalYAML = %v, %v", v, err)
	}
}
