package core

import (
	"context"
	"fmt"
	"time"

	"github.com/a1mart/tasker/internal/observability"
	"github.com/a1mart/tasker/internal/transport"
	"github.com/a1mart/tasker/pkg/models"
)

// MutationPipeline wraps every create, update, and delete. Each operation
// follows the same protocol: reject immediately unless Connected, set the
// busy flag, issue the write, treat a success=false response as an
// OperationError, and on success reload all collections through the
// synchronizer rather than patching local state. The full reload costs an
// extra round trip per write but removes the whole class of
// optimistic-update divergence bugs.
type MutationPipeline struct {
	svc     TaskService
	monitor ConnectionMonitor
	store   *Store
	syncer  DataSynchronizer
	events  observability.EventLog
}

// NewMutationPipeline creates a MutationPipeline. events may be nil.
func NewMutationPipeline(svc TaskService, monitor ConnectionMonitor, store *Store, syncer DataSynchronizer, events observability.EventLog) *MutationPipeline {
	return &MutationPipeline{
		svc:     svc,
		monitor: monitor,
		store:   store,
		syncer:  syncer,
		events:  events,
	}
}

// CreateTaskInput carries the client-supplied fields of a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	AssignedTo  string
	Tags        []string
	DueDate     *time.Time
}

// TaskUpdate is a partial task update. Only non-nil fields are sent, each
// named in the update mask so the service leaves everything else untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
	AssignedTo  *string
	Tags        []string
	DueDate     *time.Time
}

// UserUpdate is a partial user update. Username is immutable and therefore
// absent.
type UserUpdate struct {
	FullName *string
	Email    *string
	Role     *models.UserRole
	Status   *models.UserStatus
}

// CreateUserInput carries the client-supplied fields of a new user.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Role     models.UserRole
}

// CreateTask submits a new task and reconciles on success.
func (p *MutationPipeline) CreateTask(ctx context.Context, in CreateTaskInput) error {
	if in.Title == "" {
		return &OperationError{Op: "create task", Message: "title must not be empty"}
	}
	return p.run(ctx, "create task", func(ctx context.Context) (*transport.MutationResult, error) {
		req := transport.CreateTaskRequest{
			Title:       in.Title,
			Description: in.Description,
			Priority:    int32(in.Priority),
			AssignedTo:  in.AssignedTo,
			Tags:        in.Tags,
		}
		if in.DueDate != nil {
			ts := transport.NewTimestamp(*in.DueDate)
			req.DueDate = &ts
		}
		return p.svc.CreateTask(ctx, req)
	})
}

// UpdateTask submits a partial task update. Status-only updates, such as
// dragging a task to a new column, go through this same path with a
// single-field payload.
func (p *MutationPipeline) UpdateTask(ctx context.Context, id string, upd TaskUpdate) error {
	patch, mask := upd.wire()
	if len(mask) == 0 {
		return &OperationError{Op: "update task", Message: "no fields to update"}
	}
	return p.run(ctx, "update task", func(ctx context.Context) (*transport.MutationResult, error) {
		return p.svc.UpdateTask(ctx, id, patch, mask)
	})
}

// DeleteTask removes a task. Confirmation is the caller's concern; the
// non-forcing flag leaves soft-delete semantics to the service.
func (p *MutationPipeline) DeleteTask(ctx context.Context, id string) error {
	return p.run(ctx, "delete task", func(ctx context.Context) (*transport.MutationResult, error) {
		return p.svc.DeleteTask(ctx, id, false)
	})
}

// CreateUser submits a new user account and reconciles on success.
func (p *MutationPipeline) CreateUser(ctx context.Context, in CreateUserInput) error {
	if in.Username == "" {
		return &OperationError{Op: "create user", Message: "username must not be empty"}
	}
	return p.run(ctx, "create user", func(ctx context.Context) (*transport.MutationResult, error) {
		return p.svc.CreateUser(ctx, transport.CreateUserRequest{
			Username: in.Username,
			Email:    in.Email,
			Password: in.Password,
			FullName: in.FullName,
			Role:     int32(in.Role),
		})
	})
}

// UpdateUser submits a partial user update with an explicit field mask.
func (p *MutationPipeline) UpdateUser(ctx context.Context, id string, upd UserUpdate) error {
	patch, mask := upd.wire()
	if len(mask) == 0 {
		return &OperationError{Op: "update user", Message: "no fields to update"}
	}
	return p.run(ctx, "update user", func(ctx context.Context) (*transport.MutationResult, error) {
		return p.svc.UpdateUser(ctx, id, patch, mask)
	})
}

// DeleteUser removes a user account.
func (p *MutationPipeline) DeleteUser(ctx context.Context, id string) error {
	return p.run(ctx, "delete user", func(ctx context.Context) (*transport.MutationResult, error) {
		return p.svc.DeleteUser(ctx, id, false)
	})
}

// run executes one mutation under the shared protocol. The busy flag is
// cleared on every path, including panics, before the error is reported.
func (p *MutationPipeline) run(ctx context.Context, op string, write func(context.Context) (*transport.MutationResult, error)) (err error) {
	if p.monitor.State() != StateConnected {
		return &ConnectivityError{Op: op, Err: errUnreachable("not connected to the task service")}
	}

	p.store.MutationStarted()
	defer func() {
		if err != nil {
			p.store.MutationFailed(err.Error())
			p.logEvent("ERROR", "mutation.failed", op+": "+err.Error())
		} else {
			p.store.MutationSucceeded()
			p.logEvent("INFO", "mutation.succeeded", op)
		}
	}()

	result, werr := write(ctx)
	if werr != nil {
		return &ConnectivityError{Op: op, Err: werr}
	}
	if !result.Success {
		msg := result.Message
		if msg == "" {
			msg = genericFailureMessage
		}
		return &OperationError{Op: op, Message: msg}
	}

	// Reconcile: fetch fresh authoritative collections instead of
	// mutating the local copy of the affected entity.
	if serr := p.syncer.SyncAll(ctx); serr != nil {
		return fmt.Errorf("%s succeeded but the refresh failed: %w", op, serr)
	}
	return nil
}

func (u TaskUpdate) wire() (transport.TaskPatch, []string) {
	var patch transport.TaskPatch
	var mask []string
	if u.Title != nil {
		patch.Title = u.Title
		mask = append(mask, "title")
	}
	if u.Description != nil {
		patch.Description = u.Description
		mask = append(mask, "description")
	}
	if u.Status != nil {
		v := int32(*u.Status)
		patch.Status = &v
		mask = append(mask, "status")
	}
	if u.Priority != nil {
		v := int32(*u.Priority)
		patch.Priority = &v
		mask = append(mask, "priority")
	}
	if u.AssignedTo != nil {
		patch.AssignedTo = u.AssignedTo
		mask = append(mask, "assigned_to")
	}
	if u.Tags != nil {
		patch.Tags = u.Tags
		mask = append(mask, "tags")
	}
	if u.DueDate != nil {
		ts := transport.NewTimestamp(*u.DueDate)
		patch.DueDate = &ts
		mask = append(mask, "due_date")
	}
	return patch, mask
}

func (u UserUpdate) wire() (transport.UserPatch, []string) {
	var patch transport.UserPatch
	var mask []string
	if u.FullName != nil {
		patch.FullName = u.FullName
		mask = append(mask, "full_name")
	}
	if u.Email != nil {
		patch.Email = u.Email
		mask = append(mask, "email")
	}
	if u.Role != nil {
		v := int32(*u.Role)
		patch.Role = &v
		mask = append(mask, "role")
	}
	if u.Status != nil {
		v := int32(*u.Status)
		patch.Status = &v
		mask = append(mask, "status")
	}
	return patch, mask
}

func (p *MutationPipeline) logEvent(level, typ, msg string) {
	if p.events == nil {
		return
	}
	_ = p.events.Write(observability.Event{Level: level, Type: typ, Message: msg})
}
