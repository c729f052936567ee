// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the task client's data core as MCP tools for AI coding assistants. Tools
// go through the same orchestration layer as the CLI, so connectivity
// gating and write-then-reconcile apply to tool calls too.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/a1mart/tasker/internal/core"
	"github.com/a1mart/tasker/pkg/models"
)

// Server wraps the data core and exposes it as MCP tools.
type Server struct {
	server    *gomcp.Server
	store     *core.Store
	monitor   core.ConnectionMonitor
	syncer    core.DataSynchronizer
	mutations *core.MutationPipeline
	svc       core.TaskService
}

// NewServer creates an MCP server over the given core services.
func NewServer(store *core.Store, monitor core.ConnectionMonitor, syncer core.DataSynchronizer, mutations *core.MutationPipeline, svc core.TaskService, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		store:     store,
		monitor:   monitor,
		syncer:    syncer,
		mutations: mutations,
		svc:       svc,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "tasker", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type listTasksInput struct {
	Status   string `json:"status,omitempty" jsonschema:"filter by status (TODO, IN_PROGRESS, REVIEW, DONE, CANCELLED)"`
	Assignee string `json:"assignee,omitempty" jsonschema:"filter by assignee username; 'unassigned' matches tasks without one"`
	Query    string `json:"query,omitempty" jsonschema:"free-text filter over title and description"`
}

type taskOutput struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Status     string   `json:"status"`
	Priority   string   `json:"priority"`
	AssignedTo string   `json:"assigned_to,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	DueDate    string   `json:"due_date,omitempty"`
	UpdatedAt  string   `json:"updated_at"`
}

type listTasksOutput struct {
	Tasks []taskOutput `json:"tasks"`
	Count int          `json:"count"`
}

type searchTasksInput struct {
	Query string `json:"query" jsonschema:"required,free text matched against task titles and descriptions"`
}

type createTaskInput struct {
	Title       string   `json:"title" jsonschema:"required,the task title"`
	Description string   `json:"description,omitempty"`
	Priority    string   `json:"priority,omitempty" jsonschema:"LOW, MEDIUM, HIGH, or CRITICAL; defaults to MEDIUM"`
	AssignedTo  string   `json:"assigned_to,omitempty" jsonschema:"assignee username"`
	Tags        []string `json:"tags,omitempty"`
}

type updateTaskStatusInput struct {
	TaskID string `json:"task_id" jsonschema:"required,the task identifier"`
	Status string `json:"status" jsonschema:"required,the new status (TODO, IN_PROGRESS, REVIEW, DONE, CANCELLED)"`
}

type messageOutput struct {
	Message string `json:"message"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks from the task service with optional status, assignee, and free-text filters.",
	}, s.handleListTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "search_tasks",
		Description: "Search tasks by free text over titles and descriptions on the task service.",
	}, s.handleSearchTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "create_task",
		Description: "Create a new task on the task service.",
	}, s.handleCreateTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "update_task_status",
		Description: "Update a task's status. Valid statuses: TODO, IN_PROGRESS, REVIEW, DONE, CANCELLED.",
	}, s.handleUpdateTaskStatus)
}

// --- Tool handlers ---

func (s *Server) handleListTasks(ctx context.Context, _ *gomcp.CallToolRequest, input listTasksInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	if err := s.syncer.SyncAll(ctx); err != nil {
		return errorResult(fmt.Sprintf("synchronizing: %s", err)), listTasksOutput{}, nil
	}

	filter := core.TaskFilter{Query: input.Query}
	if input.Status != "" {
		status, err := models.ParseTaskStatus(strings.ToUpper(input.Status))
		if err != nil {
			return errorResult(err.Error()), listTasksOutput{}, nil
		}
		filter.Statuses = []models.TaskStatus{status}
	}
	if input.Assignee != "" {
		filter.Assignees = []string{input.Assignee}
	}

	tasks := core.FilterTasks(s.store.Snapshot().Tasks, filter)
	return nil, tasksOutput(tasks), nil
}

func (s *Server) handleSearchTasks(ctx context.Context, _ *gomcp.CallToolRequest, input searchTasksInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	if input.Query == "" {
		return errorResult("query is required"), listTasksOutput{}, nil
	}
	if s.monitor.Check(ctx) != core.StateConnected {
		return errorResult("not connected to the task service"), listTasksOutput{}, nil
	}

	resp, err := s.svc.SearchTasks(ctx, input.Query, 50)
	if err != nil {
		return errorResult(fmt.Sprintf("searching: %s", err)), listTasksOutput{}, nil
	}
	return nil, tasksOutput(resp.Tasks), nil
}

func (s *Server) handleCreateTask(ctx context.Context, _ *gomcp.CallToolRequest, input createTaskInput) (*gomcp.CallToolResult, messageOutput, error) {
	if input.Title == "" {
		return errorResult("title is required"), messageOutput{}, nil
	}

	priority := models.TaskPriorityMedium
	if input.Priority != "" {
		p, err := models.ParseTaskPriority(strings.ToUpper(input.Priority))
		if err != nil {
			return errorResult(err.Error()), messageOutput{}, nil
		}
		priority = p
	}

	err := s.mutations.CreateTask(ctx, core.CreateTaskInput{
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		AssignedTo:  input.AssignedTo,
		Tags:        input.Tags,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("creating task: %s", err)), messageOutput{}, nil
	}
	return nil, messageOutput{Message: "task created"}, nil
}

func (s *Server) handleUpdateTaskStatus(ctx context.Context, _ *gomcp.CallToolRequest, input updateTaskStatusInput) (*gomcp.CallToolResult, messageOutput, error) {
	if input.TaskID == "" {
		return errorResult("task_id is required"), messageOutput{}, nil
	}
	status, err := models.ParseTaskStatus(strings.ToUpper(input.Status))
	if err != nil {
		return errorResult(err.Error()), messageOutput{}, nil
	}

	if err := s.mutations.UpdateTask(ctx, input.TaskID, core.TaskUpdate{Status: &status}); err != nil {
		return errorResult(fmt.Sprintf("updating task %s: %s", input.TaskID, err)), messageOutput{}, nil
	}
	return nil, messageOutput{Message: fmt.Sprintf("task %s moved to %s", input.TaskID, status)}, nil
}

func tasksOutput(tasks []models.Task) listTasksOutput {
	out := listTasksOutput{
		Tasks: make([]taskOutput, len(tasks)),
		Count: len(tasks),
	}
	for i, t := range tasks {
		o := taskOutput{
			ID:         t.ID,
			Title:      t.Title,
			Status:     t.Status.String(),
			Priority:   t.Priority.String(),
			AssignedTo: t.AssignedTo,
			Tags:       t.Tags,
			UpdatedAt:  t.UpdatedAt.Format(time.RFC3339),
		}
		if t.DueDate != nil {
			o.DueDate = t.DueDate.Format(time.RFC3339)
		}
		out.Tasks[i] = o
	}
	return out
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		IsError: true,
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
	}
}
