package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/a1mart/tasker/internal/transport"
	"github.com/a1mart/tasker/pkg/models"
)

// fakeService implements TaskService for testing. Responses are driven by
// plain fields; individual calls can be overridden with function hooks to
// simulate blocking or interleaved requests.
type fakeService struct {
	mu sync.Mutex

	healthErr     error
	healthy       bool
	tasks         []models.Task
	users         []models.User
	analytics     *models.TaskAnalytics
	listTasksErr  error
	listUsersErr  error
	analyticsErr  error
	searchErr     error
	searchResults map[string][]models.Task
	mutation      transport.MutationResult
	mutationErr   error

	healthCalls    int
	listTaskCalls  int
	listUserCalls  int
	analyticsCalls int
	searchCalls    int
	searchQueries  []string
	createTaskReqs []transport.CreateTaskRequest
	updateTaskIDs  []string
	updateMasks    [][]string
	updatePatches  []transport.TaskPatch
	deleteTaskIDs  []string
	deleteForces   []bool
	createUserReqs []transport.CreateUserRequest
	updateUserIDs  []string
	userMasks      [][]string
	deleteUserIDs  []string

	// Optional hooks, called without the lock held.
	onListTasks   func()
	onSearchTasks func(query string)
	onUpdateTask  func(id string, patch transport.TaskPatch)
}

func newFakeService() *fakeService {
	return &fakeService{
		healthy:       true,
		mutation:      transport.MutationResult{Success: true, Message: "ok"},
		searchResults: make(map[string][]models.Task),
	}
}

func (f *fakeService) Health(ctx context.Context) (*transport.HealthResponse, error) {
	f.mu.Lock()
	f.healthCalls++
	err := f.healthErr
	healthy := f.healthy
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return &transport.HealthResponse{Healthy: healthy, Version: "test"}, nil
}

func (f *fakeService) ListTasks(ctx context.Context, pageSize int32) (*transport.ListTasksResponse, error) {
	f.mu.Lock()
	f.listTaskCalls++
	hook := f.onListTasks
	err := f.listTasksErr
	tasks := append([]models.Task(nil), f.tasks...)
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	if err != nil {
		return nil, err
	}
	return &transport.ListTasksResponse{Tasks: tasks, TotalCount: int32(len(tasks))}, nil
}

func (f *fakeService) GetTask(ctx context.Context, id string) (*transport.GetTaskResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			t := f.tasks[i]
			return &transport.GetTaskResponse{Task: &t, Found: true}, nil
		}
	}
	return &transport.GetTaskResponse{Found: false}, nil
}

func (f *fakeService) SearchTasks(ctx context.Context, query string, pageSize int32) (*transport.SearchTasksResponse, error) {
	f.mu.Lock()
	f.searchCalls++
	f.searchQueries = append(f.searchQueries, query)
	hook := f.onSearchTasks
	err := f.searchErr
	results := append([]models.Task(nil), f.searchResults[query]...)
	f.mu.Unlock()
	if hook != nil {
		hook(query)
	}
	if err != nil {
		return nil, err
	}
	return &transport.SearchTasksResponse{Tasks: results, TotalCount: int32(len(results))}, nil
}

func (f *fakeService) GetTaskAnalytics(ctx context.Context, start, end time.Time, groupBy string) (*transport.AnalyticsResponse, error) {
	f.mu.Lock()
	f.analyticsCalls++
	err := f.analyticsErr
	analytics := f.analytics
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return &transport.AnalyticsResponse{Analytics: analytics}, nil
}

func (f *fakeService) ListUsers(ctx context.Context, pageSize int32, activeOnly bool) (*transport.ListUsersResponse, error) {
	f.mu.Lock()
	f.listUserCalls++
	err := f.listUsersErr
	users := append([]models.User(nil), f.users...)
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return &transport.ListUsersResponse{Users: users, TotalCount: int32(len(users))}, nil
}

func (f *fakeService) CreateTask(ctx context.Context, req transport.CreateTaskRequest) (*transport.MutationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createTaskReqs = append(f.createTaskReqs, req)
	if f.mutationErr != nil {
		return nil, f.mutationErr
	}
	m := f.mutation
	return &m, nil
}

func (f *fakeService) UpdateTask(ctx context.Context, id string, patch transport.TaskPatch, updateMask []string) (*transport.MutationResult, error) {
	f.mu.Lock()
	f.updateTaskIDs = append(f.updateTaskIDs, id)
	f.updatePatches = append(f.updatePatches, patch)
	f.updateMasks = append(f.updateMasks, updateMask)
	hook := f.onUpdateTask
	err := f.mutationErr
	m := f.mutation
	f.mu.Unlock()
	if hook != nil {
		hook(id, patch)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (f *fakeService) DeleteTask(ctx context.Context, id string, force bool) (*transport.MutationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteTaskIDs = append(f.deleteTaskIDs, id)
	f.deleteForces = append(f.deleteForces, force)
	if f.mutationErr != nil {
		return nil, f.mutationErr
	}
	m := f.mutation
	return &m, nil
}

func (f *fakeService) CreateUser(ctx context.Context, req transport.CreateUserRequest) (*transport.MutationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createUserReqs = append(f.createUserReqs, req)
	if f.mutationErr != nil {
		return nil, f.mutationErr
	}
	m := f.mutation
	return &m, nil
}

func (f *fakeService) UpdateUser(ctx context.Context, id string, patch transport.UserPatch, updateMask []string) (*transport.MutationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateUserIDs = append(f.updateUserIDs, id)
	f.userMasks = append(f.userMasks, updateMask)
	if f.mutationErr != nil {
		return nil, f.mutationErr
	}
	m := f.mutation
	return &m, nil
}

func (f *fakeService) DeleteUser(ctx context.Context, id string, force bool) (*transport.MutationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteUserIDs = append(f.deleteUserIDs, id)
	if f.mutationErr != nil {
		return nil, f.mutationErr
	}
	m := f.mutation
	return &m, nil
}

var errNetwork = errors.New("connection refused")

// testHarness bundles a fully wired core over a fakeService.
type testHarness struct {
	svc       *fakeService
	store     *Store
	monitor   ConnectionMonitor
	syncer    DataSynchronizer
	mutations *MutationPipeline
}

func newTestHarness() *testHarness {
	svc := newFakeService()
	store := NewStore()
	monitor := NewConnectionMonitor(svc, store, nil)
	syncer := NewDataSynchronizer(svc, monitor, store, nil, 100, 30*24*time.Hour)
	mutations := NewMutationPipeline(svc, monitor, store, syncer, nil)
	return &testHarness{
		svc:       svc,
		store:     store,
		monitor:   monitor,
		syncer:    syncer,
		mutations: mutations,
	}
}

func sampleTasks() []models.Task {
	return []models.Task{
		{ID: "1", Title: "Write report", Status: models.TaskStatusTodo, AssignedTo: "alice", CreatedAt: time.Unix(100, 0)},
		{ID: "2", Title: "Review PR", Status: models.TaskStatusDone, AssignedTo: "", CreatedAt: time.Unix(200, 0)},
		{ID: "3", Title: "Fix login bug", Description: "Session expires early", Status: models.TaskStatusInProgress, AssignedTo: "bob", CreatedAt: time.Unix(300, 0)},
	}
}

func sampleUsers() []models.User {
	return []models.User{
		{ID: "u1", Username: "alice", FullName: "Alice Jones", Role: models.UserRoleAdmin, Status: models.UserStatusActive},
		{ID: "u2", Username: "bob", FullName: "Bob Singh", Role: models.UserRoleMember, Status: models.UserStatusInactive},
	}
}
