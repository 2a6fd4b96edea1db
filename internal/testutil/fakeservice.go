// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tasktrack/internal/service"
)

// FakeService is an in-memory implementation of service.Service for
// testing. It plays the server's role: assigns ids, mints tokens, honors
// the mutate-then-refetch contract by construction.
type FakeService struct {
	mu     sync.RWMutex
	users  map[string]string // username -> password
	tasks  []service.Task
	nextID int64

	// Tokens records every token minted by Login, newest last.
	Tokens []string

	// Calls counts Service method invocations by name.
	Calls map[string]int

	// Error injection for testing
	LoginErr       error
	SignupErr      error
	CurrentUserErr error
	ListTasksErr   error
	GetTaskErr     error
	CreateTaskErr  error
	UpdateTaskErr  error
	PatchTaskErr   error
	DeleteTaskErr  error
}

// NewFakeService creates a FakeService with one registered account.
func NewFakeService() *FakeService {
	return &FakeService{
		users:  map[string]string{"alice": "hunter2"},
		nextID: 1,
		Calls:  make(map[string]int),
	}
}

// AddUser registers an account the fake will accept credentials for.
func (f *FakeService) AddUser(username, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[username] = password
}

// AddTask seeds a task and returns its assigned id.
func (f *FakeService) AddTask(title, description string, due *time.Time, completed bool) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.tasks = append(f.tasks, service.Task{
		ID:          id,
		Title:       title,
		Description: description,
		DueDate:     due,
		Completed:   completed,
	})
	return id
}

func (f *FakeService) count(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls[name]++
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, username, password string) (string, error) {
	f.count("Login")
	if f.LoginErr != nil {
		return "", f.LoginErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if stored, ok := f.users[username]; !ok || stored != password {
		return "", service.NewError(service.KindAuth, "Login failed")
	}
	token := uuid.NewString()
	f.Tokens = append(f.Tokens, token)
	return token, nil
}

// Signup implements service.Service.
func (f *FakeService) Signup(ctx context.Context, username, password string) error {
	f.count("Signup")
	if f.SignupErr != nil {
		return f.SignupErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[username]; exists {
		return service.NewError(service.KindAuth, "A user with that username already exists.")
	}
	f.users[username] = password
	return nil
}

// CurrentUser implements service.Service.
func (f *FakeService) CurrentUser(ctx context.Context) (service.User, error) {
	f.count("CurrentUser")
	if f.CurrentUserErr != nil {
		return service.User{}, f.CurrentUserErr
	}
	return service.User{ID: 1, Username: "alice"}, nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.count("ListTasks")
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result, nil
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, id int64) (service.Task, error) {
	f.count("GetTask")
	if f.GetTaskErr != nil {
		return service.Task{}, f.GetTaskErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return service.Task{}, service.NewError(service.KindNotFound, "task not found")
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, draft service.TaskDraft) (service.Task, error) {
	f.count("CreateTask")
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	if strings.TrimSpace(draft.Title) == "" {
		return service.Task{}, service.ValidationErrorf("title required")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t := service.Task{
		ID:          f.nextID,
		Title:       draft.Title,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		Completed:   draft.Completed,
	}
	f.nextID++
	f.tasks = append(f.tasks, t)
	return t, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id int64, draft service.TaskDraft) (service.Task, error) {
	f.count("UpdateTask")
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	if strings.TrimSpace(draft.Title) == "" {
		return service.Task{}, service.ValidationErrorf("title required")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i] = service.Task{
				ID:          id,
				Title:       draft.Title,
				Description: draft.Description,
				DueDate:     draft.DueDate,
				Completed:   draft.Completed,
			}
			return f.tasks[i], nil
		}
	}
	return service.Task{}, service.NewError(service.KindNotFound, "task not found")
}

// PatchTask implements service.Service.
func (f *FakeService) PatchTask(ctx context.Context, id int64, patch service.TaskPatch) (service.Task, error) {
	f.count("PatchTask")
	if f.PatchTaskErr != nil {
		return service.Task{}, f.PatchTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			if patch.Title != nil {
				t.Title = *patch.Title
			}
			if patch.Description != nil {
				t.Description = *patch.Description
			}
			if patch.DueDate != nil {
				t.DueDate = patch.DueDate
			}
			if patch.Completed != nil {
				t.Completed = *patch.Completed
			}
			f.tasks[i] = t
			return t, nil
		}
	}
	return service.Task{}, service.NewError(service.KindNotFound, "task not found")
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int64) error {
	f.count("DeleteTask")
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return service.NewError(service.KindNotFound, "task not found")
}
