package service

import "context"

// Service defines the interface for auth and task operations against the
// task tracker API. Commands never touch HTTP directly.
//
// Consistency contract: the client keeps no authoritative local cache.
// After any successful mutation (CreateTask, UpdateTask, PatchTask,
// DeleteTask) callers must refetch with ListTasks rather than patching a
// previously fetched slice; the next ListTasks result is guaranteed to
// reflect the mutation.
type Service interface {
	// Login exchanges credentials for a session token. The caller is
	// responsible for persisting the token; on failure no session state
	// changes.
	Login(ctx context.Context, username, password string) (string, error)

	// Signup registers a new account. No token is issued; the user logs
	// in separately.
	Signup(ctx context.Context, username, password string) error

	// CurrentUser returns the authenticated account profile.
	CurrentUser(ctx context.Context) (User, error)

	// ListTasks fetches all tasks belonging to the authenticated user,
	// in server order.
	ListTasks(ctx context.Context) ([]Task, error)

	// GetTask fetches a single task by id.
	GetTask(ctx context.Context, id int64) (Task, error)

	// CreateTask creates a task and returns it with the server-assigned
	// id. Title must be non-empty.
	CreateTask(ctx context.Context, draft TaskDraft) (Task, error)

	// UpdateTask fully replaces all editable fields of a task.
	UpdateTask(ctx context.Context, id int64, draft TaskDraft) (Task, error)

	// PatchTask partially updates a task; nil fields are untouched.
	PatchTask(ctx context.Context, id int64, patch TaskPatch) (Task, error)

	// DeleteTask deletes a task. Deleting an already-deleted id fails
	// with a not-found error.
	DeleteTask(ctx context.Context, id int64) error
}
