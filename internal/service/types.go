// Package service defines the backend-agnostic interface for auth and task
// operations, the domain types, and the status and sorting rules.
package service

import "time"

// DateLayout is the wire format for due dates.
const DateLayout = "2006-01-02"

// Task represents a single task record. The server owns tasks; any Task
// held by the client is a point-in-time snapshot.
type Task struct {
	ID          int64
	Title       string
	Description string
	DueDate     *time.Time // nil when no due date is set
	Completed   bool
}

// TaskDraft holds the creatable and fully-replaceable fields of a task.
// Title is required; the other fields default to empty, no due date, and
// not completed.
type TaskDraft struct {
	Title       string
	Description string
	DueDate     *time.Time
	Completed   bool
}

// TaskPatch holds a partial update. Nil fields are left untouched by the
// server.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Completed   *bool
}

// User is the authenticated account profile.
type User struct {
	ID       int64
	Username string
}

// Status is the derived three-way task state.
type Status string

const (
	StatusDone    Status = "Done"
	StatusOverdue Status = "Overdue"
	StatusPending Status = "Pending"
)

// StatusAt derives the task status relative to the given moment: Done when
// completed, otherwise Overdue when the due date is strictly before the
// start of that calendar day, otherwise Pending. Every place that shows a
// status goes through this function.
func (t Task) StatusAt(now time.Time) Status {
	if t.Completed {
		return StatusDone
	}
	if t.DueDate != nil && t.DueDate.Before(startOfDay(now)) {
		return StatusOverdue
	}
	return StatusPending
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
