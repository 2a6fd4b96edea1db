package tasktracker

import (
	"encoding/json"
	"sort"
	"time"

	"tasktrack/internal/service"
)

// Wire representations of the JSON bodies the API speaks. Dates travel as
// "2006-01-02" strings, with null meaning no due date.

type taskPayload struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
	Completed   bool    `json:"completed"`
}

type taskWrite struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
	Completed   bool    `json:"completed"`
}

type taskPatchWrite struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userPayload struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func (p taskPayload) toTask() (service.Task, error) {
	t := service.Task{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Completed:   p.Completed,
	}
	if p.DueDate != nil && *p.DueDate != "" {
		due, err := time.Parse(service.DateLayout, *p.DueDate)
		if err != nil {
			return service.Task{}, err
		}
		t.DueDate = &due
	}
	return t, nil
}

func fromDraft(d service.TaskDraft) taskWrite {
	return taskWrite{
		Title:       d.Title,
		Description: d.Description,
		DueDate:     formatDate(d.DueDate),
		Completed:   d.Completed,
	}
}

func fromPatch(p service.TaskPatch) taskPatchWrite {
	return taskPatchWrite{
		Title:       p.Title,
		Description: p.Description,
		DueDate:     formatDate(p.DueDate),
		Completed:   p.Completed,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(service.DateLayout)
	return &s
}

// errorMessage extracts a user-facing message from an API error body.
// Field-specific errors (e.g. username: ["already taken"]) win over the
// generic "detail" string; an unparseable body yields "".
func errorMessage(body []byte) string {
	var generic struct {
		Detail string `json:"detail"`
	}
	detail := ""
	if err := json.Unmarshal(body, &generic); err == nil {
		detail = generic.Detail
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err == nil {
		delete(fields, "detail")
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			var msgs []string
			if err := json.Unmarshal(fields[k], &msgs); err == nil && len(msgs) > 0 {
				return msgs[0]
			}
		}
	}

	return detail
}
