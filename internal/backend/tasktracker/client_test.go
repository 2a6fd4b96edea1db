package tasktracker_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"tasktrack/internal/backend/tasktracker"
	"tasktrack/internal/config"
	"tasktrack/internal/service"
)

func staticTokens(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Token"})
}

func newClient(t *testing.T, handler http.Handler, tokens oauth2.TokenSource) *tasktracker.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := &config.Config{BaseURL: srv.URL + "/api/"}
	return tasktracker.New(cfg, tokens)
}

func TestAuthHeader_PresentOnTaskCalls(t *testing.T) {
	var got http.Header
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	c := newClient(t, handler, staticTokens("abc123"))
	_, err := c.ListTasks(context.Background())
	require.NoError(t, err)

	require.Equal(t, "Token abc123", got.Get("Authorization"))
	require.Equal(t, "application/json", got.Get("Content-Type"))
	require.NotEmpty(t, got.Get("X-Request-ID"))
}

func TestAuthHeader_OmittedWithoutToken(t *testing.T) {
	var got http.Header
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tok-1"}`))
	})

	c := newClient(t, handler, nil)
	_, err := c.Login(context.Background(), "alice", "hunter2")
	require.NoError(t, err)

	_, present := got["Authorization"]
	require.False(t, present, "Authorization must be absent entirely, not empty")
	require.Equal(t, "application/json", got.Get("Content-Type"))
}

func TestLogin_Success(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/login/", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "alice", body["username"])
		require.Equal(t, "hunter2", body["password"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tok-1"}`))
	})

	c := newClient(t, handler, nil)
	token, err := c.Login(context.Background(), "alice", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "tok-1", token)
}

func TestLogin_RejectedUsesServerDetail(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"non_field_errors":["Unable to log in with provided credentials."]}`))
	})

	c := newClient(t, handler, nil)
	_, err := c.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)
	require.True(t, service.IsAuth(err))
	require.Equal(t, "Unable to log in with provided credentials.", err.Error())
}

func TestLogin_NetworkErrorIsAuthWithFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	cfg := &config.Config{BaseURL: srv.URL + "/api/"}
	c := tasktracker.New(cfg, nil)

	_, err := c.Login(context.Background(), "alice", "hunter2")
	require.Error(t, err)
	require.True(t, service.IsAuth(err))
	require.Equal(t, "Login failed", err.Error())
}

func TestSignup_PrefersFieldErrorOverDetail(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/register/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Bad request.","username":["A user with that username already exists."]}`))
	})

	c := newClient(t, handler, nil)
	err := c.Signup(context.Background(), "alice", "hunter2")
	require.Error(t, err)
	require.True(t, service.IsAuth(err))
	require.Equal(t, "A user with that username already exists.", err.Error())
}

func TestSignup_GenericFallback(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	c := newClient(t, handler, nil)
	err := c.Signup(context.Background(), "alice", "hunter2")
	require.Error(t, err)
	require.Equal(t, "Signup failed", err.Error())
}

func TestListTasks_DecodesDates(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tasks/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":1,"title":"Buy milk","description":"","due_date":"2026-03-09","completed":false},
			{"id":2,"title":"File taxes","description":"yearly","due_date":null,"completed":true}
		]`))
	})

	c := newClient(t, handler, staticTokens("abc"))
	tasks, err := c.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	require.Equal(t, int64(1), tasks[0].ID)
	require.NotNil(t, tasks[0].DueDate)
	require.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), *tasks[0].DueDate)

	require.Nil(t, tasks[1].DueDate)
	require.True(t, tasks[1].Completed)
}

func TestCreateTask_EmptyTitleNeverReachesServer(t *testing.T) {
	requests := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	c := newClient(t, handler, staticTokens("abc"))
	_, err := c.CreateTask(context.Background(), service.TaskDraft{Title: "   "})
	require.Error(t, err)
	require.True(t, service.IsValidation(err))
	require.Zero(t, requests, "validation must fail before any network call")
}

func TestCreateTask_SendsDraftAndReturnsServerTask(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Buy milk", body["title"])
		require.Nil(t, body["due_date"])
		require.Equal(t, false, body["completed"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":42,"title":"Buy milk","description":"","due_date":null,"completed":false}`))
	})

	c := newClient(t, handler, staticTokens("abc"))
	task, err := c.CreateTask(context.Background(), service.TaskDraft{Title: "Buy milk"})
	require.NoError(t, err)
	require.Equal(t, int64(42), task.ID)
}

func TestPatchTask_SendsOnlyProvidedFields(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/tasks/7/", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, map[string]any{"completed": true}, body)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":7,"title":"t","description":"","due_date":null,"completed":true}`))
	})

	c := newClient(t, handler, staticTokens("abc"))
	done := true
	task, err := c.PatchTask(context.Background(), 7, service.TaskPatch{Completed: &done})
	require.NoError(t, err)
	require.True(t, task.Completed)
}

func TestUpdateTask_FullReplace(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/tasks/7/", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		// A full replace always carries every editable field.
		for _, key := range []string{"title", "description", "due_date", "completed"} {
			require.Contains(t, body, key)
		}
		require.Equal(t, "2026-04-01", body["due_date"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":7,"title":"new","description":"d","due_date":"2026-04-01","completed":false}`))
	})

	c := newClient(t, handler, staticTokens("abc"))
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	task, err := c.UpdateTask(context.Background(), 7, service.TaskDraft{
		Title: "new", Description: "d", DueDate: &due,
	})
	require.NoError(t, err)
	require.Equal(t, "new", task.Title)
}

func TestDeleteTask_MissingIsNotFound(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Not found."}`))
	})

	c := newClient(t, handler, staticTokens("abc"))
	err := c.DeleteTask(context.Background(), 99)
	require.Error(t, err)
	require.True(t, service.IsNotFound(err))
	require.Equal(t, "Not found.", err.Error())
}

func TestTaskCall_RejectedSessionIsAuthError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Invalid token."}`))
	})

	c := newClient(t, handler, staticTokens("stale"))
	_, err := c.ListTasks(context.Background())
	require.Error(t, err)
	require.True(t, service.IsAuth(err))
}

func TestTaskCall_ServerErrorIsFetch(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	c := newClient(t, handler, staticTokens("abc"))
	_, err := c.ListTasks(context.Background())
	require.Error(t, err)
	require.True(t, service.IsFetch(err))
}
