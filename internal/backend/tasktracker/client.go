// Package tasktracker implements the service.Service interface against the
// task tracker REST API.
package tasktracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"tasktrack/internal/config"
	"tasktrack/internal/service"
)

const (
	// APITimeout is the timeout for API calls.
	APITimeout = 10 * time.Second

	loginPath    = "login/"
	registerPath = "register/"
	tasksPath    = "tasks/"
	userPath     = "user/"
)

// Client implements service.Service against the REST API. The session is
// injected as an oauth2.TokenSource; a nil source means unauthenticated,
// and only login/register calls are expected to work.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     oauth2.TokenSource
	log        zerolog.Logger
}

// New creates a client for the configured base endpoint.
func New(cfg *config.Config, tokens oauth2.TokenSource) *Client {
	level := zerolog.WarnLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: APITimeout},
		tokens:     tokens,
		log: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).With().Timestamp().Str("component", "api").Logger(),
	}
}

// Login implements service.Service. Any failure, network included, comes
// back as an auth error; the caller's session state is never touched here.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	err := c.authCall(ctx, loginPath, loginRequest{
		Username: username,
		Password: password,
	}, &resp, "Login failed")
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", service.NewError(service.KindAuth, "Login failed")
	}
	return resp.Token, nil
}

// Signup implements service.Service. Field-specific server errors (for
// example a taken username) win over the generic fallback message.
func (c *Client) Signup(ctx context.Context, username, password string) error {
	return c.authCall(ctx, registerPath, signupRequest{
		Username: username,
		Password: password,
	}, nil, "Signup failed")
}

// CurrentUser implements service.Service.
func (c *Client) CurrentUser(ctx context.Context) (service.User, error) {
	var payload userPayload
	if err := c.call(ctx, http.MethodGet, userPath, nil, &payload); err != nil {
		return service.User{}, err
	}
	return service.User{ID: payload.ID, Username: payload.Username}, nil
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var payloads []taskPayload
	if err := c.call(ctx, http.MethodGet, tasksPath, nil, &payloads); err != nil {
		return nil, err
	}
	tasks := make([]service.Task, 0, len(payloads))
	for _, p := range payloads {
		t, err := p.toTask()
		if err != nil {
			return nil, service.WrapError(service.KindFetch, "failed to load tasks", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// GetTask implements service.Service.
func (c *Client) GetTask(ctx context.Context, id int64) (service.Task, error) {
	var payload taskPayload
	if err := c.call(ctx, http.MethodGet, taskPath(id), nil, &payload); err != nil {
		return service.Task{}, err
	}
	return decodeTask(payload)
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, draft service.TaskDraft) (service.Task, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return service.Task{}, service.ValidationErrorf("title required")
	}
	var payload taskPayload
	if err := c.call(ctx, http.MethodPost, tasksPath, fromDraft(draft), &payload); err != nil {
		return service.Task{}, err
	}
	return decodeTask(payload)
}

// UpdateTask implements service.Service.
func (c *Client) UpdateTask(ctx context.Context, id int64, draft service.TaskDraft) (service.Task, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return service.Task{}, service.ValidationErrorf("title required")
	}
	var payload taskPayload
	if err := c.call(ctx, http.MethodPut, taskPath(id), fromDraft(draft), &payload); err != nil {
		return service.Task{}, err
	}
	return decodeTask(payload)
}

// PatchTask implements service.Service.
func (c *Client) PatchTask(ctx context.Context, id int64, patch service.TaskPatch) (service.Task, error) {
	var payload taskPayload
	if err := c.call(ctx, http.MethodPatch, taskPath(id), fromPatch(patch), &payload); err != nil {
		return service.Task{}, err
	}
	return decodeTask(payload)
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

func taskPath(id int64) string {
	return fmt.Sprintf("%s%d/", tasksPath, id)
}

func decodeTask(p taskPayload) (service.Task, error) {
	t, err := p.toTask()
	if err != nil {
		return service.Task{}, service.WrapError(service.KindFetch, "invalid task in response", err)
	}
	return t, nil
}

// authHeaders builds the header set attached to every authenticated
// request: the JSON content type, plus the Authorization header when a
// token is present. With no token the Authorization key is absent
// entirely, not empty.
func (c *Client) authHeaders() http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if tok, err := c.tokens.Token(); err == nil && tok.AccessToken != "" {
			h.Set("Authorization", tok.Type()+" "+tok.AccessToken)
		}
	}
	return h
}

// send performs one request. in is JSON-encoded when non-nil; authed
// selects the full header set or just the content type.
func (c *Client) send(ctx context.Context, method, path string, authed bool, in any) (*http.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if authed {
		req.Header = c.authHeaders()
	} else {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Str("method", method).Str("path", path).
			Str("request_id", requestID).Err(err).Msg("request failed")
		return nil, err
	}

	c.log.Debug().Str("method", method).Str("path", path).
		Str("request_id", requestID).Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).Msg("request")
	return resp, nil
}

// call performs one authenticated request and normalizes any failure into
// a tagged *service.Error.
func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.send(ctx, method, path, true, in)
	if err != nil {
		return service.WrapError(service.KindFetch, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return service.WrapError(service.KindFetch, "failed to decode response", err)
		}
	}
	return nil
}

// authCall performs one of the two unauthenticated calls (login/register).
// Every failure is an auth error carrying the server's message when the
// body has one, the fallback otherwise.
func (c *Client) authCall(ctx context.Context, path string, in, out any, fallback string) error {
	resp, err := c.send(ctx, http.MethodPost, path, false, in)
	if err != nil {
		return service.WrapError(service.KindAuth, fallback, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		msg := errorMessage(body)
		if msg == "" {
			msg = fallback
		}
		return service.NewError(service.KindAuth, msg)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return service.WrapError(service.KindAuth, fallback, err)
		}
	}
	return nil
}

// statusError maps a non-2xx response onto the error taxonomy, preferring
// the server's own message when the body carries one.
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	msg := errorMessage(body)

	switch resp.StatusCode {
	case http.StatusNotFound:
		if msg == "" {
			msg = "task not found"
		}
		return service.NewError(service.KindNotFound, msg)
	case http.StatusUnauthorized, http.StatusForbidden:
		if msg == "" {
			msg = "session rejected (run: tasktrack login)"
		}
		return service.NewError(service.KindAuth, msg)
	case http.StatusBadRequest:
		if msg == "" {
			msg = "request rejected"
		}
		return service.NewError(service.KindValidation, msg)
	default:
		if msg == "" {
			msg = fmt.Sprintf("server error: %d", resp.StatusCode)
		}
		return service.NewError(service.KindFetch, msg)
	}
}
