// Package restapi implements the service.Service interface against the
// TaskPilot REST backend.
package restapi

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

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"taskpilot/internal/config"
	"taskpilot/internal/service"
	"taskpilot/internal/session"
)

const (
	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// DescriptionSentinel is how the backend encodes "no description":
	// the field is required non-empty server-side, so an empty description
	// is stored as a single space. The sentinel never leaves this package;
	// reads fold it to "" and writes of "" produce it.
	DescriptionSentinel = " "
)

// Client implements service.Service over the TaskPilot REST API.
type Client struct {
	base     string
	http     *http.Client
	sessions *session.Store
	log      *logrus.Logger
}

// New creates a client for the configured server using the stored token.
// Returns service.ErrAuthMissing when no token is stored; no request is
// made in that case.
func New(ctx context.Context, cfg *config.Config, sessions *session.Store) (*Client, error) {
	token, ok := sessions.Get()
	if !ok {
		return nil, service.ErrAuthMissing
	}

	// Static source: the backend issues no refresh tokens, expiry is
	// detected reactively via 401.
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})

	return &Client{
		base:     cfg.Server,
		http:     oauth2.NewClient(ctx, src),
		sessions: sessions,
		log:      newLogger(cfg.Debug),
	}, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(base string, httpClient *http.Client, sessions *session.Store) *Client {
	return &Client{
		base:     strings.TrimRight(base, "/"),
		http:     httpClient,
		sessions: sessions,
		log:      newLogger(false),
	}
}

func newLogger(debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if debug {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.ErrorLevel)
	}
	return log
}

// ListTasks returns all tasks for the logged-in user.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i] = foldSentinel(tasks[i])
	}
	return tasks, nil
}

// CreateTask creates a task. The server assigns the ID.
func (c *Client) CreateTask(ctx context.Context, t service.NewTask) (service.Task, error) {
	var created service.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", t, &created); err != nil {
		return service.Task{}, err
	}
	return foldSentinel(created), nil
}

// UpdateTask applies a partial update and returns the updated task.
func (c *Client) UpdateTask(ctx context.Context, id int64, patch service.TaskPatch) (service.Task, error) {
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		sentinel := DescriptionSentinel
		patch.Description = &sentinel
	}
	var updated service.Task
	path := fmt.Sprintf("/tasks/%d", id)
	if err := c.do(ctx, http.MethodPut, path, patch, &updated); err != nil {
		return service.Task{}, err
	}
	return foldSentinel(updated), nil
}

// DeleteTask removes a task permanently.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}

// Summary returns an AI-generated project summary.
func (c *Client) Summary(ctx context.Context) (service.AgentReport, error) {
	var report service.AgentReport
	if err := c.do(ctx, http.MethodGet, "/agent/summary", nil, &report); err != nil {
		return service.AgentReport{}, err
	}
	return report, nil
}

// Recommendations returns AI-generated task recommendations.
func (c *Client) Recommendations(ctx context.Context) (service.AgentReport, error) {
	var report service.AgentReport
	if err := c.do(ctx, http.MethodGet, "/agent/recommendations", nil, &report); err != nil {
		return service.AgentReport{}, err
	}
	return report, nil
}

// do issues one request: JSON body in, JSON body out. Every authenticated
// call funnels through here so the 401 handling exists in exactly one
// place: clear the session store (its hooks fire at most once) and return
// the distinguished expiry error.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("request timed out")
		}
		return err
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).Round(time.Millisecond).String(),
	}).Debug("api call")

	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.sessions.Clear(); err != nil {
			c.log.WithError(err).Error("failed to clear session")
		}
		return service.ErrSessionExpired
	}
	if resp.StatusCode == http.StatusNotFound {
		return service.ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return errorFromResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorFromResponse surfaces the backend's detail message when present.
func errorFromResponse(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Detail != "" {
		return fmt.Errorf("%s (status %d)", payload.Detail, resp.StatusCode)
	}
	return fmt.Errorf("backend returned status %d", resp.StatusCode)
}

// foldSentinel normalizes the description sentinel to "" so callers render
// a "no description" placeholder instead of a literal space.
func foldSentinel(t service.Task) service.Task {
	if t.Description == DescriptionSentinel {
		t.Description = ""
	}
	return t
}
