// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"
)

// ErrSessionExpired is returned when the backend rejects the stored token.
// By the time a caller sees it, the session store has already been cleared.
var ErrSessionExpired = errors.New("session expired")

// ErrAuthMissing is returned when an operation requires a token and none is
// stored. It is raised locally; no request goes out.
var ErrAuthMissing = errors.New("not logged in")

// ErrNotFound is returned when the backend reports a missing resource.
var ErrNotFound = errors.New("not found")

// Service defines the interface for task backend operations.
// All REST API calls go through this interface; commands never touch
// HTTP directly.
type Service interface {
	// ListTasks returns every task owned by the logged-in user, in
	// backend order. The full list replaces any previously fetched state
	// wholesale; there is no incremental sync.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task. The server assigns the ID.
	CreateTask(ctx context.Context, t NewTask) (Task, error)

	// UpdateTask applies a partial update and returns the updated task.
	// This is the sole mutation primitive: completion toggles, tag and
	// mini-task edits, priority, due date and description changes all
	// funnel through it.
	//
	// Overlapping patches to the same task are not serialized; the last
	// write wins field-by-field on the server. Callers issue one update
	// at a time.
	UpdateTask(ctx context.Context, id int64, patch TaskPatch) (Task, error)

	// DeleteTask removes a task permanently.
	DeleteTask(ctx context.Context, id int64) error

	// Summary returns an AI-generated project summary.
	Summary(ctx context.Context) (AgentReport, error)

	// Recommendations returns AI-generated task recommendations.
	Recommendations(ctx context.Context) (AgentReport, error)
}
