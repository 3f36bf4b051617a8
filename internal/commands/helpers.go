package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode"

	"taskpilot/internal/exitcode"
	"taskpilot/internal/service"
)

// ErrTaskIDRequired indicates no task ID was provided.
var ErrTaskIDRequired = errors.New("task id required")

// ParseTaskID parses a task ID from the first positional argument.
func ParseTaskID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, ErrTaskIDRequired
	}
	s := args[0]
	if !isAllDigits(s) {
		return 0, fmt.Errorf("invalid task id: %s", s)
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id: %s", s)
	}
	return id, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// findTask fetches the current task list and returns the task with the
// given ID. Per-field editors need the current value of the touched
// attribute (tag list, mini-task map) before building the partial update.
func findTask(ctx context.Context, svc service.Service, id int64) (service.Task, error) {
	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return service.Task{}, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return service.Task{}, fmt.Errorf("task %d: %w", id, service.ErrNotFound)
}

// fail prints err and maps it to an exit code. Auth errors carry the hint
// to log in again; everything else surfaces verbatim.
func fail(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, service.ErrSessionExpired):
		fmt.Fprintln(errOut, "error: session expired (run: taskpilot login)")
		return exitcode.AuthError
	case errors.Is(err, service.ErrAuthMissing):
		fmt.Fprintln(errOut, "error: not logged in (run: taskpilot login)")
		return exitcode.AuthError
	case errors.Is(err, service.ErrNotFound):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}
