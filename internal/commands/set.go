package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskpilot/internal/config"
	"taskpilot/internal/exitcode"
	"taskpilot/internal/service"
	"taskpilot/internal/taskview"
)

func init() {
	Register(&SetCmd{})
}

// SetCmd implements the set command: single-field partial updates of the
// title, notes, due date or priority of one task.
type SetCmd struct{}

func (c *SetCmd) Name() string      { return "set" }
func (c *SetCmd) Aliases() []string { return nil }
func (c *SetCmd) Synopsis() string  { return "Edit one field of a task" }
func (c *SetCmd) Usage() string {
	return "taskpilot set <id> title|notes|due|priority [<value...>]"
}
func (c *SetCmd) NeedsAuth() bool                { return true }
func (c *SetCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SetCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: field required (title, notes, due, priority)")
		return exitcode.UserError
	}

	field := args[1]
	value := strings.Join(args[2:], " ")

	var patch service.TaskPatch
	switch field {
	case "title":
		title := strings.TrimSpace(value)
		if title == "" {
			fmt.Fprintln(errOut, "error: title cannot be empty")
			return exitcode.UserError
		}
		patch.Title = &title
	case "notes", "description":
		// Empty is allowed: it clears the description. The backend
		// encoding of "empty" is handled below the service interface.
		patch.Description = &value
	case "due":
		due, ok := taskview.ParseDueDate(value)
		if !ok {
			fmt.Fprintf(errOut, "error: invalid due date: %s\n", value)
			return exitcode.UserError
		}
		patch.DueDate = &due
	case "priority":
		p := service.Priority(strings.TrimSpace(value))
		if !p.Valid() {
			fmt.Fprintf(errOut, "error: invalid priority: %s (want low, medium or high)\n", value)
			return exitcode.UserError
		}
		patch.Priority = &p
	default:
		fmt.Fprintf(errOut, "error: unknown field: %s\n", field)
		return exitcode.UserError
	}

	if _, err := svc.UpdateTask(ctx, id, patch); err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
