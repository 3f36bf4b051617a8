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
)

func init() {
	Register(&SubCmd{})
}

// SubCmd implements the sub command: checklist sub-items of a task.
// Sub-item names double as identity (the map key), so adding an existing
// name is rejected and renaming means rm then add.
type SubCmd struct{}

func (c *SubCmd) Name() string      { return "sub" }
func (c *SubCmd) Aliases() []string { return nil }
func (c *SubCmd) Synopsis() string  { return "Add, remove or toggle a checklist sub-item" }
func (c *SubCmd) Usage() string {
	return "taskpilot sub add|rm|toggle <id> <name...>"
}
func (c *SubCmd) NeedsAuth() bool                { return true }
func (c *SubCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SubCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(errOut, "error: action required (add, rm or toggle)")
		return exitcode.UserError
	}
	action := args[0]
	if action != "add" && action != "rm" && action != "toggle" {
		fmt.Fprintf(errOut, "error: unknown action: %s\n", action)
		return exitcode.UserError
	}

	id, err := ParseTaskID(args[1:])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	name := strings.TrimSpace(strings.Join(args[2:], " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: sub-item name required")
		return exitcode.UserError
	}

	task, err := findTask(ctx, svc, id)
	if err != nil {
		return fail(errOut, err)
	}

	// Full-map replacement: the map is the single attribute being
	// updated, copied and modified as a whole.
	items := make(map[string]bool, len(task.MiniTasks)+1)
	for k, v := range task.MiniTasks {
		items[k] = v
	}

	switch action {
	case "add":
		if _, exists := items[name]; exists {
			fmt.Fprintf(errOut, "error: sub-item already exists: %s\n", name)
			return exitcode.UserError
		}
		items[name] = false
	case "rm":
		if _, exists := items[name]; !exists {
			fmt.Fprintf(errOut, "error: no such sub-item: %s\n", name)
			return exitcode.UserError
		}
		delete(items, name)
	case "toggle":
		done, exists := items[name]
		if !exists {
			fmt.Fprintf(errOut, "error: no such sub-item: %s\n", name)
			return exitcode.UserError
		}
		items[name] = !done
	}

	if _, err := svc.UpdateTask(ctx, id, service.TaskPatch{MiniTasks: &items}); err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
