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
	Register(&TagCmd{})
}

// TagCmd implements the tag command: add or remove one tag on a task.
// The whole tag list is sent as a single-field partial update.
type TagCmd struct{}

func (c *TagCmd) Name() string                   { return "tag" }
func (c *TagCmd) Aliases() []string              { return nil }
func (c *TagCmd) Synopsis() string               { return "Add or remove a tag" }
func (c *TagCmd) Usage() string                  { return "taskpilot tag add|rm <id> <tag>" }
func (c *TagCmd) NeedsAuth() bool                { return true }
func (c *TagCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TagCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(errOut, "error: action required (add or rm)")
		return exitcode.UserError
	}
	action := args[0]
	if action != "add" && action != "rm" {
		fmt.Fprintf(errOut, "error: unknown action: %s\n", action)
		return exitcode.UserError
	}

	id, err := ParseTaskID(args[1:])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if len(args) < 3 || strings.TrimSpace(args[2]) == "" {
		fmt.Fprintln(errOut, "error: tag required")
		return exitcode.UserError
	}
	tag := strings.TrimSpace(args[2])

	task, err := findTask(ctx, svc, id)
	if err != nil {
		return fail(errOut, err)
	}

	var tags []string
	switch action {
	case "add":
		// Duplicate adds are rejected before any update goes out.
		if task.HasTag(tag) {
			fmt.Fprintf(errOut, "error: tag already exists: %s\n", tag)
			return exitcode.UserError
		}
		tags = append(append(tags, task.Tags...), tag)
	case "rm":
		if !task.HasTag(tag) {
			fmt.Fprintf(errOut, "error: no such tag: %s\n", tag)
			return exitcode.UserError
		}
		tags = make([]string, 0, len(task.Tags))
		for _, have := range task.Tags {
			if have != tag {
				tags = append(tags, have)
			}
		}
	}

	// tags is non-nil even when empty, so removing the last tag sends []
	// rather than dropping the field.
	if tags == nil {
		tags = []string{}
	}
	if _, err := svc.UpdateTask(ctx, id, service.TaskPatch{Tags: &tags}); err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
