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
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	due      string
	notes    string
	priority string
	tags     tagFlags
}

// SetFields sets the flag-backed fields (for testing).
func (c *AddCmd) SetFields(due, notes, priority string, tags []string) {
	c.due = due
	c.notes = notes
	c.priority = priority
	c.tags = tags
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskpilot add --due <date> [--notes <text>] [--priority low|medium|high] [--tag <tag>]... <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.notes, "notes", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.Var(&c.tags, "tag", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}
	if c.due == "" {
		fmt.Fprintln(errOut, "error: due date required (--due)")
		return exitcode.UserError
	}
	due, ok := taskview.ParseDueDate(c.due)
	if !ok {
		fmt.Fprintf(errOut, "error: invalid due date: %s\n", c.due)
		return exitcode.UserError
	}

	t := service.NewTask{
		Title:       title,
		DueDate:     due,
		Description: strings.TrimSpace(c.notes),
	}
	if c.priority != "" {
		p := service.Priority(c.priority)
		if !p.Valid() {
			fmt.Fprintf(errOut, "error: invalid priority: %s\n", c.priority)
			return exitcode.UserError
		}
		t.Priority = p
	}
	// Duplicates are rejected here, before the request: the tag set is
	// duplicate-free by client construction.
	for _, tag := range c.tags {
		for _, have := range t.Tags {
			if have == tag {
				fmt.Fprintf(errOut, "error: duplicate tag: %s\n", tag)
				return exitcode.UserError
			}
		}
		t.Tags = append(t.Tags, tag)
	}

	created, err := svc.CreateTask(ctx, t)
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok %d\n", created.ID)
	}
	return exitcode.Success
}
