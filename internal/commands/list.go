package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskpilot/internal/config"
	"taskpilot/internal/exitcode"
	"taskpilot/internal/output"
	"taskpilot/internal/service"
	"taskpilot/internal/taskview"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskpilot` (no args) and `taskpilot list`.
type ListCmd struct {
	sortKey string
	desc    bool
	all     bool
	tags    tagFlags
}

// SetSort sets the sort key and direction (for testing).
func (c *ListCmd) SetSort(key string, desc bool) {
	c.sortKey = key
	c.desc = desc
}

// SetAll includes completed tasks (for testing).
func (c *ListCmd) SetAll(all bool) {
	c.all = all
}

// SetTags sets the tag filter (for testing).
func (c *ListCmd) SetTags(tags []string) {
	c.tags = tags
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "taskpilot list [--sort due_date|priority|title] [--desc] [--all] [--tag <tag>]..."
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.sortKey, "sort", string(taskview.SortDueDate), "")
	fs.BoolVar(&c.desc, "desc", false, "")
	fs.BoolVar(&c.all, "all", false, "")
	fs.Var(&c.tags, "tag", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	key, ok := taskview.ParseSortKey(c.sortKey)
	if !ok {
		fmt.Fprintf(errOut, "error: invalid sort key: %s\n", c.sortKey)
		return exitcode.UserError
	}

	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return fail(errOut, err)
	}

	// Completed tasks are hidden unless --all is given.
	if !c.all {
		open := tasks[:0:0]
		for _, t := range tasks {
			if !t.Completed {
				open = append(open, t)
			}
		}
		tasks = open
	}

	view := taskview.View{Key: key, Tags: c.tags}
	if c.desc {
		view.Direction = taskview.Descending
	}
	visible := taskview.Apply(tasks, view)

	if len(visible) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	for _, task := range visible {
		output.FormatTaskLine(out, task)
	}
	return exitcode.Success
}

// tagFlags collects repeated --tag flags into an inclusion set.
type tagFlags []string

func (t *tagFlags) String() string { return strings.Join(*t, ",") }

func (t *tagFlags) Set(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return fmt.Errorf("empty tag")
	}
	*t = append(*t, v)
	return nil
}
