package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpilot/internal/config"
	"taskpilot/internal/exitcode"
	"taskpilot/internal/service"
	"taskpilot/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd implements the ui command: the interactive task board.
type UICmd struct{}

func (c *UICmd) Name() string                   { return "ui" }
func (c *UICmd) Aliases() []string              { return []string{"board"} }
func (c *UICmd) Synopsis() string               { return "Open the interactive task board" }
func (c *UICmd) Usage() string                  { return "taskpilot ui" }
func (c *UICmd) NeedsAuth() bool                { return true }
func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if err := tui.Run(ctx, svc); err != nil {
		return fail(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "bye")
	}
	return exitcode.Success
}
