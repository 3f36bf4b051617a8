package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpilot/internal/config"
	"taskpilot/internal/exitcode"
	"taskpilot/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string                   { return "help" }
func (c *HelpCmd) Aliases() []string              { return nil }
func (c *HelpCmd) Synopsis() string               { return "Print usage" }
func (c *HelpCmd) Usage() string                  { return "taskpilot help" }
func (c *HelpCmd) NeedsAuth() bool                { return false }
func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskpilot                                          List tasks
  taskpilot list [--sort due_date|priority|title] [--desc] [--all] [--tag <tag>]...
  taskpilot add --due <date> [--notes <text>] [--priority <p>] [--tag <tag>]... <title...>
  taskpilot show <id>
  taskpilot done <id>
  taskpilot undone <id>
  taskpilot rm [--force] <id>
  taskpilot set <id> title|notes|due|priority [<value...>]
  taskpilot tag add|rm <id> <tag>
  taskpilot sub add|rm|toggle <id> <name...>
  taskpilot summary
  taskpilot recommend
  taskpilot ui
  taskpilot login --user <username> --pass <password>
  taskpilot register --user <username> --pass <password>
  taskpilot logout
  taskpilot help
  taskpilot version

Common flags:
  --config <dir>   Override config directory
  --server <url>   Override API base URL (or set TASKPILOT_SERVER)
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
