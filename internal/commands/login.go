package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpilot/internal/backend/restapi"
	"taskpilot/internal/config"
	"taskpilot/internal/exitcode"
	"taskpilot/internal/service"
	"taskpilot/internal/session"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	username string
	password string
}

// SetCredentials sets the username and password (for testing).
func (c *LoginCmd) SetCredentials(username, password string) {
	c.username = username
	c.password = password
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Authenticate and store the access token" }
func (c *LoginCmd) Usage() string {
	return "taskpilot login --user <username> --pass <password>"
}
func (c *LoginCmd) NeedsAuth() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.username, "user", "", "")
	fs.StringVar(&c.username, "u", "", "")
	fs.StringVar(&c.password, "pass", "", "")
	fs.StringVar(&c.password, "p", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.username == "" || c.password == "" {
		fmt.Fprintln(errOut, "error: username and password required")
		return exitcode.UserError
	}

	store := session.NewStore(cfg.TokenPath())
	if _, ok := store.Get(); ok {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in (run: taskpilot logout first)")
		}
		return exitcode.Success
	}

	token, err := restapi.Login(ctx, cfg, c.username, c.password)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}
	if err := store.Set(token); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
