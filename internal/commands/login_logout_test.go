package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"taskpilot/internal/commands"
	"taskpilot/internal/config"
	"taskpilot/internal/exitcode"
)

// TestLoginCommand_MissingCredentials verifies login fails without --user/--pass
func TestLoginCommand_MissingCredentials(t *testing.T) {
	cmd := &commands.LoginCmd{}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: false,
	}

	ctx := context.Background()
	code := cmd.Run(ctx, cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if outBuf.String() != "" {
		t.Errorf("expected no stdout, got %q", outBuf.String())
	}
	if errBuf.String() != "error: username and password required\n" {
		t.Errorf("expected credentials error, got %q", errBuf.String())
	}
}

// TestLoginCommand_AlreadyLoggedIn verifies login short-circuits when a token
// is already stored.
func TestLoginCommand_AlreadyLoggedIn(t *testing.T) {
	cmd := &commands.LoginCmd{}
	cmd.SetCredentials("alice", "secret")

	tmpDir := t.TempDir()
	tokenPath := filepath.Join(tmpDir, config.TokenFile)
	if err := os.WriteFile(tokenPath, []byte("existing-token\n"), 0600); err != nil {
		t.Fatalf("failed to write token: %v", err)
	}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{
		Dir:   tmpDir,
		Quiet: false,
	}

	ctx := context.Background()
	code := cmd.Run(ctx, cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if errBuf.String() != "" {
		t.Errorf("expected no stderr, got %q", errBuf.String())
	}
	if outBuf.String() != "already logged in (run: taskpilot logout first)\n" {
		t.Errorf("expected already logged in message, got %q", outBuf.String())
	}

	// The stored token must be untouched.
	data, err := os.ReadFile(tokenPath)
	if err != nil {
		t.Fatalf("token file should still exist: %v", err)
	}
	if string(data) != "existing-token\n" {
		t.Errorf("token should be unchanged, got %q", string(data))
	}
}

// TestRegisterCommand_MissingCredentials verifies register fails without --user/--pass
func TestRegisterCommand_MissingCredentials(t *testing.T) {
	cmd := &commands.RegisterCmd{}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: false,
	}

	ctx := context.Background()
	code := cmd.Run(ctx, cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if errBuf.String() != "error: username and password required\n" {
		t.Errorf("expected credentials error, got %q", errBuf.String())
	}
}

// TestLogoutCommand_RemovesToken verifies logout deletes the token file
func TestLogoutCommand_RemovesToken(t *testing.T) {
	cmd := &commands.LogoutCmd{}

	tmpDir := t.TempDir()
	tokenPath := filepath.Join(tmpDir, config.TokenFile)
	if err := os.WriteFile(tokenPath, []byte("some-token\n"), 0600); err != nil {
		t.Fatalf("failed to write token: %v", err)
	}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{
		Dir:   tmpDir,
		Quiet: false,
	}

	ctx := context.Background()
	code := cmd.Run(ctx, cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if errBuf.String() != "" {
		t.Errorf("expected no stderr, got %q", errBuf.String())
	}
	if outBuf.String() != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", outBuf.String())
	}

	if _, err := os.Stat(tokenPath); !os.IsNotExist(err) {
		t.Error("token file should have been deleted")
	}
}

// TestLogoutCommand_NotLoggedIn verifies logout handles not being logged in
func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	cmd := &commands.LogoutCmd{}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: false,
	}

	ctx := context.Background()
	code := cmd.Run(ctx, cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if errBuf.String() != "" {
		t.Errorf("expected no stderr, got %q", errBuf.String())
	}
	if outBuf.String() != "not logged in\n" {
		t.Errorf("expected 'not logged in\\n', got %q", outBuf.String())
	}
}

// TestLogoutCommand_NotLoggedInQuiet verifies logout is quiet when not logged in
func TestLogoutCommand_NotLoggedInQuiet(t *testing.T) {
	cmd := &commands.LogoutCmd{}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: true,
	}

	ctx := context.Background()
	code := cmd.Run(ctx, cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if outBuf.String() != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", outBuf.String())
	}
}
