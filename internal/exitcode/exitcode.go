// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, not found, invalid input).
	UserError = 1

	// AuthError indicates an auth error (not logged in, session expired).
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)
