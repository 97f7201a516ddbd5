// Package exitcode defines exit codes for the CLI and shell commands.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, not found, ambiguous, empty field).
	UserError = 1

	// ConfigError indicates an invalid configuration or environment.
	ConfigError = 2

	// StoreError indicates an unexpected failure inside the task store.
	StoreError = 3

	// UIError indicates the terminal interface could not start or crashed.
	UIError = 4
)
