// Package logging provides logging utilities for portman.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("reassigned port", "project", name, "old", old, "new", port)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserSuccess("Created project %s", name)
//	logging.UserWarning("couldn't reload Caddy config")
//	logging.UserError("%v", err)
//	logging.UserHint("Try providing an explicit port.")
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError, UserHint: stderr
//
// Indicators are colored with lipgloss when the output is a terminal.
package logging
