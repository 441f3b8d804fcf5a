package errors

import (
	"errors"
	"fmt"
)

// Exit codes for portman
const (
	ExitSuccess            = 0
	ExitGeneralError       = 1
	ExitProjectNotFound    = 2
	ExitRepoNotFound       = 3
	ExitPortAllocation     = 4
	ExitCaddyFailed        = 5
	ExitConfigError        = 6
	ExitInvalidName        = 7
	ExitDuplicateProject   = 8
	ExitDuplicateDirectory = 9
	ExitRegistryError      = 10
	ExitEditorError        = 11
	ExitGitError           = 12
	ExitNoActiveProject    = 13
)

// PortmanError is the base error type for portman
type PortmanError struct {
	Code    int
	Message string
	Hint    string
	Cause   error
}

func (e *PortmanError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PortmanError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *PortmanError) ExitCode() int {
	return e.Code
}

// WithHint returns a copy of the error carrying a different remediation hint.
func (e *PortmanError) WithHint(hint string) *PortmanError {
	c := *e
	c.Hint = hint
	return &c
}

// New creates a new PortmanError
func New(code int, message string) *PortmanError {
	return &PortmanError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a PortmanError
func Wrap(code int, message string, cause error) *PortmanError {
	return &PortmanError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// EmptyAllocator returns an error for an exhausted port pool
func EmptyAllocator(cause error) *PortmanError {
	e := Wrap(ExitPortAllocation, "all available ports have been allocated already", cause)
	e.Hint = "Try running `portman config edit` to edit the config file and modify the `ranges` field to allow more ports."
	return e
}

// DuplicateProject returns an error for a project name that is already taken
func DuplicateProject(name string) *PortmanError {
	e := New(ExitDuplicateProject, fmt.Sprintf("a project already has the name %s", name))
	e.Hint = "Try providing the --overwrite flag to modify the existing project."
	return e
}

// DuplicateDirectory returns an error for a directory claimed by another project
func DuplicateDirectory(owner, directory string) *PortmanError {
	e := New(ExitDuplicateDirectory, fmt.Sprintf("project %s already uses the directory %q", owner, directory))
	e.Hint = fmt.Sprintf("Try running the command in a different directory, providing the --no-activate flag, or running `portman delete %s` and rerunning the command.", owner)
	return e
}

// NonExistentProject returns an error for a missing project
func NonExistentProject(name string) *PortmanError {
	return New(ExitProjectNotFound, fmt.Sprintf("project %s does not exist", name))
}

// NonExistentRepo returns an error for a repository with no remembered port
func NonExistentRepo(repo string) *PortmanError {
	e := New(ExitRepoNotFound, fmt.Sprintf("repository %s does not have a linked port", repo))
	e.Hint = "Try providing an explicit port."
	return e
}

// InvalidProjectName returns an error for a name that is not a valid slug
func InvalidProjectName(name, reason string) *PortmanError {
	return New(ExitInvalidName, fmt.Sprintf("project name %q is invalid: %s", name, reason))
}

// InvalidConfig returns an error for a malformed or invalid config file
func InvalidConfig(cause error) *PortmanError {
	e := Wrap(ExitConfigError, "configuration is invalid", cause)
	e.Hint = "Try running `portman config edit` to edit the config file and correct the error."
	return e
}

// MissingCustomConfig returns an error for a $PORTMAN_CONFIG path that does not exist
func MissingCustomConfig(path string) *PortmanError {
	e := New(ExitConfigError, fmt.Sprintf("custom config file at %q does not exist", path))
	e.Hint = fmt.Sprintf("Try creating a config file at %q or unsetting the $PORTMAN_CONFIG environment variable.", path)
	return e
}

// ConfigError returns an error for other configuration issues
func ConfigError(message string, cause error) *PortmanError {
	return Wrap(ExitConfigError, message, cause)
}

// RegistryError returns an error for registry load or save failures
func RegistryError(message string, cause error) *PortmanError {
	return Wrap(ExitRegistryError, message, cause)
}

// CaddyFailed returns an error for a failed reverse proxy reconciliation
func CaddyFailed(message string, cause error) *PortmanError {
	e := Wrap(ExitCaddyFailed, message, cause)
	e.Hint = "Try running `brew install caddy` and `brew services start caddy`."
	return e
}

// EditorFailed returns an error for a failed $EDITOR invocation
func EditorFailed(cause error) *PortmanError {
	e := Wrap(ExitEditorError, "editor command could not be run", cause)
	e.Hint = "Try setting the $EDITOR environment variable to a valid command like vi or nano."
	return e
}

// GitFailed returns an error for a failed repository lookup
func GitFailed(cause error) *PortmanError {
	e := Wrap(ExitGitError, "could not determine the current git repository", cause)
	e.Hint = "Try running `portman link` in a directory with a git repo or providing an explicit port."
	return e
}

// NoActiveProject returns an error when the working directory has no project
func NoActiveProject() *PortmanError {
	e := New(ExitNoActiveProject, "the current directory does not contain a project")
	e.Hint = "Try running the command again in a directory containing a project or providing an explicit project name."
	return e
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *PortmanError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var portmanErr *PortmanError
	if errors.As(err, &portmanErr) {
		return portmanErr.ExitCode()
	}
	return ExitGeneralError
}

// GetHint extracts the remediation hint from an error chain, if any
func GetHint(err error) string {
	var portmanErr *PortmanError
	if errors.As(err, &portmanErr) {
		return portmanErr.Hint
	}
	return ""
}

// HasCode reports whether err carries the given exit code
func HasCode(err error, code int) bool {
	var portmanErr *PortmanError
	return errors.As(err, &portmanErr) && portmanErr.Code == code
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
