// Package errors provides typed errors with exit codes for portman.
//
// # Error Types
//
// PortmanError is the base error type that wraps an error with an exit code
// and an optional remediation hint:
//
//	type PortmanError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Hint    string // Suggested next step, printed after the message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess             = 0
//	ExitGeneralError        = 1
//	ExitProjectNotFound     = 2
//	ExitRepoNotFound        = 3
//	ExitPortAllocation      = 4
//	ExitCaddyFailed         = 5
//	ExitConfigError         = 6
//	ExitInvalidName         = 7
//	ExitDuplicateProject    = 8
//	ExitDuplicateDirectory  = 9
//	ExitRegistryError       = 10
//	ExitEditorError         = 11
//	ExitGitError            = 12
//	ExitNoActiveProject     = 13
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
