package system

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ExecError describes a command that could not be started or exited unsuccessfully.
type ExecError struct {
	Command  string
	ExitCode int // -1 when the process never started or was terminated by a signal
	Output   string
	Err      error
}

func (e *ExecError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("failed to execute %q: %v", e.Command, e.Err)
	}
	msg := fmt.Sprintf("%q failed with exit code %d", e.Command, e.ExitCode)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ":\n" + out
	}
	return msg
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// osExecutor implements CommandExecutor using real OS operations.
type osExecutor struct{}

func (e *osExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return output, newExecError(name, args, output, err)
	}
	return output, nil
}

func (e *osExecutor) ExecuteInteractive(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return newExecError(name, args, nil, err)
	}
	return nil
}

func newExecError(name string, args []string, output []byte, err error) *ExecError {
	execErr := &ExecError{
		Command:  strings.Join(append([]string{name}, args...), " "),
		ExitCode: -1,
		Output:   string(output),
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		execErr.ExitCode = exitErr.ExitCode()
	}
	return execErr
}
