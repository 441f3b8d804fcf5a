// Package system provides abstractions for OS operations to enable testing.
package system

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/term"
)

// FileSystem abstracts file system operations for testability.
type FileSystem interface {
	// ReadFile reads the named file and returns the contents.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to the named file, creating it if necessary.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// MkdirAll creates a directory named path, along with any necessary parents.
	MkdirAll(path string, perm fs.FileMode) error

	// Exists returns true if the path exists.
	Exists(path string) bool
}

// CommandExecutor abstracts command execution for testability.
type CommandExecutor interface {
	// Execute runs a command and returns its combined output.
	Execute(ctx context.Context, name string, args ...string) ([]byte, error)

	// ExecuteInteractive runs a command with stdin/stdout/stderr connected to the terminal.
	ExecuteInteractive(ctx context.Context, name string, args ...string) error
}

// Environment abstracts process-level ambient state.
type Environment interface {
	// LookupEnv retrieves the value of the environment variable named by key.
	LookupEnv(key string) (string, bool)

	// Getwd returns the current working directory.
	Getwd() (string, error)

	// UserHomeDir returns the current user's home directory.
	UserHomeDir() (string, error)

	// IsTerminal reports whether stdout is attached to a terminal.
	IsTerminal() bool
}

// Default instances using real OS operations.
var (
	defaultFS       FileSystem      = &osFileSystem{}
	defaultExecutor CommandExecutor = &osExecutor{}
	defaultEnv      Environment     = &osEnvironment{}
)

// DefaultFS returns the default FileSystem implementation using real OS operations.
func DefaultFS() FileSystem {
	return defaultFS
}

// DefaultExecutor returns the default CommandExecutor implementation.
func DefaultExecutor() CommandExecutor {
	return defaultExecutor
}

// DefaultEnv returns the default Environment implementation.
func DefaultEnv() Environment {
	return defaultEnv
}

// ReadFileIfExists reads a file, reporting found=false instead of an error
// when it does not exist.
func ReadFileIfExists(fsys FileSystem, path string) (data []byte, found bool, err error) {
	data, err = fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read file at %q: %w", path, err)
	}
	return data, true, nil
}

// WriteFileAll writes a file after creating its parent directories.
func WriteFileAll(fsys FileSystem, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create parent directory %q: %w", dir, err)
	}
	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file at %q: %w", path, err)
	}
	return nil
}

// RequireEnv returns the value of an environment variable or an error if it is unset.
func RequireEnv(env Environment, key string) (string, error) {
	value, ok := env.LookupEnv(key)
	if !ok || value == "" {
		return "", fmt.Errorf("failed to read $%s environment variable", key)
	}
	return value, nil
}

// osFileSystem implements FileSystem using real OS operations.
type osFileSystem struct{}

func (f *osFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile replaces path by renaming a fully written temporary file over it,
// so readers never observe a partial write.
func (f *osFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (f *osFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (f *osFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// osEnvironment implements Environment using the real process state.
type osEnvironment struct{}

func (e *osEnvironment) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (e *osEnvironment) Getwd() (string, error) {
	return os.Getwd()
}

func (e *osEnvironment) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (e *osEnvironment) IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
