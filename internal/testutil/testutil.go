// Package testutil provides test utilities for command tests
package testutil

import (
	"testing"

	"github.com/firefly-engineering/portman/internal/allocator"
	"github.com/firefly-engineering/portman/internal/app"
	"github.com/firefly-engineering/portman/internal/config"
	"github.com/firefly-engineering/portman/internal/registry"
	"github.com/firefly-engineering/portman/internal/repo"
	"github.com/firefly-engineering/portman/internal/system"
)

// DataDir is the data directory used by test environments.
const DataDir = "/data"

// RootCaddyfile is the root Caddyfile path derived from the test $HOMEBREW_PREFIX.
const RootCaddyfile = "/homebrew/etc/Caddyfile"

// TestEnv holds the test environment
type TestEnv struct {
	T        *testing.T
	Paths    *config.Paths
	FS       *system.MockFS
	Executor *system.MockExecutor
	Env      *system.MockEnv
	Repos    repo.StaticResolver
	App      *app.App
	cleanup  func()
}

// NewTestEnv creates a test environment backed by in-memory fakes and
// installs it as the default app. Ports are chosen lowest first.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	paths, err := config.NewPaths(DataDir)
	if err != nil {
		t.Fatalf("Failed to build paths: %v", err)
	}

	fsys := system.NewMockFS()
	executor := system.NewMockExecutor()
	env := system.NewMockEnv("/projects/app1")
	env.Vars["HOMEBREW_PREFIX"] = "/homebrew"
	repos := repo.StaticResolver{}

	testApp := app.New(
		app.WithPaths(paths),
		app.WithFS(fsys),
		app.WithExecutor(executor),
		app.WithEnv(env),
		app.WithChooser(allocator.MinChooser{}),
		app.WithResolver(repos),
	)

	// Save original default and set test app
	originalDefault := app.Default
	app.SetDefault(testApp)

	e := &TestEnv{
		T:        t,
		Paths:    paths,
		FS:       fsys,
		Executor: executor,
		Env:      env,
		Repos:    repos,
		App:      testApp,
		cleanup: func() {
			app.SetDefault(originalDefault)
		},
	}
	t.Cleanup(e.Cleanup)

	return e
}

// Cleanup restores the original app default
func (e *TestEnv) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
}

// WriteConfig writes config.toml in the data directory.
func (e *TestEnv) WriteConfig(content string) {
	e.FS.AddFile(e.Paths.ConfigPath, []byte(content))
}

// WriteRegistry writes the registry document.
func (e *TestEnv) WriteRegistry(data *registry.Data) {
	e.T.Helper()

	content, err := registry.Encode(data)
	if err != nil {
		e.T.Fatalf("Failed to encode registry: %v", err)
	}
	e.FS.AddFile(e.Paths.RegistryPath, content)
}

// UseSampleRegistry writes the three-project registry fixture.
func (e *TestEnv) UseSampleRegistry() {
	e.T.Helper()

	data, err := SampleRegistry()
	if err != nil {
		e.T.Fatalf("Failed to load registry fixture: %v", err)
	}
	e.WriteRegistry(data)
}

// Registry reads back the registry document.
func (e *TestEnv) Registry() *registry.Data {
	e.T.Helper()

	content, ok := e.FS.GetFile(e.Paths.RegistryPath)
	if !ok {
		return registry.NewData()
	}
	data, err := registry.Decode(content)
	if err != nil {
		e.T.Fatalf("Failed to decode registry: %v", err)
	}
	return data
}

// RegistryWrites returns how many times the registry file was written.
func (e *TestEnv) RegistryWrites() int {
	return e.FS.Writes[e.Paths.RegistryPath]
}

// SetCwd changes the working directory seen by commands.
func (e *TestEnv) SetCwd(dir string) {
	e.Env.Cwd = dir
}

// SetRepo makes dir part of the repository with the given origin.
func (e *TestEnv) SetRepo(dir, origin string) {
	e.Repos[dir] = origin
}

// SetTerminal controls whether stdout looks like a terminal.
func (e *TestEnv) SetTerminal(terminal bool) {
	e.Env.Terminal = terminal
}
