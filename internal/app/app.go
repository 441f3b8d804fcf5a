// Package app provides the application context for portman.
// It allows dependency injection for testing.
package app

import (
	"runtime"

	"github.com/firefly-engineering/portman/internal/allocator"
	"github.com/firefly-engineering/portman/internal/caddy"
	"github.com/firefly-engineering/portman/internal/config"
	"github.com/firefly-engineering/portman/internal/logging"
	"github.com/firefly-engineering/portman/internal/registry"
	"github.com/firefly-engineering/portman/internal/repo"
	"github.com/firefly-engineering/portman/internal/system"
)

// App holds the application dependencies
type App struct {
	// Paths holds the resolved file locations. When nil they are derived
	// from Env on first use.
	Paths *config.Paths

	FS       system.FileSystem
	Executor system.CommandExecutor
	Env      system.Environment

	// Chooser picks new ports from the pool
	Chooser allocator.Chooser

	// Resolver identifies the git repository of a directory
	Resolver repo.Resolver

	// GOOS selects the platform data directory layout
	GOOS string
}

// Option is a function that configures the App
type Option func(*App)

// WithPaths sets custom paths
func WithPaths(paths *config.Paths) Option {
	return func(a *App) {
		a.Paths = paths
	}
}

// WithFS sets a custom file system
func WithFS(fsys system.FileSystem) Option {
	return func(a *App) {
		a.FS = fsys
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(executor system.CommandExecutor) Option {
	return func(a *App) {
		a.Executor = executor
	}
}

// WithEnv sets a custom environment
func WithEnv(env system.Environment) Option {
	return func(a *App) {
		a.Env = env
	}
}

// WithChooser sets the port choice strategy
func WithChooser(chooser allocator.Chooser) Option {
	return func(a *App) {
		a.Chooser = chooser
	}
}

// WithResolver sets a custom repository resolver
func WithResolver(resolver repo.Resolver) Option {
	return func(a *App) {
		a.Resolver = resolver
	}
}

// New creates a new App with the given options.
// Unset dependencies use the real operating system.
func New(opts ...Option) *App {
	app := &App{
		FS:       system.DefaultFS(),
		Executor: system.DefaultExecutor(),
		Env:      system.DefaultEnv(),
		Chooser:  allocator.RandomChooser{},
		GOOS:     runtime.GOOS,
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.Resolver == nil {
		app.Resolver = repo.NewGitResolver(app.Executor)
	}

	return app
}

// ResolvePaths returns the configured paths, resolving them from the
// environment the first time.
func (a *App) ResolvePaths() (*config.Paths, error) {
	if a.Paths != nil {
		return a.Paths, nil
	}
	paths, err := config.ResolvePaths(a.Env, a.GOOS)
	if err != nil {
		return nil, err
	}
	logging.Debug("resolved paths", "data_dir", paths.DataDir, "config", paths.ConfigPath)
	a.Paths = paths
	return paths, nil
}

// LoadConfig reads the user configuration.
func (a *App) LoadConfig() (*config.Config, error) {
	paths, err := a.ResolvePaths()
	if err != nil {
		return nil, err
	}
	return config.Load(a.FS, paths)
}

// Reconciler returns the Caddy reconciler for cfg.
func (a *App) Reconciler(cfg *config.Config) (*caddy.Reconciler, error) {
	paths, err := a.ResolvePaths()
	if err != nil {
		return nil, err
	}
	return caddy.NewReconciler(a.FS, a.Executor, a.Env, paths, cfg), nil
}

// LoadRegistry loads and reconciles the registry against cfg. Saving the
// returned registry reloads Caddy.
func (a *App) LoadRegistry(cfg *config.Config) (*registry.Registry, error) {
	paths, err := a.ResolvePaths()
	if err != nil {
		return nil, err
	}
	rc, err := a.Reconciler(cfg)
	if err != nil {
		return nil, err
	}

	store := registry.NewFileStore(a.FS, paths.RegistryPath)
	alloc := allocator.New(cfg.ValidPorts(), a.Chooser)
	return registry.New(store, alloc, registry.WithReconciler(rc))
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
