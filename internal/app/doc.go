// Package app provides the application context for portman.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Paths    *config.Paths          // Data directory layout
//	    FS       system.FileSystem      // File access
//	    Executor system.CommandExecutor // git, caddy, and $EDITOR
//	    Env      system.Environment     // Variables, cwd, TTY
//	    Chooser  allocator.Chooser      // Port choice strategy
//	    Resolver repo.Resolver          // Repository identity
//	}
//
// # Creating an App
//
// Use New with functional options:
//
//	// Production usage
//	a := app.New()
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithFS(system.NewMockFS()),
//	    app.WithExecutor(system.NewMockExecutor()),
//	    app.WithChooser(allocator.MinChooser{}),
//	)
//
// Commands load the configuration and registry through the App:
//
//	cfg, err := a.LoadConfig()
//	reg, err := a.LoadRegistry(cfg)
package app
