package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/portman/internal/app"
	"github.com/firefly-engineering/portman/internal/config"
	"github.com/firefly-engineering/portman/internal/errors"
	"github.com/firefly-engineering/portman/internal/logging"
	"github.com/firefly-engineering/portman/internal/registry"
)

// loadRegistry loads the config and the registry reconciled against it.
func loadRegistry() (*config.Config, *registry.Registry, error) {
	cfg, err := app.Default.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	reg, err := app.Default.LoadRegistry(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, reg, nil
}

// saveRegistry persists reg. A failed Caddy reload is reported as a warning
// because the registry change has already been written.
func saveRegistry(cmd *cobra.Command, reg *registry.Registry) error {
	err := reg.Save(cmd.Context())
	if err != nil && errors.HasCode(err, errors.ExitCaddyFailed) {
		logWarning("%v", err)
		logging.UserHint(errors.GetHint(err))
		return nil
	}
	return err
}

func workingDirectory() (string, error) {
	cwd, err := app.Default.Env.Getwd()
	if err != nil {
		return "", errors.Wrap(errors.ExitGeneralError, "failed to get current directory", err)
	}
	return cwd, nil
}

// activeProject returns the project whose directory is the working directory.
func activeProject(reg *registry.Registry) (registry.NamedProject, error) {
	cwd, err := workingDirectory()
	if err != nil {
		return registry.NamedProject{}, err
	}
	project, ok := reg.MatchDirectory(cwd)
	if !ok {
		return registry.NamedProject{}, errors.NoActiveProject()
	}
	logging.Debug("matched active project", "project", project.Name, "cwd", cwd)
	return project, nil
}

// resolveProject returns the named project, or the active project when name
// is empty.
func resolveProject(reg *registry.Registry, name string) (registry.NamedProject, error) {
	if name == "" {
		return activeProject(reg)
	}
	project, ok := reg.Get(name)
	if !ok {
		return registry.NamedProject{}, errors.NonExistentProject(name)
	}
	return registry.NamedProject{Name: name, Project: project}, nil
}

// activeRepo returns the origin URL of the repository containing the
// working directory.
func activeRepo(ctx context.Context) (string, error) {
	cwd, err := workingDirectory()
	if err != nil {
		return "", err
	}
	return app.Default.Resolver.Origin(ctx, cwd)
}

func parsePort(arg string) (uint16, error) {
	port, err := strconv.ParseUint(arg, 10, 16)
	if err != nil || port == 0 {
		return 0, errors.ValidationError(fmt.Sprintf("invalid port %q: must be between 1 and 65535", arg))
	}
	return uint16(port), nil
}

func isTerminal() bool {
	return app.Default.Env.IsTerminal()
}

// printDeleted writes the summary used by commands that delete several projects.
func printDeleted(w io.Writer, deleted []registry.NamedProject) {
	if len(deleted) == 1 {
		fmt.Fprintln(w, "Deleted 1 project")
	} else {
		fmt.Fprintf(w, "Deleted %d projects\n", len(deleted))
	}
	for _, project := range deleted {
		fmt.Fprintln(w, project)
	}
}
