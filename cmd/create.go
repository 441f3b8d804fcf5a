package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/portman/internal/errors"
	"github.com/firefly-engineering/portman/internal/logging"
	"github.com/firefly-engineering/portman/internal/registry"
)

const derivedNameHint = "Try manually providing a project name."

var (
	createNoLink     bool
	createNoActivate bool
	createOverwrite  bool
)

var createCmd = &cobra.Command{
	Use:   "create [project]",
	Short: "Create a project with a new port",
	Long: `Creates a project and allocates it a port.

The project name defaults to the normalized name of the current directory,
which also becomes the directory that activates the project. When the
current repository has a remembered port, the project is linked to it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().BoolVar(&createNoLink, "no-link", false, "Do not link the port remembered for the current repository")
	createCmd.Flags().BoolVar(&createNoActivate, "no-activate", false, "Do not activate the project in the current directory")
	createCmd.Flags().BoolVar(&createOverwrite, "overwrite", false, "Update the project if it already exists")
	createCmd.MarkFlagsMutuallyExclusive("no-activate", "no-link")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	var name string
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" && createNoActivate {
		return errors.ValidationError("a project name is required with --no-activate")
	}

	_, reg, err := loadRegistry()
	if err != nil {
		return err
	}

	req := registry.CreateRequest{Name: name, Overwrite: createOverwrite}
	if name == "" || !createNoActivate {
		cwd, err := workingDirectory()
		if err != nil {
			return err
		}
		req.Cwd = cwd
		if !createNoActivate {
			req.Directory = cwd
		}
	}
	if !createNoLink {
		req.LinkedPort = rememberedPort(cmd, reg)
	}

	result, err := reg.Create(req)
	if err != nil {
		if name == "" && (errors.HasCode(err, errors.ExitDuplicateProject) || errors.HasCode(err, errors.ExitInvalidName)) {
			var pe *errors.PortmanError
			if errors.As(err, &pe) {
				return pe.WithHint(derivedNameHint)
			}
		}
		return err
	}

	if err := saveRegistry(cmd, reg); err != nil {
		return err
	}

	if !isTerminal() {
		// Only the port, for scripting
		fmt.Fprintln(cmd.OutOrStdout(), result.Port)
		return nil
	}
	verb := "Created"
	if result.Updated {
		verb = "Updated"
	}
	logSuccess("%s project %s", verb, result.NamedProject)
	return nil
}

// rememberedPort returns the port remembered for the current repository, or
// zero when there is no repository or nothing is remembered.
func rememberedPort(cmd *cobra.Command, reg *registry.Registry) uint16 {
	repo, err := activeRepo(cmd.Context())
	if err != nil {
		logging.Debug("not linking: no repository", "error", err)
		return 0
	}
	port, err := reg.GetRepoPort(repo)
	if err != nil {
		logging.Debug("not linking: repository has no remembered port", "repo", repo)
		return 0
	}
	return port
}
