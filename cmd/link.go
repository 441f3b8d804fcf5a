package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/portman/internal/logging"
)

var (
	linkProject string
	linkNoSave  bool
)

var linkCmd = &cobra.Command{
	Use:   "link [port]",
	Short: "Forward a port to a project",
	Long: `Links a port to a project so that the port forwards to the project's own
port. The project defaults to the one activated by the current directory.

When a port is given for the active project, the port is remembered for the
current repository and later projects created in it are linked to it
automatically. Without a port, the remembered port is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLink,
}

func init() {
	linkCmd.Flags().StringVarP(&linkProject, "project", "p", "", "Project to link instead of the active project")
	linkCmd.Flags().BoolVar(&linkNoSave, "no-save", false, "Do not remember the port for the current repository")
	rootCmd.AddCommand(linkCmd)
}

func runLink(cmd *cobra.Command, args []string) error {
	var port uint16
	if len(args) > 0 {
		p, err := parsePort(args[0])
		if err != nil {
			return err
		}
		port = p
	}
	saveRepo := port != 0 && linkProject == "" && !linkNoSave

	_, reg, err := loadRegistry()
	if err != nil {
		return err
	}

	project, err := resolveProject(reg, linkProject)
	if err != nil {
		return err
	}

	if port == 0 {
		repo, err := activeRepo(cmd.Context())
		if err != nil {
			return err
		}
		if port, err = reg.GetRepoPort(repo); err != nil {
			return err
		}
	}

	if err := reg.Link(project.Name, port); err != nil {
		return err
	}
	if saveRepo {
		if repo, err := activeRepo(cmd.Context()); err == nil {
			reg.SetRepoPort(repo, port)
		} else {
			logging.Debug("not remembering port: no repository", "error", err)
		}
	}
	if err := saveRegistry(cmd, reg); err != nil {
		return err
	}

	logSuccess("Linked port %d to project %s", port, project.Name)
	return nil
}
