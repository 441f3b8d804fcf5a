package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/portman/internal/errors"
	"github.com/firefly-engineering/portman/internal/registry"
)

var deleteAll bool

var deleteCmd = &cobra.Command{
	Use:   "delete [project]",
	Short: "Delete a project",
	Long: `Deletes the named project, or the project activated by the current
directory when no name is given. With --all every project is deleted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteAll, "all", false, "Delete all projects")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if deleteAll && len(args) > 0 {
		return errors.ValidationError("a project name cannot be combined with --all")
	}

	_, reg, err := loadRegistry()
	if err != nil {
		return err
	}

	if deleteAll {
		deleted := reg.DeleteAll()
		if err := saveRegistry(cmd, reg); err != nil {
			return err
		}
		printDeleted(cmd.OutOrStdout(), deleted)
		return nil
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	}
	target, err := resolveProject(reg, name)
	if err != nil {
		return err
	}
	project, err := reg.Delete(target.Name)
	if err != nil {
		return err
	}
	if err := saveRegistry(cmd, reg); err != nil {
		return err
	}

	logSuccess("Deleted project %s", registry.NamedProject{Name: target.Name, Project: project})
	return nil
}
