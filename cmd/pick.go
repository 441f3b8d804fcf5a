package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/portman/internal/logging"
	"github.com/firefly-engineering/portman/internal/registry"
	"github.com/firefly-engineering/portman/internal/tui"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactive project picker",
	Long: `Opens an interactive TUI for browsing projects, grouped by parent directory.

Use arrow keys or j/k to navigate, / to filter.

Actions:
  Enter  - Print the project's port and URL
  d      - Delete the selected project
  u      - Unlink the selected project's linked port
  q/Esc  - Quit

When stdout is not a terminal, the projects are listed instead.`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	_, reg, err := loadRegistry()
	if err != nil {
		return err
	}
	if err := saveRegistry(cmd, reg); err != nil {
		return err
	}
	projects := reg.Projects()

	if !isTerminal() {
		fmt.Fprint(cmd.OutOrStdout(), tui.SimplePicker(projects))
		return nil
	}

	if len(projects) == 0 {
		logInfo("No projects found. Create one with: portman create")
		return nil
	}

	logging.Debug("picker mode started", "projects", len(projects))
	result, err := tui.RunPicker(projects)
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}
	logging.Debug("picker result", "action", result.Action)

	return applyPickerResult(cmd, reg, result)
}

// applyPickerResult carries out the action chosen in the picker.
func applyPickerResult(cmd *cobra.Command, reg *registry.Registry, result tui.PickerResult) error {
	project := result.Project

	switch result.Action {
	case tui.ActionSelect:
		fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", project.Port, tui.URL(project.Name))

	case tui.ActionDelete:
		deleted, err := reg.Delete(project.Name)
		if err != nil {
			return err
		}
		if err := saveRegistry(cmd, reg); err != nil {
			return err
		}
		logSuccess("Deleted project %s", registry.NamedProject{Name: project.Name, Project: deleted})

	case tui.ActionUnlink:
		if project.LinkedPort == 0 {
			return nil
		}
		name, ok := reg.Unlink(project.LinkedPort)
		if err := saveRegistry(cmd, reg); err != nil {
			return err
		}
		if ok {
			logSuccess("Unlinked port %d from project %s", project.LinkedPort, name)
		}

	case tui.ActionNone, tui.ActionQuit:
	}
	return nil
}
