package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getExtended bool

var getCmd = &cobra.Command{
	Use:   "get [project]",
	Short: "Print a project's port",
	Long: `Prints the port of the named project, or of the project activated by the
current directory when no name is given.

With --extended the port, name, directory, and linked port are printed one
per line. The labels are omitted when stdout is not a terminal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().BoolVarP(&getExtended, "extended", "e", false, "Print the name, directory, and linked port too")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	_, reg, err := loadRegistry()
	if err != nil {
		return err
	}
	if err := saveRegistry(cmd, reg); err != nil {
		return err
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	}
	project, err := resolveProject(reg, name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !getExtended {
		fmt.Fprintln(out, project.Port)
		return nil
	}

	linkedPort := ""
	if project.LinkedPort != 0 {
		linkedPort = fmt.Sprint(project.LinkedPort)
	}
	if isTerminal() {
		fmt.Fprintf(out, "port: %d\nname: %s\ndirectory: %s\nlinked port: %s\n",
			project.Port, project.Name, project.Directory, linkedPort)
	} else {
		fmt.Fprintf(out, "%d\n%s\n%s\n%s\n", project.Port, project.Name, project.Directory, linkedPort)
	}
	return nil
}
