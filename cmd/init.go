package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/portman/internal/errors"
	"github.com/firefly-engineering/portman/internal/shell"
)

var initCmd = &cobra.Command{
	Use:   "init <shell>",
	Short: "Print the shell integration script",
	Long: `Prints a script that exports PORT, PORTMAN_PROJECT, and PORTMAN_LINKED_PORT
whenever the current directory belongs to a project.

Add it to your shell configuration, for example:
  portman init fish | source`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: shell.Supported(),
	RunE:      runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	sh, err := shell.New(args[0])
	if err != nil {
		return errors.ValidationError(err.Error())
	}
	fmt.Fprint(cmd.OutOrStdout(), sh.InitScript())
	return nil
}
