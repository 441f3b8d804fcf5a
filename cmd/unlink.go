package cmd

import (
	"github.com/spf13/cobra"
)

var unlinkCmd = &cobra.Command{
	Use:   "unlink <port>",
	Short: "Remove a linked port from its project",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnlink,
}

func init() {
	rootCmd.AddCommand(unlinkCmd)
}

func runUnlink(cmd *cobra.Command, args []string) error {
	port, err := parsePort(args[0])
	if err != nil {
		return err
	}

	_, reg, err := loadRegistry()
	if err != nil {
		return err
	}

	name, ok := reg.Unlink(port)
	if err := saveRegistry(cmd, reg); err != nil {
		return err
	}

	if !ok {
		logInfo("Port %d was not linked to a project", port)
		return nil
	}
	logSuccess("Unlinked port %d from project %s", port, name)
	return nil
}
