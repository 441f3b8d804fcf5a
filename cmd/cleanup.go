package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/portman/internal/app"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete projects whose directory no longer exists",
	Args:  cobra.NoArgs,
	RunE:  runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	_, reg, err := loadRegistry()
	if err != nil {
		return err
	}

	deleted := reg.Cleanup(app.Default.FS)
	if err := saveRegistry(cmd, reg); err != nil {
		return err
	}

	printDeleted(cmd.OutOrStdout(), deleted)
	return nil
}
