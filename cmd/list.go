package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all projects",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	_, reg, err := loadRegistry()
	if err != nil {
		return err
	}
	// Persist any repairs made while loading
	if err := saveRegistry(cmd, reg); err != nil {
		return err
	}

	for _, project := range reg.Projects() {
		fmt.Fprintln(cmd.OutOrStdout(), project)
	}
	return nil
}
