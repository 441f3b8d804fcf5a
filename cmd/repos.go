package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/portman/internal/registry"
)

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "Manage the ports remembered for repositories",
}

var reposListCmd = &cobra.Command{
	Use:   "list",
	Short: "List remembered repository ports",
	Args:  cobra.NoArgs,
	RunE:  runReposList,
}

var reposDeleteCmd = &cobra.Command{
	Use:   "delete <repo>",
	Short: "Forget the port remembered for a repository",
	Args:  cobra.ExactArgs(1),
	RunE:  runReposDelete,
}

func init() {
	reposCmd.AddCommand(reposListCmd)
	reposCmd.AddCommand(reposDeleteCmd)
	rootCmd.AddCommand(reposCmd)
}

func runReposList(cmd *cobra.Command, args []string) error {
	_, reg, err := loadRegistry()
	if err != nil {
		return err
	}
	if err := saveRegistry(cmd, reg); err != nil {
		return err
	}
	for _, repo := range reg.Repos() {
		fmt.Fprintln(cmd.OutOrStdout(), repo)
	}
	return nil
}

func runReposDelete(cmd *cobra.Command, args []string) error {
	_, reg, err := loadRegistry()
	if err != nil {
		return err
	}

	port, err := reg.DeleteRepo(args[0])
	if err != nil {
		return err
	}
	if err := saveRegistry(cmd, reg); err != nil {
		return err
	}

	logSuccess("Deleted repo %s", registry.RepoPort{Repo: args[0], Port: port})
	return nil
}
