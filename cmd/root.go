package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/portman/internal/errors"
	"github.com/firefly-engineering/portman/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "portman",
	Short: "Manage local development ports",
	Long: `portman assigns each of your development projects a stable port and
keeps a Caddy reverse proxy in sync, so every project is reachable at
https://<project>.localhost.

Projects can be activated by a directory and can have a linked port that
forwards to the project's own port.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, cmd.ErrOrStderr())
	},
}

// Execute runs the root command and reports any error with its hint.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logging.UserError("%v", err)
		logging.UserHint(errors.GetHint(err))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)
