package cmd

import (
	"fmt"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/portman/internal/app"
	"github.com/firefly-engineering/portman/internal/config"
	"github.com/firefly-engineering/portman/internal/errors"
	"github.com/firefly-engineering/portman/internal/logging"
	"github.com/firefly-engineering/portman/internal/system"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the configuration and file locations",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in $EDITOR",
	Args:  cobra.NoArgs,
	RunE:  runConfigEdit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	paths, err := app.Default.ResolvePaths()
	if err != nil {
		return err
	}
	cfg, err := app.Default.LoadConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config path: %s\nRegistry path: %s\nConfiguration:\n--------------\n%s\n",
		paths.ConfigPath, paths.RegistryPath, cfg)
	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	paths, err := app.Default.ResolvePaths()
	if err != nil {
		return err
	}

	editor, err := system.RequireEnv(app.Default.Env, "EDITOR")
	if err != nil {
		return errors.EditorFailed(err)
	}
	editorArgs, err := shellquote.Split(editor)
	if err != nil {
		return errors.EditorFailed(fmt.Errorf("failed to parse $EDITOR %q: %w", editor, err))
	}
	if len(editorArgs) == 0 {
		return errors.EditorFailed(fmt.Errorf("$EDITOR %q names no command", editor))
	}

	// Seed a commented config so the editor does not open an empty buffer
	if !paths.CustomConfig && !app.Default.FS.Exists(paths.ConfigPath) {
		logging.Debug("writing default config", "path", paths.ConfigPath)
		if err := system.WriteFileAll(app.Default.FS, paths.ConfigPath, []byte(config.DefaultConfigTemplate)); err != nil {
			return errors.ConfigError("failed to create config file", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Opening %q with %q\n", paths.ConfigPath, editor)
	editorArgs = append(editorArgs, paths.ConfigPath)
	if err := app.Default.Executor.ExecuteInteractive(cmd.Context(), editorArgs[0], editorArgs[1:]...); err != nil {
		return errors.EditorFailed(err)
	}
	return nil
}
