package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/portman/internal/app"
)

var caddyfileCmd = &cobra.Command{
	Use:   "caddyfile",
	Short: "Print the generated Caddyfile",
	Args:  cobra.NoArgs,
	RunE:  runCaddyfile,
}

var reloadCaddyCmd = &cobra.Command{
	Use:   "reload-caddy",
	Short: "Regenerate the Caddy configuration and reload Caddy",
	Args:  cobra.NoArgs,
	RunE:  runReloadCaddy,
}

func init() {
	rootCmd.AddCommand(caddyfileCmd)
	rootCmd.AddCommand(reloadCaddyCmd)
}

func runCaddyfile(cmd *cobra.Command, args []string) error {
	cfg, reg, err := loadRegistry()
	if err != nil {
		return err
	}
	if err := saveRegistry(cmd, reg); err != nil {
		return err
	}
	rc, err := app.Default.Reconciler(cfg)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), rc.Caddyfile(reg))
	return nil
}

func runReloadCaddy(cmd *cobra.Command, args []string) error {
	cfg, reg, err := loadRegistry()
	if err != nil {
		return err
	}
	rc, err := app.Default.Reconciler(cfg)
	if err != nil {
		return err
	}
	// Saving a repaired registry already reloads Caddy.
	if reg.Dirty() {
		if err := reg.Save(cmd.Context()); err != nil {
			return err
		}
	} else if err := rc.Reload(cmd.Context(), reg); err != nil {
		return err
	}
	logSuccess("Successfully reloaded caddy")
	return nil
}
