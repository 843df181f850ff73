package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change CLI settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.controller(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "server_url = %q\ncookie_name = %q\nconfig_dir = %q\n",
				ctx.cfg.ServerURL, ctx.cfg.CookieName, ctx.dir)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-server <url>",
		Short: "Persist the relay base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := ctx.configDir()
			if err != nil {
				return err
			}
			path := filepath.Join(dir, "config.toml")
			cfg, err := loadConfig(path)
			if err != nil {
				return err
			}
			cfg.ServerURL = args[0]
			if err := saveConfig(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
			return nil
		},
	})
	return cmd
}
