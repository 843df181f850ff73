package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configDirFlag string
	var serverFlag string

	ctx := newCommandContext(&configDirFlag, &serverFlag)

	rootCmd := &cobra.Command{
		Use:           "fenctl",
		Short:         "Turn chessboard images into FEN and manage saved positions",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.persist()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "Directory holding config.toml and the saved session")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "Relay base URL (overrides server_url)")

	rootCmd.AddCommand(newRegisterCommand(ctx))
	rootCmd.AddCommand(newLoginCommand(ctx))
	rootCmd.AddCommand(newLogoutCommand(ctx))
	rootCmd.AddCommand(newWhoamiCommand(ctx))
	rootCmd.AddCommand(newPredictCommand(ctx))
	rootCmd.AddCommand(newGamesCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
