package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGamesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Manage saved positions",
	}
	cmd.AddCommand(newGamesListCommand(ctx))
	cmd.AddCommand(newGamesSaveCommand(ctx))
	cmd.AddCommand(newGamesDeleteCommand(ctx))
	return cmd
}

func newGamesListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := ctx.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			games, err := ctrl.Games(cmd.Context())
			if err != nil {
				return err
			}
			if len(games) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved positions")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderGames(games))
			return nil
		},
	}
}

func newGamesSaveCommand(ctx *commandContext) *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "save <fen>",
		Short: "Save a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := ctx.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			game, err := ctrl.SaveGame(cmd.Context(), args[0], title)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %q as %s\n", game.Title, game.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "Title for the position")
	return cmd
}

func newGamesDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := ctx.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctrl.DeleteGame(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}
