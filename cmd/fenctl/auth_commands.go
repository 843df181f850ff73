package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chess-fen/pkg/client"
)

type credentialFlags struct {
	email    string
	password string
}

func (f *credentialFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&f.password, "password", "p", "", "Account password (prompted when omitted)")
}

func (f *credentialFlags) resolve(cmd *cobra.Command) (string, string, error) {
	email, password := f.email, f.password
	var err error
	if email == "" {
		if email, err = promptLine(cmd.InOrStdin(), cmd.ErrOrStderr(), "Email: "); err != nil {
			return "", "", err
		}
	}
	if password == "" {
		if password, err = promptPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), "Password: "); err != nil {
			return "", "", err
		}
	}
	return email, password, nil
}

func newRegisterCommand(ctx *commandContext) *cobra.Command {
	var creds credentialFlags
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := ctx.controller(cmd.Context())
			if err != nil {
				return err
			}
			email, password, err := creds.resolve(cmd)
			if err != nil {
				return err
			}
			id, err := ctrl.Register(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s)\n", email, id)
			return nil
		},
	}
	creds.bind(cmd)
	return cmd
}

func newLoginCommand(ctx *commandContext) *cobra.Command {
	var creds credentialFlags
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := ctx.controller(cmd.Context())
			if err != nil {
				return err
			}
			email, password, err := creds.resolve(cmd)
			if err != nil {
				return err
			}
			if err := ctrl.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", ctrl.User().Email)
			return nil
		},
	}
	creds.bind(cmd)
	return cmd
}

func newLogoutCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := ctx.controller(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctrl.Logout(cmd.Context()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: server logout failed: %v\n", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := ctx.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			u := ctrl.User()
			if u == nil {
				return client.ErrNotAuthenticated
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", u.Email, u.ID)
			return nil
		},
	}
}
