package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/spf13/cobra"
)

func (app *App) loginCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as a CMS operator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if email == "" {
				email = app.config.Email
			}
			if email == "" {
				var err error
				if email, err = GetSimpleText(app.in, "Email", out); err != nil {
					return err
				}
			}
			email = strings.TrimSpace(email)
			if email == "" {
				return fmt.Errorf("email is required")
			}

			password, err := GetPassword(out)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			if _, err := app.client.Login(cmd.Context(), email, password); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			fmt.Fprintf(out, "Logged in as %s\n", email)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "operator email")
	return cmd
}

func (app *App) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}
