package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lvdund/ueprofiles/apps/console/internal/validation"
)

func newLoginCmd(e *env) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateCredentials(username, password); err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := e.connect(ctx); err != nil {
				return err
			}
			sess, err := e.rt.Sessions.Login(ctx, username, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", sess.Username)
			if !e.rt.PersistentCredentials() {
				fmt.Fprintln(cmd.ErrOrStderr(), "Warning: VALKEY_ADDR is not set, the credential is not kept after exit")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	return cmd
}

func newLogoutCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the token and clear the stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := e.session(ctx)
			if err != nil {
				return err
			}
			if err := e.rt.Sessions.Logout(ctx, sess); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged out %s\n", sess.Username)
			return nil
		},
	}
}

func newRegisterCmd(e *env) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account on the UE profile service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateCredentials(username, password); err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := e.connect(ctx); err != nil {
				return err
			}
			if err := e.rt.Sessions.Register(ctx, username, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account created: %s\n", username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	return cmd
}
