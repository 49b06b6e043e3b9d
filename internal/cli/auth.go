package cli

import (
	"errors"

	"issuedeck-cli/internal/session"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, client, _, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := client.Login(cmd.Context(), email, password)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := sess.Login(res.User, res.AccessToken); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res.User})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd(app *App) *cobra.Command {
	var name string
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, client, _, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := client.Register(cmd.Context(), name, email, password)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := sess.Login(res.User, res.AccessToken); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res.User})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := session.Open()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := sess.Logout(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "logged out"})
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current principal",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := session.Open()
			if err != nil {
				return writeErr(cmd, err)
			}
			p := sess.Principal()
			if p == nil {
				return writeErr(cmd, errors.New("not logged in"))
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}
}
