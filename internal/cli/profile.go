package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Profile commands",
	}
	cmd.AddCommand(newProfileShowCmd(app))
	cmd.AddCommand(newProfileUpdateCmd(app))
	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current user's server-side profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, client, _, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p := sess.Principal()
			if p == nil {
				return writeErr(cmd, errors.New("not logged in"))
			}
			user, err := client.GetUser(cmd.Context(), p.ID)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": user})
		},
	}
}

func newProfileUpdateCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the current user's display name",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, client, _, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p := sess.Principal()
			if p == nil {
				return writeErr(cmd, errors.New("not logged in"))
			}
			trimmed := strings.TrimSpace(name)
			if trimmed == "" {
				return writeErr(cmd, errors.New("name is required"))
			}
			user, err := client.UpdateUser(cmd.Context(), p.ID, trimmed)
			if err != nil {
				return writeErr(cmd, err)
			}
			// Keep the persisted principal in step with the server's copy.
			if err := sess.UpdateUser(user.Name); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": user})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New display name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
