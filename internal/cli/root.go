package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"issuedeck-cli/internal/api"
	"issuedeck-cli/internal/cache"
	"issuedeck-cli/internal/format"
	"issuedeck-cli/internal/session"
	"issuedeck-cli/internal/tui"

	"github.com/spf13/cobra"
)

// DefaultLimit is the page size used when neither config nor flags say
// otherwise. Matches the backend default.
const DefaultLimit = 5

type App struct {
	Server     string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "issuedeck",
		Short:        "Issue tracker CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  issuedeck

  # Scriptable commands
  issuedeck issues list --status 2

  # Paginate a shared view (same query contract as the web client URLs)
  issuedeck issues list --url "status_id=2&skip=5&limit=5"
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Server, "server", envOr("ISSUEDECK_SERVER", ""), "Backend base URL (default: "+api.DefaultServerURL+", or config serverUrl)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newRegisterCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newIssuesCmd(app))
	cmd.AddCommand(newCommentsCmd(app))
	cmd.AddCommand(newTaxonomyCmd(app, api.KindTags, "Tag commands (admin)"))
	cmd.AddCommand(newTaxonomyCmd(app, api.KindStatuses, "Status commands (admin)"))
	cmd.AddCommand(newTaxonomyCmd(app, api.KindPriorities, "Priority commands (admin)"))
	cmd.AddCommand(newProfileCmd(app))

	return cmd
}

func runTUI(app *App) error {
	sess, client, cfg, err := connect(app)
	if err != nil {
		return err
	}
	var snap *cache.Cache
	if dir, err := session.ConfigDir(); err == nil {
		// Snapshot cache is best effort; the TUI works without it.
		if c, err := cache.Open(context.Background(), cache.DefaultPath(dir)); err == nil {
			snap = c
			defer snap.Close()
		}
	}
	return tui.Run(sess, client, snap, defaultLimit(cfg))
}

// connect restores the session and builds the gateway client against the
// resolved server URL (--server > ISSUEDECK_SERVER > config > default).
func connect(app *App) (*session.Store, *api.Client, *session.Config, error) {
	sess, err := session.Open()
	if err != nil {
		return nil, nil, nil, err
	}
	cfg, err := session.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	server := app.Server
	if server == "" {
		server = cfg.ServerURL
	}
	client, err := api.NewClient(server, sess)
	if err != nil {
		return nil, nil, nil, err
	}
	return sess, client, cfg, nil
}

func defaultLimit(cfg *session.Config) int {
	if cfg != nil && cfg.DefaultLimit > 0 {
		return cfg.DefaultLimit
	}
	return DefaultLimit
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
