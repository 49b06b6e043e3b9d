package cli

import (
	"context"

	"issuedeck-cli/internal/api"
	"issuedeck-cli/internal/cache"
	"issuedeck-cli/internal/model"
	"issuedeck-cli/internal/session"
	"issuedeck-cli/internal/taxonomy"

	"github.com/spf13/cobra"
)

// newTaxonomyCmd builds the command tree for one taxonomy kind. Tags,
// statuses and priorities share the same CRUD shape; only tags carry a color.
func newTaxonomyCmd(app *App, kind api.TaxonomyKind, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(kind),
		Short: short,
	}
	cmd.AddCommand(newTaxonomyListCmd(app, kind))
	cmd.AddCommand(newTaxonomyCreateCmd(app, kind))
	cmd.AddCommand(newTaxonomyUpdateCmd(app, kind))
	cmd.AddCommand(newTaxonomyDeleteCmd(app, kind))
	return cmd
}

func taxonomyAdmin(app *App, kind api.TaxonomyKind) (*taxonomy.Admin, error) {
	sess, client, _, err := connect(app)
	if err != nil {
		return nil, err
	}
	return taxonomy.NewAdmin(sess, client.Taxonomy(kind)), nil
}

func newTaxonomyListCmd(app *App, kind api.TaxonomyKind) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List " + string(kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, _, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			entities, err := client.Taxonomy(kind).List(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			snapshotTaxonomy(cmd.Context(), kind, entities)
			return writeOut(cmd, app, map[string]any{"data": entities})
		},
	}
}

func newTaxonomyCreateCmd(app *App, kind api.TaxonomyKind) *cobra.Command {
	var name string
	var color string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a " + singular(kind) + " (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := taxonomyAdmin(app, kind)
			if err != nil {
				return writeErr(cmd, err)
			}
			created, err := admin.Create(cmd.Context(), api.TaxonomyInput{Name: name, Color: color})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": created})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Name")
	_ = cmd.MarkFlagRequired("name")
	if kind == api.KindTags {
		cmd.Flags().StringVar(&color, "color", "", "Display color (hex)")
		_ = cmd.MarkFlagRequired("color")
	}
	return cmd
}

func newTaxonomyUpdateCmd(app *App, kind api.TaxonomyKind) *cobra.Command {
	var name string
	var color string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a " + singular(kind) + " (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := taxonomyAdmin(app, kind)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			updated, err := admin.Update(cmd.Context(), id, api.TaxonomyInput{Name: name, Color: color})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Name")
	_ = cmd.MarkFlagRequired("name")
	if kind == api.KindTags {
		cmd.Flags().StringVar(&color, "color", "", "Display color (hex)")
		_ = cmd.MarkFlagRequired("color")
	}
	return cmd
}

func newTaxonomyDeleteCmd(app *App, kind api.TaxonomyKind) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + singular(kind) + " (admin; refused while issues reference it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := taxonomyAdmin(app, kind)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := admin.Refresh(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			if err := admin.RequestDelete(id); err != nil {
				return writeErr(cmd, err)
			}
			if !yes {
				// Deliberate two-step: show the target and require --yes.
				pending := admin.Pending()
				return writeOut(cmd, app, map[string]any{
					"data":   pending,
					"_hints": []string{"issuedeck " + string(kind) + " delete " + args[0] + " --yes"},
				})
			}
			if err := admin.ConfirmDelete(cmd.Context()); err != nil {
				if c := admin.Conflict(); c != nil {
					// Surface the refusal with the issues that still
					// reference the entity so the user can unblock it.
					_ = writeOut(cmd, app, map[string]any{
						"error":           "in use",
						"message":         c.Message,
						"affected_issues": c.Affected,
					})
					return err
				}
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "deleted": true}})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the delete")
	return cmd
}

func singular(kind api.TaxonomyKind) string {
	switch kind {
	case api.KindTags:
		return "tag"
	case api.KindStatuses:
		return "status"
	case api.KindPriorities:
		return "priority"
	}
	return string(kind)
}

// snapshotTaxonomy mirrors a fetched taxonomy list into the snapshot cache.
// Best effort.
func snapshotTaxonomy(ctx context.Context, kind api.TaxonomyKind, entities []model.TaxonomyEntity) {
	dir, err := session.ConfigDir()
	if err != nil {
		return
	}
	snap, err := cache.Open(ctx, cache.DefaultPath(dir))
	if err != nil {
		return
	}
	defer snap.Close()
	_ = snap.SaveTaxonomy(ctx, string(kind), entities)
}
