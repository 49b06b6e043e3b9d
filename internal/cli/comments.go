package cli

import (
	"errors"
	"strings"

	"issuedeck-cli/internal/api"
	"issuedeck-cli/internal/query"

	"github.com/spf13/cobra"
)

func newCommentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Comment commands",
	}
	cmd.AddCommand(newCommentsListCmd(app))
	cmd.AddCommand(newCommentsAddCmd(app))
	cmd.AddCommand(newCommentsUpdateCmd(app))
	cmd.AddCommand(newCommentsDeleteCmd(app))
	return cmd
}

func newCommentsListCmd(app *App) *cobra.Command {
	var skip int
	var limit int

	cmd := &cobra.Command{
		Use:   "list <issue-id>",
		Short: "List comments for an issue (paginated)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, cfg, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			issueID, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			q := query.Default(defaultLimit(cfg))
			if limit > 0 {
				q = q.WithLimit(limit)
			}
			if skip > 0 {
				q = q.WithSkip(skip)
			}
			page, err := client.ListComments(cmd.Context(), issueID, q)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": page.Data,
				"meta": map[string]any{
					"total":    page.TotalCount,
					"skip":     q.Skip,
					"limit":    q.Limit,
					"returned": len(page.Data),
				},
			})
		},
	}
	cmd.Flags().IntVar(&skip, "skip", 0, "Pagination offset")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size (default: config defaultLimit)")
	return cmd
}

func newCommentsAddCmd(app *App) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "add <issue-id>",
		Short: "Add a comment to an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, client, _, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !sess.Authenticated() {
				return writeErr(cmd, errors.New("log in first: issuedeck login"))
			}
			issueID, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			body := strings.TrimSpace(content)
			if body == "" {
				return writeErr(cmd, errors.New("comment content is required"))
			}
			c, err := client.CreateComment(cmd.Context(), issueID, body)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": c})
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "Comment body (markdown)")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newCommentsUpdateCmd(app *App) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "update <comment-id>",
		Short: "Update a comment (author or admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, client, _, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !sess.Authenticated() {
				return writeErr(cmd, errors.New("log in first: issuedeck login"))
			}
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			body := strings.TrimSpace(content)
			if body == "" {
				return writeErr(cmd, errors.New("comment content is required"))
			}
			c, err := client.UpdateComment(cmd.Context(), id, body)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": c})
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "Comment body (markdown)")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newCommentsDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <comment-id>",
		Short: "Delete a comment (author or admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, client, _, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !sess.Authenticated() {
				return writeErr(cmd, errors.New("log in first: issuedeck login"))
			}
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.DeleteComment(cmd.Context(), id); err != nil && !api.IsNotFound(err) {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "deleted": true}})
		},
	}
	return cmd
}
