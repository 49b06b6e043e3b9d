package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"issuedeck-cli/internal/api"
	"issuedeck-cli/internal/cache"
	"issuedeck-cli/internal/model"
	"issuedeck-cli/internal/query"
	"issuedeck-cli/internal/session"

	"github.com/spf13/cobra"
)

func newIssuesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issues",
		Short: "Issue commands",
	}
	cmd.AddCommand(newIssuesListCmd(app))
	cmd.AddCommand(newIssuesShowCmd(app))
	cmd.AddCommand(newIssuesCreateCmd(app))
	cmd.AddCommand(newIssuesUpdateCmd(app))
	cmd.AddCommand(newIssuesDeleteCmd(app))
	return cmd
}

// issueFilterFlags mirrors the recognized query keys so a list invocation and
// a shared URL describe the same view.
type issueFilterFlags struct {
	rawURL     string
	status     int
	priority   int
	tags       string
	author     int
	authorName string
	start      string
	end        string
	skip       int
	limit      int
}

func (f *issueFilterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.rawURL, "url", "", "Query string from a shared view URL (other flags override it)")
	cmd.Flags().IntVar(&f.status, "status", 0, "Filter by status id")
	cmd.Flags().IntVar(&f.priority, "priority", 0, "Filter by priority id")
	cmd.Flags().StringVar(&f.tags, "tags", "", "Filter by tag ids (comma-separated)")
	cmd.Flags().IntVar(&f.author, "author", 0, "Filter by author id")
	cmd.Flags().StringVar(&f.authorName, "author-name", "", "Filter by author name")
	cmd.Flags().StringVar(&f.start, "start", "", "Filter by creation date from (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "Filter by creation date until (YYYY-MM-DD)")
	cmd.Flags().IntVar(&f.skip, "skip", 0, "Pagination offset")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "Page size (default: config defaultLimit)")
}

func (f *issueFilterFlags) state(cfg *session.Config) (query.State, error) {
	q := query.Default(defaultLimit(cfg))
	if f.rawURL != "" {
		values, err := url.ParseQuery(strings.TrimPrefix(f.rawURL, "?"))
		if err != nil {
			return q, fmt.Errorf("invalid --url query: %w", err)
		}
		q = query.Decode(values, defaultLimit(cfg))
	}
	if f.status > 0 {
		q = q.WithFilter(query.KeyStatus, strconv.Itoa(f.status))
	}
	if f.priority > 0 {
		q = q.WithFilter(query.KeyPriority, strconv.Itoa(f.priority))
	}
	if f.tags != "" {
		q = q.WithFilter(query.KeyTags, f.tags)
	}
	if f.author > 0 {
		q = q.WithFilter(query.KeyAuthorID, strconv.Itoa(f.author))
	}
	if f.authorName != "" {
		q = q.WithFilter(query.KeyAuthorName, f.authorName)
	}
	if f.start != "" {
		q = q.WithFilter(query.KeyStart, f.start)
	}
	if f.end != "" {
		q = q.WithFilter(query.KeyEnd, f.end)
	}
	if f.limit > 0 {
		q = q.WithLimit(f.limit)
	}
	if f.skip > 0 {
		q = q.WithSkip(f.skip)
	}
	return q, nil
}

func newIssuesListCmd(app *App) *cobra.Command {
	var flags issueFilterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issues (paginated, filtered)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, cfg, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			q, err := flags.state(cfg)
			if err != nil {
				return writeErr(cmd, err)
			}
			page, err := client.ListIssues(cmd.Context(), q)
			if err != nil {
				return writeErr(cmd, err)
			}
			snapshotIssuePage(cmd.Context(), q, page)

			hints := []string{}
			if q.HasNext(page.TotalCount) {
				hints = append(hints, "issuedeck issues list --url "+strconv.Quote(q.Next().QueryString(defaultLimit(cfg))))
			}
			if q.HasPrev() {
				hints = append(hints, "issuedeck issues list --url "+strconv.Quote(q.Prev().QueryString(defaultLimit(cfg))))
			}
			out := map[string]any{
				"data": page.Data,
				"meta": map[string]any{
					"total":    page.TotalCount,
					"skip":     q.Skip,
					"limit":    q.Limit,
					"returned": len(page.Data),
					"url":      q.QueryString(defaultLimit(cfg)),
				},
			}
			if len(hints) > 0 {
				out["_hints"] = hints
			}
			return writeOut(cmd, app, out)
		},
	}
	flags.register(cmd)
	return cmd
}

func newIssuesShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <issue-id>",
		Short: "Show one issue with the first page of its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, cfg, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			issue, err := client.GetIssue(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			comments, err := client.ListComments(cmd.Context(), id, query.Default(defaultLimit(cfg)))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": issue,
				"comments": map[string]any{
					"data": comments.Data,
					"meta": map[string]any{"total": comments.TotalCount, "limit": comments.Limit},
				},
			})
		},
	}
	return cmd
}

type issueInputFlags struct {
	title       string
	description string
	status      int
	priority    int
	tags        string
}

func (f *issueInputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Issue title")
	cmd.Flags().StringVar(&f.description, "description", "", "Issue description (markdown)")
	cmd.Flags().IntVar(&f.status, "status", 0, "Status id")
	cmd.Flags().IntVar(&f.priority, "priority", 0, "Priority id")
	cmd.Flags().StringVar(&f.tags, "tags", "", "Tag ids (comma-separated)")
}

func (f *issueInputFlags) input() (api.IssueInput, error) {
	in := api.IssueInput{Title: strings.TrimSpace(f.title), Description: f.description}
	if in.Title == "" {
		return in, errors.New("title is required")
	}
	if f.status > 0 {
		in.StatusID = &f.status
	}
	if f.priority > 0 {
		in.PriorityID = &f.priority
	}
	if f.tags != "" {
		for _, part := range strings.Split(f.tags, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || n <= 0 {
				return in, fmt.Errorf("invalid tag id %q", part)
			}
			in.TagIDs = append(in.TagIDs, n)
		}
	}
	return in, nil
}

func newIssuesCreateCmd(app *App) *cobra.Command {
	var flags issueInputFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an issue",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, client, _, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !sess.Authenticated() {
				return writeErr(cmd, errors.New("log in first: issuedeck login"))
			}
			in, err := flags.input()
			if err != nil {
				return writeErr(cmd, err)
			}
			issue, err := client.CreateIssue(cmd.Context(), in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": issue})
		},
	}
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newIssuesUpdateCmd(app *App) *cobra.Command {
	var flags issueInputFlags

	cmd := &cobra.Command{
		Use:   "update <issue-id>",
		Short: "Update an issue (author or admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, client, _, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			existing, err := client.GetIssue(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			// Local gate before the write reaches the server; the server
			// still has the final say.
			if !sess.IsOwnerOrAdmin(existing.ResourceAuthorID()) {
				return writeErr(cmd, errors.New("permission denied: only the author or an admin may update this issue"))
			}
			in, err := flags.input()
			if err != nil {
				return writeErr(cmd, err)
			}
			issue, err := client.UpdateIssue(cmd.Context(), id, in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": issue})
		},
	}
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newIssuesDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <issue-id>",
		Short: "Delete an issue (author or admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, client, _, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			existing, err := client.GetIssue(cmd.Context(), id)
			if err != nil {
				if api.IsNotFound(err) {
					// Already gone; nothing to do.
					return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "deleted": true}})
				}
				return writeErr(cmd, err)
			}
			if !sess.IsOwnerOrAdmin(existing.ResourceAuthorID()) {
				return writeErr(cmd, errors.New("permission denied: only the author or an admin may delete this issue"))
			}
			if err := client.DeleteIssue(cmd.Context(), id); err != nil && !api.IsNotFound(err) {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "deleted": true}})
		},
	}
	return cmd
}

// snapshotIssuePage stores the fetched page in the local snapshot cache so
// the TUI has something to show before its first fetch lands. Best effort.
func snapshotIssuePage(ctx context.Context, q query.State, page model.Page[model.Issue]) {
	dir, err := session.ConfigDir()
	if err != nil {
		return
	}
	snap, err := cache.Open(ctx, cache.DefaultPath(dir))
	if err != nil {
		return
	}
	defer snap.Close()
	_ = cache.SavePage(ctx, snap, "issues", q, page)
}

func parseID(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return n, nil
}
