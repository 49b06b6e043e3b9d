package api

import (
	"context"
	"fmt"
	"net/http"

	"issuedeck-cli/internal/model"
	"issuedeck-cli/internal/query"
)

// IssueInput is the create/update payload for an issue. Tags carries ids,
// matching the backend contract.
type IssueInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StatusID    *int   `json:"status_id,omitempty"`
	PriorityID  *int   `json:"priority_id,omitempty"`
	TagIDs      []int  `json:"tags,omitempty"`
}

// ListIssues fetches one page of issues for the given query state.
func (c *Client) ListIssues(ctx context.Context, q query.State) (model.Page[model.Issue], error) {
	var out model.Page[model.Issue]
	err := c.do(ctx, http.MethodGet, "/api/issues", q.Encode(), nil, &out)
	return out, err
}

func (c *Client) GetIssue(ctx context.Context, id int) (model.Issue, error) {
	var out model.Issue
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/issues/%d", id), nil, nil, &out)
	return out, err
}

func (c *Client) CreateIssue(ctx context.Context, in IssueInput) (model.Issue, error) {
	var out model.Issue
	err := c.do(ctx, http.MethodPost, "/api/issues", nil, in, &out)
	return out, err
}

func (c *Client) UpdateIssue(ctx context.Context, id int, in IssueInput) (model.Issue, error) {
	var out model.Issue
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/issues/%d", id), nil, in, &out)
	return out, err
}

func (c *Client) DeleteIssue(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/issues/%d", id), nil, nil, nil)
}
