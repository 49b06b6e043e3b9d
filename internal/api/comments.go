package api

import (
	"context"
	"fmt"
	"net/http"

	"issuedeck-cli/internal/model"
	"issuedeck-cli/internal/query"
)

type commentInput struct {
	Content string `json:"content"`
}

// ListComments fetches one page of an issue's comment thread. The thread is
// paginated with the same query contract as the issue list.
func (c *Client) ListComments(ctx context.Context, issueID int, q query.State) (model.Page[model.Comment], error) {
	var out model.Page[model.Comment]
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/issues/%d/comments", issueID), q.Encode(), nil, &out)
	return out, err
}

func (c *Client) CreateComment(ctx context.Context, issueID int, content string) (model.Comment, error) {
	var out model.Comment
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/issues/%d/comments", issueID), nil, commentInput{Content: content}, &out)
	return out, err
}

func (c *Client) UpdateComment(ctx context.Context, id int, content string) (model.Comment, error) {
	var out model.Comment
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/comments/%d", id), nil, commentInput{Content: content}, &out)
	return out, err
}

func (c *Client) DeleteComment(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/comments/%d", id), nil, nil, nil)
}
