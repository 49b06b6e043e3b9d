package api

import (
	"context"
	"fmt"
	"net/http"

	"issuedeck-cli/internal/model"
)

type userInput struct {
	Name string `json:"name"`
}

// ListUsers fetches the user directory (author filter lookups).
func (c *Client) ListUsers(ctx context.Context) ([]model.Principal, error) {
	var out []model.Principal
	err := c.do(ctx, http.MethodGet, "/api/users", nil, nil, &out)
	return out, err
}

func (c *Client) GetUser(ctx context.Context, id int) (model.Principal, error) {
	var out model.Principal
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil, nil, &out)
	return out, err
}

// UpdateUser changes a user's display fields. The server is the source of
// truth for the merged result.
func (c *Client) UpdateUser(ctx context.Context, id int, name string) (model.Principal, error) {
	var out model.Principal
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d", id), nil, userInput{Name: name}, &out)
	return out, err
}
