package api

import (
	"context"
	"net/http"

	"issuedeck-cli/internal/model"
)

// Session is a successful login or registration: the principal and the
// bearer credential, delivered together.
type Session struct {
	User        model.Principal `json:"user"`
	AccessToken string          `json:"access_token"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session. The request goes out without an
// Authorization header; there is no token to attach yet.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var out Session
	err := c.do(ctx, http.MethodPost, "/api/login", nil, loginRequest{Email: email, Password: password}, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, name, email, password string) (Session, error) {
	var out Session
	err := c.do(ctx, http.MethodPost, "/api/register", nil, registerRequest{Name: name, Email: email, Password: password}, &out)
	return out, err
}
