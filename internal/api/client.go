package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// TokenSource supplies the bearer credential for outgoing requests. The
// session store implements it; requests from an anonymous session simply
// carry no Authorization header.
type TokenSource interface {
	Token() string
}

// Client is the authenticated request gateway: every call to the backend
// goes through it. It injects the credential header and a JSON content type
// and leaves all other request semantics alone.
type Client struct {
	base   *url.URL
	http   *http.Client
	tokens TokenSource
}

// DefaultServerURL matches the backend's development default.
const DefaultServerURL = "http://localhost:5000"

func NewClient(baseURL string, tokens TokenSource) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultServerURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q: missing scheme or host", baseURL)
	}
	return &Client{base: u, http: &http.Client{}, tokens: tokens}, nil
}

// SetHTTPClient swaps the underlying transport (tests).
func (c *Client) SetHTTPClient(h *http.Client) {
	if h != nil {
		c.http = h
	}
}

func (c *Client) endpoint(path string, values url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if values != nil {
		u.RawQuery = values.Encode()
	}
	return u.String()
}

// do issues one request. body (when non-nil) is marshaled as JSON; out (when
// non-nil) receives the decoded 2xx response body.
func (c *Client) do(ctx context.Context, method, path string, values url.Values, body any, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, values), rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := strings.TrimSpace(c.tokens.Token()); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeStatusError(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
