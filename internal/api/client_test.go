package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"issuedeck-cli/internal/model"
	"issuedeck-cli/internal/query"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestGatewayInjectsCredentialAndContentType(t *testing.T) {
	var gotAuth, gotCT string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCT = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[],"total_count":0,"skip":0,"limit":5}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, staticToken("tok-abc"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.ListIssues(context.Background(), query.Default(5)); err != nil {
		t.Fatalf("ListIssues: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotCT != "application/json" {
		t.Fatalf("Content-Type = %q", gotCT)
	}
}

func TestGatewayOmitsHeaderWhenAnonymous(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, staticToken(""))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.Taxonomy(KindTags).List(context.Background()); err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("anonymous request must carry no Authorization header; got %q", gotAuth)
	}
}

func TestListIssuesPassesQueryString(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"data":[],"total_count":0,"skip":5,"limit":5}`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, nil)
	q := query.Default(5).WithFilter(query.KeyStatus, "2").WithSkip(5)
	if _, err := c.ListIssues(context.Background(), q); err != nil {
		t.Fatalf("ListIssues: %v", err)
	}
	parsed := query.Decode(mustParseQuery(t, gotQuery), 99)
	if parsed.Skip != 5 || parsed.Limit != 5 || parsed.Filters[query.KeyStatus] != "2" {
		t.Fatalf("server saw query %q -> %+v", gotQuery, parsed)
	}
}

func TestDeleteConflictDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{
			"error": "Cannot delete, in use",
			"message": "status is referenced by open issues",
			"affected_issues": [{"id":7,"title":"Bug A"},{"id":9,"title":"Bug B"}]
		}`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, staticToken("tok"))
	err := c.Taxonomy(KindStatuses).Delete(context.Background(), 3)
	ce, ok := AsConflict(err)
	if !ok {
		t.Fatalf("expected ConflictError; got %v", err)
	}
	want := []model.AffectedIssue{{ID: 7, Title: "Bug A"}, {ID: 9, Title: "Bug B"}}
	if len(ce.AffectedIssues) != 2 || ce.AffectedIssues[0] != want[0] || ce.AffectedIssues[1] != want[1] {
		t.Fatalf("affected issues = %+v", ce.AffectedIssues)
	}
	if ce.ErrText != "Cannot delete, in use" {
		t.Fatalf("error text = %q", ce.ErrText)
	}
}

func TestNotFoundClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, staticToken("tok"))
	err := c.DeleteIssue(context.Background(), 42)
	if !IsNotFound(err) {
		t.Fatalf("expected not-found classification; got %v", err)
	}
	if IsRetryable(err) {
		t.Fatalf("a server verdict is not retryable")
	}
}

func TestServerMessageSurfacedVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"validation failed","message":"name must not be empty"}`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, staticToken("tok"))
	_, err := c.Taxonomy(KindTags).Create(context.Background(), TaxonomyInput{Name: "x"})
	se, ok := err.(*StatusError)
	if !ok {
		t.Fatalf("expected StatusError; got %T %v", err, err)
	}
	if se.Message != "name must not be empty" {
		t.Fatalf("message = %q; server wording must be preserved", se.Message)
	}
}

func TestTransportErrorIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c, _ := NewClient(srv.URL, staticToken("tok"))
	_, err := c.ListIssues(context.Background(), query.Default(5))
	if err == nil || !IsRetryable(err) {
		t.Fatalf("expected retryable transport error; got %v", err)
	}
}

func TestLoginReturnsPrincipalAndToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/login" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"user":{"id":7,"name":"ada","role":"member"},"access_token":"tok-xyz"}`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, nil)
	sess, err := c.Login(context.Background(), "ada@example.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.User.ID != 7 || sess.AccessToken != "tok-xyz" {
		t.Fatalf("session = %+v", sess)
	}
}

func mustParseQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	values, err := url.ParseQuery(raw)
	if err != nil {
		t.Fatalf("parse query %q: %v", raw, err)
	}
	return values
}
