package session

import (
	"os"
	"path/filepath"
	"testing"

	"issuedeck-cli/internal/model"
)

func TestLoginLogoutRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenDir(dir)
	if err != nil {
		t.Fatalf("OpenDir: %v", err)
	}
	if s.Authenticated() {
		t.Fatalf("fresh store must be anonymous")
	}

	p := model.Principal{ID: 7, Name: "ada", Role: model.RoleMember}
	if err := s.Login(p, "tok-123"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !s.Authenticated() {
		t.Fatalf("expected authenticated after login")
	}
	if got := s.Token(); got != "tok-123" {
		t.Fatalf("token = %q", got)
	}

	// A fresh store over the same dir restores both halves.
	s2, err := OpenDir(dir)
	if err != nil {
		t.Fatalf("OpenDir restore: %v", err)
	}
	if !s2.Authenticated() {
		t.Fatalf("expected restored session to be authenticated")
	}
	if got := s2.Principal(); got == nil || got.ID != 7 || got.Name != "ada" {
		t.Fatalf("restored principal = %+v", got)
	}

	if err := s2.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if s2.Authenticated() || s2.Token() != "" || s2.Principal() != nil {
		t.Fatalf("logout must clear principal and credential together")
	}
	if _, err := os.Stat(filepath.Join(dir, "token")); !os.IsNotExist(err) {
		t.Fatalf("credential file must be removed on logout")
	}
}

func TestPartialRestoreCollapsesToAnonymous(t *testing.T) {
	// Credential present, principal missing.
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "token"), []byte("orphan-token\n"), 0o600); err != nil {
		t.Fatalf("seed token: %v", err)
	}
	s, err := OpenDir(dir)
	if err != nil {
		t.Fatalf("OpenDir: %v", err)
	}
	if s.Authenticated() {
		t.Fatalf("credential without principal must collapse to anonymous")
	}
	if _, err := os.Stat(filepath.Join(dir, "token")); !os.IsNotExist(err) {
		t.Fatalf("partial credential must be cleared, not kept")
	}

	// Principal present, credential missing.
	dir2 := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir2, "session.json"), []byte(`{"id":7,"name":"ada","role":"member"}`), 0o600); err != nil {
		t.Fatalf("seed principal: %v", err)
	}
	s2, err := OpenDir(dir2)
	if err != nil {
		t.Fatalf("OpenDir: %v", err)
	}
	if s2.Authenticated() || s2.Principal() != nil {
		t.Fatalf("principal without credential must collapse to anonymous")
	}
	if _, err := os.Stat(filepath.Join(dir2, "session.json")); !os.IsNotExist(err) {
		t.Fatalf("partial principal must be cleared, not kept")
	}
}

func TestCorruptPrincipalDoesNotAuthenticate(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "token"), []byte("tok\n"), 0o600); err != nil {
		t.Fatalf("seed token: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("seed principal: %v", err)
	}
	s, err := OpenDir(dir)
	if err != nil {
		t.Fatalf("OpenDir: %v", err)
	}
	if s.Authenticated() {
		t.Fatalf("corrupt principal must not authenticate")
	}
}

func TestUpdateUserTouchesOnlyDisplayFields(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenDir(dir)
	if err != nil {
		t.Fatalf("OpenDir: %v", err)
	}
	if err := s.UpdateUser("x"); err != ErrAnonymous {
		t.Fatalf("UpdateUser while anonymous = %v; want ErrAnonymous", err)
	}

	if err := s.Login(model.Principal{ID: 7, Name: "ada", Role: model.RoleAdmin}, "tok"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := s.UpdateUser("Ada L."); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	p := s.Principal()
	if p.Name != "Ada L." || p.Role != model.RoleAdmin || p.ID != 7 {
		t.Fatalf("principal after update = %+v", p)
	}
	if got := s.Token(); got != "tok" {
		t.Fatalf("credential must be untouched; got %q", got)
	}
}

func TestIsOwnerOrAdmin(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenDir(dir)
	if err != nil {
		t.Fatalf("OpenDir: %v", err)
	}
	if s.IsOwnerOrAdmin(1) {
		t.Fatalf("anonymous store must deny")
	}
	if err := s.Login(model.Principal{ID: 7, Name: "ada", Role: model.RoleMember}, "tok"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !s.IsOwnerOrAdmin(7) || s.IsOwnerOrAdmin(8) {
		t.Fatalf("owner predicate wrong")
	}
}
