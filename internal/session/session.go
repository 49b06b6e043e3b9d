package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"issuedeck-cli/internal/model"
	"issuedeck-cli/internal/perm"
)

// Store holds the current principal and bearer credential for the lifetime
// of the process, backed by durable files so a session survives restarts.
//
// The principal (session.json) and the credential (token) are persisted
// separately: a malformed principal never silently invalidates a valid
// credential and vice versa. The session is authenticated only when both are
// present; a partial restore collapses to anonymous and clears the leftover
// half.
type Store struct {
	mu        sync.RWMutex
	dir       string
	principal *model.Principal
	token     string
}

var ErrAnonymous = errors.New("not logged in")

const (
	principalFile  = "session.json"
	credentialFile = "token"
)

// Open restores a session store from the default config dir.
func Open() (*Store, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return OpenDir(dir)
}

// OpenDir restores a session store from an explicit directory.
func OpenDir(dir string) (*Store, error) {
	s := &Store{dir: dir}
	if err := s.restore(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) principalPath() string  { return filepath.Join(s.dir, principalFile) }
func (s *Store) credentialPath() string { return filepath.Join(s.dir, credentialFile) }

func (s *Store) restore() error {
	token := ""
	if b, err := os.ReadFile(s.credentialPath()); err == nil {
		token = strings.TrimSpace(string(b))
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	var principal *model.Principal
	if b, err := os.ReadFile(s.principalPath()); err == nil {
		var p model.Principal
		if json.Unmarshal(b, &p) == nil && p.ID != 0 {
			principal = &p
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if token == "" || principal == nil {
		// Half a session is worse than none: clear whatever survived.
		return s.clearFiles()
	}

	s.principal = principal
	s.token = token
	return nil
}

func (s *Store) clearFiles() error {
	var firstErr error
	for _, p := range []string{s.credentialPath(), s.principalPath()} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Authenticated reports whether both principal and credential are set.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal != nil && s.token != ""
}

// Principal returns a copy of the current principal, or nil when anonymous.
func (s *Store) Principal() *model.Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.principal == nil {
		return nil
	}
	p := *s.principal
	return &p
}

// Token returns the bearer credential, or "" when anonymous.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.principal == nil {
		return ""
	}
	return s.token
}

// IsOwnerOrAdmin reports whether the current principal may mutate a resource
// owned by ownerID.
func (s *Store) IsOwnerOrAdmin(ownerID int) bool {
	return perm.CanMutate(s.Principal(), ownerID)
}

// Login transitions to authenticated, setting principal and credential
// together. The credential is written first; if persisting the principal
// fails the credential is rolled back so no half-session is left on disk.
func (s *Store) Login(p model.Principal, token string) error {
	token = strings.TrimSpace(token)
	if p.ID == 0 || token == "" {
		return errors.New("login requires both a user and an access token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	if err := atomicWriteFile(s.dir, credentialFile+".*.tmp", s.credentialPath(), []byte(token+"\n"), 0o600); err != nil {
		return err
	}
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	if err := atomicWriteFile(s.dir, principalFile+".*.tmp", s.principalPath(), b, 0o600); err != nil {
		_ = os.Remove(s.credentialPath())
		return err
	}

	s.principal = &p
	s.token = token
	return nil
}

// Logout clears principal and credential together.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = nil
	s.token = ""
	return s.clearFiles()
}

// UpdateUser replaces the principal's display fields after the server
// confirmed the change. The credential is never touched.
func (s *Store) UpdateUser(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.principal == nil || s.token == "" {
		return ErrAnonymous
	}
	p := *s.principal
	p.Name = name
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	if err := atomicWriteFile(s.dir, principalFile+".*.tmp", s.principalPath(), b, 0o600); err != nil {
		return err
	}
	s.principal = &p
	return nil
}
