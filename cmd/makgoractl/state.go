package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/usyj/makgora-client/internal/domain"
)

// sessionState is the on-disk session file. It holds the token pair and the
// cached profile so the CLI stays signed in between invocations.
type sessionState struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         domain.User `json:"user"`
}

// stateFile persists a sessionState at a fixed path and doubles as the
// platform client's token source, so a mid-command token refresh lands on
// disk immediately.
type stateFile struct {
	path string

	mu    sync.Mutex
	state sessionState
}

// newStateFile loads the session file at path, defaulting to
// $HOME/.makgora/session.json. A missing file means signed out.
func newStateFile(path string) (*stateFile, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("state: resolve home dir: %w", err)
		}
		path = filepath.Join(home, ".makgora", "session.json")
	}

	sf := &stateFile{path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return sf, nil
	}
	if err != nil {
		return nil, fmt.Errorf("state: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &sf.state); err != nil {
		return nil, fmt.Errorf("state: parse %s: %w", path, err)
	}
	return sf, nil
}

func (s *stateFile) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("state: create dir: %w", err)
	}
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("state: marshal: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("state: write %s: %w", s.path, err)
	}
	return nil
}

// SignIn stores a freshly issued token pair.
func (s *stateFile) SignIn(pair domain.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AccessToken = pair.AccessToken
	s.state.RefreshToken = pair.RefreshToken
	if pair.User != nil {
		s.state.User = *pair.User
	}
	return s.save()
}

// SetUser caches the signed-in profile.
func (s *stateFile) SetUser(user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = user
	return s.save()
}

// User returns the cached profile.
func (s *stateFile) User() domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.User
}

// SignedIn reports whether a token pair is present.
func (s *stateFile) SignedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.AccessToken != ""
}

// AccessToken implements the client token source.
func (s *stateFile) AccessToken(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.AccessToken
}

// RefreshToken implements the client token source.
func (s *stateFile) RefreshToken(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.RefreshToken
}

// RotateAccess persists a refreshed access token.
func (s *stateFile) RotateAccess(ctx context.Context, accessToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AccessToken = accessToken
	return s.save()
}

// Invalidate removes the session file; refresh failed and the user must log
// in again.
func (s *stateFile) Invalidate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = sessionState{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("state: remove %s: %w", s.path, err)
	}
	return nil
}
