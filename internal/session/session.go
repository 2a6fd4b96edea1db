// Package session stores the durable client-side session state: the API
// token and a one-shot notice message. Both live as files under the config
// directory so they survive restarts, like browser local storage would.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/oauth2"

	"tasktrack/internal/config"
)

// TokenType is the scheme the API expects in the Authorization header.
// Stored on the token so SetAuthHeader emits "Token <value>" verbatim.
const TokenType = "Token"

// Store is the single session slot. All components that need the token
// receive a Store (or a TokenSource derived from it) explicitly; nothing
// reads ambient global state.
type Store struct {
	cfg *config.Config
}

// NewStore creates a session store rooted at the config directory.
func NewStore(cfg *config.Config) *Store {
	return &Store{cfg: cfg}
}

// SaveToken persists the session token, replacing any previous one.
// The file is written with mode 0600.
func (s *Store) SaveToken(token string) error {
	if err := s.cfg.EnsureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(&oauth2.Token{
		AccessToken: token,
		TokenType:   TokenType,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.cfg.TokenPath(), data, 0600)
}

// Token returns the stored token value and whether one is present.
// A missing, unreadable or empty token file reads as "not logged in".
func (s *Store) Token() (string, bool) {
	data, err := os.ReadFile(s.cfg.TokenPath())
	if err != nil {
		return "", false
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return "", false
	}
	if tok.AccessToken == "" {
		return "", false
	}
	return tok.AccessToken, true
}

// HasToken reports whether a session token is present.
func (s *Store) HasToken() bool {
	_, ok := s.Token()
	return ok
}

// TokenSource returns a static token source for the stored token, or nil
// when not logged in. The API client attaches headers from this source.
func (s *Store) TokenSource() oauth2.TokenSource {
	value, ok := s.Token()
	if !ok {
		return nil
	}
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: value,
		TokenType:   TokenType,
	})
}

// ClearToken removes the stored token. Clearing an absent token is not an
// error.
func (s *Store) ClearToken() error {
	err := os.Remove(s.cfg.TokenPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// SetNotice queues a one-shot message for the next list run.
func (s *Store) SetNotice(msg string) error {
	if err := s.cfg.EnsureDir(); err != nil {
		return err
	}
	return os.WriteFile(s.cfg.NoticePath(), []byte(msg), 0600)
}

// TakeNotice returns the queued message, if any, and deletes it. The
// message is delivered at most once.
func (s *Store) TakeNotice() (string, bool) {
	data, err := os.ReadFile(s.cfg.NoticePath())
	if err != nil {
		return "", false
	}
	_ = os.Remove(s.cfg.NoticePath())
	msg := strings.TrimSpace(string(data))
	if msg == "" {
		return "", false
	}
	return msg, true
}
