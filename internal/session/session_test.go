package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tasktrack/internal/config"
	"tasktrack/internal/session"
)

func newStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(&config.Config{Dir: t.TempDir()})
}

func TestStore_TokenRoundTrip(t *testing.T) {
	store := newStore(t)

	_, ok := store.Token()
	require.False(t, ok, "fresh store should have no token")
	require.False(t, store.HasToken())

	require.NoError(t, store.SaveToken("abc123"))

	value, ok := store.Token()
	require.True(t, ok)
	require.Equal(t, "abc123", value)
	require.True(t, store.HasToken())

	// Saving again replaces the single slot.
	require.NoError(t, store.SaveToken("def456"))
	value, _ = store.Token()
	require.Equal(t, "def456", value)

	require.NoError(t, store.ClearToken())
	require.False(t, store.HasToken())

	// Clearing an absent token is not an error.
	require.NoError(t, store.ClearToken())
}

func TestStore_TokenFilePermissionsAndType(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	store := session.NewStore(cfg)
	require.NoError(t, store.SaveToken("abc123"))

	info, err := os.Stat(cfg.TokenPath())
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(cfg.TokenPath())
	require.NoError(t, err)
	require.Contains(t, string(data), `"token_type": "Token"`)
}

func TestStore_TokenSource(t *testing.T) {
	store := newStore(t)

	require.Nil(t, store.TokenSource(), "no source while logged out")

	require.NoError(t, store.SaveToken("abc123"))
	src := store.TokenSource()
	require.NotNil(t, src)

	tok, err := src.Token()
	require.NoError(t, err)
	require.Equal(t, "abc123", tok.AccessToken)
	require.Equal(t, session.TokenType, tok.Type())
}

func TestStore_CorruptTokenFileReadsAsLoggedOut(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	store := session.NewStore(cfg)

	require.NoError(t, os.MkdirAll(cfg.Dir, 0700))
	require.NoError(t, os.WriteFile(cfg.TokenPath(), []byte("{not json"), 0600))

	require.False(t, store.HasToken())
	require.Nil(t, store.TokenSource())
}

func TestStore_NoticeIsOneShot(t *testing.T) {
	store := newStore(t)

	_, ok := store.TakeNotice()
	require.False(t, ok)

	require.NoError(t, store.SetNotice("🎉 Welcome back!"))

	msg, ok := store.TakeNotice()
	require.True(t, ok)
	require.Equal(t, "🎉 Welcome back!", msg)

	_, ok = store.TakeNotice()
	require.False(t, ok, "notice must be consumed exactly once")
}

func TestStore_NoticeFileRemoved(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	store := session.NewStore(cfg)

	require.NoError(t, store.SetNotice("hi"))
	_, ok := store.TakeNotice()
	require.True(t, ok)

	_, err := os.Stat(filepath.Join(cfg.Dir, config.NoticeFile))
	require.True(t, os.IsNotExist(err))
}
