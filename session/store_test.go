package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoltStoreToken(t *testing.T) {
	store := openStore(t, t.TempDir())
	defer store.Close()

	token, err := store.LoadToken()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.SaveToken("abc"))
	token, err = store.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	require.NoError(t, store.ClearToken())
	token, err = store.LoadToken()
	require.NoError(t, err)
	assert.Empty(t, token)

	assert.Error(t, store.SaveToken(""))
}

func TestBoltStoreIntroductionsSurviveReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	store := openStore(t, dir)
	seen, err := store.HasSeenIntroduction("user-1")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, store.MarkIntroductionSeen("user-1"))
	require.NoError(t, store.SaveToken("abc"))
	require.NoError(t, store.ClearToken())
	require.NoError(t, store.Close())

	_, err = os.Stat(filepath.Join(dir, "session.db"))
	require.NoError(t, err)

	reopened := openStore(t, dir)
	defer reopened.Close()

	seen, err = reopened.HasSeenIntroduction("user-1")
	require.NoError(t, err)
	assert.True(t, seen, "clearing the token keeps introduction flags")

	seen, err = reopened.HasSeenIntroduction("user-2")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestLoadClientConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "client.toml")
	require.NoError(t, os.WriteFile(path, []byte("base_url = \"https://steps.example.com\"\ndata_dir = \"/var/lib/steps\"\n"), 0o600))

	cfg, err := LoadClientConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://steps.example.com", cfg.BaseURL)
	assert.Equal(t, "/var/lib/steps", cfg.DataDir)

	cfg, err = LoadClientConfig(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.NotEmpty(t, cfg.DataDir)

	require.NoError(t, os.WriteFile(path, []byte("base_url = "), 0o600))
	_, err = LoadClientConfig(path)
	assert.Error(t, err)
}
