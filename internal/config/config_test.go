package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("HOLIDAZE_API_KEY", "abc")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "https://v2.api.noroff.dev", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, time.Minute, cfg.VenueCacheTTL)
	assert.Equal(t, 200, cfg.RateLimitPerMin)
	assert.False(t, cfg.Production())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HOLIDAZE_API_KEY", "abc")
	t.Setenv("ENV", "production")
	t.Setenv("HOLIDAZE_API_URL", "http://localhost:9000/")
	t.Setenv("API_TIMEOUT_SECONDS", "3")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.Production())
	assert.Equal(t, "http://localhost:9000", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
}

func TestFromEnvRequiresAPIKey(t *testing.T) {
	t.Setenv("HOLIDAZE_API_KEY", "")
	_, err := FromEnv()
	assert.EqualError(t, err, "HOLIDAZE_API_KEY is required")
}

func TestFromEnvRejectsBadTimeout(t *testing.T) {
	t.Setenv("HOLIDAZE_API_KEY", "abc")
	t.Setenv("API_TIMEOUT_SECONDS", "0")
	_, err := FromEnv()
	assert.Error(t, err)
}

func TestSessionKeys(t *testing.T) {
	hash := make([]byte, 32)
	block := make([]byte, 16)
	for i := range hash {
		hash[i] = byte(i)
	}

	path := filepath.Join(t.TempDir(), "hash.key")
	require.NoError(t, os.WriteFile(path, []byte(base64.StdEncoding.EncodeToString(hash)+"\n"), 0o600))

	t.Setenv("HOLIDAZE_API_KEY", "abc")
	t.Setenv("COOKIE_HASH_KEY", path)
	t.Setenv("COOKIE_BLOCK_KEY", base64.StdEncoding.EncodeToString(block))

	cfg, err := FromEnv()
	require.NoError(t, err)
	h, b, err := cfg.SessionKeys()
	require.NoError(t, err)
	assert.Equal(t, hash, h)
	assert.Equal(t, block, b)
}

func TestSessionKeysMissing(t *testing.T) {
	t.Setenv("HOLIDAZE_API_KEY", "abc")
	t.Setenv("COOKIE_HASH_KEY", "")
	t.Setenv("COOKIE_BLOCK_KEY", "")
	cfg, err := FromEnv()
	require.NoError(t, err)
	_, _, err = cfg.SessionKeys()
	assert.Error(t, err)
}

func TestSessionKeysBadBlockLength(t *testing.T) {
	t.Setenv("HOLIDAZE_API_KEY", "abc")
	t.Setenv("COOKIE_HASH_KEY", base64.StdEncoding.EncodeToString(make([]byte, 32)))
	t.Setenv("COOKIE_BLOCK_KEY", base64.StdEncoding.EncodeToString(make([]byte, 10)))
	cfg, err := FromEnv()
	require.NoError(t, err)
	_, _, err = cfg.SessionKeys()
	assert.EqualError(t, err, "COOKIE_BLOCK_KEY: want 16, 24 or 32 bytes, got 10")
}
