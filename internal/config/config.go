package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env        string
	LogLevel   string
	ListenAddr string

	APIBaseURL string
	APIKey     string
	APITimeout time.Duration
	// Token is a bearer token for CLI commands that act as a user.
	Token string

	// DatabaseURL is optional; empty disables the attempt ledger.
	DatabaseURL string

	// RedisAddr is optional; empty disables the venue list cache.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	VenueCacheTTL time.Duration

	RateLimitPerMin int

	// raw values; see SessionKeys
	cookieHashKey  string
	cookieBlockKey string
}

func FromEnv() (Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("HOLIDAZE_API_URL", "https://v2.api.noroff.dev")
	v.SetDefault("API_TIMEOUT_SECONDS", 10)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("VENUE_CACHE_SECONDS", 60)
	v.SetDefault("RATE_LIMIT_PER_MIN", 200)
	// AutomaticEnv only resolves keys viper has heard of
	for _, k := range []string{"HOLIDAZE_API_KEY", "HOLIDAZE_TOKEN", "DATABASE_URL", "REDIS_ADDR", "REDIS_PASSWORD", "COOKIE_HASH_KEY", "COOKIE_BLOCK_KEY"} {
		v.SetDefault(k, "")
	}

	cfg := Config{
		Env:             v.GetString("ENV"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		ListenAddr:      v.GetString("LISTEN_ADDR"),
		APIBaseURL:      strings.TrimRight(v.GetString("HOLIDAZE_API_URL"), "/"),
		APIKey:          v.GetString("HOLIDAZE_API_KEY"),
		Token:           v.GetString("HOLIDAZE_TOKEN"),
		DatabaseURL:     v.GetString("DATABASE_URL"),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisPassword:   v.GetString("REDIS_PASSWORD"),
		RedisDB:         v.GetInt("REDIS_DB"),
		RateLimitPerMin: v.GetInt("RATE_LIMIT_PER_MIN"),
		cookieHashKey:   v.GetString("COOKIE_HASH_KEY"),
		cookieBlockKey:  v.GetString("COOKIE_BLOCK_KEY"),
	}

	if cfg.APIKey == "" {
		return Config{}, errors.New("HOLIDAZE_API_KEY is required")
	}
	timeout := v.GetInt("API_TIMEOUT_SECONDS")
	if timeout < 1 {
		return Config{}, fmt.Errorf("invalid API_TIMEOUT_SECONDS %q", v.GetString("API_TIMEOUT_SECONDS"))
	}
	cfg.APITimeout = time.Duration(timeout) * time.Second

	ttl := v.GetInt("VENUE_CACHE_SECONDS")
	if ttl < 0 {
		return Config{}, fmt.Errorf("invalid VENUE_CACHE_SECONDS %q", v.GetString("VENUE_CACHE_SECONDS"))
	}
	cfg.VenueCacheTTL = time.Duration(ttl) * time.Second

	if cfg.RateLimitPerMin < 1 {
		return Config{}, fmt.Errorf("invalid RATE_LIMIT_PER_MIN %q", v.GetString("RATE_LIMIT_PER_MIN"))
	}
	return cfg, nil
}

func (c Config) Production() bool { return c.Env == "production" }

// SessionKeys decodes the cookie keys. Only the server needs them.
func (c Config) SessionKeys() (hashKey, blockKey []byte, err error) {
	if c.cookieHashKey == "" || c.cookieBlockKey == "" {
		return nil, nil, errors.New("COOKIE_HASH_KEY and COOKIE_BLOCK_KEY are required (32 and 16/24/32 bytes base64)")
	}
	hashKey, err = decodeKey(c.cookieHashKey)
	if err != nil {
		return nil, nil, fmt.Errorf("COOKIE_HASH_KEY: %w", err)
	}
	blockKey, err = decodeKey(c.cookieBlockKey)
	if err != nil {
		return nil, nil, fmt.Errorf("COOKIE_BLOCK_KEY: %w", err)
	}
	switch len(blockKey) {
	case 16, 24, 32:
	default:
		return nil, nil, fmt.Errorf("COOKIE_BLOCK_KEY: want 16, 24 or 32 bytes, got %d", len(blockKey))
	}
	return hashKey, blockKey, nil
}

// decodeKey accepts base64 or a path to a file holding base64, so keys can
// come from mounted secrets.
func decodeKey(s string) ([]byte, error) {
	if b, err := os.ReadFile(s); err == nil {
		s = string(b)
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(s))
}
