package cmd

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/holidaze/internal/attempts"
	"github.com/example/holidaze/internal/auth"
	"github.com/example/holidaze/internal/config"
	"github.com/example/holidaze/internal/db"
	"github.com/example/holidaze/internal/holidaze"
	"github.com/example/holidaze/internal/logging"
	"github.com/example/holidaze/internal/migrate"
)

type env struct {
	cfg config.Config
	log *zap.Logger
	api *holidaze.Client
}

func loadEnv() (*env, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	api := holidaze.New(holidaze.Options{BaseURL: cfg.APIBaseURL, APIKey: cfg.APIKey, Timeout: cfg.APITimeout})
	return &env{cfg: cfg, log: log, api: api}, nil
}

// close flushes buffered log entries. Sync errors on stdout/stderr are
// expected on some platforms and ignored.
func (e *env) close() { _ = e.log.Sync() }

// user returns a client acting as HOLIDAZE_TOKEN's owner and the profile name.
func (e *env) user() (*holidaze.Client, string, error) {
	if e.cfg.Token == "" {
		return nil, "", errors.New("HOLIDAZE_TOKEN is not set; run `holidaze login` first")
	}
	name, err := auth.NameFromToken(e.cfg.Token)
	if err != nil {
		return nil, "", fmt.Errorf("HOLIDAZE_TOKEN: %w", err)
	}
	return e.api.WithToken(e.cfg.Token), name, nil
}

// ledger opens the attempt ledger when DATABASE_URL is set. The returned
// close func is always safe to call.
func (e *env) ledger(ctx context.Context, migrateUp bool) (attempts.Recorder, func(), error) {
	if e.cfg.DatabaseURL == "" {
		return attempts.Nop{}, func() {}, nil
	}
	d, err := db.Open(ctx, e.cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := d.Ping(ctx); err != nil {
		d.Close()
		return nil, nil, fmt.Errorf("db ping: %w", err)
	}
	if migrateUp {
		if err := migrate.Up(ctx, d, e.log); err != nil {
			d.Close()
			return nil, nil, err
		}
	}
	return attempts.NewRepo(d), d.Close, nil
}
