package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/holidaze/internal/auth"
	"github.com/example/holidaze/internal/booking"
	"github.com/example/holidaze/internal/cache"
	"github.com/example/holidaze/internal/web"
)

func newServerCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the JSON API in front of Holidaze",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.close()

			hashKey, blockKey, err := e.cfg.SessionKeys()
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			recorder, closeDB, err := e.ledger(ctx, migrateUp)
			if err != nil {
				return err
			}
			defer closeDB()

			var venues cache.Venues = cache.NopVenues{}
			if e.cfg.RedisAddr != "" {
				rc, err := cache.Open(ctx, e.cfg.RedisAddr, e.cfg.RedisPassword, e.cfg.RedisDB)
				if err != nil {
					return err
				}
				defer rc.Close()
				venues = cache.NewRedisVenues(rc, e.cfg.VenueCacheTTL)
			}
			e.log.Info("starting",
				zap.String("api", e.cfg.APIBaseURL),
				zap.Bool("ledger", e.cfg.DatabaseURL != ""),
				zap.Bool("venue_cache", e.cfg.RedisAddr != ""))

			ws := &web.Server{
				Log:             e.log,
				API:             e.api,
				Auth:            auth.NewStore(hashKey, blockKey),
				Bookings:        booking.NewService(e.log, recorder),
				Attempts:        recorder,
				Venues:          venues,
				RateLimitPerMin: e.cfg.RateLimitPerMin,
			}
			return web.Start(ctx, e.cfg.ListenAddr, ws.Routes(), e.log)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")
	cmd.Flags().Lookup("migrate").NoOptDefVal = "true"
	return cmd
}
