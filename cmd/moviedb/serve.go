package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tbourn/go-movie-collection/internal/config"
	httpapi "github.com/tbourn/go-movie-collection/internal/http"
	"github.com/tbourn/go-movie-collection/internal/observability"
	"github.com/tbourn/go-movie-collection/internal/repo"
	"github.com/tbourn/go-movie-collection/internal/services"
	"github.com/tbourn/go-movie-collection/internal/sysutil"
)

// purgeInterval is how often expired idempotency records are removed.
const purgeInterval = time.Hour

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), *cfg)
		},
	}
}

func runServer(parent context.Context, cfg config.Config) error {
	sysutil.SetupLogging(os.Stderr, cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := repo.Open(cfg.DB.Driver, cfg.DB.Target(), repo.OpenOptions{Tracing: cfg.OTEL.Enabled})
	if err != nil {
		return err
	}
	defer repo.Close(db)
	if err := repo.AutoMigrate(db); err != nil {
		return err
	}

	var cat services.Catalog
	if client, err := newCatalogClient(cfg.Catalog); err == nil {
		cat = client
	} else {
		log.Warn().Err(err).Msg("catalog disabled; search and add will return 503")
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, cat, cfg)

	srv := newHTTPServer(cfg, r)
	go purgeIdempotency(ctx, db, purgeInterval)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("db", cfg.DB.Driver).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	return nil
}

func newHTTPServer(cfg config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           h,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}
}

// purgeIdempotency removes expired idempotency records every interval until
// ctx is done.
func purgeIdempotency(ctx context.Context, db *gorm.DB, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := repo.PurgeExpiredIdempotency(ctx, db, now)
			if err != nil {
				log.Warn().Err(err).Msg("purge idempotency")
				continue
			}
			if n > 0 {
				log.Debug().Int64("removed", n).Msg("purged idempotency records")
			}
		}
	}
}
