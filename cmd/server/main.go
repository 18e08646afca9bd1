package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"auction_backend/internal/app/di"
	"auction_backend/internal/platform/config"
	"auction_backend/internal/platform/db"
	"auction_backend/internal/platform/logger"
	platformredis "auction_backend/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.WithError(err).Error("server exited")
		os.Exit(1)
	}
}

// run owns every resource of the process so that deferred cleanup runs on
// both clean shutdown and startup failure.
func run() error {
	cfg := config.Load()
	logger.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.Open(db.LoadConfigFromEnv())
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	if cfg.RunMigrations {
		if err := di.Migrate(gdb); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	// Redis
	var rdb *redisv9.Client
	if cfg.RedisEnabled() {
		rdb, err = platformredis.NewClient(ctx, platformredis.Options{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
		})
		if err != nil {
			log.WithError(err).Warn("redis unavailable, running without cache")
			rdb = nil
		} else {
			defer func() {
				if err := rdb.Close(); err != nil {
					log.WithError(err).Error("failed to close redis client")
				}
			}()
		}
	}

	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is not set; authenticated routes will answer 500")
	}

	app, err := di.Build(ctx, cfg, gdb, rdb)
	if err != nil {
		return fmt.Errorf("application wiring failed: %w", err)
	}
	go app.RunMaintenance(ctx, cfg.SessionPurgeInterval)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
