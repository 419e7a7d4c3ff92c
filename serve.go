package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/uwrite-api/database"
	"github.com/uwrite-api/lib/cache"
	"github.com/uwrite-api/lib/content"
	"github.com/uwrite-api/lib/metrics"
	"github.com/uwrite-api/logutils"
	"github.com/uwrite-api/routes"
	"github.com/uwrite-api/services"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the database and start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		tokens, err := services.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
		if err != nil {
			return err
		}

		db, err := openMigratedDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		store, closeStore := buildCache()
		defer closeStore()

		recorder := metrics.New()
		svc := services.New(services.Dependencies{
			DB:         db,
			Tokens:     tokens,
			Cache:      store,
			Converter:  content.NewConverter(),
			Metrics:    recorder,
			BcryptCost: cfg.BcryptCost,
		})

		router := routes.SetupRouter(db, svc, recorder, routes.Options{
			CORSOrigins:  cfg.CORSOrigins,
			Version:      version,
			SecureCookie: cfg.GinMode == "release",
		})

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logutils.Log.WithFields(logutils.Fields{"port": cfg.Port, "version": version}).Info("uWrite API starting")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case err := <-errCh:
			return err
		case sig := <-quit:
			logutils.Log.WithField("signal", sig.String()).Info("Shutting down server")
		}

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}

// buildCache picks Redis when configured, otherwise an in-process cache
func buildCache() (cache.Store, func()) {
	if cfg.RedisURL == "" {
		logutils.Log.Info("REDIS_URL not set, using in-memory public cache")
		return cache.NewMemoryStore(cfg.PublicCacheTTL), func() {}
	}

	store, err := cache.NewRedisStore(cfg.RedisURL, cfg.PublicCacheTTL)
	if err != nil {
		logutils.Log.WithError(err).Warn("Redis unavailable, using in-memory public cache")
		return cache.NewMemoryStore(cfg.PublicCacheTTL), func() {}
	}
	return store, func() {
		if err := store.Close(); err != nil {
			logutils.Log.WithError(err).Warn("failed to close redis client")
		}
	}
}
