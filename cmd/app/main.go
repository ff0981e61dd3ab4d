package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"tasks_api/internal/config"
	"tasks_api/internal/db"
	httpServer "tasks_api/internal/http"
	"tasks_api/internal/http/middleware"
	"tasks_api/internal/logger"

	"golang.org/x/sync/errgroup"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	store, err := db.Open(context.Background(), db.Options{
		Driver: cfg.DBDriver,
		Path:   cfg.DBPath,
		URL:    cfg.DatabaseURL,
	})
	if err != nil {
		if cfg.DBFailFast {
			logger.Fatal("failed to open database", "error", err)
		}
		// keep serving; requests touching the store answer 500 and /readyz 503
		logger.Error("failed to open database, serving without a store", "error", err)
	}
	defer store.Close()

	limiter := middleware.NewRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer limiter.Close()

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: httpServer.NewRouter(store, limiter, cfg, version),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server started", "url", "http://localhost:"+cfg.AppPort, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", "error", err)
		return
	}
	logger.Info("server exited")
}
