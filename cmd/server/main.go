package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/exoarchive/internal/application"
	"github.com/JonMunkholm/exoarchive/internal/config"
	"github.com/JonMunkholm/exoarchive/internal/core"
	"github.com/JonMunkholm/exoarchive/internal/logging"
	"github.com/JonMunkholm/exoarchive/internal/site"
	"github.com/JonMunkholm/exoarchive/internal/watch"
	"github.com/JonMunkholm/exoarchive/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := application.Build(ctx, cfg, application.Options{})
	if err != nil {
		slog.Error("failed to build service", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	server := web.NewServer(app.Service, &site.State{}, cfg)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Start(gctx)
	})

	// Watch the local CSV so edits show up without waiting for the cache TTL
	if !cfg.Source.Remote() && cfg.Source.Watch {
		dir, file := watch.Target(cfg.Source.Dir, cfg.Source.Path)
		g.Go(func() error {
			err := watch.Run(gctx, dir, file, app.Service.InvalidateSource)
			if err != nil && !errors.Is(err, context.Canceled) {
				// A missing directory should not take the server down.
				slog.Warn("source watcher stopped", "dir", dir, "error", err)
			}
			return nil
		})
	}

	if cfg.Source.RefreshInterval > 0 {
		g.Go(func() error {
			app.Service.StartRefreshScheduler(gctx, core.RefreshConfig{
				Interval:   cfg.Source.RefreshInterval,
				RunOnStart: cfg.Source.Remote(),
			})
			return nil
		})
	}

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Wait for in-flight fetches to finish (with timeout)
		if active := app.Limiter.ActiveCount(); active > 0 {
			slog.Info("waiting for fetches to complete", "active", active)
			if err := app.Limiter.WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("fetches did not complete in time", "error", err)
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
