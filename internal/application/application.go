// Package application assembles a core.Service from configuration. The
// server and the CLI share it so both see the same source, cache, snapshot
// store and view tuning.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/exoarchive/internal/config"
	"github.com/JonMunkholm/exoarchive/internal/core"
	"github.com/JonMunkholm/exoarchive/internal/core/views"
	"github.com/JonMunkholm/exoarchive/internal/schema"
	"github.com/JonMunkholm/exoarchive/internal/store"
)

// App is a configured service plus the resources it owns.
type App struct {
	Service *core.Service
	Limiter *core.FetchLimiter
	Layout  schema.Layout

	pool *pgxpool.Pool
}

// Options adjusts Build for a particular entry point.
type Options struct {
	// SkipSnapshots leaves the snapshot store off even when DATABASE_URL is
	// set.
	SkipSnapshots bool
}

// Build wires the fetcher, cache, snapshot store and view overrides
// described by cfg. Call Close when done.
func Build(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	layout, err := schema.LoadLayout(cfg.SchemaFile)
	if err != nil {
		return nil, err
	}

	limiter := core.NewFetchLimiter(cfg.Source.MaxConcurrent, cfg.Source.MaxWaitTime)
	app := &App{Limiter: limiter, Layout: layout}

	svcOpts := []core.Option{
		core.WithLayout(layout),
		core.WithSourcePath(cfg.Source.Path),
		core.WithSnapshotInterval(cfg.Database.SnapshotInterval),
	}
	svcOpts = append(svcOpts, ViewOverrides(cfg.Browser)...)

	if cfg.Cache.Enabled {
		svcOpts = append(svcOpts, core.WithCache(core.NewCache(cfg.Cache.TTL)))
	}

	if cfg.Database.Enabled() && !opts.SkipSnapshots {
		pool, err := Connect(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		snapshots := store.NewPostgres(pool, cfg.Database.SnapshotKeep)
		if err := snapshots.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		app.pool = pool
		svcOpts = append(svcOpts, core.WithSnapshots(snapshots))
	}

	app.Service = core.NewService(limiter.Wrap(NewFetcher(cfg.Source)), svcOpts...)

	slog.Info("service ready",
		"source", describeSource(cfg.Source),
		"source_path", cfg.Source.Path,
		"cache", cfg.Cache.Enabled,
		"snapshots", app.pool != nil,
		"views", core.ViewCount(),
	)
	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

// NewFetcher returns the HTTP fetcher when a source URL is configured and
// the local file fetcher otherwise.
func NewFetcher(cfg config.SourceConfig) core.Fetcher {
	if cfg.Remote() {
		return core.NewHTTPFetcher(cfg.URL, cfg.Timeout, cfg.MaxBytes)
	}
	return core.NewFileFetcher(cfg.Dir, cfg.MaxBytes)
}

// ViewOverrides applies the configured page size, line cap and recent limit
// to the standard views.
func ViewOverrides(cfg config.BrowserConfig) []core.Option {
	return []core.Option{
		core.WithViewOverride(views.BrowserKey, func(d *core.ViewDefinition) {
			d.PageSize = cfg.PageSize
			d.LineCap = cfg.LineCap
		}),
		core.WithViewOverride(views.RecentKey, func(d *core.ViewDefinition) {
			d.Limit = cfg.RecentLimit
		}),
	}
}

// Connect opens and pings a pgx pool sized from cfg.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if u, err := url.Parse(cfg.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}
	return pool, nil
}

func describeSource(cfg config.SourceConfig) string {
	if cfg.Remote() {
		return config.MaskUserinfo(cfg.URL)
	}
	return "dir:" + cfg.Dir
}
