package cli

import (
	"context"
	"fmt"
	"time"

	"worklog/internal/backend"
	"worklog/internal/cache"
	"worklog/internal/config"
	"worklog/internal/core"
	"worklog/internal/log"
	"worklog/internal/services"
)

// App is the fully wired set of services a command runs against.
type App struct {
	Config   *config.Config
	Entries  *services.EntryService
	Stats    *services.StatisticsService
	Notes    *services.NoteService
	Settings *services.SettingsService

	backend *backend.BackendResult
	caches  *cache.Manager
}

type appOptions struct {
	// statsCache enables the in-process statistics cache. Processes that do
	// not own every write (the worker) must leave it off.
	statsCache bool
}

func NewApp(ctx context.Context, cfg *config.Config, logger *log.Logger, opts appOptions) (*App, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger.WithComponent(log.ComponentBackend).Logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	entries := services.NewEntryService(res.Stores.Entries, res.Publisher)
	app := &App{
		Config:   cfg,
		Entries:  entries,
		Notes:    services.NewNoteService(res.Stores.Notes),
		Settings: services.NewSettingsService(res.Stores.Theme),
		backend:  res,
	}

	if opts.statsCache {
		lru := cache.NewLRUCache[core.Statistics](cfg.StatsCacheSize, cfg.StatsCacheTTL)
		app.caches = cache.NewManager()
		app.caches.Register(lru)
		app.caches.StartCleanup(cfg.StatsCacheTTL)
		app.Stats = services.NewStatisticsService(entries, lru)
	} else {
		app.Stats = services.NewStatisticsService(entries, nil)
	}

	logger.InfoContext(ctx, "Application services ready",
		"backend", cfg.DataBackend,
		"events", res.Publisher != nil,
		"stats_cache", opts.statsCache)
	return app, nil
}

func (a *App) Close() error {
	if a.caches != nil {
		a.caches.Stop()
	}
	if a.backend.Cleanup == nil {
		return nil
	}
	return a.backend.Cleanup()
}

const shutdownTimeout = 30 * time.Second
