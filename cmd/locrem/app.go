package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sandeepkv93/locrem/internal/config"
	"github.com/sandeepkv93/locrem/internal/data"
	"github.com/sandeepkv93/locrem/internal/geofence"
	"github.com/sandeepkv93/locrem/internal/observability"
	"github.com/sandeepkv93/locrem/internal/storage"
)

type rootOptions struct {
	configPath string
	dbPath     string
}

// app is the wiring shared by every subcommand.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	logFile *os.File
	metrics *observability.Metrics
	store   *storage.SQLiteStore
	repo    *data.LocalRepository
}

// openApp loads configuration and opens the store. The terminal shell logs to
// the configured file; the one-shot commands log to stderr.
func openApp(opts *rootOptions, stderr io.Writer, logToFile bool) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.dbPath) != "" {
		cfg.DB.Path = opts.dbPath
	}

	a := &app{cfg: cfg, metrics: observability.NewMetrics()}
	logOut := stderr
	if logToFile && cfg.Log.File != "" {
		f, err := observability.OpenLogFile(cfg.Log.File)
		if err != nil {
			return nil, err
		}
		a.logFile = f
		logOut = f
	}
	a.logger = observability.NewLogger(observability.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: logOut,
	})

	store, err := storage.OpenSQLite(cfg.DB.Path)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open store %s: %w", cfg.DB.Path, err)
	}
	a.store = store

	repo, err := data.NewLocalRepository(store, cfg.Cache.Size,
		data.WithLogger(a.logger),
		data.WithMetrics(a.metrics),
	)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.repo = repo
	a.logger.Debug("store opened", "path", cfg.DB.Path)
	return a, nil
}

func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("close store failed", "err", err)
		}
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

// newMonitor builds a geofence monitor with every stored reminder that has
// coordinates already registered.
func (a *app) newMonitor(ctx context.Context) *geofence.Monitor {
	monitor := geofence.NewMonitor(a.cfg.Geofence.Buffer,
		geofence.WithLogger(a.logger),
		geofence.WithMetrics(a.metrics),
		geofence.WithDefaultRadius(a.cfg.Geofence.RadiusMeters),
	)
	reminders, ok := a.repo.GetReminders(ctx).Data()
	if !ok {
		return monitor
	}
	registered := 0
	for _, r := range reminders {
		region, err := geofence.RegionForReminder(r, 0)
		if err != nil {
			continue
		}
		if err := monitor.Register(region); err != nil {
			a.logger.Warn("geofence register failed", "id", r.ID, "err", err)
			continue
		}
		registered++
	}
	a.logger.Info("geofences registered", "count", registered)
	return monitor
}

// serveMetrics exposes /metrics in the background when metrics.addr is set.
func (a *app) serveMetrics(ctx context.Context) {
	addr := strings.TrimSpace(a.cfg.Metrics.Addr)
	if addr == "" {
		return
	}
	go func() {
		if err := a.metrics.Serve(ctx, addr); err != nil {
			a.logger.Error("metrics server stopped", "addr", addr, "err", err)
		}
	}()
}
