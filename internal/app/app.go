// Package app assembles the pieces both front ends share: config, logging,
// tracing, the event bus, the API client and search statistics.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"searchgrip/internal/api"
	"searchgrip/internal/config"
	"searchgrip/internal/eventbus"
	"searchgrip/internal/logger"
	"searchgrip/internal/search"
	"searchgrip/internal/stats"
	"searchgrip/internal/tracer"
)

// Options override values from the config file
type Options struct {
	ConfigPath    string // empty selects config.DefaultPath()
	ServerURL     string
	StatsDir      string
	LogFallback   string // replaces a stderr or stdout [log] output
	TraceFallback string // file that takes spans from the stdout trace exporter
}

// App owns the long-lived services. Close releases them.
type App struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger
	Bus        eventbus.EventBus
	Client     *api.Client
	Stats      *stats.Recorder

	closeLog      func() error
	shutdownTrace func(context.Context) error
}

// New loads the config, applies opts and starts the services
func New(ctx context.Context, opts Options) (*App, error) {
	svc := config.NewConfigServiceWithBus(nil, opts.ConfigPath)
	cfg, err := svc.Load()
	if err != nil {
		return nil, err
	}

	if opts.ServerURL != "" {
		cfg.Server.BaseURL = opts.ServerURL
	}
	if opts.StatsDir != "" {
		cfg.UI.StatsDir = opts.StatsDir
	}
	if opts.LogFallback != "" && isTerminalStream(cfg.Log.Output) {
		cfg.Log.Output = opts.LogFallback
	}
	if opts.TraceFallback != "" && strings.EqualFold(cfg.Trace.Exporter, "stdout") {
		cfg.Trace.Exporter = "file"
		cfg.Trace.Output = opts.TraceFallback
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, closeLog, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	shutdownTrace, err := tracer.Setup(ctx, cfg.Trace)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("setup tracing: %w", err)
	}

	client, err := api.New(cfg.Server, cfg.Client, log)
	if err != nil {
		_ = shutdownTrace(ctx)
		_ = closeLog()
		return nil, err
	}

	bus := eventbus.New(log)
	recorder := stats.NewRecorder(log)
	recorder.Attach(bus)

	bus.Subscribe(eventbus.EventSearchFailed, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.SearchFailedEvent); ok {
			log.Debug("search failed event", "id", ev.ID, "term", ev.Term, "error", ev.Err)
		}
	})

	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ErrorEvent); ok {
			log.Error(ev.Message, "error", ev.Err)
		}
	})

	log.Info("searchgrip started",
		"config", svc.Path(),
		"server", cfg.Server.BaseURL,
		"trace", cfg.Trace.Enabled,
	)

	return &App{
		Config:        cfg,
		ConfigPath:    svc.Path(),
		Logger:        log,
		Bus:           bus,
		Client:        client,
		Stats:         recorder,
		closeLog:      closeLog,
		shutdownTrace: shutdownTrace,
	}, nil
}

// Search wires a controller and history loader to view
func (a *App) Search(view search.View) (*search.Controller, *search.HistoryLoader) {
	history := search.NewHistoryLoader(a.Client, view, a.Bus, a.Logger)
	return search.NewController(a.Client, view, history, a.Bus, a.Logger), history
}

// Close flushes pending events, writes statistics when a stats dir is set
// and shuts down tracing and logging
func (a *App) Close(ctx context.Context) error {
	a.Bus.Close()
	a.Stats.Detach()

	var errs []error
	if dir := a.Config.UI.StatsDir; dir != "" {
		if err := a.Stats.WriteCSV(dir, true); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.shutdownTrace(ctx); err != nil {
		errs = append(errs, err)
	}
	a.Logger.Info("searchgrip stopped", "searches", a.Stats.Total())
	if err := a.closeLog(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func isTerminalStream(output string) bool {
	switch strings.ToLower(output) {
	case "", "stderr", "stdout":
		return true
	}
	return false
}
